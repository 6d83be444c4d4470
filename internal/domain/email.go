package domain

import "time"

type EmailStatus string

const (
	EmailDraft   EmailStatus = "draft"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
	EmailOpened  EmailStatus = "opened"
	EmailClicked EmailStatus = "clicked"
)

// GuestEmail is a send record. Created right after the send call; the
// opened/clicked transitions are driven by provider webhooks.
type GuestEmail struct {
	ID           string
	HotelID      string
	GuestName    string
	GuestEmail   string
	TemplateType string
	Subject      *string
	Status       EmailStatus
	ProviderID   *string // provider message id
	SentAt       *time.Time
}

// OutboundEmail is what actually goes to the provider.
type OutboundEmail struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}
