package domain

import "time"

type Hotel struct {
	ID      string
	Name    string
	City    *string
	Country *string
	Website *string

	// Review platform profiles
	GoogleURL      *string
	TripadvisorURL *string
	BookingURL     *string
	AgodaURL       *string

	// AI reply configuration
	BrandVoice       *string
	KeySellingPoints []string
	DefaultLanguage  string // ISO 639-1, reply language
	SignOffName      *string

	// Guest email configuration
	GoogleReviewURL  *string
	DirectBookingURL *string
	ReplyToEmail     *string
	WhatsappNumber   *string
	PhoneNumber      *string
}

// RatingSnapshot is a periodic external record of a platform's aggregate
// rating and review count. Append-only.
type RatingSnapshot struct {
	HotelID     string
	Platform    Platform
	Rating      float64 // platform-native scale
	ReviewCount int
	RecordedAt  time.Time
}
