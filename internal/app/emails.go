package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotelia/internal/domain"
	"hotelia/internal/emailtpl"
)

// SendEmailRequest carries the guest-email send input. HotelID is optional;
// when present the hotel's booking links and reply-to address are pulled in.
type SendEmailRequest struct {
	GuestName      string
	GuestEmail     string
	TemplateType   string
	HotelName      string
	HotelID        string
	BookingMethod  string
	IncludeOffer   bool
	SelectedOffers []string
	DiscountAmount string
}

type EmailService struct {
	repo   domain.Repository
	sender domain.EmailSender // nil when RESEND_API_KEY is unset
}

func NewEmailService(r domain.Repository, s domain.EmailSender) *EmailService {
	return &EmailService{repo: r, sender: s}
}

// Send renders and delivers one guest email, then records the outcome in
// guest_emails. Returns the provider's message id.
func (s *EmailService) Send(ctx context.Context, req SendEmailRequest) (string, error) {
	if strings.TrimSpace(req.GuestName) == "" {
		return "", domain.Invalidf("guest name is required")
	}
	if !strings.Contains(req.GuestEmail, "@") {
		return "", domain.Invalidf("guest email is required")
	}
	tpl, err := emailtpl.ParseType(req.TemplateType)
	if err != nil {
		return "", domain.Invalidf("%v", err)
	}
	if s.sender == nil {
		return "", domain.ErrNotConfigured
	}

	hotelName := req.HotelName
	if hotelName == "" {
		hotelName = "Our Hotel"
	}
	method := emailtpl.BookingMethod(req.BookingMethod)
	if method == "" {
		method = emailtpl.BookingEngine
	}
	discount := req.DiscountAmount
	if discount == "" {
		if tpl == emailtpl.TypeReviewRequest {
			discount = "15"
		} else {
			discount = "20"
		}
	}

	// Links are best-effort: a missing hotel row still sends, with "#" links.
	var links emailtpl.Links
	replyTo := ""
	if req.HotelID != "" {
		h, herr := s.repo.GetHotel(ctx, req.HotelID)
		if herr != nil {
			log.Warn().Err(herr).Str("hotel_id", req.HotelID).Msg("hotel links unavailable for email")
		} else {
			links = emailtpl.Links{
				GoogleReviewURL:  deref(h.GoogleReviewURL),
				DirectBookingURL: deref(h.DirectBookingURL),
				WhatsappNumber:   deref(h.WhatsappNumber),
				PhoneNumber:      deref(h.PhoneNumber),
			}
			replyTo = deref(h.ReplyToEmail)
		}
	}

	email, err := emailtpl.Render(tpl, emailtpl.Params{
		GuestName:      req.GuestName,
		HotelName:      hotelName,
		Links:          links,
		BookingMethod:  method,
		SelectedOffers: req.SelectedOffers,
		DiscountAmount: discount,
		IncludeOffer:   req.IncludeOffer,
	})
	if err != nil {
		return "", domain.Invalidf("%v", err)
	}

	msgID, sendErr := s.sender.Send(ctx, domain.OutboundEmail{
		To:      req.GuestEmail,
		ReplyTo: replyTo,
		Subject: email.Subject,
		HTML:    email.HTML,
	})

	record := domain.GuestEmail{
		HotelID:      req.HotelID,
		GuestName:    req.GuestName,
		GuestEmail:   req.GuestEmail,
		TemplateType: string(tpl),
		Subject:      &email.Subject,
	}
	if sendErr != nil {
		record.Status = domain.EmailFailed
	} else {
		record.Status = domain.EmailSent
		record.ProviderID = &msgID
		now := time.Now().UTC()
		record.SentAt = &now
	}
	if req.HotelID != "" {
		if _, rerr := s.repo.InsertGuestEmail(ctx, record); rerr != nil {
			log.Warn().Err(rerr).Str("hotel_id", req.HotelID).Msg("guest email record not stored")
		}
	}

	if sendErr != nil {
		return "", sendErr
	}
	return msgID, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
