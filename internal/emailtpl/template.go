// Package emailtpl renders the guest marketing/transactional emails as
// complete HTML documents with inlined styles (email clients strip <head>
// styles). Rendering is pure string assembly: no network, no database.
package emailtpl

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeReviewRequest Type = "review_request"
	TypeReturnPromo   Type = "return_promo"
)

// ParseType rejects unknown template kinds at the boundary.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeReviewRequest:
		return TypeReviewRequest, nil
	case TypeReturnPromo:
		return TypeReturnPromo, nil
	default:
		return "", fmt.Errorf("unknown template type %q", s)
	}
}

func (t Type) Subject() string {
	switch t {
	case TypeReviewRequest:
		return "We hope you enjoyed your stay! 🌟"
	case TypeReturnPromo:
		return "A special offer just for you! 🎁"
	}
	return ""
}

type BookingMethod string

const (
	BookingEngine   BookingMethod = "booking_engine"
	BookingWhatsApp BookingMethod = "whatsapp"
	BookingPhone    BookingMethod = "phone"
	BookingEmail    BookingMethod = "email"
)

// Offer vocabulary, as selected in the dashboard.
const (
	OfferPercentageDiscount = "Percentage Discount"
	OfferFreeBreakfast      = "Free Breakfast"
	OfferEarlyCheckin       = "Early Check-in"
	OfferLateCheckout       = "Late Check-out"
	OfferRoomUpgrade        = "Room Upgrade"
)

// Links is the hotel's outbound link bundle.
type Links struct {
	GoogleReviewURL  string
	DirectBookingURL string
	WhatsappNumber   string
	PhoneNumber      string
}

type Params struct {
	GuestName      string
	HotelName      string
	Links          Links
	BookingMethod  BookingMethod
	SelectedOffers []string
	DiscountAmount string
	IncludeOffer   bool // review_request only; return_promo always carries an offer block
}

type Email struct {
	Subject   string
	HTML      string
	PromoCode string
}

// offerParts maps selected offer labels to benefit phrases, in the fixed
// vocabulary order. The two templates word a few benefits differently.
func offerParts(t Type, offers []string, discount string) []string {
	has := func(label string) bool {
		for _, o := range offers {
			if o == label {
				return true
			}
		}
		return false
	}

	var parts []string
	if has(OfferPercentageDiscount) {
		if t == TypeReviewRequest {
			parts = append(parts, discount+"% off your next booking")
		} else {
			parts = append(parts, discount+"% discount")
		}
	}
	if has(OfferFreeBreakfast) {
		parts = append(parts, "complimentary breakfast")
	}
	if has(OfferEarlyCheckin) {
		parts = append(parts, "free early check-in")
	}
	if has(OfferLateCheckout) {
		parts = append(parts, "free late check-out")
	}
	if has(OfferRoomUpgrade) {
		if t == TypeReviewRequest {
			parts = append(parts, "a complimentary room upgrade")
		} else {
			parts = append(parts, "complimentary room upgrade")
		}
	}
	return parts
}

// OfferText joins benefit phrases with commas and a final "and". On the
// return-promo template zero offers falls back to "an exclusive offer";
// on review-request zero offers means no offer block at all.
func OfferText(t Type, offers []string, discount string) string {
	parts := offerParts(t, offers, discount)
	if len(parts) == 0 {
		if t == TypeReturnPromo {
			return "an exclusive offer"
		}
		return ""
	}
	last := parts[len(parts)-1]
	rest := parts[:len(parts)-1]
	joined := last
	if len(rest) > 0 {
		joined = strings.Join(rest, ", ") + " and " + last
	}
	if t == TypeReviewRequest {
		return "Enjoy " + joined + " on your next stay!"
	}
	return joined
}

// PromoCode derives the deterministic code for the selection. The two
// templates intentionally use different single-offer prefixes for the
// percentage discount (WELCOME vs COMEBACK): distinct campaigns.
func PromoCode(t Type, offers []string, discount string) string {
	has := func(label string) bool {
		for _, o := range offers {
			if o == label {
				return true
			}
		}
		return false
	}

	if len(offers) == 0 {
		if t == TypeReturnPromo {
			return "WELCOMEBACK"
		}
		return ""
	}
	if len(offers) > 1 {
		if has(OfferPercentageDiscount) {
			return "COMBO" + discount
		}
		return "SPECIALGIFT"
	}
	switch offers[0] {
	case OfferPercentageDiscount:
		if t == TypeReviewRequest {
			return "WELCOME" + discount
		}
		return "COMEBACK" + discount
	case OfferFreeBreakfast:
		return "FREEBREAKFAST"
	case OfferEarlyCheckin:
		return "EARLYBIRD"
	case OfferLateCheckout:
		return "LATECHECKOUT"
	case OfferRoomUpgrade:
		return "UPGRADE"
	}
	return ""
}

// WhatsAppDigits strips everything but digits for wa.me deep links.
func WhatsAppDigits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func orHash(s string) string {
	if s == "" {
		return "#"
	}
	return s
}

// Render produces the full email for the template type.
func Render(t Type, p Params) (Email, error) {
	switch t {
	case TypeReviewRequest:
		return renderReviewRequest(p), nil
	case TypeReturnPromo:
		return renderReturnPromo(p), nil
	default:
		return Email{}, fmt.Errorf("unknown template type %q", string(t))
	}
}
