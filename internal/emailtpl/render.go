package emailtpl

import "fmt"

const (
	ctaButtonStyle      = "display: inline-block; background-color: #16a34a; color: white; padding: 14px 28px; text-decoration: none; border-radius: 8px; font-weight: 600;"
	ctaWhatsAppStyle    = "display: inline-block; background-color: #25D366; color: white; padding: 14px 28px; text-decoration: none; border-radius: 8px; font-weight: 600;"
	offerButtonStyle    = "display: inline-block; background-color: #16a34a; color: white; padding: 10px 20px; text-decoration: none; border-radius: 6px; font-weight: 600; font-size: 14px;"
	offerWhatsAppStyle  = "display: inline-block; background-color: #25D366; color: white; padding: 10px 20px; text-decoration: none; border-radius: 6px; font-weight: 600; font-size: 14px;"
	availabilityFinePrn = "*Offers are subject to availability. Please contact us directly to confirm your booking and offer eligibility."
)

// callToAction renders the booking channel block. The compact variant is used
// inside the review-request offer box, the large one on the return-promo body.
func callToAction(method BookingMethod, links Links, compact bool) string {
	buttonStyle, whatsappStyle := ctaButtonStyle, ctaWhatsAppStyle
	if compact {
		buttonStyle, whatsappStyle = offerButtonStyle, offerWhatsAppStyle
	}

	whatsappLink := "#"
	if links.WhatsappNumber != "" {
		whatsappLink = "https://wa.me/" + WhatsAppDigits(links.WhatsappNumber)
	}
	phoneLink := "#"
	phoneLabel := "Contact Hotel"
	if links.PhoneNumber != "" {
		phoneLink = "tel:" + links.PhoneNumber
		phoneLabel = links.PhoneNumber
	}

	switch method {
	case BookingEngine:
		label := "Book Now"
		if compact {
			label = "Book Now & Save"
		}
		return fmt.Sprintf(`<a href="%s" style="%s">%s</a>`, orHash(links.DirectBookingURL), buttonStyle, label)
	case BookingWhatsApp:
		return fmt.Sprintf(`<a href="%s" style="%s">Book via WhatsApp</a>`, whatsappLink, whatsappStyle)
	case BookingPhone:
		if compact {
			return fmt.Sprintf(`<div style="margin-top: 10px; padding: 10px; background: #f3f4f6; border-radius: 8px; display: inline-block;"><strong>Call to Book:</strong> <a href="%s" style="color: #16a34a;">%s</a></div>`, phoneLink, phoneLabel)
		}
		return fmt.Sprintf(`<div style="margin-top: 20px; padding: 15px; background: #f3f4f6; border-radius: 8px; display: inline-block;"><strong>Call to Book:</strong> <a href="%s" style="color: #16a34a; font-size: 18px;">%s</a></div>`, phoneLink, phoneLabel)
	case BookingEmail:
		if compact {
			return `<div style="margin-top: 10px; padding: 10px; background: #fffbeb; border: 1px solid #fcd34d; border-radius: 8px;"><strong>Reply to this email</strong> to claim!</div>`
		}
		return `<div style="margin-top: 20px; padding: 15px; background: #fffbeb; border: 1px solid #fcd34d; border-radius: 8px;"><strong>Reply to this email</strong> with your desired dates to claim this offer!</div>`
	}
	return ""
}

func renderReviewRequest(p Params) Email {
	promoCode := ""
	offerSection := ""
	if p.IncludeOffer && len(p.SelectedOffers) > 0 {
		offerText := OfferText(TypeReviewRequest, p.SelectedOffers, p.DiscountAmount)
		if offerText != "" {
			promoCode = PromoCode(TypeReviewRequest, p.SelectedOffers, p.DiscountAmount)
			offerSection = fmt.Sprintf(`
  <div style="background-color: #f0fdf4; border: 2px dashed #16a34a; border-radius: 8px; padding: 20px; text-align: center; margin: 30px 0;">
    <p style="margin: 0 0 10px; font-size: 16px; color: #166534;"><strong>%s</strong> when you book directly with us!</p>
    <p style="margin: 0 0 5px; font-size: 12px; color: #666;">Your exclusive discount code:</p>
    <p style="margin: 0; font-size: 20px; font-weight: bold; color: #16a34a;">%s</p>
    <div style="margin-top: 15px;">
      %s
    </div>
    <p style="font-size: 12px; color: #9ca3af; font-style: italic; margin-top: 15px;">
      %s
    </p>
  </div>`, offerText, promoCode, callToAction(p.BookingMethod, p.Links, true), availabilityFinePrn)
		}
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #16a34a; margin: 0;">Thank you for staying with us!</h1>
  </div>

  <p>Dear %s,</p>

  <p>We hope you had a wonderful stay at <strong>%s</strong>! Your comfort and satisfaction are our top priorities, and we'd love to hear about your experience.</p>

  <p>Would you take a moment to share your thoughts? Your feedback helps us improve and helps other travelers make informed decisions.</p>

  <div style="text-align: center; margin: 30px 0;">
    <a href="%s" style="display: inline-block; background-color: #16a34a; color: white; padding: 14px 28px; text-decoration: none; border-radius: 8px; font-weight: 600;">Leave a Review on Google</a>
  </div>
  %s
  <p>It only takes a minute, and we truly appreciate it!</p>

  <p>Warm regards,<br><strong>The %s Team</strong></p>

  <hr style="border: none; border-top: 1px solid #e5e5e5; margin: 30px 0;">
  <p style="font-size: 12px; color: #888; text-align: center;">
    You received this email because you recently stayed at %s.
  </p>
</body>
</html>`, p.GuestName, p.HotelName, orHash(p.Links.GoogleReviewURL), offerSection, p.HotelName, p.HotelName)

	return Email{Subject: TypeReviewRequest.Subject(), HTML: html, PromoCode: promoCode}
}

func renderReturnPromo(p Params) Email {
	offerText := OfferText(TypeReturnPromo, p.SelectedOffers, p.DiscountAmount)
	promoCode := PromoCode(TypeReturnPromo, p.SelectedOffers, p.DiscountAmount)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #16a34a; margin: 0;">We Miss You!</h1>
  </div>

  <p>Dear %s,</p>

  <p>It's been a while since your last visit to <strong>%s</strong>, and we wanted to reach out with a special offer just for you.</p>

  <p>Book your next stay directly with us and enjoy <strong>%s</strong>!</p>

  <div style="background-color: #f0fdf4; border: 2px dashed #16a34a; border-radius: 8px; padding: 20px; text-align: center; margin: 20px 0;">
    <p style="margin: 0 0 10px; font-size: 14px; color: #666;">Your exclusive discount code:</p>
    <p style="margin: 0; font-size: 24px; font-weight: bold; color: #16a34a;">%s</p>
  </div>

  <div style="text-align: center; margin: 30px 0;">
    %s
  </div>

  <p style="font-size: 12px; color: #9ca3af; font-style: italic; text-align: center; margin-bottom: 20px;">
    %s
  </p>

  <p>This offer is valid for the next 30 days. We can't wait to welcome you back!</p>

  <p>Warm regards,<br><strong>The %s Team</strong></p>

  <hr style="border: none; border-top: 1px solid #e5e5e5; margin: 30px 0;">
  <p style="font-size: 12px; color: #888; text-align: center;">
    You received this email because you previously stayed at %s.
  </p>
</body>
</html>`, p.GuestName, p.HotelName, offerText, promoCode,
		callToAction(p.BookingMethod, p.Links, false), availabilityFinePrn, p.HotelName, p.HotelName)

	return Email{Subject: TypeReturnPromo.Subject(), HTML: html, PromoCode: promoCode}
}
