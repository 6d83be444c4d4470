package httpserver

import (
	"net/http"
	"strings"

	"hotelia/internal/app"
	"hotelia/internal/domain"
)

// The AI endpoints pass text straight through to the provider; there is no
// persistence here. Callers that want stored enrichment go through the
// review endpoints instead.

func (h *Handlers) analyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text   string  `json:"text"`
		Rating float64 `json:"rating"`
	}
	if !decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "text is required")
		return
	}
	if h.AI == nil {
		writeError(w, domain.ErrNotConfigured)
		return
	}

	res, err := h.AI.AnalyzeSentiment(r.Context(), body.Text, body.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sentiment": res.Sentiment,
		"topics":    res.Topics,
		"language":  res.Language,
	})
}

func (h *Handlers) generateReply(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReviewID      string   `json:"reviewId"` // optional, enables the per-review cap
		ReviewText    string   `json:"reviewText"`
		ReviewerName  string   `json:"reviewerName"`
		Rating        float64  `json:"rating"`
		Platform      string   `json:"platform"`
		HotelName     string   `json:"hotelName"`
		BrandVoice    string   `json:"brandVoice"`
		ReplyLanguage string   `json:"replyLanguage"`
		Sentiment     string   `json:"sentiment"`
		Topics        []string `json:"topics"`
	}
	if !decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.ReviewText) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "reviewText is required")
		return
	}
	if strings.TrimSpace(body.ReviewerName) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "reviewerName is required")
		return
	}
	if h.AI == nil {
		writeError(w, domain.ErrNotConfigured)
		return
	}
	if h.Quota != nil && !h.Quota.Allow(body.ReviewID) {
		writeProblem(w, http.StatusTooManyRequests, "Reply Limit Reached",
			"this review has used all its reply generations")
		return
	}

	var sentiment *domain.Sentiment
	if s := domain.Sentiment(body.Sentiment); s == domain.SentimentPositive ||
		s == domain.SentimentNeutral || s == domain.SentimentNegative {
		sentiment = &s
	}

	reply, err := h.AI.GenerateReply(r.Context(), domain.ReplyRequest{
		ReviewText:    body.ReviewText,
		ReviewerName:  body.ReviewerName,
		Rating:        body.Rating,
		Platform:      domain.Platform(body.Platform),
		HotelName:     body.HotelName,
		BrandVoice:    body.BrandVoice,
		ReplyLanguage: body.ReplyLanguage,
		Sentiment:     sentiment,
		Topics:        body.Topics,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reply": reply})
}

func (h *Handlers) translate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text           string `json:"text"`
		SourceLanguage string `json:"sourceLanguage"`
		TargetLanguage string `json:"targetLanguage"`
	}
	if !decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "text is required")
		return
	}
	if h.AI == nil {
		writeError(w, domain.ErrNotConfigured)
		return
	}

	out, err := h.AI.Translate(r.Context(), body.Text, body.SourceLanguage, body.TargetLanguage)
	if err != nil {
		writeError(w, err)
		return
	}
	src := body.SourceLanguage
	if src == "" {
		src = "auto"
	}
	target := body.TargetLanguage
	if target == "" {
		target = "en"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"translatedText": out,
		"sourceLanguage": src,
		"targetLanguage": target,
	})
}

func (h *Handlers) sendEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GuestName      string   `json:"guestName"`
		GuestEmail     string   `json:"guestEmail"`
		TemplateType   string   `json:"templateType"`
		HotelName      string   `json:"hotelName"`
		HotelID        string   `json:"hotelId"`
		BookingMethod  string   `json:"bookingMethod"`
		IncludeOffer   bool     `json:"includeOffer"`
		SelectedOffers []string `json:"selectedOffers"`
		DiscountAmount string   `json:"discountAmount"`
	}
	if !decode(w, r, &body) {
		return
	}

	msgID, err := h.Emails.Send(r.Context(), app.SendEmailRequest{
		GuestName:      body.GuestName,
		GuestEmail:     body.GuestEmail,
		TemplateType:   body.TemplateType,
		HotelName:      body.HotelName,
		HotelID:        body.HotelID,
		BookingMethod:  body.BookingMethod,
		IncludeOffer:   body.IncludeOffer,
		SelectedOffers: body.SelectedOffers,
		DiscountAmount: body.DiscountAmount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "messageId": msgID})
}
