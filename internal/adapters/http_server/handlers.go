package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelia/internal/app"
	"hotelia/internal/domain"
)

type Handlers struct {
	Q       *app.QueryService
	Reviews *app.ReviewService
	Emails  *app.EmailService
	AI      domain.AIClient // nil when ANTHROPIC_API_KEY is unset
	Quota   *app.ReplyQuota
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Delete("/v1/hotels/{id}", h.deleteHotel)
	s.mux.Get("/v1/hotels/{id}/reviews", h.listReviews)
	s.mux.Post("/v1/hotels/{id}/reviews", h.addReview)
	s.mux.Get("/v1/hotels/{id}/analytics", h.analytics)
	s.mux.Get("/v1/hotels/{id}/rating", h.overallRating)
	s.mux.Post("/v1/reviews/{id}/respond", h.respond)

	s.mux.Post("/v1/ai/analyze-sentiment", h.analyzeSentiment)
	s.mux.Post("/v1/ai/generate-reply", h.generateReply)
	s.mux.Post("/v1/ai/translate", h.translate)
	s.mux.Post("/v1/emails/send", h.sendEmail)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// statusFor maps domain failures to HTTP. Upstream providers keep their
// status when they gave one.
func statusFor(err error) (int, string) {
	var ue *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid Request"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusInternalServerError, "Server Configuration Error"
	case errors.As(err, &ue):
		if ue.Status > 0 {
			return ue.Status, "Upstream Error"
		}
		return http.StatusBadGateway, "Upstream Error"
	}
	return http.StatusInternalServerError, "Internal Error"
}

func writeError(w http.ResponseWriter, err error) {
	status, title := statusFor(err)
	writeProblem(w, status, title, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- DTOs ----

type hotelDTO struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
	Website *string `json:"website,omitempty"`

	GoogleURL      *string `json:"googleUrl,omitempty"`
	TripadvisorURL *string `json:"tripadvisorUrl,omitempty"`
	BookingURL     *string `json:"bookingUrl,omitempty"`
	AgodaURL       *string `json:"agodaUrl,omitempty"`

	BrandVoice       *string  `json:"brandVoice,omitempty"`
	KeySellingPoints []string `json:"keySellingPoints,omitempty"`
	DefaultLanguage  string   `json:"defaultLanguage"`
	SignOffName      *string  `json:"signOffName,omitempty"`

	GoogleReviewURL  *string `json:"googleReviewUrl,omitempty"`
	DirectBookingURL *string `json:"directBookingUrl,omitempty"`
	ReplyToEmail     *string `json:"replyToEmail,omitempty"`
	WhatsappNumber   *string `json:"whatsappNumber,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
}

func toHotelDTO(h domain.Hotel) hotelDTO {
	return hotelDTO{
		ID: h.ID, Name: h.Name, City: h.City, Country: h.Country, Website: h.Website,
		GoogleURL: h.GoogleURL, TripadvisorURL: h.TripadvisorURL, BookingURL: h.BookingURL, AgodaURL: h.AgodaURL,
		BrandVoice: h.BrandVoice, KeySellingPoints: h.KeySellingPoints,
		DefaultLanguage: h.DefaultLanguage, SignOffName: h.SignOffName,
		GoogleReviewURL: h.GoogleReviewURL, DirectBookingURL: h.DirectBookingURL,
		ReplyToEmail: h.ReplyToEmail, WhatsappNumber: h.WhatsappNumber, PhoneNumber: h.PhoneNumber,
	}
}

type reviewDTO struct {
	ID             string            `json:"id"`
	HotelID        string            `json:"hotelId"`
	Platform       string            `json:"platform"`
	ReviewerName   string            `json:"reviewerName"`
	Rating         float64           `json:"rating"`
	Text           string            `json:"text"`
	ReviewDate     time.Time         `json:"reviewDate"`
	Language       *string           `json:"language,omitempty"`
	TranslatedText *string           `json:"translatedText,omitempty"`
	Sentiment      *domain.Sentiment `json:"sentiment,omitempty"`
	Topics         []string          `json:"topics,omitempty"`
	ResponseText   *string           `json:"responseText,omitempty"`
	ResponseDate   *time.Time        `json:"responseDate,omitempty"`
	Status         string            `json:"status"`
	Flagged        bool              `json:"flagged"`
}

func toReviewDTO(rv domain.Review) reviewDTO {
	return reviewDTO{
		ID: rv.ID, HotelID: rv.HotelID, Platform: string(rv.Platform),
		ReviewerName: rv.ReviewerName, Rating: rv.Rating, Text: rv.Text, ReviewDate: rv.ReviewDate,
		Language: rv.Language, TranslatedText: rv.TranslatedText,
		Sentiment: rv.Sentiment, Topics: rv.Topics,
		ResponseText: rv.ResponseText, ResponseDate: rv.ResponseDate,
		Status: string(rv.Status), Flagged: rv.Flagged,
	}
}

// ---- hotel / review handlers ----

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Q.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, toHotelDTO(resp))
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.DeleteHotel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	hotelID := chi.URLParam(r, "id")
	// newest first; aligns with the (hotel_id, review_date) index
	out, err := h.Q.ListReviews(r.Context(), hotelID, domain.ReviewQuery{Limit: limit})
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]reviewDTO, 0, len(out))
	for _, rv := range out {
		dtos = append(dtos, toReviewDTO(rv))
	}
	writeCacheable(w, r, map[string]any{"items": dtos})
}

func (h *Handlers) addReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Platform     string  `json:"platform"`
		ReviewerName string  `json:"reviewerName"`
		Rating       float64 `json:"rating"`
		Text         string  `json:"text"`
		ReviewDate   string  `json:"reviewDate"` // RFC 3339 or YYYY-MM-DD; empty means now
	}
	if !decode(w, r, &body) {
		return
	}

	var reviewDate time.Time
	if body.ReviewDate != "" {
		t, err := parseDate(body.ReviewDate)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Request", "reviewDate must be RFC 3339 or YYYY-MM-DD")
			return
		}
		reviewDate = t
	}

	rv, err := h.Reviews.AddReview(r.Context(), chi.URLParam(r, "id"), app.NewReview{
		Platform:     body.Platform,
		ReviewerName: body.ReviewerName,
		Rating:       body.Rating,
		Text:         body.Text,
		ReviewDate:   reviewDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewDTO(rv))
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (h *Handlers) respond(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ResponseText string `json:"responseText"`
	}
	if !decode(w, r, &body) {
		return
	}
	if err := h.Reviews.Respond(r.Context(), chi.URLParam(r, "id"), body.ResponseText); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handlers) analytics(w http.ResponseWriter, r *http.Request) {
	days := 30
	if ds := r.URL.Query().Get("days"); ds != "" {
		switch ds {
		case "7", "30", "90":
			days, _ = strconv.Atoi(ds)
		case "all":
			days = 0
		default:
			writeProblem(w, http.StatusBadRequest, "Invalid days", "days must be 7, 30, 90 or all")
			return
		}
	}
	fill := r.URL.Query().Get("placeholders") == "1"

	sum, err := h.Q.Analytics(r.Context(), chi.URLParam(r, "id"), days, fill)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, sum)
}

func (h *Handlers) overallRating(w http.ResponseWriter, r *http.Request) {
	rating, count, err := h.Q.OverallRating(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rating":      rating,
		"reviewCount": count,
	})
}
