package domain

import (
	"context"
	"time"
)

type Repository interface {
	// Hotels
	CreateHotel(ctx context.Context, h Hotel) (string, error)
	GetHotel(ctx context.Context, id string) (Hotel, error)
	UpdateHotel(ctx context.Context, h Hotel) error
	DeleteHotel(ctx context.Context, id string) error

	// Reviews
	InsertReview(ctx context.Context, rv Review) (string, error)
	ListReviews(ctx context.Context, hotelID string, q ReviewQuery) ([]Review, error)
	SetReviewResponse(ctx context.Context, reviewID, responseText string) (hotelID string, err error)
	SetReviewEnrichment(ctx context.Context, reviewID string, e Enrichment) error
	ListUnenriched(ctx context.Context, limit int) ([]Review, error)

	// Guest emails
	InsertGuestEmail(ctx context.Context, e GuestEmail) (string, error)
	UpdateGuestEmailStatus(ctx context.Context, id string, status EmailStatus) error
	ListGuestEmails(ctx context.Context, hotelID string, limit int) ([]GuestEmail, error)

	// Rating snapshots (append-only, written by the ingestion side)
	InsertRatingSnapshot(ctx context.Context, s RatingSnapshot) error
	LatestRatingSnapshots(ctx context.Context, hotelID string) ([]RatingSnapshot, error)
}

type ReviewQuery struct {
	Limit int
	Since *time.Time
	Sort  string
}

// Enrichment is the AI-derived slice of a review.
type Enrichment struct {
	Sentiment      Sentiment
	Topics         []string
	Language       string
	TranslatedText *string
}

type SentimentResult struct {
	Sentiment Sentiment
	Topics    []string
	Language  string // ISO 639-1
}

type ReplyRequest struct {
	ReviewText    string
	ReviewerName  string
	Rating        float64
	Platform      Platform
	HotelName     string
	BrandVoice    string
	ReplyLanguage string
	Sentiment     *Sentiment
	Topics        []string
}

// AIClient is the language-model boundary: one call per operation, no
// retries, no streaming.
type AIClient interface {
	AnalyzeSentiment(ctx context.Context, text string, rating float64) (SentimentResult, error)
	GenerateReply(ctx context.Context, req ReplyRequest) (string, error)
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

type EmailSender interface {
	Send(ctx context.Context, m OutboundEmail) (messageID string, err error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
