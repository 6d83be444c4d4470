package domain

import "time"

type Platform string

const (
	PlatformGoogle      Platform = "google"
	PlatformTripadvisor Platform = "tripadvisor"
	PlatformBooking     Platform = "booking"
	PlatformAgoda       Platform = "agoda"
	PlatformOther       Platform = "other"
)

// TenPointScale reports whether the platform rates on a 0-10 scale.
// Consumers must halve those ratings before cross-platform aggregation.
func (p Platform) TenPointScale() bool {
	return p == PlatformBooking || p == PlatformAgoda
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

type ReviewStatus string

const (
	StatusPending   ReviewStatus = "pending"
	StatusResponded ReviewStatus = "responded"
	StatusIgnored   ReviewStatus = "ignored"
)

type Review struct {
	ID             string
	HotelID        string
	Platform       Platform
	ReviewerName   string
	Rating         float64 // platform-native scale
	Text           string
	ReviewDate     time.Time
	Language       *string
	TranslatedText *string
	Sentiment      *Sentiment
	Topics         []string // deduplicated lowercase tokens
	ResponseText   *string
	ResponseDate   *time.Time
	Status         ReviewStatus
	Flagged        bool
}
