package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotelia/internal/domain"
)

// NewReview is the manual-add input. ReviewDate zero means "now".
type NewReview struct {
	Platform     string
	ReviewerName string
	Rating       float64
	Text         string
	ReviewDate   time.Time
}

type ReviewService struct {
	repo    domain.Repository
	ai      domain.AIClient // nil when ANTHROPIC_API_KEY is unset
	queries *QueryService
}

func NewReviewService(r domain.Repository, ai domain.AIClient, q *QueryService) *ReviewService {
	return &ReviewService{repo: r, ai: ai, queries: q}
}

func parsePlatform(s string) (domain.Platform, error) {
	switch domain.Platform(s) {
	case domain.PlatformGoogle, domain.PlatformTripadvisor, domain.PlatformBooking,
		domain.PlatformAgoda, domain.PlatformOther:
		return domain.Platform(s), nil
	case "":
		return domain.PlatformOther, nil
	}
	return "", domain.Invalidf("unknown platform %q", s)
}

// AddReview validates, enriches when the AI client is configured, and stores
// the review as pending. Enrichment failures are not fatal: the review lands
// unenriched and the batch enricher picks it up later.
func (s *ReviewService) AddReview(ctx context.Context, hotelID string, in NewReview) (domain.Review, error) {
	platform, err := parsePlatform(in.Platform)
	if err != nil {
		return domain.Review{}, err
	}
	if strings.TrimSpace(in.ReviewerName) == "" {
		return domain.Review{}, domain.Invalidf("reviewer name is required")
	}
	if strings.TrimSpace(in.Text) == "" {
		return domain.Review{}, domain.Invalidf("review text is required")
	}
	max := 5.0
	if platform.TenPointScale() {
		max = 10.0
	}
	if in.Rating < 0 || in.Rating > max {
		return domain.Review{}, domain.Invalidf("rating %g out of range for %s (0-%g)", in.Rating, platform, max)
	}

	// review must attach to an existing hotel
	if _, err := s.repo.GetHotel(ctx, hotelID); err != nil {
		return domain.Review{}, err
	}

	rv := domain.Review{
		HotelID:      hotelID,
		Platform:     platform,
		ReviewerName: strings.TrimSpace(in.ReviewerName),
		Rating:       in.Rating,
		Text:         in.Text,
		ReviewDate:   in.ReviewDate,
		Status:       domain.StatusPending,
	}

	if s.ai != nil {
		res, aerr := s.ai.AnalyzeSentiment(ctx, rv.Text, rv.Rating)
		if aerr != nil {
			log.Warn().Err(aerr).Str("hotel_id", hotelID).Msg("sentiment analysis failed; storing unenriched")
		} else {
			sent := res.Sentiment
			rv.Sentiment = &sent
			rv.Topics = res.Topics
			if res.Language != "" {
				lang := res.Language
				rv.Language = &lang
			}
			if res.Language != "" && res.Language != "en" {
				if translated, terr := s.ai.Translate(ctx, rv.Text, res.Language, "en"); terr != nil {
					log.Warn().Err(terr).Str("hotel_id", hotelID).Msg("translation failed; storing original only")
				} else {
					rv.TranslatedText = &translated
				}
			}
		}
	}

	id, err := s.repo.InsertReview(ctx, rv)
	if err != nil {
		return domain.Review{}, err
	}
	rv.ID = id

	if s.queries != nil {
		s.queries.invalidateReviews(ctx, hotelID)
	}
	return rv, nil
}

// Respond records a response on the review. Last write wins.
func (s *ReviewService) Respond(ctx context.Context, reviewID, responseText string) error {
	if strings.TrimSpace(responseText) == "" {
		return domain.Invalidf("response text is required")
	}
	hotelID, err := s.repo.SetReviewResponse(ctx, reviewID, responseText)
	if err != nil {
		return err
	}
	if s.queries != nil {
		s.queries.invalidateReviews(ctx, hotelID)
	}
	return nil
}

// DeleteHotel removes the hotel and everything attached to it.
func (s *ReviewService) DeleteHotel(ctx context.Context, hotelID string) error {
	if err := s.repo.DeleteHotel(ctx, hotelID); err != nil {
		return err
	}
	if s.queries != nil {
		s.queries.invalidateHotel(ctx, hotelID)
		s.queries.invalidateReviews(ctx, hotelID)
	}
	return nil
}
