package app

import (
	"context"

	"hotelia/internal/domain"
)

// EnrichmentService backfills sentiment, topics, language, and an English
// translation on reviews that were stored without them (imports, or manual
// adds during an AI outage).
type EnrichmentService struct {
	repo domain.Repository
	ai   domain.AIClient
}

func NewEnrichmentService(r domain.Repository, ai domain.AIClient) *EnrichmentService {
	return &EnrichmentService{repo: r, ai: ai}
}

func (s *EnrichmentService) ListPending(ctx context.Context, limit int) ([]domain.Review, error) {
	return s.repo.ListUnenriched(ctx, limit)
}

// EnrichReview analyzes one review and persists the result. Unlike the
// synchronous add path this is all-or-nothing: a provider failure leaves the
// row untouched for the next run.
func (s *EnrichmentService) EnrichReview(ctx context.Context, rv domain.Review) error {
	if s.ai == nil {
		return domain.ErrNotConfigured
	}

	res, err := s.ai.AnalyzeSentiment(ctx, rv.Text, rv.Rating)
	if err != nil {
		return err
	}

	e := domain.Enrichment{
		Sentiment: res.Sentiment,
		Topics:    res.Topics,
		Language:  res.Language,
	}
	if res.Language != "" && res.Language != "en" && rv.TranslatedText == nil {
		translated, terr := s.ai.Translate(ctx, rv.Text, res.Language, "en")
		if terr != nil {
			return terr
		}
		e.TranslatedText = &translated
	}
	return s.repo.SetReviewEnrichment(ctx, rv.ID, e)
}
