package app_test

import (
	"context"
	"errors"
	"testing"

	"hotelia/internal/app"
	"hotelia/internal/domain"
)

func TestEnrichReview(t *testing.T) {
	repo := newFakeRepo()
	ai := &fakeAI{
		sentiment: domain.SentimentResult{Sentiment: domain.SentimentNegative, Topics: []string{"noise"}, Language: "ja"},
		translate: "Too noisy at night",
	}
	svc := app.NewEnrichmentService(repo, ai)

	rv := domain.Review{ID: "r1", Text: "夜がうるさい", Rating: 2}
	if err := svc.EnrichReview(context.Background(), rv); err != nil {
		t.Fatalf("err: %v", err)
	}

	e, ok := repo.enrichments["r1"]
	if !ok {
		t.Fatalf("enrichment not persisted")
	}
	if e.Sentiment != domain.SentimentNegative || e.Language != "ja" {
		t.Fatalf("unexpected enrichment: %+v", e)
	}
	if e.TranslatedText == nil || *e.TranslatedText != "Too noisy at night" {
		t.Fatalf("translation missing: %+v", e)
	}
}

func TestEnrichReview_KeepsExistingTranslation(t *testing.T) {
	repo := newFakeRepo()
	ai := &fakeAI{sentiment: domain.SentimentResult{Sentiment: domain.SentimentNeutral, Language: "th"}}
	svc := app.NewEnrichmentService(repo, ai)

	rv := domain.Review{ID: "r1", Text: "โอเค", TranslatedText: pstr("It was okay")}
	if err := svc.EnrichReview(context.Background(), rv); err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(ai.translated) != 0 {
		t.Fatalf("re-translated a review that already has a translation")
	}
}

func TestEnrichReview_ProviderFailureLeavesRow(t *testing.T) {
	repo := newFakeRepo()
	ai := &fakeAI{analyzeErr: errBoom}
	svc := app.NewEnrichmentService(repo, ai)

	if err := svc.EnrichReview(context.Background(), domain.Review{ID: "r1", Text: "hi"}); !errors.Is(err, errBoom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if len(repo.enrichments) != 0 {
		t.Fatalf("row updated despite failure")
	}
}

func TestEnrichReview_NotConfigured(t *testing.T) {
	svc := app.NewEnrichmentService(newFakeRepo(), nil)
	if err := svc.EnrichReview(context.Background(), domain.Review{ID: "r1"}); !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestListPending(t *testing.T) {
	repo := newFakeRepo()
	sent := domain.SentimentPositive
	repo.reviews = []domain.Review{
		{ID: "r1"},
		{ID: "r2", Sentiment: &sent},
		{ID: "r3"},
	}
	svc := app.NewEnrichmentService(repo, &fakeAI{})

	got, err := svc.ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(got))
	}
}
