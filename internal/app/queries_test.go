package app_test

import (
	"context"
	"testing"
	"time"

	"hotelia/internal/app"
	"hotelia/internal/domain"
)

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	repo := newFakeRepo()
	id, _ := repo.CreateHotel(context.Background(), domain.Hotel{Name: "Seaside Inn"})
	cache := newFakeCache()
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	h, err := q.GetHotel(context.Background(), id)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Name != "Seaside Inn" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// mutate repo to prove the second read is served from cache
	mut := repo.hotels[id]
	mut.Name = "SHOULD NOT SEE THIS"
	repo.hotels[id] = mut

	h2, err := q.GetHotel(context.Background(), id)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h2.Name != "Seaside Inn" {
		t.Fatalf("expected cached name, got %s", h2.Name)
	}
}

func TestGetHotel_NotFound(t *testing.T) {
	q := app.NewQueryService(newFakeRepo(), newFakeCache(), time.Minute)
	if _, err := q.GetHotel(context.Background(), "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReviews_Cache(t *testing.T) {
	repo := newFakeRepo()
	id, _ := repo.CreateHotel(context.Background(), domain.Hotel{Name: "Seaside Inn"})
	repo.reviews = append(repo.reviews, domain.Review{ID: "r1", HotelID: id, ReviewerName: "Ana", Rating: 5})
	cache := newFakeCache()
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	out, err := q.ListReviews(context.Background(), id, domain.ReviewQuery{Limit: 10})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ReviewerName != "Ana" {
		t.Fatalf("unexpected reviews: %+v", out)
	}

	repo.reviews[0].ReviewerName = "Changed"
	out2, _ := q.ListReviews(context.Background(), id, domain.ReviewQuery{Limit: 10})
	if out2[0].ReviewerName != "Ana" {
		t.Fatalf("expected cached author Ana, got %s", out2[0].ReviewerName)
	}
}

func TestAnalytics_MissingHotelIs404(t *testing.T) {
	q := app.NewQueryService(newFakeRepo(), newFakeCache(), time.Minute)
	if _, err := q.Analytics(context.Background(), "missing", 30, false); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalytics_WindowAndCache(t *testing.T) {
	repo := newFakeRepo()
	id, _ := repo.CreateHotel(context.Background(), domain.Hotel{Name: "Seaside Inn"})
	repo.reviews = append(repo.reviews,
		domain.Review{ID: "r1", HotelID: id, Platform: domain.PlatformGoogle, Rating: 5, ReviewDate: time.Now()},
		domain.Review{ID: "r2", HotelID: id, Platform: domain.PlatformGoogle, Rating: 3, ReviewDate: time.Now()},
	)
	cache := newFakeCache()
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	sum, err := q.Analytics(context.Background(), id, 30, false)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if sum.TotalReviews != 2 || sum.AvgRating != 4 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if repo.lastQuery.Since == nil {
		t.Fatalf("expected a cutoff for days=30")
	}
	if got := time.Since(*repo.lastQuery.Since); got < 29*24*time.Hour || got > 31*24*time.Hour {
		t.Fatalf("cutoff not ~30 days back: %v", got)
	}

	// all-time window has no cutoff
	if _, err := q.Analytics(context.Background(), id, 0, false); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.lastQuery.Since != nil {
		t.Fatalf("expected no cutoff for days=0")
	}

	// cached: removing the backing reviews must not change the cached window
	repo.reviews = nil
	sum2, _ := q.Analytics(context.Background(), id, 30, false)
	if sum2.TotalReviews != 2 {
		t.Fatalf("expected cached summary, got %+v", sum2)
	}
}

func TestOverallRating_Weighted(t *testing.T) {
	repo := newFakeRepo()
	repo.snaps = []domain.RatingSnapshot{
		{Platform: domain.PlatformGoogle, Rating: 4.0, ReviewCount: 100},
		{Platform: domain.PlatformTripadvisor, Rating: 5.0, ReviewCount: 100},
		{Platform: domain.PlatformOther, Rating: 1.0, ReviewCount: 0}, // ignored
	}
	q := app.NewQueryService(repo, nil, time.Minute)

	rating, count, err := q.OverallRating(context.Background(), "h1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rating != 4.5 || count != 200 {
		t.Fatalf("got rating=%v count=%d, want 4.5/200", rating, count)
	}
}

func TestOverallRating_NoSnapshots(t *testing.T) {
	q := app.NewQueryService(newFakeRepo(), nil, time.Minute)
	rating, count, err := q.OverallRating(context.Background(), "h1")
	if err != nil || rating != 0 || count != 0 {
		t.Fatalf("expected zeros, got %v/%d/%v", rating, count, err)
	}
}
