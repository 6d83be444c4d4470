package app

import (
	"context"
	"fmt"
	"time"

	"hotelia/internal/analytics"
	"hotelia/internal/domain"
)

// analyticsScanLimit bounds how many reviews one aggregation reads.
const analyticsScanLimit = 5000

func hotelKey(id string) string { return "hotel:" + id }

func reviewsKey(id string, q domain.ReviewQuery) string {
	since := "all"
	if q.Since != nil {
		since = fmt.Sprintf("%d", q.Since.Unix())
	}
	return fmt.Sprintf("reviews:%s:%d:%s:%s", id, q.Limit, q.Sort, since)
}

func analyticsKey(id string, days int, fill bool) string {
	return fmt.Sprintf("analytics:%s:%d:%t", id, days, fill)
}

type QueryService struct {
	repo     domain.Repository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.Repository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, s.cacheTTL)
	}
	return h, nil
}

func (s *QueryService) ListReviews(ctx context.Context, hotelID string, q domain.ReviewQuery) ([]domain.Review, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	key := reviewsKey(hotelID, q)
	if s.cache != nil {
		var cached []domain.Review
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	rs, err := s.repo.ListReviews(ctx, hotelID, q)
	if err != nil {
		return nil, err
	}

	// copy to avoid aliasing the repo's backing array with the cached value
	out := make([]domain.Review, len(rs))
	copy(out, rs)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, s.cacheTTL)
	}
	return out, nil
}

// Analytics aggregates a hotel's reviews over the trailing window.
// days <= 0 means all time.
func (s *QueryService) Analytics(ctx context.Context, hotelID string, days int, fillMissing bool) (analytics.Summary, error) {
	key := analyticsKey(hotelID, days, fillMissing)
	if s.cache != nil {
		var cached analytics.Summary
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	// existence check so a missing hotel reads as 404, not an empty summary
	if _, err := s.GetHotel(ctx, hotelID); err != nil {
		return analytics.Summary{}, err
	}

	q := domain.ReviewQuery{Limit: analyticsScanLimit, Sort: "date_asc"}
	if days > 0 {
		cutoff := time.Now().AddDate(0, 0, -days)
		q.Since = &cutoff
	}
	rs, err := s.repo.ListReviews(ctx, hotelID, q)
	if err != nil {
		return analytics.Summary{}, err
	}

	sum := analytics.Summarize(rs, analytics.Options{FillMissing: fillMissing})
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, sum, s.cacheTTL)
	}
	return sum, nil
}

// OverallRating is the review-count-weighted mean of the latest snapshot per
// platform, on each platform's native scale as stored.
func (s *QueryService) OverallRating(ctx context.Context, hotelID string) (float64, int, error) {
	snaps, err := s.repo.LatestRatingSnapshots(ctx, hotelID)
	if err != nil {
		return 0, 0, err
	}
	var weighted float64
	var total int
	for _, sn := range snaps {
		if sn.ReviewCount <= 0 {
			continue
		}
		weighted += sn.Rating * float64(sn.ReviewCount)
		total += sn.ReviewCount
	}
	if total == 0 {
		return 0, 0, nil
	}
	return weighted / float64(total), total, nil
}

// invalidateHotel drops the cached hotel row.
func (s *QueryService) invalidateHotel(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, hotelKey(id))
}

// invalidateReviews drops the common review-list and analytics variants.
// Keyed caches can't enumerate, so clear the shapes the handlers produce.
func (s *QueryService) invalidateReviews(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	for _, lim := range []int{50, 100, 200} {
		_ = s.cache.Del(ctx, reviewsKey(id, domain.ReviewQuery{Limit: lim}))
	}
	for _, days := range []int{0, 7, 30, 90} {
		_ = s.cache.Del(ctx, analyticsKey(id, days, false))
		_ = s.cache.Del(ctx, analyticsKey(id, days, true))
	}
}
