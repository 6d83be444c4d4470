package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotelia/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	hotels  map[string]domain.Hotel
	reviews []domain.Review
	emails  []domain.GuestEmail
	snaps   []domain.RatingSnapshot

	lastQuery   domain.ReviewQuery
	enrichments map[string]domain.Enrichment
	insertErr   error
	nextID      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{hotels: map[string]domain.Hotel{}, enrichments: map[string]domain.Enrichment{}}
}

func (f *fakeRepo) id() string {
	f.nextID++
	return string(rune('a' + f.nextID - 1))
}

func (f *fakeRepo) CreateHotel(ctx context.Context, h domain.Hotel) (string, error) {
	h.ID = f.id()
	f.hotels[h.ID] = h
	return h.ID, nil
}

func (f *fakeRepo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeRepo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	if _, ok := f.hotels[h.ID]; !ok {
		return domain.ErrNotFound
	}
	f.hotels[h.ID] = h
	return nil
}

func (f *fakeRepo) DeleteHotel(ctx context.Context, id string) error {
	if _, ok := f.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.hotels, id)
	return nil
}

func (f *fakeRepo) InsertReview(ctx context.Context, rv domain.Review) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	rv.ID = f.id()
	f.reviews = append(f.reviews, rv)
	return rv.ID, nil
}

func (f *fakeRepo) ListReviews(ctx context.Context, hotelID string, q domain.ReviewQuery) ([]domain.Review, error) {
	f.lastQuery = q
	var out []domain.Review
	for _, rv := range f.reviews {
		if rv.HotelID == hotelID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (f *fakeRepo) SetReviewResponse(ctx context.Context, reviewID, text string) (string, error) {
	for i, rv := range f.reviews {
		if rv.ID == reviewID {
			now := time.Now()
			f.reviews[i].ResponseText = &text
			f.reviews[i].ResponseDate = &now
			f.reviews[i].Status = domain.StatusResponded
			return rv.HotelID, nil
		}
	}
	return "", domain.ErrNotFound
}

func (f *fakeRepo) SetReviewEnrichment(ctx context.Context, reviewID string, e domain.Enrichment) error {
	f.enrichments[reviewID] = e
	return nil
}

func (f *fakeRepo) ListUnenriched(ctx context.Context, limit int) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range f.reviews {
		if rv.Sentiment == nil {
			out = append(out, rv)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) InsertGuestEmail(ctx context.Context, e domain.GuestEmail) (string, error) {
	e.ID = f.id()
	f.emails = append(f.emails, e)
	return e.ID, nil
}

func (f *fakeRepo) UpdateGuestEmailStatus(ctx context.Context, id string, status domain.EmailStatus) error {
	for i, e := range f.emails {
		if e.ID == id {
			f.emails[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRepo) ListGuestEmails(ctx context.Context, hotelID string, limit int) ([]domain.GuestEmail, error) {
	var out []domain.GuestEmail
	for _, e := range f.emails {
		if e.HotelID == hotelID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) InsertRatingSnapshot(ctx context.Context, s domain.RatingSnapshot) error {
	f.snaps = append(f.snaps, s)
	return nil
}

func (f *fakeRepo) LatestRatingSnapshots(ctx context.Context, hotelID string) ([]domain.RatingSnapshot, error) {
	return f.snaps, nil
}

// fakeCache round-trips through JSON so cached values never alias live ones.
type fakeCache struct {
	store map[string][]byte
	sets  int
	dels  []string
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type fakeAI struct {
	sentiment domain.SentimentResult
	reply     string
	translate string

	analyzeErr   error
	translateErr error

	analyzed   []string
	translated []string
}

func (a *fakeAI) AnalyzeSentiment(ctx context.Context, text string, rating float64) (domain.SentimentResult, error) {
	a.analyzed = append(a.analyzed, text)
	if a.analyzeErr != nil {
		return domain.SentimentResult{}, a.analyzeErr
	}
	return a.sentiment, nil
}

func (a *fakeAI) GenerateReply(ctx context.Context, req domain.ReplyRequest) (string, error) {
	return a.reply, nil
}

func (a *fakeAI) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	a.translated = append(a.translated, text)
	if a.translateErr != nil {
		return "", a.translateErr
	}
	return a.translate, nil
}

type fakeSender struct {
	sent    []domain.OutboundEmail
	sendErr error
}

func (s *fakeSender) Send(ctx context.Context, m domain.OutboundEmail) (string, error) {
	if s.sendErr != nil {
		return "", s.sendErr
	}
	s.sent = append(s.sent, m)
	return "msg-1", nil
}

var errBoom = errors.New("boom")

func pstr(s string) *string { return &s }
