// Package postgres implements domain.Repository on database/sql with the
// pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hotelia/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valTime(p *time.Time) any {
	if p == nil || p.IsZero() {
		return nil
	}
	return *p
}

func valSentiment(p *domain.Sentiment) any {
	if p == nil {
		return nil
	}
	return string(*p)
}

// valTopics marshals topics to JSONB text; empty stays NULL so the
// enrichment scan can tell "never analyzed" from "analyzed, no topics".
func valTopics(ts []string) any {
	if ts == nil {
		return nil
	}
	b, _ := json.Marshal(ts)
	return string(b)
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- Hotels ----

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) (string, error) {
	if h.DefaultLanguage == "" {
		h.DefaultLanguage = "en"
	}
	ksp, _ := json.Marshal(h.KeySellingPoints)
	if h.KeySellingPoints == nil {
		ksp = []byte("[]")
	}
	var id string
	err := r.db.QueryRowContext(ctx, createHotelSQL,
		h.Name,
		valStr(h.City),
		valStr(h.Country),
		valStr(h.Website),
		valStr(h.GoogleURL),
		valStr(h.TripadvisorURL),
		valStr(h.BookingURL),
		valStr(h.AgodaURL),
		valStr(h.BrandVoice),
		string(ksp),
		h.DefaultLanguage,
		valStr(h.SignOffName),
		valStr(h.GoogleReviewURL),
		valStr(h.DirectBookingURL),
		valStr(h.ReplyToEmail),
		valStr(h.WhatsappNumber),
		valStr(h.PhoneNumber),
	).Scan(&id)
	return id, err
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, getHotelSQL, id)

	var h domain.Hotel
	var city, country, website sql.NullString
	var gURL, taURL, bURL, aURL sql.NullString
	var brandVoice, signOff sql.NullString
	var kspJSON []byte
	var reviewURL, bookURL, replyTo, wa, phone sql.NullString

	err := row.Scan(
		&h.ID, &h.Name, &city, &country, &website,
		&gURL, &taURL, &bURL, &aURL,
		&brandVoice, &kspJSON, &h.DefaultLanguage, &signOff,
		&reviewURL, &bookURL, &replyTo, &wa, &phone,
	)
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Hotel{}, err
	}

	h.City = strPtr(city)
	h.Country = strPtr(country)
	h.Website = strPtr(website)
	h.GoogleURL = strPtr(gURL)
	h.TripadvisorURL = strPtr(taURL)
	h.BookingURL = strPtr(bURL)
	h.AgodaURL = strPtr(aURL)
	h.BrandVoice = strPtr(brandVoice)
	h.SignOffName = strPtr(signOff)
	h.GoogleReviewURL = strPtr(reviewURL)
	h.DirectBookingURL = strPtr(bookURL)
	h.ReplyToEmail = strPtr(replyTo)
	h.WhatsappNumber = strPtr(wa)
	h.PhoneNumber = strPtr(phone)
	_ = json.Unmarshal(kspJSON, &h.KeySellingPoints)
	return h, nil
}

func (r *Repo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	if h.DefaultLanguage == "" {
		h.DefaultLanguage = "en"
	}
	ksp, _ := json.Marshal(h.KeySellingPoints)
	if h.KeySellingPoints == nil {
		ksp = []byte("[]")
	}
	res, err := r.db.ExecContext(ctx, updateHotelSQL,
		h.ID,
		h.Name,
		valStr(h.City),
		valStr(h.Country),
		valStr(h.Website),
		valStr(h.GoogleURL),
		valStr(h.TripadvisorURL),
		valStr(h.BookingURL),
		valStr(h.AgodaURL),
		valStr(h.BrandVoice),
		string(ksp),
		h.DefaultLanguage,
		valStr(h.SignOffName),
		valStr(h.GoogleReviewURL),
		valStr(h.DirectBookingURL),
		valStr(h.ReplyToEmail),
		valStr(h.WhatsappNumber),
		valStr(h.PhoneNumber),
	)
	if err != nil {
		return err
	}
	return notFoundOnZero(res)
}

func (r *Repo) DeleteHotel(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	return notFoundOnZero(res)
}

func notFoundOnZero(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- Reviews ----

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (string, error) {
	if rv.Platform == "" {
		rv.Platform = domain.PlatformOther
	}
	if rv.Status == "" {
		rv.Status = domain.StatusPending
	}
	var reviewDate any
	if !rv.ReviewDate.IsZero() {
		reviewDate = rv.ReviewDate
	}
	var id string
	err := r.db.QueryRowContext(ctx, insertReviewSQL,
		rv.HotelID,
		string(rv.Platform),
		rv.ReviewerName,
		rv.Rating,
		rv.Text,
		reviewDate,
		valStr(rv.Language),
		valStr(rv.TranslatedText),
		valSentiment(rv.Sentiment),
		valTopics(rv.Topics),
		string(rv.Status),
		rv.Flagged,
	).Scan(&id)
	return id, err
}

func (r *Repo) ListReviews(ctx context.Context, hotelID string, q domain.ReviewQuery) ([]domain.Review, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	var b strings.Builder
	b.WriteString("SELECT" + reviewColumns + "\nFROM reviews\nWHERE hotel_id = $1")
	args := []any{hotelID}
	if q.Since != nil {
		args = append(args, *q.Since)
		fmt.Fprintf(&b, " AND review_date >= $%d", len(args))
	}
	switch q.Sort {
	case "rating_desc":
		b.WriteString("\nORDER BY rating DESC, review_date DESC")
	case "rating_asc":
		b.WriteString("\nORDER BY rating ASC, review_date DESC")
	case "date_asc":
		b.WriteString("\nORDER BY review_date ASC, id")
	default:
		b.WriteString("\nORDER BY review_date DESC, id")
	}
	args = append(args, q.Limit)
	fmt.Fprintf(&b, "\nLIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanReview(rows *sql.Rows) (domain.Review, error) {
	var rv domain.Review
	var platform, status string
	var lang, translated, sentiment, responseText sql.NullString
	var topicsJSON []byte
	var responseDate sql.NullTime

	err := rows.Scan(
		&rv.ID, &rv.HotelID, &platform, &rv.ReviewerName, &rv.Rating, &rv.Text, &rv.ReviewDate,
		&lang, &translated, &sentiment, &topicsJSON, &responseText, &responseDate,
		&status, &rv.Flagged,
	)
	if err != nil {
		return domain.Review{}, err
	}

	rv.Platform = domain.Platform(platform)
	rv.Status = domain.ReviewStatus(status)
	rv.Language = strPtr(lang)
	rv.TranslatedText = strPtr(translated)
	rv.ResponseText = strPtr(responseText)
	if sentiment.Valid {
		s := domain.Sentiment(sentiment.String)
		rv.Sentiment = &s
	}
	if responseDate.Valid {
		t := responseDate.Time
		rv.ResponseDate = &t
	}
	if len(topicsJSON) > 0 {
		_ = json.Unmarshal(topicsJSON, &rv.Topics)
	}
	return rv, nil
}

func (r *Repo) SetReviewResponse(ctx context.Context, reviewID, responseText string) (string, error) {
	var hotelID string
	err := r.db.QueryRowContext(ctx, setReviewResponseSQL, reviewID, responseText).Scan(&hotelID)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	return hotelID, err
}

func (r *Repo) SetReviewEnrichment(ctx context.Context, reviewID string, e domain.Enrichment) error {
	var lang any
	if e.Language != "" {
		lang = e.Language
	}
	res, err := r.db.ExecContext(ctx, setReviewEnrichmentSQL,
		reviewID,
		string(e.Sentiment),
		valTopics(e.Topics),
		lang,
		valStr(e.TranslatedText),
	)
	if err != nil {
		return err
	}
	return notFoundOnZero(res)
}

func (r *Repo) ListUnenriched(ctx context.Context, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, listUnenrichedSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// ---- Guest emails ----

func (r *Repo) InsertGuestEmail(ctx context.Context, e domain.GuestEmail) (string, error) {
	if e.Status == "" {
		e.Status = domain.EmailDraft
	}
	var id string
	err := r.db.QueryRowContext(ctx, insertGuestEmailSQL,
		e.HotelID,
		e.GuestName,
		e.GuestEmail,
		e.TemplateType,
		valStr(e.Subject),
		string(e.Status),
		valStr(e.ProviderID),
		valTime(e.SentAt),
	).Scan(&id)
	return id, err
}

func (r *Repo) UpdateGuestEmailStatus(ctx context.Context, id string, status domain.EmailStatus) error {
	res, err := r.db.ExecContext(ctx, updateGuestEmailStatusSQL, id, string(status))
	if err != nil {
		return err
	}
	return notFoundOnZero(res)
}

func (r *Repo) ListGuestEmails(ctx context.Context, hotelID string, limit int) ([]domain.GuestEmail, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listGuestEmailsSQL, hotelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GuestEmail
	for rows.Next() {
		var e domain.GuestEmail
		var subject, providerID sql.NullString
		var status string
		var sentAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.HotelID, &e.GuestName, &e.GuestEmail, &e.TemplateType,
			&subject, &status, &providerID, &sentAt); err != nil {
			return nil, err
		}
		e.Subject = strPtr(subject)
		e.Status = domain.EmailStatus(status)
		e.ProviderID = strPtr(providerID)
		if sentAt.Valid {
			t := sentAt.Time
			e.SentAt = &t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ---- Rating snapshots ----

func (r *Repo) InsertRatingSnapshot(ctx context.Context, s domain.RatingSnapshot) error {
	var recordedAt any
	if !s.RecordedAt.IsZero() {
		recordedAt = s.RecordedAt
	}
	_, err := r.db.ExecContext(ctx, insertRatingSnapshotSQL,
		s.HotelID,
		string(s.Platform),
		s.Rating,
		s.ReviewCount,
		recordedAt,
	)
	return err
}

func (r *Repo) LatestRatingSnapshots(ctx context.Context, hotelID string) ([]domain.RatingSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, latestRatingSnapshotsSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RatingSnapshot
	for rows.Next() {
		var s domain.RatingSnapshot
		var platform string
		if err := rows.Scan(&s.HotelID, &platform, &s.Rating, &s.ReviewCount, &s.RecordedAt); err != nil {
			return nil, err
		}
		s.Platform = domain.Platform(platform)
		out = append(out, s)
	}
	return out, rows.Err()
}
