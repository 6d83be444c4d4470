// Package analytics reduces a hotel's reviews into chart-ready summaries.
// Pure computation: deterministic for a given input, no external calls.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"hotelia/internal/domain"
)

// Options controls the aggregation. FillMissing enables the placeholder mode:
// reviews with neither a sentiment label nor topics get a deterministic stand-in
// derived from their rating only. It exists so dashboards are not empty before
// AI enrichment has run; it is never the default, and Summary.Placeholders
// reports how many rows were filled so the UI can label them.
type Options struct {
	FillMissing bool
}

type Summary struct {
	TotalReviews   int     `json:"totalReviews"`
	AvgRating      float64 `json:"avgRating"`
	ResponseRate   float64 `json:"responseRate"`   // % with status responded
	SentimentScore float64 `json:"sentimentScore"` // % with sentiment positive

	RatingDistribution []RatingBucket   `json:"ratingDistribution"`
	Sentiments         []SentimentSlice `json:"sentiments"`
	Topics             []Topic          `json:"topics"`
	Platforms          []PlatformStats  `json:"platforms"`
	Trend              []TrendPoint     `json:"trend"`

	Placeholders int `json:"placeholders,omitempty"`
}

type RatingBucket struct {
	Name  string `json:"name"` // "5 ★" .. "1 ★"
	Count int    `json:"count"`
}

type SentimentSlice struct {
	Name  string `json:"name"` // Positive | Neutral | Negative
	Value int    `json:"value"`
}

type Topic struct {
	Name      string           `json:"name"` // capitalized display name
	Count     int              `json:"count"`
	Sentiment domain.Sentiment `json:"sentiment"`
	Score     int              `json:"score"` // signed mention sum: +1 positive, 0 neutral, -1 negative
}

type PlatformStats struct {
	Name   string `json:"name"`
	Rating string `json:"rating"` // native-scale mean, one decimal
	Count  int    `json:"count"`
}

type TrendPoint struct {
	Date      string `json:"date"`      // "Jan 2"
	Sentiment string `json:"sentiment"` // mean signed sentiment, two decimals
	Volume    int    `json:"volume"`
}

// Placeholder topic sets, fixed so repeated runs agree.
var (
	placeholderPositive = []string{"staff", "location", "cleanliness"}
	placeholderNegative = []string{"noise", "cleanliness"}
	placeholderNeutral  = []string{"room size", "breakfast"}
)

// Summarize reduces reviews into the five summary views. An empty input
// yields a zero Summary, never an error.
func Summarize(reviews []domain.Review, opts Options) Summary {
	var s Summary
	if len(reviews) == 0 {
		return s
	}

	rows := make([]domain.Review, len(reviews))
	copy(rows, reviews)
	for i := range rows {
		rows[i].Rating = sanitizeRating(rows[i].Rating)
		if opts.FillMissing && rows[i].Sentiment == nil && len(rows[i].Topics) == 0 {
			fillPlaceholder(&rows[i])
			s.Placeholders++
		}
	}

	// Overview scalars.
	s.TotalReviews = len(rows)
	var ratingSum float64
	var responded, positive int
	for _, r := range rows {
		ratingSum += r.Rating
		if r.Status == domain.StatusResponded {
			responded++
		}
		if r.Sentiment != nil && *r.Sentiment == domain.SentimentPositive {
			positive++
		}
	}
	s.AvgRating = ratingSum / float64(len(rows))
	s.ResponseRate = float64(responded) / float64(len(rows)) * 100
	s.SentimentScore = float64(positive) / float64(len(rows)) * 100

	s.RatingDistribution = ratingDistribution(rows)
	s.Sentiments = sentimentDistribution(rows)
	s.Topics = topTopics(rows)
	s.Platforms = platformBreakdown(rows)
	s.Trend = trendSeries(rows)
	return s
}

// sanitizeRating keeps the reduction total: non-finite or out-of-range
// values count as 0 instead of poisoning the aggregate.
func sanitizeRating(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 || r > 10 {
		return 0
	}
	return r
}

func fillPlaceholder(r *domain.Review) {
	var sent domain.Sentiment
	switch {
	case r.Rating >= 4:
		sent = domain.SentimentPositive
		r.Topics = append([]string(nil), placeholderPositive...)
	case r.Rating <= 2:
		sent = domain.SentimentNegative
		r.Topics = append([]string(nil), placeholderNegative...)
	default:
		sent = domain.SentimentNeutral
		r.Topics = append([]string(nil), placeholderNeutral...)
	}
	r.Sentiment = &sent
}

// starBucket normalizes a rating onto the 1..5 star scale: 10-point
// platforms are halved first, then the value is rounded with halves going
// down (4.5 → 4) and clamped to [1,5].
func starBucket(r domain.Review) int {
	v := r.Rating
	if r.Platform.TenPointScale() {
		v /= 2
	}
	bin := int(math.Ceil(v - 0.5))
	if bin < 1 {
		bin = 1
	}
	if bin > 5 {
		bin = 5
	}
	return bin
}

func ratingDistribution(rows []domain.Review) []RatingBucket {
	var counts [6]int
	for _, r := range rows {
		counts[starBucket(r)]++
	}
	out := make([]RatingBucket, 0, 5)
	for star := 5; star >= 1; star-- {
		out = append(out, RatingBucket{Name: fmt.Sprintf("%d ★", star), Count: counts[star]})
	}
	return out
}

func sentimentValue(s *domain.Sentiment) int {
	if s == nil {
		return 0
	}
	switch *s {
	case domain.SentimentPositive:
		return 1
	case domain.SentimentNegative:
		return -1
	}
	return 0
}

// sentimentDistribution counts labels, treating missing as neutral.
// Zero-count buckets are omitted from the output.
func sentimentDistribution(rows []domain.Review) []SentimentSlice {
	var pos, neu, neg int
	for _, r := range rows {
		switch sentimentValue(r.Sentiment) {
		case 1:
			pos++
		case -1:
			neg++
		default:
			neu++
		}
	}
	var out []SentimentSlice
	for _, sl := range []SentimentSlice{
		{Name: "Positive", Value: pos},
		{Name: "Neutral", Value: neu},
		{Name: "Negative", Value: neg},
	} {
		if sl.Value > 0 {
			out = append(out, sl)
		}
	}
	return out
}

// topTopics ranks topics by mention count, keeping first-seen order among
// equal counts (stable sort), and returns the top 10.
func topTopics(rows []domain.Review) []Topic {
	type acc struct {
		count int
		sum   int
	}
	byName := map[string]*acc{}
	var order []string
	for _, r := range rows {
		val := sentimentValue(r.Sentiment)
		for _, topic := range r.Topics {
			a, ok := byName[topic]
			if !ok {
				a = &acc{}
				byName[topic] = a
				order = append(order, topic)
			}
			a.count++
			a.sum += val
		}
	}

	out := make([]Topic, 0, len(order))
	for _, name := range order {
		a := byName[name]
		sent := domain.SentimentNeutral
		if a.sum > 0 {
			sent = domain.SentimentPositive
		} else if a.sum < 0 {
			sent = domain.SentimentNegative
		}
		out = append(out, Topic{Name: capitalize(name), Count: a.count, Sentiment: sent, Score: a.sum})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

func platformBreakdown(rows []domain.Review) []PlatformStats {
	type acc struct {
		sum   float64
		count int
	}
	byPlatform := map[string]*acc{}
	var order []string
	for _, r := range rows {
		name := string(r.Platform)
		if name == "" {
			name = string(domain.PlatformOther)
		}
		a, ok := byPlatform[name]
		if !ok {
			a = &acc{}
			byPlatform[name] = a
			order = append(order, name)
		}
		a.sum += r.Rating
		a.count++
	}
	out := make([]PlatformStats, 0, len(order))
	for _, name := range order {
		a := byPlatform[name]
		out = append(out, PlatformStats{
			Name:   capitalize(name),
			Rating: fmt.Sprintf("%.1f", a.sum/float64(a.count)),
			Count:  a.count,
		})
	}
	return out
}

// trendSeries buckets reviews by calendar day of the review date, oldest
// first, with the mean signed sentiment per day.
func trendSeries(rows []domain.Review) []TrendPoint {
	sorted := make([]domain.Review, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ReviewDate.Before(sorted[j].ReviewDate) })

	type acc struct {
		count int
		sum   int
	}
	byDay := map[string]*acc{}
	var order []string
	for _, r := range sorted {
		day := r.ReviewDate.Format("Jan 2")
		a, ok := byDay[day]
		if !ok {
			a = &acc{}
			byDay[day] = a
			order = append(order, day)
		}
		a.count++
		a.sum += sentimentValue(r.Sentiment)
	}
	out := make([]TrendPoint, 0, len(order))
	for _, day := range order {
		a := byDay[day]
		out = append(out, TrendPoint{
			Date:      day,
			Sentiment: fmt.Sprintf("%.2f", float64(a.sum)/float64(a.count)),
			Volume:    a.count,
		})
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
