package app

import "sync"

// DefaultReplyLimit caps AI reply generations per review.
const DefaultReplyLimit = 3

// ReplyQuota counts reply generations per key (review id). In-memory and
// per-process: the cap is a cost guard, not an entitlement ledger.
type ReplyQuota struct {
	mu     sync.Mutex
	counts map[string]int
	limit  int
}

func NewReplyQuota(limit int) *ReplyQuota {
	if limit <= 0 {
		limit = DefaultReplyLimit
	}
	return &ReplyQuota{counts: map[string]int{}, limit: limit}
}

// Allow consumes one generation for key, reporting whether it was within the
// cap. An empty key is never counted (ad-hoc generations are unlimited).
func (q *ReplyQuota) Allow(key string) bool {
	if key == "" {
		return true
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.counts[key] >= q.limit {
		return false
	}
	q.counts[key]++
	return true
}

// Remaining reports how many generations key has left.
func (q *ReplyQuota) Remaining(key string) int {
	if key == "" {
		return q.limit
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	n := q.limit - q.counts[key]
	if n < 0 {
		return 0
	}
	return n
}
