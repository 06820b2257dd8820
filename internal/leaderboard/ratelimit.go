package leaderboard

import (
	"sync"
	"time"
)

// RateLimiter is a per-wallet sliding window over accepted submissions.
// It lives in process memory: a restart forgets the history and separate
// processes do not share it.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu   sync.Mutex
	seen map[string][]time.Time
}

// NewRateLimiter allows limit accepted submissions per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		seen:   make(map[string][]time.Time),
	}
}

// Allow reports whether wallet may submit at now.
func (r *RateLimiter) Allow(wallet string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.recentLocked(wallet, now)) < r.limit
}

// Record counts an accepted submission.
func (r *RateLimiter) Record(wallet string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[wallet] = append(r.recentLocked(wallet, now), now)
}

// Remaining returns how many submissions wallet has left in the window.
func (r *RateLimiter) Remaining(wallet string, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return max(r.limit-len(r.recentLocked(wallet, now)), 0)
}

// Prune drops wallets with no submissions inside the window.
func (r *RateLimiter) Prune(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for w := range r.seen {
		if len(r.recentLocked(w, now)) == 0 {
			delete(r.seen, w)
		}
	}
}

func (r *RateLimiter) recentLocked(wallet string, now time.Time) []time.Time {
	cutoff := now.Add(-r.window)
	ts, ok := r.seen[wallet]
	if !ok {
		return nil
	}
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	ts = ts[i:]
	r.seen[wallet] = ts
	return ts
}
