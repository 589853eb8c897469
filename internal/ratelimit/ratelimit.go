// Package ratelimit throttles repeated failed logins with a token bucket per
// username: failures spend tokens, a successful login refunds the whole
// bucket, and idle buckets are pruned so memory stays bounded.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type FailedLogins struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New creates a failed-login limiter. limit is the refill rate in tokens per
// second; burst is the number of failures tolerated before Allow starts
// returning false.
func New(limit rate.Limit, burst int) *FailedLogins {
	return &FailedLogins{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
	}
}

// NewDefault tolerates 5 failed attempts per username, refilling one attempt
// every 3 minutes.
func NewDefault() *FailedLogins {
	return New(rate.Every(3*time.Minute), 5)
}

// Allow reports whether username may attempt a login. It does not consume a
// token; only Fail does.
func (f *FailedLogins) Allow(username string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[username]
	if !ok {
		return true
	}
	b.lastSeen = time.Now()
	return b.lim.Tokens() >= 1
}

// Fail records a failed attempt for username, consuming one token.
func (f *FailedLogins) Fail(username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[username]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(f.limit, f.burst)}
		f.buckets[username] = b
	}
	b.lastSeen = time.Now()
	b.lim.Allow()
}

// Reset clears the window for username (called on successful login).
func (f *FailedLogins) Reset(username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.buckets, username)
}

// Prune drops buckets not touched within maxIdle and returns how many were
// removed. Run periodically.
func (f *FailedLogins) Prune(maxIdle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for username, b := range f.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(f.buckets, username)
			removed++
		}
	}
	return removed
}

// Size returns the number of tracked usernames.
func (f *FailedLogins) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.buckets)
}
