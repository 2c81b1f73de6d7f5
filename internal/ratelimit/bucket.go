// Package ratelimit implements a token bucket used both for per-client HTTP
// limits and for pacing calls to the enrichment service.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Bucket is a token bucket holding at most capacity tokens and refilling one
// token every interval. It is safe for concurrent use.
type Bucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	unlimited  bool
	now        func() time.Time
}

// NewBucket returns a full bucket. capacity < 1 is treated as 1; an interval
// <= 0 disables limiting.
func NewBucket(capacity int, interval time.Duration) *Bucket {
	return newBucket(capacity, interval, time.Now)
}

// PerMinute returns a bucket allowing n events per minute with a burst of n.
func PerMinute(n int) *Bucket {
	if n <= 0 {
		return NewBucket(1, 0)
	}
	return NewBucket(n, time.Minute/time.Duration(n))
}

func newBucket(capacity int, interval time.Duration, now func() time.Time) *Bucket {
	if capacity < 1 {
		capacity = 1
	}
	b := &Bucket{
		tokens:     float64(capacity),
		capacity:   float64(capacity),
		lastRefill: now(),
		now:        now,
	}
	if interval > 0 {
		b.refillRate = 1 / interval.Seconds()
	} else {
		b.unlimited = true
	}
	return b
}

// Allow takes a token if one is available and reports whether it did.
func (b *Bucket) Allow() bool {
	ok, _ := b.reserve()
	return ok
}

// Wait blocks until a token is available or ctx is done.
func (b *Bucket) Wait(ctx context.Context) error {
	for {
		ok, delay := b.reserve()
		if ok {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// LastUsed returns the time of the last refill, which is updated on every
// Allow or Wait call.
func (b *Bucket) LastUsed() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRefill
}

// reserve takes a token if one is available. Otherwise it reports how long
// until the next token without taking anything.
func (b *Bucket) reserve() (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.unlimited {
		b.lastRefill = now
		return true, 0
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	wait := time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
	if wait < time.Millisecond {
		wait = time.Millisecond
	}
	return false, wait
}
