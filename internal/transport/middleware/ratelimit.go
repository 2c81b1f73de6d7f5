package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/citizenship-glossary/internal/ratelimit"
)

// idleTTL is how long an unused client bucket is kept.
const idleTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	buckets      sync.Map // client IP -> *ratelimit.Bucket
	maxPerMinute int
	stop         chan struct{}
	stopOnce     sync.Once
}

// NewRateLimiter creates a limiter allowing maxPerMinute requests per client
// and starts the cleanup of idle buckets. Call Stop on shutdown.
func NewRateLimiter(maxPerMinute int, cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{maxPerMinute: maxPerMinute, stop: make(chan struct{})}
	if cleanupInterval > 0 {
		go rl.cleanup(cleanupInterval)
	}
	return rl
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit returns middleware that answers 429 once a client exceeds its budget.
func (rl *RateLimiter) Limit() Middleware {
	retryAfter := 1
	if rl.maxPerMinute > 0 {
		retryAfter = 60/rl.maxPerMinute + 1
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.bucket(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) bucket(key string) *ratelimit.Bucket {
	if b, ok := rl.buckets.Load(key); ok {
		return b.(*ratelimit.Bucket)
	}
	b, _ := rl.buckets.LoadOrStore(key, ratelimit.PerMinute(rl.maxPerMinute))
	return b.(*ratelimit.Bucket)
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.buckets.Range(func(key, value any) bool {
		if now.Sub(value.(*ratelimit.Bucket).LastUsed()) > idleTTL {
			rl.buckets.Delete(key)
		}
		return true
	})
}

// clientIP strips the port from the request's remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
