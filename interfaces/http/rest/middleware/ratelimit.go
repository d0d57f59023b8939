package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Dimo99/angular/pkg/common"
)

// rateWindow tracks request timestamps for one client
type rateWindow struct {
	mu       sync.Mutex
	requests []time.Time
}

// RateLimiter applies a sliding window limit per client address. A zero
// limit disables it.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	limit   int
	window  time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		limit:   limit,
		window:  window,
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	w, ok := l.windows[key]
	if !ok {
		w = &rateWindow{}
		l.windows[key] = w
	}
	l.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	kept := w.requests[:0]
	for _, at := range w.requests {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	w.requests = kept

	if len(w.requests) >= l.limit {
		return false
	}
	w.requests = append(w.requests, time.Now())
	return true
}

// Handler returns the middleware. RealIP should run before it so the
// remote address reflects the actual client.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(key); err == nil {
			key = host
		}
		if !l.allow(key) {
			common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
