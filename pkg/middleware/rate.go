// Package middleware provides the HTTP middleware stack: auth, CORS,
// request logging, panic recovery, and per-IP rate limiting.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aranya-labs/aranya/pkg/response"
)

// limiter is a fixed-window counter per client IP.
type limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	span    time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

func newLimiter(max int, span time.Duration) *limiter {
	l := &limiter{windows: map[string]*window{}, max: max, span: span}
	go l.evict()
	return l
}

func (l *limiter) allow(ip string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[ip]
	if w == nil || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.span)}
		l.windows[ip] = w
	}
	w.count++
	return w.count <= l.max
}

// evict drops stale windows so the map does not grow one entry per
// client IP for the life of the process.
func (l *limiter) evict() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, w := range l.windows {
			if now.After(w.resetAt) {
				delete(l.windows, ip)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimit caps each client IP at max requests per window.
// Example: middleware.RateLimit(120, time.Minute)
func RateLimit(max int, span time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(max, span)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
