package http

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// rateLimiter is a fixed-window per-client limiter keyed by remote IP.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow

	perMinute int
}

type clientWindow struct {
	windowStart time.Time
	requests    int
}

func newRateLimiter(perMinute int) *rateLimiter {
	return &rateLimiter{
		clients:   make(map[string]*clientWindow),
		perMinute: perMinute,
	}
}

// allow reports whether a request from the given IP fits the current window.
// Stale windows are pruned opportunistically to bound the map size.
func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if len(rl.clients) > 10000 {
		cutoff := now.Add(-10 * time.Minute)
		for ip, c := range rl.clients {
			if c.windowStart.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
	}

	c, ok := rl.clients[clientIP]
	if !ok || now.Sub(c.windowStart) > time.Minute {
		rl.clients[clientIP] = &clientWindow{windowStart: now, requests: 1}
		return true
	}

	c.requests++
	return c.requests <= rl.perMinute
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
