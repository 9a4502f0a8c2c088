package security

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a simple token bucket rate limiter, keyed by
// client IP. Login attempts go through it.
type RateLimiter struct {
	clients map[string]*client
	mu      sync.Mutex
	rate    int           // requests per window
	window  time.Duration // time window
}

type client struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a new rate limiter allowing rate requests per window
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		rate:    rate,
		window:  window,
	}
	go rl.cleanupClients()
	return rl
}

// Allow checks if a request from an IP should be allowed
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, exists := rl.clients[ip]
	if !exists {
		c = &client{tokens: rl.rate, lastRefill: time.Now()}
		rl.clients[ip] = c
	}

	// Refill tokens based on time passed
	now := time.Now()
	if now.Sub(c.lastRefill) >= rl.window {
		c.tokens = rl.rate
		c.lastRefill = now
	}

	if c.tokens > 0 {
		c.tokens--
		return true
	}

	return false
}

// cleanupClients removes stale entries to prevent memory leaks
func (rl *RateLimiter) cleanupClients() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, c := range rl.clients {
			if now.Sub(c.lastRefill) > rl.window*2 {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetClientIP extracts the client IP from the request
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (when behind proxy)
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
