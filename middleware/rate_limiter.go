package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter pairs a token bucket with the last time its IP was seen.
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per client IP. Entries idle longer than
// ttl are evicted on a periodic sweep, keeping the map bounded by the set of
// recently active clients.
type RateLimiter struct {
	ips       map[string]*ipLimiter
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

// NewRateLimiter creates a RateLimiter with the given refill rate, burst, and
// idle eviction ttl.
func NewRateLimiter(r rate.Limit, b int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		ips:       make(map[string]*ipLimiter),
		rate:      r,
		burst:     b,
		ttl:       ttl,
		lastSweep: time.Now(),
	}
}

// GetLimiter returns the limiter for an IP, creating it on first sight and
// refreshing its idle timer.
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.ttl {
		rl.sweep(now)
	}

	if entry, exists := rl.ips[ip]; exists {
		entry.lastSeen = now
		return entry.limiter
	}
	entry := &ipLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst), lastSeen: now}
	rl.ips[ip] = entry
	return entry.limiter
}

// sweep drops entries idle longer than ttl. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, entry := range rl.ips {
		if now.Sub(entry.lastSeen) >= rl.ttl {
			delete(rl.ips, ip)
		}
	}
	rl.lastSweep = now
}

// RateLimit returns a middleware throttling requests per client IP. Applied
// to the auth endpoints to slow down credential stuffing.
func RateLimit() gin.HandlerFunc {
	rl := NewRateLimiter(rate.Every(time.Minute/100), 50, 10*time.Minute)

	return func(c *gin.Context) {
		if !rl.GetLimiter(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
