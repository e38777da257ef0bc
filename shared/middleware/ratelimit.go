package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ClientRateLimiter hands out one token bucket per client IP.
type ClientRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewClientRateLimiter(requestsPerSecond float64, burst int) *ClientRateLimiter {
	return &ClientRateLimiter{
		limiters: make(map[string]*clientLimiter),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
}

// Allow reports whether the client may make a request now.
func (l *ClientRateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cl, ok := l.limiters[client]
	if !ok {
		l.evictIdle(now)
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[client] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// evictIdle drops buckets not used within idleTTL. Caller holds mu.
func (l *ClientRateLimiter) evictIdle(now time.Time) {
	for client, cl := range l.limiters {
		if now.Sub(cl.lastSeen) > l.idleTTL {
			delete(l.limiters, client)
		}
	}
}

// RateLimitMiddleware rejects clients that exceed their bucket with 429.
func RateLimitMiddleware(limiter *ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			AbortWithError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
