package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/hacknox/teamlens/internal/errors"
)

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

func newIPLimiter(perMinute, burst int) *ipLimiter {
	return &ipLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// RateLimitMiddleware throttles per client IP.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	limiter := newIPLimiter(s.cfg.RatePerMinute, s.cfg.RateBurst)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			appErr := apperrors.NewRateLimitError("60s")
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":    "rate limit exceeded",
				"category": appErr.Category,
			})
			return
		}
		c.Next()
	}
}
