package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"postboard/logger"
	"postboard/web/entity"

	"github.com/gin-gonic/gin"
)

type bucket struct {
	count   int
	resetAt time.Time
	window  time.Duration
}

// memoryLimiter is a fixed-window in-process rate limiter keyed by caller.
type memoryLimiter struct {
	mu    sync.Mutex
	store map[string]*bucket
}

func newMemoryLimiter() *memoryLimiter {
	return &memoryLimiter{store: make(map[string]*bucket)}
}

func (m *memoryLimiter) Allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	b, ok := m.store[key]
	if !ok || now.After(b.resetAt) || b.window != window {
		b = &bucket{count: 0, resetAt: now.Add(window), window: window}
		m.store[key] = b
	}

	if b.count >= limit {
		return false, time.Until(b.resetAt)
	}

	b.count++
	return true, time.Until(b.resetAt)
}

// RateLimit rejects callers that exceed limit requests per window from one
// client IP, keyed per route.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := newMemoryLimiter()
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()
		allowed, retryAfter := limiter.Allow(key, limit, window)
		if !allowed {
			logger.Warningf("rate limit exceeded for %s on %s", c.ClientIP(), c.Request.URL.Path)
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.Detail{
				Detail: "too many requests",
			})
			return
		}
		c.Next()
	}
}
