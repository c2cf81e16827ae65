package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiterAllow(t *testing.T) {
	limiter := newMemoryLimiter()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("a", 3, time.Minute)
		assert.True(t, allowed, "request %d should pass", i)
	}
	allowed, retryAfter := limiter.Allow("a", 3, time.Minute)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))

	// Separate keys do not share a bucket
	allowed, _ = limiter.Allow("b", 3, time.Minute)
	assert.True(t, allowed)

	// An expired window starts fresh
	allowed, _ = limiter.Allow("c", 1, time.Millisecond)
	assert.True(t, allowed)
	time.Sleep(5 * time.Millisecond)
	allowed, _ = limiter.Allow("c", 1, time.Millisecond)
	assert.True(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.POST("/login", RateLimit(2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		engine.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	w := do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"detail": "too many requests"}`, w.Body.String())
}
