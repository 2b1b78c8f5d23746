package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitTest(perMinute int) (*gin.Engine, *RateLimiter) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter("test", perMinute)
	router := gin.New()
	router.POST("/test", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router, rl
}

func performRateLimited(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/test", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	router, rl := setupRateLimitTest(5)
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		w := performRateLimited(router, "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_RejectsOverBudget(t *testing.T) {
	router, rl := setupRateLimitTest(3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		w := performRateLimited(router, "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := performRateLimited(router, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_IndependentPerClient(t *testing.T) {
	router, rl := setupRateLimitTest(1)
	defer rl.Stop()

	first := performRateLimited(router, "10.0.0.1")
	assert.Equal(t, http.StatusOK, first.Code)

	blocked := performRateLimited(router, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	// A different client gets its own bucket
	other := performRateLimited(router, "10.0.0.2")
	assert.Equal(t, http.StatusOK, other.Code)

	assert.Equal(t, 2, rl.Count())
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter("test", 5)
	rl.Stop()
	rl.Stop()
}
