//go:build unit

package middleware_test

import (
	"net/http"
	"strconv"
	"testing"

	"stay-calendar/internal/handler/middleware"
	"stay-calendar/internal/pkg/config"
	"stay-calendar/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(cfg config.RateLimitConfig, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != nil {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", *userID)
			c.Next()
		})
	}
	r.Use(middleware.NewRateLimiter(cfg).Middleware())
	r.POST("/actions", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRateLimiter(t *testing.T) {
	t.Run("burst then 429 with Retry-After", func(t *testing.T) {
		r := newLimitedRouter(config.RateLimitConfig{ActionsPerMinute: 1, ActionBurst: 3}, nil)

		for i := range 3 {
			rec := httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "")
			require.Equal(t, http.StatusNoContent, rec.Code, "request %d", i+1)
		}

		rec := httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusTooManyRequests, "Rate limit exceeded")

		retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
		require.NoError(t, err)
		assert.Greater(t, retry, 0)
		assert.LessOrEqual(t, retry, 60)
	})

	t.Run("rejected requests do not consume tokens", func(t *testing.T) {
		r := newLimitedRouter(config.RateLimitConfig{ActionsPerMinute: 1, ActionBurst: 1}, nil)

		require.Equal(t, http.StatusNoContent, httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "").Code)
		first := httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "")
		second := httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "")

		assert.Equal(t, http.StatusTooManyRequests, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		a, _ := strconv.Atoi(first.Header().Get("Retry-After"))
		b, _ := strconv.Atoi(second.Header().Get("Retry-After"))
		assert.LessOrEqual(t, b, a)
	})

	t.Run("callers have separate buckets", func(t *testing.T) {
		cfg := config.RateLimitConfig{ActionsPerMinute: 1, ActionBurst: 1}
		limiter := middleware.NewRateLimiter(cfg)
		alice, bob := uuid.New(), uuid.New()

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if c.GetHeader("Authorization") == "Bearer alice" {
				c.Set("user_id", alice)
			} else {
				c.Set("user_id", bob)
			}
			c.Next()
		}, limiter.Middleware())
		r.POST("/actions", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		assert.Equal(t, http.StatusNoContent, httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "alice").Code)
		assert.Equal(t, http.StatusTooManyRequests, httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "alice").Code)
		assert.Equal(t, http.StatusNoContent, httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "bob").Code)
	})

	t.Run("zero config falls back to one per minute", func(t *testing.T) {
		id := uuid.New()
		r := newLimitedRouter(config.RateLimitConfig{}, &id)

		assert.Equal(t, http.StatusNoContent, httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "").Code)
		assert.Equal(t, http.StatusTooManyRequests, httptest.PerformRequest(t, r, http.MethodPost, "/actions", nil, "").Code)
	})
}
