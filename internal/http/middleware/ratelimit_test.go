package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMemoryWindow_ResetsAfterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w := newMemoryWindow(2, time.Minute)
	w.now = func() time.Time { return now }

	assert.Equal(t, 1, w.hit("1.2.3.4"))
	assert.Equal(t, 2, w.hit("1.2.3.4"))
	assert.Equal(t, 3, w.hit("1.2.3.4"))
	assert.Equal(t, 1, w.hit("5.6.7.8"))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, w.hit("1.2.3.4"))
}

func TestRedisRateLimit_FallsBackToMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	InitRedisRateLimiter(nil)

	r := gin.New()
	r.POST("/login", RedisRateLimit("login", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
