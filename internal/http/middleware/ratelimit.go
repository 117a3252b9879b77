package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int
}

// memoryWindow is a per-process fixed-window counter keyed by client IP.
// RedisRateLimit falls back to it when Redis is not configured.
type memoryWindow struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	max     int
	window  time.Duration
	now     func() time.Time
}

func newMemoryWindow(maxRequests int, window time.Duration) *memoryWindow {
	return &memoryWindow{
		clients: make(map[string]*clientInfo),
		max:     maxRequests,
		window:  window,
		now:     time.Now,
	}
}

// hit counts one request for key and returns the count within the
// current window.
func (w *memoryWindow) hit(key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	ci, ok := w.clients[key]
	if !ok || now.Sub(ci.start) > w.window {
		ci = &clientInfo{start: now}
		w.clients[key] = ci
	}
	ci.count++

	// drop stale entries so the map does not grow without bound
	if len(w.clients) > 10000 {
		for k, v := range w.clients {
			if now.Sub(v.start) > w.window {
				delete(w.clients, k)
			}
		}
	}
	return ci.count
}

func (w *memoryWindow) handle(c *gin.Context) {
	count := w.hit(c.ClientIP())
	setLimitHeaders(c, w.max, count)
	if count > w.max {
		RLBlocked.WithLabelValues(c.FullPath()).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}
	RLRequests.WithLabelValues(c.FullPath()).Inc()
	c.Next()
}

func setLimitHeaders(c *gin.Context, limit, count int) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, limit-count)))
}
