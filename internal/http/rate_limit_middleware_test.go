package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := gin.New()
	router.Use(IPRateLimitMiddleware(ctx, rps, burst, logger))
	router.GET("/v1/chapters", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func serveFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/chapters", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	router.ServeHTTP(w, req)
	return w
}

func TestIPRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 10.0, 20)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serveFrom(router, "").Code)
	}
}

func TestIPRateLimitMiddleware_BlocksRequestsExceedingBurst(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serveFrom(router, "").Code, "request %d should succeed", i+1)
	}

	w := serveFrom(router, "")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestIPRateLimitMiddleware_IndependentLimitsPerIP(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 1)

	assert.Equal(t, http.StatusOK, serveFrom(router, "192.168.1.100:12345").Code)
	// Different port, same IP
	assert.Equal(t, http.StatusTooManyRequests, serveFrom(router, "192.168.1.100:12346").Code)
	assert.Equal(t, http.StatusOK, serveFrom(router, "192.168.1.101:12345").Code)
}

func TestRateLimiterStore_RemoveIdle(t *testing.T) {
	store := &rateLimiterStore{rps: 10.0, burst: 20}

	store.getLimiter("192.168.1.100")
	store.getLimiter("192.168.1.101")

	val, ok := store.limiters.Load("192.168.1.100")
	assert.True(t, ok)
	entry := val.(*rateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.removeIdle(time.Now().Add(-time.Hour))

	_, ok = store.limiters.Load("192.168.1.100")
	assert.False(t, ok)
	_, ok = store.limiters.Load("192.168.1.101")
	assert.True(t, ok)
}

func TestRateLimiterStore_CleanupStopsWithContext(t *testing.T) {
	store := &rateLimiterStore{rps: 1.0, burst: 1}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.cleanupStale(ctx, time.Millisecond, time.Hour)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine did not stop")
	}
}
