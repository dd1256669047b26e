package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodcamp/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/donors", nil)
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, "test-agent"))
}

func TestMemoryStoreCountsPerKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, err := store.Incr(ctx, "a", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	count, err := store.Incr(ctx, "b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "keys count independently")
}

func TestMemoryStoreWindowExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Incr(ctx, "a", 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	count, err := store.Incr(ctx, "a", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "counter resets after the window")
}

func TestLimiterAllowsUnderLimit(t *testing.T) {
	limiter := New(NewMemoryStore(), 2, time.Minute, discardLogger())
	handler := limiter.Middleware(okHandler())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestFrom("203.0.113.9"))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestLimiterBlocksOverLimit(t *testing.T) {
	limiter := New(NewMemoryStore(), 1, time.Minute, discardLogger())
	handler := limiter.Middleware(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("203.0.113.9"))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("203.0.113.9"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// A different client is unaffected.
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("198.51.100.7"))
	assert.Equal(t, http.StatusOK, w.Code)
}

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("redis down")
}

func TestLimiterFailsOpen(t *testing.T) {
	limiter := New(failingCounter{}, 1, time.Minute, discardLogger())
	handler := limiter.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestFrom("203.0.113.9"))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestLimiterDisabled(t *testing.T) {
	limiter := New(NewMemoryStore(), 1, time.Minute, discardLogger(), WithDisabled(true))
	handler := limiter.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestFrom("203.0.113.9"))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
