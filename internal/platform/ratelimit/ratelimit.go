// Package ratelimit protects the public registration endpoint with a fixed
// window limit per client IP. Counter errors fail open: losing the limiter
// must never take registrations down with it.
package ratelimit

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"bloodcamp/pkg/httputil"
	"bloodcamp/pkg/requestcontext"
)

type Limiter struct {
	store    CounterStore
	limit    int
	window   time.Duration
	logger   *slog.Logger
	disabled bool
}

type Option func(*Limiter)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(l *Limiter) {
		l.disabled = disabled
	}
}

func New(store CounterStore, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.disabled {
		logger.Info("rate limiting disabled")
	}
	return l
}

// Middleware enforces the limit keyed by client IP. Requires ClientMetadata
// to have run earlier in the chain.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.disabled || l.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)

		count, err := l.store.Incr(ctx, l.key(ip), l.window)
		if err != nil {
			l.logger.ErrorContext(ctx, "rate limit check failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > int64(l.limit) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(l.window.Seconds())))
			httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorResponse{
				Message: "Too many registration attempts. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) key(ip string) string {
	return "ratelimit:register:" + ip
}
