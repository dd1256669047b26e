// Package middleware holds the HTTP middleware shared by all routes:
// request-scoped time, request IDs, client metadata, and the admin guard.
package middleware

import (
	"net/http"
	"time"

	"bloodcamp/pkg/requestcontext"
)

// RequestTime captures the current time at the start of the request and
// stores it in the context. Every eligibility and upcoming-camp decision in
// the request then shares a single "now", so a submission cannot straddle a
// day boundary mid-validation.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
