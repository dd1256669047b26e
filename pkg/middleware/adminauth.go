package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"bloodcamp/pkg/domainerrors"
	"bloodcamp/pkg/httputil"
	"bloodcamp/pkg/requestcontext"
)

// TokenValidator validates an admin bearer token and returns the admin
// identifier it was issued to.
type TokenValidator interface {
	ValidateToken(tokenString string) (adminID string, err error)
}

// RequireAdmin guards administrative routes. Requests without a valid
// Bearer token are rejected with 401 before reaching the handler.
func RequireAdmin(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized admin access - missing token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			adminID, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized admin access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithAdminID(ctx, adminID)))
		})
	}
}
