// Package httpapi assembles the HTTP surface: public registration and camp
// listing, the admin API behind the JWT guard, and the health and metrics
// endpoints.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminhandler "bloodcamp/internal/admin/handler"
	camphandler "bloodcamp/internal/camp/handler"
	donorhandler "bloodcamp/internal/donor/handler"
	"bloodcamp/internal/platform/ratelimit"
	registrationhandler "bloodcamp/internal/registration/handler"
	"bloodcamp/pkg/httputil"
	"bloodcamp/pkg/middleware"
)

// Deps are the handlers and middleware the router mounts.
type Deps struct {
	Registration *registrationhandler.Handler
	Camps        *camphandler.Handler
	Donors       *donorhandler.Handler
	Admin        *adminhandler.Handler
	Tokens       middleware.TokenValidator
	Limiter      *ratelimit.Limiter
	Logger       *slog.Logger
}

// New builds the chi router with the full middleware chain.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public surface. Registration submissions are rate limited per client;
	// the form bootstrap endpoint is not.
	r.With(d.Limiter.Middleware).Post("/api/donors", d.Registration.HandleRegisterDonor)
	r.Get("/api/donors/register", d.Registration.HandleOpenRegistration)
	d.Camps.RegisterPublic(r)
	d.Admin.Register(r)

	// Admin surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(d.Tokens, d.Logger))
		d.Camps.RegisterAdmin(r)
		d.Donors.RegisterAdmin(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
