// Package httpapi assembles the service's HTTP surface: the public gate
// endpoint, the token-guarded admin API, and operational endpoints.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	gatehandler "dutywire/internal/gate/handler"
	"dutywire/internal/platform/middleware"
	tenanthandler "dutywire/internal/tenant/handler"
)

// NewRouter wires all endpoints. Transport concerns only; business logic
// stays in the gate and services.
func NewRouter(gateHandler *gatehandler.Handler, adminHandler *tenanthandler.Handler, adminToken string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Post("/gate/evaluate", gateHandler.Evaluate)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(adminToken))
		adminHandler.Routes(r)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
