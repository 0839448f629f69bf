// Package httpapi assembles the service's HTTP surface: domain routes,
// health, and metrics.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	eventhandler "lankaconnect/internal/events/handler"
	"lankaconnect/internal/platform/metrics"
	"lankaconnect/internal/platform/middleware"
	"lankaconnect/internal/refdata"
)

// Deps carries everything the router mounts.
type Deps struct {
	Events  *eventhandler.Handler
	Refdata *refdata.Handler
	Logger  *slog.Logger
	HTTP    *metrics.HTTP
}

// NewRouter wires all public endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestMeta)
	r.Use(middleware.ActingUser)
	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	if d.HTTP != nil {
		r.Use(d.HTTP.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	d.Events.Register(r)
	if d.Refdata != nil {
		d.Refdata.Register(r)
	}

	return r
}
