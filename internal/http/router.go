// Package httpapi assembles the HTTP surface: middleware chain, public and
// authenticated route groups, and operational endpoints.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sesaco/internal/platform/metrics"
	"sesaco/internal/platform/middleware"
	"sesaco/pkg/platform/httputil"
)

// Registrar mounts a feature's routes on a router group.
type Registrar interface {
	Register(r chi.Router)
}

// RegistrarFunc adapts a bare registration function to Registrar.
type RegistrarFunc func(r chi.Router)

func (f RegistrarFunc) Register(r chi.Router) { f(r) }

// Deps carries everything the router needs. Public handlers are mounted
// outside the auth middleware; protected ones inside it.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Validator middleware.JWTValidator
	Sessions  middleware.SessionChecker

	Public    []Registrar
	Protected []Registrar

	Health func() map[string]string
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Device)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		status := map[string]string{"status": "ok"}
		if deps.Health != nil {
			for k, v := range deps.Health() {
				status[k] = v
			}
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	})
	r.Handle("/metrics", promhttp.Handler())

	for _, h := range deps.Public {
		h.Register(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Validator, deps.Sessions, deps.Logger))
		for _, h := range deps.Protected {
			h.Register(r)
		}
	})

	return r
}
