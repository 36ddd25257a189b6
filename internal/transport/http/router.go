// Package httptransport assembles the public HTTP surface. It owns routing
// and cross-cutting middleware only; all domain behavior lives behind the
// per-module handlers.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"importintel/pkg/platform/httputil"
)

// Registrar is implemented by the per-module handlers.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter builds the full router with middleware, health and metrics
// endpoints, and every module's routes mounted.
func NewRouter(logger *slog.Logger, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(Recovery(logger))
	r.Use(RequestID)
	r.Use(RequestTime)
	r.Use(Logger(logger))

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
