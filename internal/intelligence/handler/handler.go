package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"importintel/internal/intelligence"
	"importintel/internal/intelligence/metrics"
	"importintel/pkg/platform/httputil"
	"importintel/pkg/requestcontext"
)

// Service defines the interface for intelligence assembly.
type Service interface {
	Assemble(ctx context.Context, query string, req intelligence.Request) (intelligence.Intelligence, error)
}

// Handler wires the intelligence endpoint to the orchestrator.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs an intelligence handler with its dependencies.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: m,
	}
}

// Register mounts intelligence endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/intelligence", h.HandleIntelligence)
}

// HandleIntelligence handles POST /v1/intelligence requests.
func (h *Handler) HandleIntelligence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[IntelligenceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Assemble(ctx, strings.TrimSpace(req.Query), req.ToDomain())
	if err != nil {
		h.logger.InfoContext(ctx, "intelligence assembly failed",
			"request_id", requestID,
			"destination", req.DestinationCountry,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "intelligence served",
		"request_id", requestID,
		"make", result.Vehicle.Make,
		"model", result.Vehicle.Model,
		"destination", result.DestinationCountry,
		"eligible", result.Eligibility.Eligible,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}
