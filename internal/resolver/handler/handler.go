package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"importintel/internal/resolver"
	"importintel/internal/resolver/metrics"
	dErrors "importintel/pkg/domain-errors"
	"importintel/pkg/platform/httputil"
	"importintel/pkg/requestcontext"
)

// maxQueryLength bounds free-form queries well above any real VIN or
// model-name query.
const maxQueryLength = 200

// Service defines the interface for vehicle resolution.
type Service interface {
	ResolveVehicle(ctx context.Context, query string) (resolver.VehicleIdentity, error)
}

// Handler wires the resolution endpoint to the resolver service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a resolver handler with its dependencies.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: m,
	}
}

// Register mounts resolution endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/vehicles/resolve", h.HandleResolve)
}

// ResolveRequest is the HTTP request body for POST /v1/vehicles/resolve.
type ResolveRequest struct {
	Query string `json:"query"`
}

// Validate checks the request body.
func (r ResolveRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "query is required")
	}
	if len(r.Query) > maxQueryLength {
		return dErrors.New(dErrors.CodeInvalidInput, "query is too long")
	}
	return nil
}

// HandleResolve handles POST /v1/vehicles/resolve requests.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ResolveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	identity, err := h.service.ResolveVehicle(ctx, strings.TrimSpace(req.Query))
	if err != nil {
		h.logger.InfoContext(ctx, "resolution failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.ObserveResolveLatency(time.Since(start))
	h.logger.InfoContext(ctx, "vehicle resolved",
		"request_id", requestID,
		"strategy", identity.ResolutionType,
		"make", identity.Make,
		"model", identity.Model,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, identity)
}
