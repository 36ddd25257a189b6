package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"importintel/internal/intelligence"
	"importintel/internal/journey"
	"importintel/internal/journey/metrics"
	"importintel/internal/resolver"
	dErrors "importintel/pkg/domain-errors"
	"importintel/pkg/platform/httputil"
	"importintel/pkg/requestcontext"
)

// Service defines the interface for session operations.
type Service interface {
	Create(ctx context.Context, query string, vehicle resolver.VehicleIdentity) (journey.Session, error)
	Get(ctx context.Context, token string) (journey.Session, error)
	Advance(ctx context.Context, token, destination string, state *intelligence.Intelligence) (journey.Session, error)
	Reconstruct(ctx context.Context, params journey.ReconstructParams) (journey.Session, bool, error)
	RecentQueries(ctx context.Context, limit int) ([]journey.Session, error)
}

// Resolver resolves the query behind a new session.
type Resolver interface {
	ResolveVehicle(ctx context.Context, query string) (resolver.VehicleIdentity, error)
}

// Assembler computes the intelligence attached to an advanced session.
type Assembler interface {
	Assemble(ctx context.Context, query string, req intelligence.Request) (intelligence.Intelligence, error)
}

// Handler wires session endpoints to the journey service.
type Handler struct {
	service   Service
	resolver  Resolver
	assembler Assembler
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New constructs a journey handler with its dependencies.
func New(service Service, res Resolver, assembler Assembler, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:   service,
		resolver:  res,
		assembler: assembler,
		logger:    logger,
		metrics:   m,
	}
}

// Register mounts session endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/journeys", h.HandleCreate)
	r.Post("/v1/journeys/reconstruct", h.HandleReconstruct)
	r.Get("/v1/journeys/recent", h.HandleRecent)
	r.Get("/v1/journeys/{token}", h.HandleGet)
	r.Post("/v1/journeys/{token}/destination", h.HandleAdvance)
}

// HandleCreate handles POST /v1/journeys requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	query := strings.TrimSpace(req.Query)
	vehicle, err := h.resolver.ResolveVehicle(ctx, query)
	if err != nil {
		h.logger.InfoContext(ctx, "session creation failed at resolution",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	session, err := h.service.Create(ctx, query, vehicle)
	if err != nil {
		h.logger.ErrorContext(ctx, "session creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, SessionResponse{Session: session})
}

// HandleGet handles GET /v1/journeys/{token} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	token := chi.URLParam(r, "token")

	session, err := h.service.Get(ctx, token)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "session read failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, SessionResponse{Session: session})
}

// HandleAdvance handles POST /v1/journeys/{token}/destination requests. It
// computes the full intelligence for the committed destination and attaches
// it to the session.
func (h *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	token := chi.URLParam(r, "token")
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AdvanceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, err := h.service.Get(ctx, token)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	state, err := h.assembler.Assemble(ctx, session.OriginalQuery, req.ToDomain())
	if err != nil {
		h.logger.InfoContext(ctx, "session advance failed at intelligence",
			"request_id", requestID,
			"destination", req.DestinationCountry,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	advanced, err := h.service.Advance(ctx, token, state.DestinationCountry, &state)
	if err != nil {
		h.logger.ErrorContext(ctx, "session advance failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "session advanced",
		"request_id", requestID,
		"destination", state.DestinationCountry,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, SessionResponse{Session: advanced})
}

// HandleReconstruct handles POST /v1/journeys/reconstruct requests.
func (h *Handler) HandleReconstruct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ReconstructRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, reconstructed, err := h.service.Reconstruct(ctx, req.ToParams())
	if err != nil {
		h.logger.InfoContext(ctx, "session reconstruction failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if !reconstructed {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, SessionResponse{Session: session, Reconstructed: &reconstructed})
}

// HandleRecent handles GET /v1/journeys/recent requests.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	sessions, err := h.service.RecentQueries(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "recent queries failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromSessions(sessions))
}
