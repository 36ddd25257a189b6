// Package journey persists resumable import investigations. A session is
// created at lookup time, advanced once the user commits to a destination,
// and can be reconstructed from partial vehicle details when the client
// lost its token.
package journey

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"importintel/internal/intelligence"
	"importintel/internal/journey/metrics"
	"importintel/internal/resolver"
	dErrors "importintel/pkg/domain-errors"
	"importintel/pkg/requestcontext"
)

// ResolveFunc resolves a synthesized query when reconstruction has to mint
// a fresh session.
type ResolveFunc func(ctx context.Context, query string) (resolver.VehicleIdentity, error)

// Service manages the session lifecycle over a Store.
type Service struct {
	store             Store
	resolve           ResolveFunc
	idleTimeout       time.Duration
	reconstructWindow int
	logger            *slog.Logger
	metrics           *metrics.Metrics
}

// NewService constructs the session service. reconstructWindow bounds how
// many recent sessions a reconstruction scan considers.
func NewService(store Store, resolve ResolveFunc, idleTimeout time.Duration, reconstructWindow int, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:             store,
		resolve:           resolve,
		idleTimeout:       idleTimeout,
		reconstructWindow: reconstructWindow,
		logger:            logger,
		metrics:           m,
	}
}

// Create mints a token and persists a new session at the lookup step.
func (s *Service) Create(ctx context.Context, query string, vehicle resolver.VehicleIdentity) (Session, error) {
	token, err := MintToken()
	if err != nil {
		s.metrics.IncrementOperation("create", "error")
		return Session{}, err
	}

	now := requestcontext.Now(ctx)
	session := Session{
		Token:           token,
		OriginalQuery:   query,
		Vehicle:         vehicle,
		ConfidenceScore: vehicle.ConfidenceScore,
		CurrentStep:     StepLookup,
		Active:          true,
		CreatedAt:       now,
		LastAccessed:    now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		s.metrics.IncrementOperation("create", "error")
		s.logger.ErrorContext(ctx, "session save failed", "error", err)
		return Session{}, dErrors.New(dErrors.CodeStoreUnavailable, "session store unavailable")
	}

	s.metrics.IncrementOperation("create", "success")
	s.logger.InfoContext(ctx, "session created",
		"make", vehicle.Make,
		"model", vehicle.Model,
		"confidence", vehicle.ConfidenceScore,
	)
	return session, nil
}

// Get returns the session for a token and refreshes LastAccessed. Inactive
// sessions are still readable; only the token holder can reach them.
func (s *Service) Get(ctx context.Context, token string) (Session, error) {
	session, err := s.find(ctx, "get", token)
	if err != nil {
		return Session{}, err
	}

	session.LastAccessed = requestcontext.Now(ctx)
	// A failed access-time refresh must not fail the read.
	if err := s.store.Save(ctx, session); err != nil {
		s.logger.WarnContext(ctx, "session access refresh failed", "error", err)
	}

	s.metrics.IncrementOperation("get", "success")
	return session, nil
}

// Advance moves the session to the journey step with a committed
// destination and its computed state. Re-advancing replaces the destination
// and state; the step never moves backwards.
func (s *Service) Advance(ctx context.Context, token, destination string, state *intelligence.Intelligence) (Session, error) {
	if destination == "" {
		return Session{}, dErrors.New(dErrors.CodeInvalidInput, "destination is empty")
	}

	session, err := s.find(ctx, "advance", token)
	if err != nil {
		return Session{}, err
	}

	session.CurrentStep = StepJourney
	session.Destination = destination
	session.State = state
	session.Active = true
	session.LastAccessed = requestcontext.Now(ctx)

	if err := s.store.Save(ctx, session); err != nil {
		s.metrics.IncrementOperation("advance", "error")
		s.logger.ErrorContext(ctx, "session save failed", "error", err)
		return Session{}, dErrors.New(dErrors.CodeStoreUnavailable, "session store unavailable")
	}

	s.metrics.IncrementOperation("advance", "success")
	s.logger.InfoContext(ctx, "session advanced", "destination", destination)
	return session, nil
}

// Reconstruct finds the most recent active session matching the partial
// vehicle details. Every provided vehicle field must match; a supplied
// destination is not a match key, it advances the matched session to the
// journey step. When nothing matches, a fresh session is minted from a
// query synthesized out of the params; reconstructed reports which of the
// two happened.
func (s *Service) Reconstruct(ctx context.Context, params ReconstructParams) (session Session, reconstructed bool, err error) {
	if params.Empty() {
		return Session{}, false, dErrors.New(dErrors.CodeInvalidInput, "no vehicle details to reconstruct from")
	}

	recent, err := s.store.ListRecentActive(ctx, s.reconstructWindow)
	if err != nil {
		s.metrics.IncrementReconstruct("error")
		s.logger.ErrorContext(ctx, "session scan failed", "error", err)
		return Session{}, false, dErrors.New(dErrors.CodeStoreUnavailable, "session store unavailable")
	}

	for _, candidate := range recent {
		if !matches(candidate, params) {
			continue
		}
		candidate.LastAccessed = requestcontext.Now(ctx)
		if params.Destination != "" {
			candidate.CurrentStep = StepJourney
			candidate.Destination = params.Destination
		}
		if err := s.store.Save(ctx, candidate); err != nil {
			if params.Destination != "" {
				// The caller expects the destination committed, so a
				// failed write cannot pass as a successful match.
				s.metrics.IncrementReconstruct("error")
				s.logger.ErrorContext(ctx, "session save failed", "error", err)
				return Session{}, false, dErrors.New(dErrors.CodeStoreUnavailable, "session store unavailable")
			}
			s.logger.WarnContext(ctx, "session access refresh failed", "error", err)
		}
		s.metrics.IncrementReconstruct("matched")
		s.logger.InfoContext(ctx, "session reconstructed",
			"make", candidate.Vehicle.Make,
			"model", candidate.Vehicle.Model,
		)
		return candidate, true, nil
	}

	// No match. Resolve the partial details as a fresh query; an
	// unresolvable query propagates as unrecognized_identifier rather
	// than inventing a session around a vehicle that cannot be named.
	query := synthesizeQuery(params)
	vehicle, err := s.resolve(ctx, query)
	if err != nil {
		s.metrics.IncrementReconstruct("unresolved")
		return Session{}, false, err
	}

	fresh, err := s.Create(ctx, query, vehicle)
	if err != nil {
		return Session{}, false, err
	}
	s.metrics.IncrementReconstruct("minted")
	return fresh, false, nil
}

// RecentQueries lists active sessions for the activity feed, most recent
// first.
func (s *Service) RecentQueries(ctx context.Context, limit int) ([]Session, error) {
	const (
		defaultLimit = 10
		maxLimit     = 50
	)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	sessions, err := s.store.ListRecentActive(ctx, limit)
	if err != nil {
		s.metrics.IncrementOperation("recent", "error")
		s.logger.ErrorContext(ctx, "session scan failed", "error", err)
		return nil, dErrors.New(dErrors.CodeStoreUnavailable, "session store unavailable")
	}
	s.metrics.IncrementOperation("recent", "success")
	return sessions, nil
}

// StartSweep soft-deactivates idle sessions on a fixed interval until ctx
// is cancelled.
func (s *Service) StartSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.DeactivateIdleAt(ctx, time.Now())
		case <-ctx.Done():
			return
		}
	}
}

// DeactivateIdleAt clears the active flag on sessions idle past the
// timeout as of the given time. Exported for testability; the background
// loop passes wall-clock time.
func (s *Service) DeactivateIdleAt(ctx context.Context, now time.Time) {
	deactivated, err := s.store.DeactivateIdle(ctx, now.Add(-s.idleTimeout))
	if err != nil {
		s.logger.ErrorContext(ctx, "session sweep failed", "error", err)
		return
	}
	s.metrics.AddSweepDeactivated(deactivated)
	if deactivated > 0 {
		s.logger.InfoContext(ctx, "session sweep completed", "deactivated", deactivated)
	}
}

func (s *Service) find(ctx context.Context, operation, token string) (Session, error) {
	session, err := s.store.FindByToken(ctx, token)
	if errors.Is(err, ErrNotFound) {
		s.metrics.IncrementOperation(operation, "not_found")
		return Session{}, err
	}
	if err != nil {
		s.metrics.IncrementOperation(operation, "error")
		s.logger.ErrorContext(ctx, "session read failed", "error", err)
		return Session{}, dErrors.New(dErrors.CodeStoreUnavailable, "session store unavailable")
	}
	return session, nil
}

// matches applies every provided param; an empty param constrains nothing.
func matches(session Session, params ReconstructParams) bool {
	if params.ChassisCode != "" && !strings.EqualFold(session.Vehicle.ChassisCode, params.ChassisCode) {
		return false
	}
	if params.Make != "" && !strings.EqualFold(session.Vehicle.Make, params.Make) {
		return false
	}
	if params.Model != "" && !strings.EqualFold(session.Vehicle.Model, params.Model) {
		return false
	}
	return true
}

func synthesizeQuery(params ReconstructParams) string {
	if params.ChassisCode != "" {
		return params.ChassisCode
	}
	return strings.TrimSpace(params.Make + " " + params.Model)
}
