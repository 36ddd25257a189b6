package journey

import (
	"context"
	"time"

	dErrors "importintel/pkg/domain-errors"
)

// ErrNotFound is returned when no session exists for a token.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "session not found")

// Store persists journey sessions. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save inserts or fully replaces the session keyed by its token.
	Save(ctx context.Context, session Session) error

	// FindByToken returns the session for a token, active or not.
	// Returns ErrNotFound when the token is unknown.
	FindByToken(ctx context.Context, token string) (Session, error)

	// ListRecentActive returns up to limit active sessions ordered by
	// LastAccessed, most recent first.
	ListRecentActive(ctx context.Context, limit int) ([]Session, error)

	// DeactivateIdle clears the active flag on sessions whose LastAccessed
	// is before the cutoff and returns how many were deactivated.
	DeactivateIdle(ctx context.Context, cutoff time.Time) (int, error)
}
