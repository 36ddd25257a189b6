package lookupcache

import (
	"context"
	"time"

	dErrors "importintel/pkg/domain-errors"
)

// ErrNotFound keeps storage-specific misses consistent across
// implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "cache entry not found")

// Store is the keyed record storage behind the cache. Implementations add no
// expiry logic of their own beyond what their backend provides; the Cache
// component enforces validity at read time.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, entry Entry) error
	// Touch records a hit: AccessCount increments, CreatedAt and the payload
	// stay untouched.
	Touch(ctx context.Context, key string) error
	// DeleteExpired removes entries whose ValidUntil is before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
