// Package lookupcache memoizes the expensive, side-effect-free pipeline
// computations behind content-hash keys and per-kind TTLs. Because the
// wrapped computations are pure and deterministic, two concurrent misses for
// the same key may both recompute and both write; last write wins and no
// in-process locking is added.
package lookupcache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"importintel/internal/lookupcache/metrics"
	"importintel/pkg/requestcontext"
)

// ComputeFunc produces the payload for a cache miss.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Cache wraps a Store with key derivation, per-kind TTLs, and read-time
// expiry enforcement.
type Cache struct {
	store           Store
	resolutionTTL   time.Duration
	intelligenceTTL time.Duration
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

// New constructs a cache over the given store.
func New(store Store, resolutionTTL, intelligenceTTL time.Duration, logger *slog.Logger, m *metrics.Metrics) *Cache {
	return &Cache{
		store:           store,
		resolutionTTL:   resolutionTTL,
		intelligenceTTL: intelligenceTTL,
		logger:          logger,
		metrics:         m,
	}
}

// TTL returns the validity window for a cache kind.
func (c *Cache) TTL(kind Kind) time.Duration {
	if kind == KindIntelligence {
		return c.intelligenceTTL
	}
	return c.resolutionTTL
}

// GetOrCompute returns the cached payload for (kind, content) or runs
// compute and stores the result. Expiry is enforced here, at read time: an
// entry past ValidUntil is a miss even if the periodic sweep has not seen it
// yet. Store outages degrade to computing without memoization; the computed
// answer is still correct, so a cache failure never fails the request.
func (c *Cache) GetOrCompute(ctx context.Context, kind Kind, content string, compute ComputeFunc) ([]byte, error) {
	key := Key(kind, content)
	now := requestcontext.Now(ctx)

	entry, err := c.store.Get(ctx, key)
	switch {
	case err == nil && now.Before(entry.ValidUntil):
		c.metrics.IncrementLookup(string(kind), "hit")
		if touchErr := c.store.Touch(ctx, key); touchErr != nil && c.logger != nil {
			c.logger.WarnContext(ctx, "cache touch failed", "key", key, "error", touchErr)
		}
		return entry.Payload, nil
	case err == nil:
		// Present but stale: treated as a miss immediately.
		c.metrics.IncrementLookup(string(kind), "expired")
	case errors.Is(err, ErrNotFound):
		c.metrics.IncrementLookup(string(kind), "miss")
	default:
		// Store outage. Log and fall through to the pure computation; the
		// write below is skipped so no partial state is committed.
		c.metrics.IncrementLookup(string(kind), "store_error")
		if c.logger != nil {
			c.logger.ErrorContext(ctx, "cache read failed", "key", key, "error", err)
		}
		return compute(ctx)
	}

	payload, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	// Write-through. A failed write is discarded, never half-applied; the
	// computed payload is still returned.
	put := Entry{
		Key:        key,
		Payload:    payload,
		CreatedAt:  now,
		ValidUntil: now.Add(c.TTL(kind)),
	}
	if err := c.store.Put(ctx, put); err != nil && c.logger != nil {
		c.logger.ErrorContext(ctx, "cache write failed", "key", key, "error", err)
	}
	return payload, nil
}

// StartSweep deletes expired entries on a fixed interval until ctx is
// cancelled. It runs independently of request handling: failures are logged
// and the loop keeps going.
func (c *Cache) StartSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.SweepAt(ctx, time.Now())
		case <-ctx.Done():
			return
		}
	}
}

// SweepAt removes entries expired as of the given time. Exported for
// testability; the background loop passes wall-clock time.
func (c *Cache) SweepAt(ctx context.Context, now time.Time) {
	deleted, err := c.store.DeleteExpired(ctx, now)
	if err != nil {
		if c.logger != nil {
			c.logger.ErrorContext(ctx, "cache sweep failed", "error", err)
		}
		return
	}
	c.metrics.AddSweepDeleted(deleted)
	if deleted > 0 && c.logger != nil {
		c.logger.InfoContext(ctx, "cache sweep completed", "deleted", deleted)
	}
}
