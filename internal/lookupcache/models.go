package lookupcache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Kind separates the cache namespaces. Each kind carries its own TTL.
type Kind string

const (
	// KindResolution caches resolved vehicle identities. Identity facts
	// change slowly, so the TTL is long.
	KindResolution Kind = "resolution"
	// KindIntelligence caches combined eligibility+cost payloads, whose
	// inputs change faster.
	KindIntelligence Kind = "intelligence"
)

// Entry is a cached payload with its validity window. The payload is never
// mutated after creation; hits bump AccessCount and nothing else.
type Entry struct {
	Key         string    `json:"key"`
	Payload     []byte    `json:"payload"`
	CreatedAt   time.Time `json:"created_at"`
	ValidUntil  time.Time `json:"valid_until"`
	AccessCount int64     `json:"access_count"`
}

// Key derives the stable cache key: a content hash over the kind and the
// normalized content, so equivalent queries share an entry regardless of
// case or spacing in the raw input.
func Key(kind Kind, content string) string {
	sum := sha256.Sum256([]byte(string(kind) + ":" + content))
	return string(kind) + ":" + hex.EncodeToString(sum[:])
}
