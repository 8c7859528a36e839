package lawdoc

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// CacheKey derives a deterministic cache key from a question. Questions that
// normalize to the same text share a key.
func CacheKey(question string) string {
	return strconv.FormatUint(xxhash.Sum64String(Normalize(question)), 16)
}

// AnswerCache stores structured answers keyed by normalized question.
// Lookups past an entry's TTL behave as misses.
type AnswerCache interface {
	// Get returns the cached answer for the key.
	// Returns ENOTFOUND on a miss or an expired entry.
	Get(ctx context.Context, key string) (*StructuredAnswer, error)

	// Put stores an answer under the key, replacing any existing entry.
	Put(ctx context.Context, key string, answer *StructuredAnswer) error
}
