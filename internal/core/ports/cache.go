package ports

import (
	"context"
	"time"
)

// ResponseCache is a best-effort TTL memo for expensive responses. Entries
// may vanish at any time; losing the cache entirely only affects latency,
// never correctness. Mutating handlers are responsible for deleting the keys
// they invalidate.
type ResponseCache interface {
	// Get returns the cached value and true when a non-expired entry exists.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set unconditionally overwrites the entry for key.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Delete removes the given keys if present.
	Delete(ctx context.Context, keys ...string)
}
