package cache

import (
	"context"
	"time"
)

// Cache is the contract of the read-through cache used by services. Keeping it
// an interface lets the Redis implementation be swapped out in tests.
type Cache interface {
	// Get unmarshals the cached value into dest. found is false on a miss,
	// in which case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern ("restaurants:*").
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
