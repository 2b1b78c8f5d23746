package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent, expired, or was already
// consumed by a concurrent GetDel.
var ErrCacheMiss = errors.New("cache: key not found")

// TokenCache is an ephemeral key-value store with per-key TTL. Expiry is
// delegated to the backing store; no manual sweep runs here.
//
// GetDel is the single-use primitive: fetch and invalidate in one atomic
// step, so two concurrent callers for the same key see exactly one hit.
type TokenCache interface {
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) (bool, error)
}
