package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KV is a byte-oriented key-value store. Implementations must be safe for
// concurrent use. Get returns ErrNotFound for absent or expired keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
