package cache

import (
	"context"
	"time"
)

// NullCache discards everything and never hits. It backs --no-cache runs
// and pipeline tests that must exercise the fresh-build path.
type NullCache struct{}

// NewNullCache returns a cache that forgets immediately.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (NullCache) Delete(ctx context.Context, key string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
