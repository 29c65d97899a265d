package services

import (
	"context"
	"time"
)

// CacheService is the hot-record cache contract the repositories depend on.
// Implemented by pkg/cache on Redis; repositories treat every cache error as
// a miss.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}
