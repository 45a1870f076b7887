package repository

import (
	"context"
	"time"
)

// Cache stores JSON-encodable values for a limited time
type Cache interface {
	// Get decodes the value at key into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// InvalidatePrefix drops every key starting with prefix
	InvalidatePrefix(ctx context.Context, prefix string) error
}
