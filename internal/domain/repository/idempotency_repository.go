package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
)

// IdempotencyRepository stores responses keyed by the client's Idempotency-Key
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before now and returns how many were removed
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
