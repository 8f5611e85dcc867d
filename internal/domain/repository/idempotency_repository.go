package repository

import (
	"context"

	"github.com/sangkips/billing-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Get retrieves a stored response by key and scope
	Get(ctx context.Context, key, scope string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired keys
	DeleteExpired(ctx context.Context) error
}
