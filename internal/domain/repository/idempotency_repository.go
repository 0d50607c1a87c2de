package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/printarts/billing-api/internal/domain/entity"
)

// IdempotencyRepository defines storage for idempotency keys
type IdempotencyRepository interface {
	// GetByKey returns the stored key for a user, or nil when unseen.
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
