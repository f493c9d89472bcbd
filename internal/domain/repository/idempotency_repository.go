package repository

import (
	"context"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/google/uuid"
)

// IdempotencyRepository stores replayable responses of keyed write requests.
type IdempotencyRepository interface {
	// Get returns nil, nil when the key is unknown.
	Get(ctx context.Context, userID uuid.UUID, key string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	// DeleteExpired removes keys past their expiry and returns how many went.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
