package repository

import (
	"context"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	domainRepo "github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Get(ctx context.Context, userID uuid.UUID, key string) (*entity.IdempotencyKey, error) {
	return first[entity.IdempotencyKey](conn(ctx, r.db), "key = ? AND user_id = ?", key, userID)
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return translate(conn(ctx, r.db).Create(ikey).Error)
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := conn(ctx, r.db).Where("expires_at < ?", now).Delete(&entity.IdempotencyKey{})
	return res.RowsAffected, res.Error
}
