package repository

import (
	"context"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type RecoveryTokenRepository interface {
	Create(ctx context.Context, token *entity.RecoveryToken) error
	GetByTokenHash(ctx context.Context, hash string) (*entity.RecoveryToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
