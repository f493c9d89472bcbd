package repository

import (
	"context"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	domainRepo "github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return translate(conn(ctx, r.db).Create(user).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return first[entity.User](conn(ctx, r.db), "id = ?", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return first[entity.User](conn(ctx, r.db), "LOWER(email) = LOWER(?)", email)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return first[entity.User](conn(ctx, r.db), "phone = ?", phone)
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return translate(conn(ctx, r.db).Omit("RecoveryTokens").Save(user).Error)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.User{}, "id = ?", id).Error)
}

func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := conn(ctx, r.db).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.User{}).Count(&count).Error
	return count, err
}

type recoveryTokenRepository struct {
	db *gorm.DB
}

// NewRecoveryTokenRepository creates a new recovery token repository
func NewRecoveryTokenRepository(db *gorm.DB) domainRepo.RecoveryTokenRepository {
	return &recoveryTokenRepository{db: db}
}

func (r *recoveryTokenRepository) Create(ctx context.Context, token *entity.RecoveryToken) error {
	return conn(ctx, r.db).Create(token).Error
}

func (r *recoveryTokenRepository) GetByTokenHash(ctx context.Context, hash string) (*entity.RecoveryToken, error) {
	return first[entity.RecoveryToken](conn(ctx, r.db), "token_hash = ?", hash)
}

// MarkUsed only succeeds once per token.
func (r *recoveryTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := conn(ctx, r.db).Model(&entity.RecoveryToken{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recoveryTokenRepository) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	return conn(ctx, r.db).Where("user_id = ?", userID).Delete(&entity.RecoveryToken{}).Error
}

func (r *recoveryTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := conn(ctx, r.db).Where("expires_at < ?", now).Delete(&entity.RecoveryToken{})
	return res.RowsAffected, res.Error
}
