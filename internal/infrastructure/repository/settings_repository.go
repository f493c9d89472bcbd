package repository

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	domainRepo "github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	return first[entity.Settings](conn(ctx, r.db), "id = ?", entity.SettingsID)
}

// Save upserts the singleton row.
func (r *settingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	settings.ID = entity.SettingsID
	return conn(ctx, r.db).Save(settings).Error
}

type priceRepository struct {
	db *gorm.DB
}

// NewPriceRepository creates a repository over the bag and material price tables
func NewPriceRepository(db *gorm.DB) domainRepo.PriceRepository {
	return &priceRepository{db: db}
}

func (r *priceRepository) table(ctx context.Context, list entity.PriceList) *gorm.DB {
	return conn(ctx, r.db).Table(string(list))
}

func (r *priceRepository) List(ctx context.Context, list entity.PriceList, activeOnly bool) ([]entity.Price, error) {
	query := r.table(ctx, list)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var prices []entity.Price
	err := query.Order("sort_order ASC, created_at ASC").Find(&prices).Error
	return prices, err
}

func (r *priceRepository) GetByID(ctx context.Context, list entity.PriceList, id uuid.UUID) (*entity.Price, error) {
	return first[entity.Price](r.table(ctx, list), "id = ?", id)
}

func (r *priceRepository) Create(ctx context.Context, list entity.PriceList, price *entity.Price) error {
	return translate(r.table(ctx, list).Create(price).Error)
}

func (r *priceRepository) Update(ctx context.Context, list entity.PriceList, price *entity.Price) error {
	return translate(r.table(ctx, list).Save(price).Error)
}

func (r *priceRepository) Delete(ctx context.Context, list entity.PriceList, id uuid.UUID) error {
	return translate(r.table(ctx, list).Delete(&entity.Price{}, "id = ?", id).Error)
}
