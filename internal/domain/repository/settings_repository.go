package repository

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/google/uuid"
)

// SettingsRepository reads and writes the singleton settings row.
type SettingsRepository interface {
	// Get returns nil, nil when the row has never been written.
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}

// PriceRepository serves both price lists, selected by list.
type PriceRepository interface {
	List(ctx context.Context, list entity.PriceList, activeOnly bool) ([]entity.Price, error)
	GetByID(ctx context.Context, list entity.PriceList, id uuid.UUID) (*entity.Price, error)
	Create(ctx context.Context, list entity.PriceList, price *entity.Price) error
	Update(ctx context.Context, list entity.PriceList, price *entity.Price) error
	Delete(ctx context.Context, list entity.PriceList, id uuid.UUID) error
}
