package service

import (
	"context"
	"log"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/infrastructure/cache"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettingsService serves the plant's unit economics
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	cache        cache.SettingsCache
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, settingsCache cache.SettingsCache) *SettingsService {
	if settingsCache == nil {
		settingsCache = cache.NoopSettingsCache{}
	}
	return &SettingsService{
		settingsRepo: settingsRepo,
		cache:        settingsCache,
	}
}

// Get returns the stored settings, or the defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context) (*entity.Settings, error) {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		log.Printf("settings cache read failed: %v", err)
	} else if ok {
		return cached, nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultSettings()
	}

	if err := s.cache.Set(ctx, settings); err != nil {
		log.Printf("settings cache write failed: %v", err)
	}
	return settings, nil
}

// UpdateSettingsInput is a partial update. Nil fields keep their value.
type UpdateSettingsInput struct {
	SachetRollCost             *decimal.Decimal `json:"sachetRollCost"`
	SachetRollBagsPerRoll      *int             `json:"sachetRollBagsPerRoll"`
	PackingNylonCost           *decimal.Decimal `json:"packingNylonCost"`
	PackingNylonBagsPerPackage *int             `json:"packingNylonBagsPerPackage"`
	SalesPrice1                *decimal.Decimal `json:"salesPrice1"`
	SalesPrice2                *decimal.Decimal `json:"salesPrice2"`
	InventoryLowThreshold      *int             `json:"inventoryLowThreshold"`
}

// Update applies a partial update to the settings row
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*entity.Settings, error) {
	var v apperror.Collector
	checkNonNegative(&v, "sachetRollCost", input.SachetRollCost)
	checkNonNegative(&v, "packingNylonCost", input.PackingNylonCost)
	checkNonNegative(&v, "salesPrice1", input.SalesPrice1)
	checkNonNegative(&v, "salesPrice2", input.SalesPrice2)
	if input.SachetRollBagsPerRoll != nil {
		v.Check(*input.SachetRollBagsPerRoll >= 1, "sachetRollBagsPerRoll", "must be at least 1")
	}
	if input.PackingNylonBagsPerPackage != nil {
		v.Check(*input.PackingNylonBagsPerPackage >= 1, "packingNylonBagsPerPackage", "must be at least 1")
	}
	if input.InventoryLowThreshold != nil {
		v.Check(*input.InventoryLowThreshold >= 0, "inventoryLowThreshold", "must not be negative")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultSettings()
	}

	if input.SachetRollCost != nil {
		settings.SachetRollCost = *input.SachetRollCost
	}
	if input.SachetRollBagsPerRoll != nil {
		settings.SachetRollBagsPerRoll = *input.SachetRollBagsPerRoll
	}
	if input.PackingNylonCost != nil {
		settings.PackingNylonCost = *input.PackingNylonCost
	}
	if input.PackingNylonBagsPerPackage != nil {
		settings.PackingNylonBagsPerPackage = *input.PackingNylonBagsPerPackage
	}
	if input.SalesPrice1 != nil {
		settings.SalesPrice1 = *input.SalesPrice1
	}
	if input.SalesPrice2 != nil {
		settings.SalesPrice2 = *input.SalesPrice2
	}
	if input.InventoryLowThreshold != nil {
		settings.InventoryLowThreshold = *input.InventoryLowThreshold
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("settings cache invalidate failed: %v", err)
	}
	return settings, nil
}

func checkNonNegative(v *apperror.Collector, field string, d *decimal.Decimal) {
	if d != nil {
		v.Check(!d.IsNegative(), field, "must not be negative")
	}
}
