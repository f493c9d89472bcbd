package cache

import (
	"context"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
)

// SettingsCache holds the settings row between reads.
type SettingsCache interface {
	Get(ctx context.Context) (*entity.Settings, bool, error)
	Set(ctx context.Context, settings *entity.Settings) error
	Invalidate(ctx context.Context) error
}

// NoopSettingsCache never stores anything. Used when redis is not configured.
type NoopSettingsCache struct{}

func (NoopSettingsCache) Get(context.Context) (*entity.Settings, bool, error) {
	return nil, false, nil
}

func (NoopSettingsCache) Set(context.Context, *entity.Settings) error {
	return nil
}

func (NoopSettingsCache) Invalidate(context.Context) error {
	return nil
}
