package repository

import (
	"context"

	"github.com/sangkips/billing-api/internal/domain/entity"
)

// SettingsRepository defines the interface for the settings singleton
type SettingsRepository interface {
	// Get returns the settings row, or nil when none has been stored yet
	Get(ctx context.Context) (*entity.Settings, error)
	Create(ctx context.Context, settings *entity.Settings) error
	Update(ctx context.Context, settings *entity.Settings) error
}
