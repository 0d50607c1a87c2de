package repository

import (
	"context"

	"github.com/printarts/billing-api/internal/domain/entity"
)

// SettingsRepository defines access to the singleton business settings row
type SettingsRepository interface {
	// Get returns the settings row, or nil when none has been created yet.
	Get(ctx context.Context) (*entity.BusinessSettings, error)
	Create(ctx context.Context, settings *entity.BusinessSettings) error
	Update(ctx context.Context, settings *entity.BusinessSettings) error
}
