package service

import (
	"context"
	"sync"

	"github.com/printarts/billing-api/internal/domain/entity"
	"github.com/printarts/billing-api/internal/domain/enum"
	"github.com/printarts/billing-api/internal/domain/repository"
)

// SettingsService manages the singleton business settings row. The receipt
// profile handed to receipt and export collaborators is an immutable
// snapshot, swapped wholesale on update rather than mutated in place.
type SettingsService struct {
	settingsRepo repository.SettingsRepository

	mu      sync.RWMutex
	profile entity.ReceiptProfile
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Load reads the settings row into the in-memory snapshot. Called once at
// startup, after seeding.
func (s *SettingsService) Load(ctx context.Context) error {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = settings.Profile()
	s.mu.Unlock()
	return nil
}

// Profile returns the current immutable receipt profile snapshot.
func (s *SettingsService) Profile() entity.ReceiptProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// GetSettings retrieves the settings row, creating defaults if none exists
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.BusinessSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.BusinessSettings{
			BusinessName:    "Print Arts",
			Currency:        "INR",
			DefaultTaxClass: enum.TaxClassNone,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	BusinessName    *string
	Address         *string
	Phone           *string
	Email           *string
	TaxID           *string
	Currency        *string
	DefaultTaxClass *enum.TaxClass
	ReceiptFooter   *string
}

// UpdateSettings updates the settings row and swaps the profile snapshot
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.BusinessSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		settings.BusinessName = *input.BusinessName
	}
	if input.Address != nil {
		settings.Address = *input.Address
	}
	if input.Phone != nil {
		settings.Phone = *input.Phone
	}
	if input.Email != nil {
		settings.Email = *input.Email
	}
	if input.TaxID != nil {
		settings.TaxID = *input.TaxID
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.DefaultTaxClass != nil {
		settings.DefaultTaxClass = *input.DefaultTaxClass
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.profile = settings.Profile()
	s.mu.Unlock()

	return settings, nil
}
