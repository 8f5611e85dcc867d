package service

import (
	"context"
	"strings"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Shop defaults used when no settings row exists yet
const (
	DefaultShopName      = "My Shop"
	DefaultTaxPercentage = 5
)

// SettingsService handles the shop settings singleton
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves the shop settings, creating defaults if none exist
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperror.NewStoreError("load settings", err)
	}

	if settings == nil {
		settings = &entity.Settings{
			ShopName:      DefaultShopName,
			TaxPercentage: decimal.NewFromInt(DefaultTaxPercentage),
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, apperror.NewStoreError("create settings", err)
		}
	}

	return settings, nil
}

// UpdateSettingsInput carries the fields to change; nil fields are kept
type UpdateSettingsInput struct {
	ShopName      *string
	ShopAddress   *string
	ShopPhone     *string
	GSTNumber     *string
	TaxPercentage *decimal.Decimal
}

// UpdateSettings applies a partial update to the shop settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.Settings, error) {
	var fieldErrors []apperror.FieldError
	if input.ShopName != nil && strings.TrimSpace(*input.ShopName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "shop_name", Message: "Shop name is required"})
	}
	if input.TaxPercentage != nil && input.TaxPercentage.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "tax_percentage", Message: "Tax percentage cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors...)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.ShopName != nil {
		settings.ShopName = strings.TrimSpace(*input.ShopName)
	}
	if input.ShopAddress != nil {
		settings.ShopAddress = *input.ShopAddress
	}
	if input.ShopPhone != nil {
		settings.ShopPhone = *input.ShopPhone
	}
	if input.GSTNumber != nil {
		settings.GSTNumber = *input.GSTNumber
	}
	if input.TaxPercentage != nil {
		settings.TaxPercentage = *input.TaxPercentage
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, apperror.NewStoreError("update settings", err)
	}

	return settings, nil
}
