package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// MenuService handles menu item operations
type MenuService struct {
	menuRepo repository.MenuItemRepository
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuItemRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// CreateMenuItemInput represents the create menu item input
type CreateMenuItemInput struct {
	Name     string
	Price    decimal.Decimal
	Category string
	IsActive *bool
}

// UpdateMenuItemInput represents the update menu item input
type UpdateMenuItemInput struct {
	Name     *string
	Price    *decimal.Decimal
	Category *string
	IsActive *bool
}

func validateMenuItem(name string, price decimal.Decimal) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if price.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	return fieldErrors
}

// CreateMenuItem adds an item to the menu. Items are active unless stated otherwise.
func (s *MenuService) CreateMenuItem(ctx context.Context, input *CreateMenuItemInput) (*entity.MenuItem, error) {
	if errs := validateMenuItem(input.Name, input.Price); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs...)
	}

	item := &entity.MenuItem{
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Category: strings.TrimSpace(input.Category),
		IsActive: true,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, apperror.NewStoreError("create menu item", err)
	}
	return item, nil
}

// GetMenuItem retrieves a menu item by ID
func (s *MenuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStoreError("load menu item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// UpdateMenuItem changes the given fields of a menu item. Bills already saved
// keep their snapshots.
func (s *MenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *UpdateMenuItemInput) (*entity.MenuItem, error) {
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if errs := validateMenuItem(item.Name, item.Price); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs...)
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, apperror.NewStoreError("update menu item", err)
	}
	return item, nil
}

// DeleteMenuItem removes a menu item
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMenuItem(ctx, id); err != nil {
		return err
	}
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return apperror.NewStoreError("delete menu item", err)
	}
	return nil
}

// ListMenuItems returns the menu, optionally filtered
func (s *MenuService) ListMenuItems(ctx context.Context, params *repository.MenuItemFilterParams) ([]entity.MenuItem, error) {
	items, err := s.menuRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewStoreError("list menu items", err)
	}
	if items == nil {
		items = []entity.MenuItem{}
	}
	return items, nil
}
