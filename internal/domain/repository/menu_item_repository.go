package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/entity"
)

// MenuItemFilterParams contains filtering parameters for menu queries
type MenuItemFilterParams struct {
	ActiveOnly bool
	Category   string
	Search     string
}

// MenuItemRepository defines the interface for menu item data operations
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *MenuItemFilterParams) ([]entity.MenuItem, error)
}
