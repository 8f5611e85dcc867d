package request

import "github.com/shopspring/decimal"

// CreateMenuItemRequest represents a menu item creation request
type CreateMenuItemRequest struct {
	Name     string           `json:"name" binding:"required,max=255"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
	Category string           `json:"category" binding:"max=100"`
	IsActive *bool            `json:"is_active"`
}

// UpdateMenuItemRequest represents a menu item update request
type UpdateMenuItemRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=255"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category" binding:"omitempty,max=100"`
	IsActive *bool            `json:"is_active"`
}

// MenuItemFilterRequest represents menu list filters
type MenuItemFilterRequest struct {
	Active   bool   `form:"active"`
	Category string `form:"category"`
	Search   string `form:"search"`
}
