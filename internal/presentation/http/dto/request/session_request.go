package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a menu item to a session cart
type AddItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity"`
}

// SetQuantityRequest sets the quantity of a cart line; zero removes it
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SetDiscountRequest sets the flat discount of a session
type SetDiscountRequest struct {
	Discount *decimal.Decimal `json:"discount" binding:"required"`
}

// SetPaymentMethodRequest sets or clears the payment method
type SetPaymentMethodRequest struct {
	PaymentMethod *string `json:"payment_method"`
}

// SaveBillRequest is the optional body of a save call
type SaveBillRequest struct {
	Print bool `json:"print"`
}

// LoadBillRequest loads a stored bill into a session
type LoadBillRequest struct {
	BillID uuid.UUID `json:"bill_id" binding:"required"`
}
