package request

import "github.com/shopspring/decimal"

// UpdateSettingsRequest represents a shop settings update. Omitted fields
// keep their stored value.
type UpdateSettingsRequest struct {
	ShopName      *string          `json:"shop_name" binding:"omitempty,max=255"`
	ShopAddress   *string          `json:"shop_address"`
	ShopPhone     *string          `json:"shop_phone" binding:"omitempty,max=50"`
	GSTNumber     *string          `json:"gst_number" binding:"omitempty,max=50"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
}
