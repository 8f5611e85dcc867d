package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Settings is the singleton shop configuration applied to billing and printing
type Settings struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShopName      string          `gorm:"size:255;not null" json:"shop_name"`
	ShopAddress   string          `gorm:"size:500" json:"shop_address"`
	ShopPhone     string          `gorm:"size:50" json:"shop_phone"`
	GSTNumber     string          `gorm:"column:gst_number;size:50" json:"gst_number"`
	TaxPercentage decimal.Decimal `gorm:"type:numeric;not null;check:chk_settings_tax,tax_percentage >= 0" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MarshalJSON renders the tax percentage as a number
func (s Settings) MarshalJSON() ([]byte, error) {
	type Alias Settings
	return json.Marshal(&struct {
		Alias
		TaxPercentage float64 `json:"tax_percentage"`
	}{
		Alias:         Alias(s),
		TaxPercentage: s.TaxPercentage.InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating the settings row
func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Settings model
func (Settings) TableName() string {
	return "settings"
}
