package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is a persisted sale with its computed totals.
// Money columns are unscaled numerics so stored values keep full precision.
type Bill struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	BillNumber    int64               `gorm:"not null;uniqueIndex" json:"bill_number"`
	Date          time.Time           `gorm:"not null;index" json:"date"`
	Subtotal      decimal.Decimal     `gorm:"type:numeric;not null" json:"-"`
	TaxAmount     decimal.Decimal     `gorm:"type:numeric;not null" json:"-"`
	Discount      decimal.Decimal     `gorm:"type:numeric;not null" json:"-"`
	Total         decimal.Decimal     `gorm:"type:numeric;not null" json:"-"`
	PaymentMethod *enum.PaymentMethod `gorm:"type:varchar(16);check:chk_bills_payment_method,payment_method IN ('cash','card','upi')" json:"payment_method"`
	Status        enum.BillStatus     `gorm:"type:varchar(16);not null;index;check:chk_bills_status,status IN ('draft','saved','printed')" json:"status"`
	Version       int                 `gorm:"not null" json:"version"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`

	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// MarshalJSON renders money fields as numbers
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		Subtotal  float64 `json:"subtotal"`
		TaxAmount float64 `json:"tax_amount"`
		Discount  float64 `json:"discount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(b),
		Subtotal:  b.Subtotal.InexactFloat64(),
		TaxAmount: b.TaxAmount.InexactFloat64(),
		Discount:  b.Discount.InexactFloat64(),
		Total:     b.Total.InexactFloat64(),
	})
}

// BeforeCreate fills the id, date, status and version of a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Date.IsZero() {
		b.Date = time.Now().UTC()
	}
	if b.Status == "" {
		b.Status = enum.BillStatusDraft
	}
	if b.Version == 0 {
		b.Version = 1
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// ComputedTotal derives the total from the persisted parts
func (b *Bill) ComputedTotal() decimal.Decimal {
	return b.Subtotal.Add(b.TaxAmount).Sub(b.Discount)
}

// PaymentLabel returns the display label of the payment method
func (b *Bill) PaymentLabel() string {
	return enum.PaymentMethodLabel(b.PaymentMethod)
}

// BillItem is an immutable snapshot of a menu item at the time of sale
type BillItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"bill_id"`
	MenuItemID       *uuid.UUID      `gorm:"type:uuid;index" json:"menu_item_id"` // no foreign key, menu items can be deleted
	ItemNameSnapshot string          `gorm:"size:255;not null" json:"item_name_snapshot"`
	PriceSnapshot    decimal.Decimal `gorm:"type:numeric;not null;check:chk_bill_items_price,price_snapshot >= 0" json:"-"`
	Quantity         int             `gorm:"not null;check:chk_bill_items_quantity,quantity > 0" json:"quantity"`
	Position         int             `gorm:"not null" json:"position"` // cart order
	LineTotal        decimal.Decimal `gorm:"type:numeric;not null" json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MarshalJSON renders money fields as numbers
func (bi BillItem) MarshalJSON() ([]byte, error) {
	type Alias BillItem
	return json.Marshal(&struct {
		Alias
		PriceSnapshot float64 `json:"price_snapshot"`
		LineTotal     float64 `json:"line_total"`
	}{
		Alias:         Alias(bi),
		PriceSnapshot: bi.PriceSnapshot.InexactFloat64(),
		LineTotal:     bi.LineTotal.InexactFloat64(),
	})
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
