package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the shop details printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName  string
	Address   string
	Phone     string
	GSTNumber string
}

// ReceiptItem is a single printed line.
type ReceiptItem struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Receipt is a value object composed from a bill, its items and the settings
// at print time. It is not stored.
type Receipt struct {
	Header        ReceiptHeader
	BillNumber    int64
	Date          time.Time
	PaymentMethod string
	Items         []ReceiptItem
	Subtotal      decimal.Decimal
	TaxPercentage decimal.Decimal
	TaxAmount     decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
}

// NewReceipt builds a receipt from persisted rows. The total is recomputed
// from the stored subtotal, tax and discount, and the tax rate is derived
// from the stored amounts so later settings edits do not relabel old bills.
func NewReceipt(bill *Bill, items []BillItem, settings *Settings) *Receipt {
	r := &Receipt{
		BillNumber:    bill.BillNumber,
		Date:          bill.Date,
		PaymentMethod: bill.PaymentLabel(),
		Subtotal:      bill.Subtotal,
		TaxAmount:     bill.TaxAmount,
		Discount:      bill.Discount,
		Total:         bill.ComputedTotal(),
		Items:         make([]ReceiptItem, 0, len(items)),
	}
	if settings != nil {
		r.Header = ReceiptHeader{
			ShopName:  settings.ShopName,
			Address:   settings.ShopAddress,
			Phone:     settings.ShopPhone,
			GSTNumber: settings.GSTNumber,
		}
		r.TaxPercentage = settings.TaxPercentage
	}
	if !bill.Subtotal.IsZero() {
		r.TaxPercentage = bill.TaxAmount.Mul(decimal.NewFromInt(100)).Div(bill.Subtotal)
	}
	for _, it := range items {
		r.Items = append(r.Items, ReceiptItem{
			Name:      it.ItemNameSnapshot,
			Quantity:  it.Quantity,
			UnitPrice: it.PriceSnapshot,
			Total:     it.LineTotal,
		})
	}
	return r
}
