package entity

import (
	"encoding/json"
	"testing"

	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceipt_RecomputesTotalAndTaxRate(t *testing.T) {
	card := enum.PaymentMethodCard
	bill := &Bill{
		BillNumber:    7,
		Subtotal:      decimal.NewFromInt(200),
		TaxAmount:     decimal.NewFromInt(10),
		Discount:      decimal.NewFromInt(10),
		Total:         decimal.NewFromInt(999), // stale stored total is ignored
		PaymentMethod: &card,
	}
	settings := &Settings{ShopName: "Chai Point", TaxPercentage: decimal.NewFromInt(18)}
	items := []BillItem{{ItemNameSnapshot: "Thali", PriceSnapshot: decimal.NewFromInt(100), Quantity: 2, LineTotal: decimal.NewFromInt(200)}}

	r := NewReceipt(bill, items, settings)

	assert.Equal(t, "200", r.Total.String())
	assert.Equal(t, "5", r.TaxPercentage.String())
	assert.Equal(t, "Card", r.PaymentMethod)
	assert.Equal(t, "Chai Point", r.Header.ShopName)
	require.Len(t, r.Items, 1)
	assert.Equal(t, 2, r.Items[0].Quantity)
}

func TestNewReceipt_ZeroSubtotalUsesSettingsRate(t *testing.T) {
	bill := &Bill{Subtotal: decimal.Zero, TaxAmount: decimal.Zero, Discount: decimal.Zero}

	r := NewReceipt(bill, nil, &Settings{TaxPercentage: decimal.NewFromInt(5)})

	assert.Equal(t, "5", r.TaxPercentage.String())
	assert.Equal(t, enum.PaymentMethodNotSpecified, r.PaymentMethod)
	assert.Empty(t, r.Items)
}

func TestBill_MarshalJSONUsesNumbers(t *testing.T) {
	bill := Bill{Subtotal: decimal.RequireFromString("12.50"), TaxAmount: decimal.Zero, Discount: decimal.Zero, Total: decimal.RequireFromString("12.50"), Status: enum.BillStatusSaved}

	data, err := json.Marshal(bill)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 12.5, out["subtotal"])
	assert.Equal(t, "saved", out["status"])
	assert.Nil(t, out["payment_method"])
}
