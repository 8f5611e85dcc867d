package receipt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt(discount int64) *entity.Receipt {
	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			ShopName:  "Shop",
			Phone:     "98450 12345",
			GSTNumber: "29ABCDE1234F1Z5",
		},
		BillNumber:    42,
		Date:          time.Date(2026, 3, 10, 14, 5, 0, 0, time.UTC),
		PaymentMethod: "Cash",
		Items: []entity.ReceiptItem{
			{Name: "Tea", Quantity: 2, UnitPrice: decimal.NewFromInt(15), Total: decimal.NewFromInt(30)},
			{Name: "Paneer Butter Masala", Quantity: 1, UnitPrice: decimal.NewFromInt(90), Total: decimal.NewFromInt(90)},
		},
		Subtotal:      decimal.NewFromInt(120),
		TaxPercentage: decimal.NewFromInt(5),
		TaxAmount:     decimal.NewFromInt(6),
		Discount:      decimal.NewFromInt(discount),
		Total:         decimal.NewFromInt(126 - discount),
	}
}

func TestFormatter_Lines(t *testing.T) {
	f := NewFormatter(32, time.UTC)
	lines := f.Lines(sampleReceipt(0))

	assert.Equal(t, strings.Repeat(" ", 14)+"Shop", lines[0])
	assert.Equal(t, "     GSTIN: 29ABCDE1234F1Z5", lines[2])
	assert.Contains(t, lines, "Bill No: #42")
	assert.Contains(t, lines, "Date: 10/03/2026 14:05")
	assert.Contains(t, lines, "Payment: Cash")
	assert.Contains(t, lines, printer.KeyValue("Tax (5%)", "Rs.6.00", 32))
	assert.Contains(t, lines, printer.KeyValue("TOTAL", "Rs.126.00", 32))

	for _, l := range lines {
		assert.False(t, strings.HasPrefix(l, "Discount"), "discount line must be hidden when zero")
	}

	n := len(lines)
	assert.Equal(t, []string{"", "", ""}, lines[n-3:])
	assert.Equal(t, printer.Center("Please come again", 32), lines[n-4])
}

func TestFormatter_DiscountShownWhenPositive(t *testing.T) {
	text := NewFormatter(32, time.UTC).Text(sampleReceipt(10))

	assert.Contains(t, text, printer.KeyValue("Discount", "-Rs.10.00", 32))
	assert.Contains(t, text, printer.KeyValue("TOTAL", "Rs.116.00", 32))
}

func TestFormatter_ItemLine(t *testing.T) {
	f := NewFormatter(32, time.UTC)

	line := f.ItemLine(entity.ReceiptItem{Name: "Tea", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)})
	assert.Equal(t, "Tea               2  5.00  10.00", line)
	assert.Len(t, line, 32)

	long := f.ItemLine(entity.ReceiptItem{Name: "Paneer Butter Masala", Quantity: 1, UnitPrice: decimal.NewFromInt(9), Total: decimal.NewFromInt(9)})
	assert.True(t, strings.HasPrefix(long, "Paneer Butter..."))
}

func TestFormatter_LocalDate(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	text := NewFormatter(32, ist).Text(sampleReceipt(0))
	assert.Contains(t, text, "Date: 10/03/2026 19:35")
}

func TestFormatter_HTML(t *testing.T) {
	r := sampleReceipt(10)
	r.Header.ShopName = "Tom & Jerry's"

	out, err := NewFormatter(32, time.UTC).HTML(r)
	require.NoError(t, err)

	assert.Contains(t, out, "Tom &amp; Jerry&#39;s")
	assert.Contains(t, out, "₹116.00")
	assert.Contains(t, out, "-₹10.00")
	assert.Contains(t, out, "Bill No: #42")
	assert.Contains(t, out, "Tax (5%)")
}

func TestFormatter_ESCPOS(t *testing.T) {
	data := NewFormatter(32, time.UTC).ESCPOS(sampleReceipt(0))

	assert.True(t, bytes.HasPrefix(data, []byte{printer.ESC, '@'}))
	assert.True(t, bytes.HasSuffix(data, []byte{printer.GS, 'V', 0x01}))
	assert.Contains(t, string(data), "Bill No: #42\n")
	assert.Contains(t, string(data), string([]byte{printer.ESC, 'E', 1})+"TOTAL")
}
