// Package receipt renders bill receipts as fixed-width text, HTML and ESC/POS.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/pkg/printer"
	"github.com/shopspring/decimal"
)

// Currency prefixes for the two output families
const (
	TextCurrency = "Rs."
	HTMLCurrency = "₹"
)

const (
	dateLayout = "02/01/2006 15:04"
	qtyWidth   = 3
	priceWidth = 5
	totalWidth = 6
)

var thankYouLines = []string{"Thank you for your visit!", "Please come again"}

// Formatter lays out receipts for a given paper width and shop time zone
type Formatter struct {
	width    int
	location *time.Location
}

// NewFormatter creates a formatter. A non-positive width means 58mm paper.
func NewFormatter(width int, loc *time.Location) *Formatter {
	if width <= 0 {
		width = printer.DefaultWidth
	}
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{width: width, location: loc}
}

// Width returns the receipt width in characters
func (f *Formatter) Width() int {
	return f.width
}

func (f *Formatter) nameWidth() int {
	return f.width - qtyWidth - priceWidth - totalWidth - 2
}

// Lines renders the receipt as fixed-width text lines, trailer included
func (f *Formatter) Lines(r *entity.Receipt) []string {
	divider := printer.Divider('-', f.width)
	var lines []string

	for _, h := range []string{r.Header.ShopName, r.Header.Address, r.Header.Phone} {
		if strings.TrimSpace(h) != "" {
			lines = append(lines, printer.Center(h, f.width))
		}
	}
	if r.Header.GSTNumber != "" {
		lines = append(lines, printer.Center("GSTIN: "+r.Header.GSTNumber, f.width))
	}
	lines = append(lines, divider)

	lines = append(lines,
		fmt.Sprintf("Bill No: #%d", r.BillNumber),
		"Date: "+r.Date.In(f.location).Format(dateLayout),
		"Payment: "+r.PaymentMethod,
		divider,
	)

	lines = append(lines, f.row("Item", "Qty", "Price", "Total"))
	for _, it := range r.Items {
		lines = append(lines, f.ItemLine(it))
	}
	lines = append(lines, divider)

	lines = append(lines,
		printer.KeyValue("Subtotal", money(TextCurrency, r.Subtotal), f.width),
		printer.KeyValue(TaxLabel(r.TaxPercentage), money(TextCurrency, r.TaxAmount), f.width),
	)
	if r.Discount.IsPositive() {
		lines = append(lines, printer.KeyValue("Discount", "-"+money(TextCurrency, r.Discount), f.width))
	}
	lines = append(lines,
		divider,
		printer.KeyValue("TOTAL", money(TextCurrency, r.Total), f.width),
		divider,
	)

	for _, t := range thankYouLines {
		lines = append(lines, printer.Center(t, f.width))
	}
	return append(lines, "", "", "")
}

// Text renders the receipt as a single newline-joined string
func (f *Formatter) Text(r *entity.Receipt) string {
	return strings.Join(f.Lines(r), "\n")
}

// ItemLine lays out one item: name column, then qty, unit price and line
// total right-justified. Names longer than the column end in "...".
func (f *Formatter) ItemLine(it entity.ReceiptItem) string {
	return f.row(
		it.Name,
		fmt.Sprintf("%d", it.Quantity),
		it.UnitPrice.StringFixed(2),
		it.Total.StringFixed(2),
	)
}

func (f *Formatter) row(name, qty, price, total string) string {
	w := f.nameWidth()
	return printer.PadRight(printer.Truncate(name, w), w) +
		printer.PadLeft(qty, qtyWidth) + " " +
		printer.PadLeft(price, priceWidth) + " " +
		printer.PadLeft(total, totalWidth)
}

// TaxLabel formats the tax line label, e.g. "Tax (5%)"
func TaxLabel(pct decimal.Decimal) string {
	return "Tax (" + pct.Round(2).String() + "%)"
}

func money(currency string, d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}
