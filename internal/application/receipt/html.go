package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/sangkips/billing-api/internal/domain/entity"
)

var htmlTemplate = template.Must(template.New("receipt").Parse(`<div class="receipt">
<div class="receipt-header">
{{- with .Header.ShopName}}<h2>{{.}}</h2>{{end}}
{{- with .Header.Address}}<p>{{.}}</p>{{end}}
{{- with .Header.Phone}}<p>{{.}}</p>{{end}}
{{- with .Header.GSTNumber}}<p>GSTIN: {{.}}</p>{{end}}
</div>
<div class="receipt-meta">
<p>Bill No: #{{.BillNumber}}</p>
<p>Date: {{.Date}}</p>
<p>Payment: {{.PaymentMethod}}</p>
</div>
<table class="receipt-items">
<thead><tr><th>Item</th><th>Qty</th><th>Price</th><th>Total</th></tr></thead>
<tbody>
{{- range .Items}}
<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.Total}}</td></tr>
{{- end}}
</tbody>
</table>
<table class="receipt-totals">
<tr><td>Subtotal</td><td>{{.Subtotal}}</td></tr>
<tr><td>{{.TaxLabel}}</td><td>{{.TaxAmount}}</td></tr>
{{- if .Discount}}
<tr><td>Discount</td><td>-{{.Discount}}</td></tr>
{{- end}}
<tr class="receipt-total"><th>TOTAL</th><th>{{.Total}}</th></tr>
</table>
<div class="receipt-footer">
{{- range .ThankYou}}<p>{{.}}</p>{{end}}
</div>
</div>
`))

type htmlItem struct {
	Name      string
	Quantity  int
	UnitPrice string
	Total     string
}

type htmlView struct {
	Header        entity.ReceiptHeader
	BillNumber    int64
	Date          string
	PaymentMethod string
	Items         []htmlItem
	Subtotal      string
	TaxLabel      string
	TaxAmount     string
	Discount      string
	Total         string
	ThankYou      []string
}

// HTML renders the receipt as an HTML fragment priced in rupees
func (f *Formatter) HTML(r *entity.Receipt) (string, error) {
	view := htmlView{
		Header:        r.Header,
		BillNumber:    r.BillNumber,
		Date:          r.Date.In(f.location).Format(dateLayout),
		PaymentMethod: r.PaymentMethod,
		Subtotal:      money(HTMLCurrency, r.Subtotal),
		TaxLabel:      TaxLabel(r.TaxPercentage),
		TaxAmount:     money(HTMLCurrency, r.TaxAmount),
		Total:         money(HTMLCurrency, r.Total),
		ThankYou:      thankYouLines,
		Items:         make([]htmlItem, 0, len(r.Items)),
	}
	if r.Discount.IsPositive() {
		view.Discount = money(HTMLCurrency, r.Discount)
	}
	for _, it := range r.Items {
		view.Items = append(view.Items, htmlItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: money(HTMLCurrency, it.UnitPrice),
			Total:     money(HTMLCurrency, it.Total),
		})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}
