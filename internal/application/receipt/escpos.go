package receipt

import (
	"strings"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/pkg/printer"
)

// ESCPOS converts a receipt into printer bytes: init, the text lines with a
// bold total, then a partial cut. The blank trailer lines feed the paper.
func (f *Formatter) ESCPOS(r *entity.Receipt) []byte {
	doc := printer.NewDocument(f.width)
	doc.SetAlign(printer.AlignLeft)

	for _, line := range f.Lines(r) {
		if strings.HasPrefix(line, "TOTAL") {
			doc.SetBold(true).Text(line).SetBold(false)
			continue
		}
		doc.Text(line)
	}

	return doc.PartialCut().Bytes()
}
