package service

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sangkips/billing-api/internal/application/receipt"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	exportDateLayout = "02/01/2006 15:04"
	periodLayout     = "02 Jan 2006"
	revenueSheet     = "Revenue"
)

var exportColumns = []string{"Bill No", "Date", "Payment", "Subtotal", "Tax", "Discount", "Total"}

// column widths out of maroto's 12-unit grid
var pdfColumnSizes = []int{1, 3, 2, 2, 1, 1, 2}

// ExportPDF renders the revenue report for [start, end] as a PDF
func (s *ReportService) ExportPDF(ctx context.Context, start, end time.Time) ([]byte, error) {
	report, err := s.Revenue(ctx, start, end)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return RenderRevenuePDF(report, settings.ShopName, s.location)
}

// ExportXLSX renders the revenue report for [start, end] as a spreadsheet
func (s *ReportService) ExportXLSX(ctx context.Context, start, end time.Time) ([]byte, error) {
	report, err := s.Revenue(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return RenderRevenueXLSX(report, s.location)
}

func periodLabel(r *RevenueReport) string {
	return fmt.Sprintf("%s - %s", r.StartDate.Format(periodLayout), r.EndDate.Format(periodLayout))
}

func amount(d decimal.Decimal) string {
	return receipt.TextCurrency + d.StringFixed(2)
}

// exportRows flattens the bills of a report into table cells
func exportRows(r *RevenueReport, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(r.Bills))
	for i := range r.Bills {
		b := &r.Bills[i]
		rows = append(rows, []string{
			fmt.Sprintf("#%d", b.BillNumber),
			b.Date.In(loc).Format(exportDateLayout),
			b.PaymentLabel(),
			b.Subtotal.StringFixed(2),
			b.TaxAmount.StringFixed(2),
			b.Discount.StringFixed(2),
			b.ComputedTotal().StringFixed(2),
		})
	}
	return rows
}

// RenderRevenuePDF lays out the period, the summary and one row per bill
func RenderRevenuePDF(r *RevenueReport, shopName string, loc *time.Location) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()
	m := maroto.New(cfg)

	m.AddRows(
		text.NewRow(10, shopName, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}),
		text.NewRow(8, "Revenue Report", props.Text{Size: 12, Align: align.Center}),
		text.NewRow(7, "Period: "+periodLabel(r), props.Text{Size: 10, Align: align.Center}),
		line.NewRow(4),
	)

	summary := props.Text{Size: 10}
	m.AddRow(6,
		text.NewCol(4, "Total Revenue: "+amount(r.TotalRevenue), summary),
		text.NewCol(4, fmt.Sprintf("Bills: %d", r.BillCount), summary),
		text.NewCol(4, "Average: "+amount(r.Average.Round(2)), summary),
	)
	m.AddRows(line.NewRow(4))

	header := props.Text{Size: 9, Style: fontstyle.Bold}
	cols := make([]core.Col, 0, len(exportColumns))
	for i, title := range exportColumns {
		cols = append(cols, text.NewCol(pdfColumnSizes[i], title, header))
	}
	m.AddRow(7, cols...)

	cell := props.Text{Size: 8}
	for _, values := range exportRows(r, loc) {
		rowCols := make([]core.Col, 0, len(values))
		for i, v := range values {
			rowCols = append(rowCols, text.NewCol(pdfColumnSizes[i], v, cell))
		}
		m.AddRow(6, rowCols...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate revenue pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderRevenueXLSX writes the summary block followed by the bill table
func RenderRevenueXLSX(r *RevenueReport, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", revenueSheet); err != nil {
		return nil, fmt.Errorf("name revenue sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Period", periodLabel(r)},
		{"Total Revenue", r.TotalRevenue.InexactFloat64()},
		{"Bills", r.BillCount},
		{"Average", r.Average.Round(2).InexactFloat64()},
	}
	for i, kv := range summary {
		for j, v := range kv {
			if err := setCell(f, j+1, i+1, v); err != nil {
				return nil, err
			}
		}
	}

	headerRow := len(summary) + 2
	for j, title := range exportColumns {
		if err := setCell(f, j+1, headerRow, title); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(exportColumns), headerRow)
	if err := f.SetCellStyle(revenueSheet, first, last, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i := range r.Bills {
		b := &r.Bills[i]
		row := headerRow + 1 + i
		values := []interface{}{
			b.BillNumber,
			b.Date.In(loc).Format(exportDateLayout),
			b.PaymentLabel(),
			b.Subtotal.InexactFloat64(),
			b.TaxAmount.InexactFloat64(),
			b.Discount.InexactFloat64(),
			b.ComputedTotal().InexactFloat64(),
		}
		for j, v := range values {
			if err := setCell(f, j+1, row, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(revenueSheet, "A", "G", 16); err != nil {
		return nil, fmt.Errorf("size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write revenue xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(revenueSheet, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}
