package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DayLabelLayout formats the daily revenue buckets, e.g. "Mar 10"
const DayLabelLayout = "Jan 02"

// ReportService aggregates finalized bills into revenue reports
type ReportService struct {
	billRepo repository.BillRepository
	settings *SettingsService
	location *time.Location
	now      func() time.Time
}

// NewReportService creates a new report service
func NewReportService(billRepo repository.BillRepository, settings *SettingsService, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		billRepo: billRepo,
		settings: settings,
		location: loc,
		now:      time.Now,
	}
}

// RevenueReport summarizes the finalized bills of a date range
type RevenueReport struct {
	StartDate       time.Time
	EndDate         time.Time
	TotalRevenue    decimal.Decimal
	BillCount       int
	Average         decimal.Decimal
	Daily           []DailyRevenue
	ByPaymentMethod []PaymentMethodRevenue
	Bills           []entity.Bill
}

// DailyRevenue is one calendar day of revenue
type DailyRevenue struct {
	Label   string
	Day     time.Time
	Revenue decimal.Decimal
	Count   int
}

// PaymentMethodRevenue is the revenue settled through one payment method
type PaymentMethodRevenue struct {
	Method string
	Amount decimal.Decimal
	Count  int
}

// MarshalJSON renders dates as calendar days and money as numbers; the bill
// list is left to the exports.
func (r RevenueReport) MarshalJSON() ([]byte, error) {
	type day struct {
		Date    string  `json:"date"`
		Label   string  `json:"label"`
		Revenue float64 `json:"revenue"`
		Count   int     `json:"count"`
	}
	type method struct {
		Method string  `json:"method"`
		Amount float64 `json:"amount"`
		Count  int     `json:"count"`
	}
	out := struct {
		StartDate       string   `json:"start_date"`
		EndDate         string   `json:"end_date"`
		TotalRevenue    float64  `json:"total_revenue"`
		BillCount       int      `json:"bill_count"`
		Average         float64  `json:"average_bill_value"`
		Daily           []day    `json:"daily"`
		ByPaymentMethod []method `json:"by_payment_method"`
	}{
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		TotalRevenue:    r.TotalRevenue.InexactFloat64(),
		BillCount:       r.BillCount,
		Average:         r.Average.Round(2).InexactFloat64(),
		Daily:           make([]day, 0, len(r.Daily)),
		ByPaymentMethod: make([]method, 0, len(r.ByPaymentMethod)),
	}
	for _, d := range r.Daily {
		out.Daily = append(out.Daily, day{Date: d.Day.Format("2006-01-02"), Label: d.Label, Revenue: d.Revenue.InexactFloat64(), Count: d.Count})
	}
	for _, m := range r.ByPaymentMethod {
		out.ByPaymentMethod = append(out.ByPaymentMethod, method{Method: m.Method, Amount: m.Amount.InexactFloat64(), Count: m.Count})
	}
	return json.Marshal(out)
}

// Revenue builds the report for the inclusive calendar range [start, end]
func (s *ReportService) Revenue(ctx context.Context, start, end time.Time) (*RevenueReport, error) {
	from := StartOfDay(start, s.location)
	last := StartOfDay(end, s.location)
	if last.Before(from) {
		return nil, apperror.NewValidationError(apperror.FieldError{Field: "end_date", Message: "End date must not be before start date"})
	}

	bills, err := s.billRepo.ListFinalizedBetween(ctx, from, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperror.NewStoreError("load revenue", err)
	}

	report := AggregateRevenue(bills, s.location)
	report.StartDate = from
	report.EndDate = last
	return report, nil
}

// Today builds the report for the current day in the shop time zone
func (s *ReportService) Today(ctx context.Context) (*RevenueReport, error) {
	today := s.now()
	return s.Revenue(ctx, today, today)
}

// AggregateRevenue groups bills by local calendar day and by payment method.
// Totals are recomputed from each bill's stored parts.
func AggregateRevenue(bills []entity.Bill, loc *time.Location) *RevenueReport {
	report := &RevenueReport{
		TotalRevenue:    decimal.Zero,
		Average:         decimal.Zero,
		Daily:           []DailyRevenue{},
		ByPaymentMethod: []PaymentMethodRevenue{},
		Bills:           bills,
	}
	if report.Bills == nil {
		report.Bills = []entity.Bill{}
	}

	days := map[string]*DailyRevenue{}
	methods := map[string]*PaymentMethodRevenue{}

	for i := range bills {
		b := &bills[i]
		total := b.ComputedTotal()
		report.TotalRevenue = report.TotalRevenue.Add(total)
		report.BillCount++

		day := StartOfDay(b.Date, loc)
		key := day.Format("2006-01-02")
		d, ok := days[key]
		if !ok {
			d = &DailyRevenue{Label: day.Format(DayLabelLayout), Day: day, Revenue: decimal.Zero}
			days[key] = d
		}
		d.Revenue = d.Revenue.Add(total)
		d.Count++

		label := b.PaymentLabel()
		m, ok := methods[label]
		if !ok {
			m = &PaymentMethodRevenue{Method: label, Amount: decimal.Zero}
			methods[label] = m
		}
		m.Amount = m.Amount.Add(total)
		m.Count++
	}

	if report.BillCount > 0 {
		report.Average = report.TotalRevenue.Div(decimal.NewFromInt(int64(report.BillCount)))
	}

	for _, d := range days {
		report.Daily = append(report.Daily, *d)
	}
	sort.Slice(report.Daily, func(i, j int) bool {
		return report.Daily[i].Day.Before(report.Daily[j].Day)
	})

	for _, m := range methods {
		report.ByPaymentMethod = append(report.ByPaymentMethod, *m)
	}
	sort.Slice(report.ByPaymentMethod, func(i, j int) bool {
		a, b := report.ByPaymentMethod[i], report.ByPaymentMethod[j]
		if c := a.Amount.Cmp(b.Amount); c != 0 {
			return c > 0
		}
		return a.Method < b.Method
	})

	return report
}
