package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/billing"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// BillingService drives a session through compose, save, load and delete
type BillingService struct {
	billRepo     repository.BillRepository
	billItemRepo repository.BillItemRepository
	menuRepo     repository.MenuItemRepository
	settings     *SettingsService
	bills        *BillService
	reports      *ReportService
	printer      *PrinterService
	now          func() time.Time
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepository,
	billItemRepo repository.BillItemRepository,
	menuRepo repository.MenuItemRepository,
	settings *SettingsService,
	bills *BillService,
	reports *ReportService,
	printer *PrinterService,
) *BillingService {
	return &BillingService{
		billRepo:     billRepo,
		billItemRepo: billItemRepo,
		menuRepo:     menuRepo,
		settings:     settings,
		bills:        bills,
		reports:      reports,
		printer:      printer,
		now:          time.Now,
	}
}

// SessionLine is a cart line with its line total
type SessionLine struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	UnitPrice  float64   `json:"unit_price"`
	Quantity   int       `json:"quantity"`
	LineTotal  float64   `json:"line_total"`
}

// SessionView is a session with totals computed at the current tax rate
type SessionView struct {
	ID            uuid.UUID           `json:"id"`
	Items         []SessionLine       `json:"items"`
	ItemCount     int                 `json:"item_count"`
	Subtotal      float64             `json:"subtotal"`
	TaxPercentage float64             `json:"tax_percentage"`
	TaxAmount     float64             `json:"tax_amount"`
	Discount      float64             `json:"discount"`
	Total         float64             `json:"total"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method"`
	BillID        *uuid.UUID          `json:"bill_id"`
	BillVersion   int                 `json:"bill_version,omitempty"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// SaveResult is returned after a save: the bill plus the refreshed drafts
// list and today's revenue
type SaveResult struct {
	Bill         *entity.Bill   `json:"bill"`
	Session      *SessionView   `json:"session"`
	Drafts       []entity.Bill  `json:"drafts"`
	TodayRevenue *RevenueReport `json:"today_revenue"`
	Warning      string         `json:"warning,omitempty"`
}

// View recomputes the totals of a session
func (s *BillingService) View(ctx context.Context, sess *billing.Session) (*SessionView, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return buildView(sess, settings.TaxPercentage), nil
}

func buildView(sess *billing.Session, taxPercentage decimal.Decimal) *SessionView {
	totals := sess.Totals(taxPercentage)
	lines := sess.Lines()

	view := &SessionView{
		ID:            sess.ID,
		Items:         make([]SessionLine, 0, len(lines)),
		Subtotal:      totals.Subtotal.Round(2).InexactFloat64(),
		TaxPercentage: taxPercentage.InexactFloat64(),
		TaxAmount:     totals.TaxAmount.Round(2).InexactFloat64(),
		Discount:      totals.Discount.Round(2).InexactFloat64(),
		Total:         totals.Total.Round(2).InexactFloat64(),
		PaymentMethod: sess.PaymentMethod,
		UpdatedAt:     sess.UpdatedAt,
	}
	for _, l := range lines {
		view.Items = append(view.Items, SessionLine{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			Category:   l.Category,
			UnitPrice:  l.UnitPrice.InexactFloat64(),
			Quantity:   l.Quantity,
			LineTotal:  l.LineTotal().Round(2).InexactFloat64(),
		})
		view.ItemCount += l.Quantity
	}
	if id, version, ok := sess.BoundBill(); ok {
		view.BillID = &id
		view.BillVersion = version
	}
	return view
}

// AddItem puts quantity units of a menu item into the cart
func (s *BillingService) AddItem(ctx context.Context, sess *billing.Session, menuItemID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return apperror.NewValidationError(apperror.FieldError{Field: "quantity", Message: billing.ErrInvalidQuantity.Error()})
	}
	item, err := s.menuRepo.GetByID(ctx, menuItemID)
	if err != nil {
		return apperror.NewStoreError("load menu item", err)
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	return cartError(sess.AddItem(item, quantity))
}

// SetQuantity changes a line quantity; zero removes the line
func (s *BillingService) SetQuantity(sess *billing.Session, menuItemID uuid.UUID, quantity int) error {
	return cartError(sess.SetQuantity(menuItemID, quantity))
}

// RemoveItem drops a line from the cart
func (s *BillingService) RemoveItem(sess *billing.Session, menuItemID uuid.UUID) error {
	return cartError(sess.RemoveItem(menuItemID))
}

func cartError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, billing.ErrLineNotFound):
		return apperror.NewNotFoundError("Cart item")
	case errors.Is(err, billing.ErrInvalidQuantity):
		return apperror.NewValidationError(apperror.FieldError{Field: "quantity", Message: err.Error()})
	case errors.Is(err, billing.ErrInactiveItem):
		return apperror.NewValidationError(apperror.FieldError{Field: "menu_item_id", Message: err.Error()})
	}
	return err
}

// Save finalizes the session's cart as a bill. With printAfter the bill is
// marked printed and its receipt is sent to the printer; a printer failure
// only adds a warning.
func (s *BillingService) Save(ctx context.Context, sess *billing.Session, printAfter bool) (*SaveResult, error) {
	status := enum.BillStatusSaved
	if printAfter {
		status = enum.BillStatusPrinted
	}
	return s.save(ctx, sess, status, printAfter)
}

// SaveDraft persists the cart as a draft that can be loaded later
func (s *BillingService) SaveDraft(ctx context.Context, sess *billing.Session) (*SaveResult, error) {
	return s.save(ctx, sess, enum.BillStatusDraft, false)
}

func (s *BillingService) save(ctx context.Context, sess *billing.Session, status enum.BillStatus, printAfter bool) (*SaveResult, error) {
	if sess.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	totals := sess.Totals(settings.TaxPercentage)

	bill, updated, err := s.persist(ctx, sess, totals, status)
	if err != nil {
		return nil, err
	}

	items := sess.Snapshots(bill.ID)
	if updated {
		if err := s.billItemRepo.DeleteByBillID(ctx, bill.ID); err != nil {
			return nil, apperror.NewStoreError("replace bill items", err)
		}
	}
	if err := s.billItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, apperror.NewStoreError("save bill items", err)
	}
	bill.Items = items

	result := &SaveResult{Bill: bill}
	if printAfter && s.printer != nil {
		if err := s.printer.PrintBill(ctx, bill, items); err != nil {
			result.Warning = "Bill saved but printing failed: " + err.Error()
		}
	}

	if result.Drafts, err = s.bills.ListDrafts(ctx); err != nil {
		return nil, err
	}
	if result.TodayRevenue, err = s.reports.Today(ctx); err != nil {
		return nil, err
	}
	result.Session = buildView(sess, settings.TaxPercentage)

	log.Printf("Bill #%d %s (%s)", bill.BillNumber, status, bill.ID)
	return result, nil
}

// persist writes the bill row, updating the bound bill in place or inserting
// a new one, and reports whether it updated. The session is bound to the row
// as soon as it exists so a retry after a failed item write updates instead
// of duplicating.
func (s *BillingService) persist(ctx context.Context, sess *billing.Session, totals billing.Totals, status enum.BillStatus) (*entity.Bill, bool, error) {
	if id, version, ok := sess.BoundBill(); ok {
		bill, err := s.billRepo.GetByID(ctx, id)
		if err != nil {
			return nil, false, apperror.NewStoreError("load bill", err)
		}
		if bill == nil {
			return nil, false, apperror.NewNotFoundError("Bill")
		}

		applyTotals(bill, totals, sess.PaymentMethod, status)
		if err := s.billRepo.Update(ctx, bill, version); err != nil {
			if errors.Is(err, repository.ErrStaleBill) {
				return nil, false, apperror.ErrConflict
			}
			return nil, false, apperror.NewStoreError("update bill", err)
		}
		sess.Bind(bill.ID, bill.Version)
		return bill, true, nil
	}

	bill := &entity.Bill{Date: s.now()}
	applyTotals(bill, totals, sess.PaymentMethod, status)
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, false, apperror.NewStoreError("create bill", err)
	}
	sess.Bind(bill.ID, bill.Version)
	return bill, false, nil
}

func applyTotals(bill *entity.Bill, totals billing.Totals, method *enum.PaymentMethod, status enum.BillStatus) {
	bill.Subtotal = totals.Subtotal
	bill.TaxAmount = totals.TaxAmount
	bill.Discount = totals.Discount
	bill.Total = totals.Total
	bill.PaymentMethod = nil
	if method != nil {
		m := *method
		bill.PaymentMethod = &m
	}
	bill.Status = status
}

// Load replaces the session contents with a stored bill and binds it
func (s *BillingService) Load(ctx context.Context, sess *billing.Session, billID uuid.UUID) error {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return apperror.NewStoreError("load bill", err)
	}
	if bill == nil {
		return apperror.NewNotFoundError("Bill")
	}

	items, err := s.billItemRepo.GetByBillID(ctx, billID)
	if err != nil {
		return apperror.NewStoreError("load bill items", err)
	}

	sess.Restore(bill, items)
	return nil
}

// Clear empties the session without touching the store
func (s *BillingService) Clear(sess *billing.Session) {
	sess.Clear()
}

// Delete removes a bill's items and then the bill row
func (s *BillingService) Delete(ctx context.Context, billID uuid.UUID) error {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return apperror.NewStoreError("load bill", err)
	}
	if bill == nil {
		return apperror.NewNotFoundError("Bill")
	}

	if err := s.billItemRepo.DeleteByBillID(ctx, billID); err != nil {
		return apperror.NewStoreError("delete bill items", err)
	}
	if err := s.billRepo.Delete(ctx, billID); err != nil {
		return apperror.NewStoreError("delete bill", err)
	}
	return nil
}
