package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// LoadedCategory is assigned to lines rebuilt from bill snapshots, which do
// not record the category.
const LoadedCategory = "Uncategorized"

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("item is not in the cart")
	ErrInactiveItem    = errors.New("menu item is not available for sale")
)

// Session is the billing state owned by one terminal: the cart, discount,
// payment method and the bill it is bound to, if any.
type Session struct {
	ID            uuid.UUID
	Discount      decimal.Decimal
	PaymentMethod *enum.PaymentMethod
	CreatedAt     time.Time
	UpdatedAt     time.Time

	lines       []CartLine
	billID      *uuid.UUID
	billVersion int
}

// NewSession creates an empty session in the composing state
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Discount:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lines returns a copy of the cart lines in insertion order
func (s *Session) Lines() []CartLine {
	out := make([]CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// IsEmpty reports whether the cart has no lines
func (s *Session) IsEmpty() bool {
	return len(s.lines) == 0
}

// AddItem adds quantity units of an active menu item, merging with an
// existing line for the same item.
func (s *Session) AddItem(item *entity.MenuItem, quantity int) error {
	if !item.IsActive {
		return ErrInactiveItem
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	defer s.touch()

	if i := s.indexOf(item.ID); i >= 0 {
		s.lines[i].Quantity += quantity
		return nil
	}
	s.lines = append(s.lines, CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   quantity,
		Category:   item.Category,
	})
	return nil
}

// SetQuantity changes the quantity of a line; zero removes it
func (s *Session) SetQuantity(menuItemID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	i := s.indexOf(menuItemID)
	if i < 0 {
		return ErrLineNotFound
	}
	defer s.touch()

	if quantity == 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		return nil
	}
	s.lines[i].Quantity = quantity
	return nil
}

// RemoveItem drops a line from the cart
func (s *Session) RemoveItem(menuItemID uuid.UUID) error {
	return s.SetQuantity(menuItemID, 0)
}

// SetDiscount sets the flat discount; it is not clamped
func (s *Session) SetDiscount(discount decimal.Decimal) {
	s.Discount = discount
	s.touch()
}

// SetPaymentMethod sets or, with nil, clears the payment method
func (s *Session) SetPaymentMethod(method *enum.PaymentMethod) {
	s.PaymentMethod = method
	s.touch()
}

// Totals recomputes the cart totals for the given tax rate
func (s *Session) Totals(taxPercentage decimal.Decimal) Totals {
	return CalculateTotals(s.lines, taxPercentage, s.Discount)
}

// BoundBill returns the bill this session edits and the version it was read at
func (s *Session) BoundBill() (uuid.UUID, int, bool) {
	if s.billID == nil {
		return uuid.Nil, 0, false
	}
	return *s.billID, s.billVersion, true
}

// Bind attaches the session to a persisted bill
func (s *Session) Bind(billID uuid.UUID, version int) {
	id := billID
	s.billID = &id
	s.billVersion = version
	s.touch()
}

// Clear returns the session to the composing state without touching the store
func (s *Session) Clear() {
	s.lines = nil
	s.Discount = decimal.Zero
	s.PaymentMethod = nil
	s.billID = nil
	s.billVersion = 0
	s.touch()
}

// Restore replaces the session contents with a persisted bill. Lines are keyed
// by the menu item they were sold from, or by the snapshot id when the row
// does not record one.
func (s *Session) Restore(bill *entity.Bill, items []entity.BillItem) {
	s.lines = make([]CartLine, 0, len(items))
	for _, it := range items {
		key := it.ID
		if it.MenuItemID != nil {
			key = *it.MenuItemID
		}
		s.lines = append(s.lines, CartLine{
			MenuItemID: key,
			Name:       it.ItemNameSnapshot,
			UnitPrice:  it.PriceSnapshot,
			Quantity:   it.Quantity,
			Category:   LoadedCategory,
		})
	}
	s.Discount = bill.Discount
	s.PaymentMethod = nil
	if bill.PaymentMethod != nil {
		m := *bill.PaymentMethod
		s.PaymentMethod = &m
	}
	s.Bind(bill.ID, bill.Version)
}

// Snapshots converts the cart into bill item rows for the given bill
func (s *Session) Snapshots(billID uuid.UUID) []entity.BillItem {
	items := make([]entity.BillItem, 0, len(s.lines))
	for i, l := range s.lines {
		menuItemID := l.MenuItemID
		items = append(items, entity.BillItem{
			BillID:           billID,
			MenuItemID:       &menuItemID,
			ItemNameSnapshot: l.Name,
			PriceSnapshot:    l.UnitPrice,
			Quantity:         l.Quantity,
			LineTotal:        l.LineTotal(),
			Position:         i,
		})
	}
	return items
}

func (s *Session) indexOf(menuItemID uuid.UUID) int {
	for i := range s.lines {
		if s.lines[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}
