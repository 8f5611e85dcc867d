package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItem(name, price string) *entity.MenuItem {
	return &entity.MenuItem{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "Drinks",
		IsActive: true,
	}
}

func TestSession_AddItemMergesLines(t *testing.T) {
	s := NewSession()
	tea := menuItem("Tea", "15")

	require.NoError(t, s.AddItem(tea, 1))
	require.NoError(t, s.AddItem(tea, 2))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "Drinks", lines[0].Category)
}

func TestSession_RestoreKeysLinesByMenuItem(t *testing.T) {
	tea := menuItem("Tea", "10")
	s := NewSession()
	require.NoError(t, s.AddItem(tea, 1))
	bill := &entity.Bill{ID: uuid.New(), Version: 1, Discount: decimal.Zero}
	items := s.Snapshots(bill.ID)
	require.NotNil(t, items[0].MenuItemID)
	assert.Equal(t, tea.ID, *items[0].MenuItemID)

	loaded := NewSession()
	loaded.Restore(bill, items)
	require.NoError(t, loaded.AddItem(tea, 2))

	lines := loaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	require.NoError(t, loaded.SetQuantity(tea.ID, 5))
	assert.Equal(t, 5, loaded.Lines()[0].Quantity)
}

func TestSession_RestoreWithoutMenuItemFallsBackToSnapshotID(t *testing.T) {
	snapshot := entity.BillItem{ID: uuid.New(), ItemNameSnapshot: "Tea", PriceSnapshot: decimal.NewFromInt(10), Quantity: 1}
	s := NewSession()
	s.Restore(&entity.Bill{ID: uuid.New(), Discount: decimal.Zero}, []entity.BillItem{snapshot})

	require.NoError(t, s.SetQuantity(snapshot.ID, 2))
	assert.Equal(t, 2, s.Lines()[0].Quantity)
}

func TestSession_AddItemRejectsInactiveAndBadQuantity(t *testing.T) {
	s := NewSession()
	item := menuItem("Old special", "99")
	item.IsActive = false

	assert.ErrorIs(t, s.AddItem(item, 1), ErrInactiveItem)
	assert.ErrorIs(t, s.AddItem(menuItem("Coffee", "20"), 0), ErrInvalidQuantity)
	assert.True(t, s.IsEmpty())
}

func TestSession_SetQuantityZeroRemovesLine(t *testing.T) {
	s := NewSession()
	tea := menuItem("Tea", "15")
	coffee := menuItem("Coffee", "20")
	require.NoError(t, s.AddItem(tea, 1))
	require.NoError(t, s.AddItem(coffee, 1))

	require.NoError(t, s.SetQuantity(tea.ID, 0))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, coffee.ID, lines[0].MenuItemID)
	assert.ErrorIs(t, s.SetQuantity(tea.ID, 2), ErrLineNotFound)
	assert.ErrorIs(t, s.SetQuantity(coffee.ID, -1), ErrInvalidQuantity)
}

func TestSession_TotalsFollowMutations(t *testing.T) {
	s := NewSession()
	tea := menuItem("Tea", "10")
	require.NoError(t, s.AddItem(tea, 2))
	s.SetDiscount(decimal.NewFromInt(5))

	assert.Equal(t, "16.00", s.Totals(decimal.NewFromInt(5)).Total.StringFixed(2))

	require.NoError(t, s.SetQuantity(tea.ID, 4))
	assert.Equal(t, "37.00", s.Totals(decimal.NewFromInt(5)).Total.StringFixed(2))
}

func TestSession_ClearDropsEverything(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.AddItem(menuItem("Tea", "10"), 1))
	cash := enum.PaymentMethodCash
	s.SetPaymentMethod(&cash)
	s.SetDiscount(decimal.NewFromInt(3))
	s.Bind(uuid.New(), 2)

	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.True(t, s.Discount.IsZero())
	assert.Nil(t, s.PaymentMethod)
	_, _, bound := s.BoundBill()
	assert.False(t, bound)
}

func TestSession_RestoreFromSnapshots(t *testing.T) {
	upi := enum.PaymentMethodUPI
	bill := &entity.Bill{
		ID:            uuid.New(),
		Discount:      decimal.NewFromInt(7),
		PaymentMethod: &upi,
		Version:       3,
		Date:          time.Now(),
	}
	items := []entity.BillItem{
		{ID: uuid.New(), ItemNameSnapshot: "Samosa", PriceSnapshot: decimal.NewFromInt(12), Quantity: 4},
	}

	s := NewSession()
	s.Restore(bill, items)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Samosa", lines[0].Name)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, LoadedCategory, lines[0].Category)
	assert.True(t, s.Discount.Equal(decimal.NewFromInt(7)))
	require.NotNil(t, s.PaymentMethod)
	assert.Equal(t, enum.PaymentMethodUPI, *s.PaymentMethod)

	id, version, bound := s.BoundBill()
	assert.True(t, bound)
	assert.Equal(t, bill.ID, id)
	assert.Equal(t, 3, version)
}

func TestSession_Snapshots(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.AddItem(menuItem("Lassi", "35.5"), 2))
	billID := uuid.New()

	items := s.Snapshots(billID)

	require.Len(t, items, 1)
	assert.Equal(t, billID, items[0].BillID)
	assert.Equal(t, "Lassi", items[0].ItemNameSnapshot)
	assert.Equal(t, "71.00", items[0].LineTotal.StringFixed(2))
}
