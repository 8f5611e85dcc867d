package repository

import (
	"context"
	"testing"

	"github.com/sangkips/billing-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItemRepository_ListFilters(t *testing.T) {
	repo := NewMenuItemRepository(newTestDB(t))
	ctx := context.Background()

	for _, item := range []*entity.MenuItem{
		{Name: "Masala Tea", Price: decimal.NewFromInt(15), Category: "Drinks", IsActive: true},
		{Name: "Samosa", Price: decimal.NewFromInt(12), Category: "Snacks", IsActive: true},
		{Name: "Cold Coffee", Price: decimal.NewFromInt(40), Category: "Drinks", IsActive: false},
	} {
		require.NoError(t, repo.Create(ctx, item))
	}

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := repo.List(ctx, &domainRepo.MenuItemFilterParams{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Masala Tea", active[0].Name)

	found, err := repo.List(ctx, &domainRepo.MenuItemFilterParams{Search: "coffee"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.False(t, found[0].IsActive)
}

func TestMenuItemRepository_UpdateAndDelete(t *testing.T) {
	repo := NewMenuItemRepository(newTestDB(t))
	ctx := context.Background()

	item := &entity.MenuItem{Name: "Tea", Price: decimal.NewFromInt(10), Category: "Drinks", IsActive: true}
	require.NoError(t, repo.Create(ctx, item))

	item.Price = decimal.RequireFromString("12.5")
	require.NoError(t, repo.Update(ctx, item))

	stored, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.5", stored.Price.String())

	require.NoError(t, repo.Delete(ctx, item.ID))
	stored, err = repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
