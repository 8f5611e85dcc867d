package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuService_CreateValidates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.menu.CreateMenuItem(context.Background(), &CreateMenuItemInput{Name: " ", Price: decimal.NewFromInt(-1)})

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	assert.Len(t, appErr.Errors, 2)
}

func TestMenuService_CreateDefaultsToActive(t *testing.T) {
	env := newTestEnv(t)

	item, err := env.menu.CreateMenuItem(context.Background(), &CreateMenuItemInput{Name: "Tea", Price: decimal.NewFromInt(10), Category: "Drinks"})
	require.NoError(t, err)
	assert.True(t, item.IsActive)
}

func TestMenuService_UpdateListDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := env.addMenuItem(t, "Tea", "10", true)
	env.addMenuItem(t, "Coffee", "20", false)

	inactive := false
	price := decimal.NewFromInt(12)
	updated, err := env.menu.UpdateMenuItem(ctx, item.ID, &UpdateMenuItemInput{Price: &price, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "12", updated.Price.String())

	active, err := env.menu.ListMenuItems(ctx, &repository.MenuItemFilterParams{ActiveOnly: true})
	require.NoError(t, err)
	assert.NotNil(t, active)
	assert.Empty(t, active)

	require.NoError(t, env.menu.DeleteMenuItem(ctx, item.ID))
	_, err = env.menu.GetMenuItem(ctx, item.ID)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	err = env.menu.DeleteMenuItem(ctx, uuid.New())
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}
