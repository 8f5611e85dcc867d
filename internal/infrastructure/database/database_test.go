package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/config"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigrateAndSeed(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		},
	}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, SeedDefaultData(db))
	require.NoError(t, SeedDefaultData(db))

	var rows []entity.Settings
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, DefaultShopName, rows[0].ShopName)
	assert.Equal(t, "5", rows[0].TaxPercentage.String())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{Database: config.DatabaseConfig{Driver: "mysql"}})
	assert.Error(t, err)
}
