package database

import (
	"fmt"
	"log"

	"github.com/sangkips/billing-api/internal/config"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Default shop settings written on first start
const (
	DefaultShopName      = "My Shop"
	DefaultTaxPercentage = 5
)

// Open connects to the driver named in the config
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return NewSQLiteDB(cfg.Database.SQLitePath, cfg.App.Debug)
	case "postgres", "":
		return NewPostgresDB(&cfg.Database, cfg.App.Debug)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func gormConfig(debug bool) *gorm.Config {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.MenuItem{},
		&entity.Bill{},
		&entity.BillItem{},
		&entity.Settings{},
		&entity.Sequence{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData writes the settings singleton when none exists yet
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var count int64
	if err := db.Model(&entity.Settings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count settings: %w", err)
	}
	if count == 0 {
		settings := entity.Settings{
			ShopName:      DefaultShopName,
			TaxPercentage: decimal.NewFromInt(DefaultTaxPercentage),
		}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to create default settings: %w", err)
		}
		log.Printf("Default settings created for %q", settings.ShopName)
	}

	log.Println("Default data seeding completed")
	return nil
}
