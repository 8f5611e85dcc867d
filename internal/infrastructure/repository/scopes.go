package repository

import (
	"time"

	"github.com/sangkips/billing-api/internal/domain/enum"
	"gorm.io/gorm"
)

// FinalizedScope keeps bills that have left the draft state
func FinalizedScope(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", enum.BillStatusDraft)
}

// StatusScope filters bills by status
func StatusScope(status enum.BillStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

// DateRangeScope filters bills with from <= date < to. A nil bound is open.
// Bounds are compared in UTC, the zone bill dates are stored in.
func DateRangeScope(from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("date >= ?", from.UTC())
		}
		if to != nil {
			db = db.Where("date < ?", to.UTC())
		}
		return db
	}
}
