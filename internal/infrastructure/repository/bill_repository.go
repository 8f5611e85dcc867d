package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// Create takes the next bill number and inserts the bill row in one
// transaction. Items are written separately through the item repository.
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	if !bill.Date.IsZero() {
		bill.Date = bill.Date.UTC()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextSequenceValue(tx, entity.BillNumberSequence)
		if err != nil {
			return err
		}
		bill.BillNumber = number
		return tx.Omit(clause.Associations).Create(bill).Error
	})
}

func nextSequenceValue(tx *gorm.DB, name string) (int64, error) {
	seq := entity.Sequence{Name: name}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&entity.Sequence{}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + 1")).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("name = ?", name).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill, expectedVersion int) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ? AND version = ?", bill.ID, expectedVersion).
		Updates(map[string]interface{}{
			"subtotal":       bill.Subtotal,
			"tax_amount":     bill.TaxAmount,
			"discount":       bill.Discount,
			"total":          bill.Total,
			"payment_method": bill.PaymentMethod,
			"status":         bill.Status,
			"version":        expectedVersion + 1,
			"updated_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrStaleBill
	}
	bill.Version = expectedVersion + 1
	bill.UpdatedAt = now
	return nil
}

func (r *billRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Bill{}, "id = ?", id).Error
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Scopes(DateRangeScope(params.From, params.To))

	if params.Status != nil {
		query = query.Scopes(StatusScope(*params.Status))
	} else if params.ExcludeDraft {
		query = query.Scopes(FinalizedScope)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("bill_number DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) ListDrafts(ctx context.Context) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(StatusScope(enum.BillStatusDraft)).
		Order("updated_at DESC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) ListFinalizedBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(FinalizedScope, DateRangeScope(&from, &to)).
		Order("date ASC, bill_number ASC").
		Find(&bills).Error
	return bills, err
}

type billItemRepository struct {
	db *gorm.DB
}

// NewBillItemRepository creates a new bill item repository
func NewBillItemRepository(db *gorm.DB) domainRepo.BillItemRepository {
	return &billItemRepository{db: db}
}

func (r *billItemRepository) CreateBatch(ctx context.Context, items []entity.BillItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *billItemRepository) GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillItem, error) {
	var items []entity.BillItem
	err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("position ASC").
		Find(&items).Error
	return items, err
}

func (r *billItemRepository) DeleteByBillID(ctx context.Context, billID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("bill_id = ?", billID).Delete(&entity.BillItem{}).Error
}
