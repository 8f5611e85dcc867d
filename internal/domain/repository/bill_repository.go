package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/pagination"
)

// ErrStaleBill is returned when a bill was changed since it was read
var ErrStaleBill = errors.New("bill was modified by another terminal")

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	// Create inserts the bill and assigns its bill number
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// Update overwrites the bill when its stored version equals expectedVersion
	// and bumps the version. Returns ErrStaleBill otherwise.
	Update(ctx context.Context, bill *entity.Bill, expectedVersion int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	ListDrafts(ctx context.Context) ([]entity.Bill, error)
	// ListFinalizedBetween returns non-draft bills with from <= date < to, oldest first
	ListFinalizedBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error)
}

// BillFilterParams contains filtering parameters for bill history queries
type BillFilterParams struct {
	Pagination   *pagination.PaginationParams
	Status       *enum.BillStatus
	ExcludeDraft bool
	From         *time.Time
	To           *time.Time
}

// BillItemRepository defines the interface for bill item snapshot operations
type BillItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.BillItem) error
	GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillItem, error)
	DeleteByBillID(ctx context.Context, billID uuid.UUID) error
}
