package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/pagination"
)

// BillService answers bill history queries
type BillService struct {
	billRepo     repository.BillRepository
	billItemRepo repository.BillItemRepository
	settings     *SettingsService
	location     *time.Location
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	billItemRepo repository.BillItemRepository,
	settings *SettingsService,
	loc *time.Location,
) *BillService {
	if loc == nil {
		loc = time.Local
	}
	return &BillService{
		billRepo:     billRepo,
		billItemRepo: billItemRepo,
		settings:     settings,
		location:     loc,
	}
}

// ListBillsInput filters the bill history. Dates are calendar days in the
// shop time zone and both ends are inclusive.
type ListBillsInput struct {
	Page      int
	PerPage   int
	Status    *enum.BillStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// ListBills returns a page of bills, newest first
func (s *BillService) ListBills(ctx context.Context, input *ListBillsInput) (*pagination.PaginatedResult[entity.Bill], error) {
	params := &pagination.PaginationParams{Page: input.Page, PerPage: input.PerPage}
	params.Validate()

	filter := &repository.BillFilterParams{
		Pagination: params,
		Status:     input.Status,
	}
	if input.StartDate != nil {
		from := StartOfDay(*input.StartDate, s.location)
		filter.From = &from
	}
	if input.EndDate != nil {
		to := StartOfDay(*input.EndDate, s.location).AddDate(0, 0, 1)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, apperror.NewValidationError(apperror.FieldError{Field: "end_date", Message: "End date must not be before start date"})
	}

	bills, total, err := s.billRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.NewStoreError("list bills", err)
	}

	return pagination.NewPaginatedResult(bills, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ListDrafts returns saved drafts, most recently edited first
func (s *BillService) ListDrafts(ctx context.Context) ([]entity.Bill, error) {
	drafts, err := s.billRepo.ListDrafts(ctx)
	if err != nil {
		return nil, apperror.NewStoreError("list drafts", err)
	}
	if drafts == nil {
		drafts = []entity.Bill{}
	}
	return drafts, nil
}

// GetBill returns a bill with its item snapshots
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, apperror.NewStoreError("load bill", err)
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// Receipt composes the printable receipt for a stored bill
func (s *BillService) Receipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, *entity.Bill, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	return entity.NewReceipt(bill, bill.Items, settings), bill, nil
}

// StartOfDay returns midnight of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
