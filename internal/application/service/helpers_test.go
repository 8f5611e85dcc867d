package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/application/receipt"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/billing-api/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakePrinter records jobs and can be told to fail
type fakePrinter struct {
	mu   sync.Mutex
	jobs [][]byte
	err  error
}

func (p *fakePrinter) Print(ctx context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *fakePrinter) IsConnected(ctx context.Context) bool { return p.err == nil }

func (p *fakePrinter) Type() string { return "file" }

// countingBillRepo counts every call that reaches the store
type countingBillRepo struct {
	repository.BillRepository
	calls int
}

func (r *countingBillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	r.calls++
	return r.BillRepository.Create(ctx, bill)
}

func (r *countingBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.calls++
	return r.BillRepository.GetByID(ctx, id)
}

func (r *countingBillRepo) Update(ctx context.Context, bill *entity.Bill, expectedVersion int) error {
	r.calls++
	return r.BillRepository.Update(ctx, bill, expectedVersion)
}

type countingItemRepo struct {
	repository.BillItemRepository
	calls int
}

func (r *countingItemRepo) CreateBatch(ctx context.Context, items []entity.BillItem) error {
	r.calls++
	return r.BillItemRepository.CreateBatch(ctx, items)
}

func (r *countingItemRepo) DeleteByBillID(ctx context.Context, billID uuid.UUID) error {
	r.calls++
	return r.BillItemRepository.DeleteByBillID(ctx, billID)
}

type countingSettingsRepo struct {
	repository.SettingsRepository
	calls int
}

func (r *countingSettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	r.calls++
	return r.SettingsRepository.Get(ctx)
}

type testEnv struct {
	bills        *countingBillRepo
	items        *countingItemRepo
	settingsRepo *countingSettingsRepo
	menuRepo     repository.MenuItemRepository
	printer      *fakePrinter

	settings *SettingsService
	menu     *MenuService
	history  *BillService
	reports  *ReportService
	printing *PrinterService
	billing  *BillingService
	sessions *SessionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewSQLiteDB("file:"+uuid.NewString()+"?mode=memory&cache=shared", false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{
		bills:        &countingBillRepo{BillRepository: infraRepo.NewBillRepository(db)},
		items:        &countingItemRepo{BillItemRepository: infraRepo.NewBillItemRepository(db)},
		settingsRepo: &countingSettingsRepo{SettingsRepository: infraRepo.NewSettingsRepository(db)},
		menuRepo:     infraRepo.NewMenuItemRepository(db),
		printer:      &fakePrinter{},
		sessions:     NewSessionStore(0),
	}
	t.Cleanup(env.sessions.Close)

	env.settings = NewSettingsService(env.settingsRepo)
	env.menu = NewMenuService(env.menuRepo)
	env.history = NewBillService(env.bills, env.items, env.settings, time.UTC)
	env.reports = NewReportService(env.bills, env.settings, time.UTC)
	env.printing = NewPrinterService(env.printer, receipt.NewFormatter(32, time.UTC), env.bills, env.history, env.settings)
	env.billing = NewBillingService(env.bills, env.items, env.menuRepo, env.settings, env.history, env.reports, env.printing)
	return env
}

func (e *testEnv) resetCalls() {
	e.bills.calls = 0
	e.items.calls = 0
	e.settingsRepo.calls = 0
}

func (e *testEnv) addMenuItem(t *testing.T, name, price string, active bool) *entity.MenuItem {
	t.Helper()
	item, err := e.menu.CreateMenuItem(context.Background(), &CreateMenuItemInput{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "Mains",
		IsActive: &active,
	})
	require.NoError(t, err)
	return item
}

var errPaperOut = errors.New("paper out")
