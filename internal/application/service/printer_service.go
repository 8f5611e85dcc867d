package service

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/application/receipt"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/pkg/apperror"
	"github.com/sangkips/billing-api/pkg/printer"
)

// PrinterService handles receipt printing on the thermal printer.
type PrinterService struct {
	printer   printer.Printer
	formatter *receipt.Formatter
	billRepo  repository.BillRepository
	bills     *BillService
	settings  *SettingsService
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	formatter *receipt.Formatter,
	billRepo repository.BillRepository,
	bills *BillService,
	settings *SettingsService,
) *PrinterService {
	return &PrinterService{
		printer:   p,
		formatter: formatter,
		billRepo:  billRepo,
		bills:     bills,
		settings:  settings,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != "none",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Type(),
		Width:      s.formatter.Width(),
	}
}

// PrintBill sends the receipt of an already loaded bill to the printer.
func (s *PrinterService) PrintBill(ctx context.Context, bill *entity.Bill, items []entity.BillItem) error {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	return s.print(ctx, bill.ID, entity.NewReceipt(bill, items, settings))
}

// PrintBillByID prints a stored bill and marks it printed.
func (s *PrinterService) PrintBillByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	r, bill, err := s.bills.Receipt(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.print(ctx, bill.ID, r); err != nil {
		return nil, apperror.NewAppError(http.StatusBadGateway, err.Error())
	}

	if err := s.billRepo.UpdateStatus(ctx, bill.ID, enum.BillStatusPrinted); err != nil {
		return nil, apperror.NewStoreError("mark bill printed", err)
	}
	bill.Status = enum.BillStatusPrinted
	bill.Version++
	return bill, nil
}

func (s *PrinterService) print(ctx context.Context, billID uuid.UUID, r *entity.Receipt) error {
	if err := s.printer.Print(ctx, s.formatter.ESCPOS(r)); err != nil {
		log.Printf("Printer error (bill %s): %v", billID, err)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}
