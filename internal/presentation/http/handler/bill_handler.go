package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/receipt"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

// BillHandler handles bill history HTTP requests
type BillHandler struct {
	billService    *service.BillService
	billingService *service.BillingService
	printerService *service.PrinterService
	formatter      *receipt.Formatter
	location       *time.Location
}

// NewBillHandler creates a new bill handler
func NewBillHandler(
	billService *service.BillService,
	billingService *service.BillingService,
	printerService *service.PrinterService,
	formatter *receipt.Formatter,
	loc *time.Location,
) *BillHandler {
	return &BillHandler{
		billService:    billService,
		billingService: billingService,
		printerService: printerService,
		formatter:      formatter,
		location:       loc,
	}
}

// List handles listing bills, newest first
func (h *BillHandler) List(c *gin.Context) {
	var req request.BillFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	input := &service.ListBillsInput{Page: req.Page, PerPage: req.PerPage}

	if req.Status != "" {
		status, err := enum.ParseBillStatus(req.Status)
		if err != nil {
			response.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &status
	}

	var err error
	if input.StartDate, err = parseOptionalDate(req.StartDate, h.location); err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	if input.EndDate, err = parseOptionalDate(req.EndDate, h.location); err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	result, err := h.billService.ListBills(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// ListDrafts handles listing draft bills
func (h *BillHandler) ListDrafts(c *gin.Context) {
	drafts, err := h.billService.ListDrafts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Drafts retrieved successfully", drafts)
}

// Get handles getting a bill with its items
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "bill")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Delete handles deleting a bill and its items
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "bill")
	if !ok {
		return
	}

	if err := h.billingService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill deleted successfully", nil)
}

// Receipt renders the receipt of a bill as text, html or escpos
func (h *BillHandler) Receipt(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "bill")
	if !ok {
		return
	}

	r, bill, err := h.billService.Receipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch format := c.DefaultQuery("format", "text"); format {
	case "text":
		c.Data(200, "text/plain; charset=utf-8", []byte(h.formatter.Text(r)))
	case "html":
		html, err := h.formatter.HTML(r)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Data(200, "text/html; charset=utf-8", []byte(html))
	case "escpos":
		response.Attachment(c, fmt.Sprintf("bill_%d.bin", bill.BillNumber), "application/octet-stream", h.formatter.ESCPOS(r))
	default:
		response.BadRequest(c, "Invalid format, expected text, html or escpos")
	}
}

// Print sends the receipt of a stored bill to the printer
func (h *BillHandler) Print(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "bill")
	if !ok {
		return
	}

	bill, err := h.printerService.PrintBillByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", bill)
}
