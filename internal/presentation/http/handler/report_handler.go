package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles revenue report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
	location      *time.Location
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, loc *time.Location) *ReportHandler {
	return &ReportHandler{reportService: reportService, location: loc}
}

// dateRange reads start_date and end_date, answering 400 when malformed
func (h *ReportHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var req request.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "start_date and end_date are required")
		return time.Time{}, time.Time{}, false
	}

	start, err := parseDate(req.StartDate, h.location)
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := parseDate(req.EndDate, h.location)
	if err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func exportName(start, end time.Time, ext string) string {
	return fmt.Sprintf("revenue_%s_%s.%s", start.Format(DateLayout), end.Format(DateLayout), ext)
}

// Revenue returns the aggregate for an inclusive date range
func (h *ReportHandler) Revenue(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.Revenue(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Revenue report retrieved successfully", report)
}

// Today returns today's revenue aggregate
func (h *ReportHandler) Today(c *gin.Context) {
	report, err := h.reportService.Today(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Today's revenue retrieved successfully", report)
}

// ExportPDF downloads the revenue report as PDF
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	data, err := h.reportService.ExportPDF(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, exportName(start, end, "pdf"), "application/pdf", data)
}

// ExportXLSX downloads the revenue report as a spreadsheet
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	data, err := h.reportService.ExportXLSX(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, exportName(start, end, "xlsx"), xlsxContentType, data)
}
