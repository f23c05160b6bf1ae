package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/labakery/backend/internal/application/report"
)

// ReportHandler serves the back-office reports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Financial returns sales, outflows and net total for a date range.
// GET /api/admin/reports/financial?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ReportHandler) Financial(c *gin.Context) {
	var req reportapp.FinancialReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "build financial report")
		return
	}

	summary, err := h.reportService.Financial(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err, "build financial report")
		return
	}
	h.Success(c, summary)
}

// Dashboard returns today, week and month sales plus month-to-date tallies.
// GET /api/admin/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err, "build dashboard")
		return
	}
	h.Success(c, dashboard)
}

// Chart returns monthly sales per category and origin.
// GET /api/admin/reports/chart?year=YYYY
func (h *ReportHandler) Chart(c *gin.Context) {
	var req reportapp.ChartRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err, "build sales chart")
		return
	}

	chart, err := h.reportService.Chart(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err, "build sales chart")
		return
	}
	h.Success(c, chart)
}
