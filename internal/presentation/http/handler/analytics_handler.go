package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/application/service"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/request"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalyticsHandler serves the owner dashboard and reports
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard returns the headline figures
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.analyticsService.GetDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}

// RevenueChart returns paid revenue for each of the last 12 months
func (h *AnalyticsHandler) RevenueChart(c *gin.Context) {
	points, err := h.analyticsService.RevenueChart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Revenue chart retrieved successfully", points)
}

// ExpensesChart returns expense totals by category
func (h *AnalyticsHandler) ExpensesChart(c *gin.Context) {
	points, err := h.analyticsService.ExpensesChart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expenses chart retrieved successfully", points)
}

// MonthlyReport returns revenue, expenses and customer mix for one month
func (h *AnalyticsHandler) MonthlyReport(c *gin.Context) {
	var q request.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	report, err := h.analyticsService.MonthlyReport(c.Request.Context(), q.Year, q.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly report retrieved successfully", report)
}

// ExportMonthlyReport streams the monthly report as an XLSX workbook
func (h *AnalyticsHandler) ExportMonthlyReport(c *gin.Context) {
	var q request.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	buf, filename, err := h.analyticsService.ExportMonthlyReport(c.Request.Context(), q.Year, q.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
