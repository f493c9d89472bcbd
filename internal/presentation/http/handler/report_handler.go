package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/request"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves financial reports, trends and inventory
type ReportHandler struct {
	reportService    *service.ReportService
	exportService    *service.ExportService
	inventoryService *service.InventoryService
	now              func() time.Time
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, exportService *service.ExportService, inventoryService *service.InventoryService) *ReportHandler {
	return &ReportHandler{
		reportService:    reportService,
		exportService:    exportService,
		inventoryService: inventoryService,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// reportWindow resolves the query into a period kind and range. Explicit
// dates win; otherwise the period containing ?date (default today) is used.
func (h *ReportHandler) reportWindow(q *request.ReportQuery) (period.Kind, period.Range, error) {
	kind, err := period.ParseKind(q.Period)
	if err != nil {
		return "", period.Range{}, apperror.NewFieldError("period", err.Error())
	}

	if q.StartDate != "" || q.EndDate != "" {
		r, err := parseRange(q.DateRangeQuery)
		return kind, r, err
	}

	anchor := h.now()
	if q.Anchor != "" {
		if anchor, err = period.ParseDate(q.Anchor); err != nil {
			return "", period.Range{}, apperror.NewFieldError("date", "must be a YYYY-MM-DD date")
		}
	}
	if kind == period.Custom {
		kind = period.Monthly
	}
	return kind, period.Bounds(kind, anchor), nil
}

// Generate returns the profit and loss report for a period
// @Summary Financial Report
// @Tags reports
// @Security BearerAuth
// @Param period query string false "daily, weekly, monthly, quarterly, yearly or custom"
// @Param date query string false "Day inside the period, YYYY-MM-DD"
// @Param startDate query string false "First day, YYYY-MM-DD"
// @Param endDate query string false "Day after the last day, YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /reports [get]
func (h *ReportHandler) Generate(c *gin.Context) {
	var q request.ReportQuery
	if !bindQuery(c, &q) {
		return
	}
	kind, r, err := h.reportWindow(&q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", h.reportService.Generate(c.Request.Context(), kind, r))
}

// Trend returns consecutive reports ending with the period containing ?date.
func (h *ReportHandler) Trend(c *gin.Context) {
	var q request.ReportQuery
	if !bindQuery(c, &q) {
		return
	}

	kind, err := period.ParseKind(q.Period)
	if err != nil {
		response.Error(c, apperror.NewFieldError("period", err.Error()))
		return
	}
	anchor := h.now()
	if q.Anchor != "" {
		if anchor, err = period.ParseDate(q.Anchor); err != nil {
			response.Error(c, apperror.NewFieldError("date", "must be a YYYY-MM-DD date"))
			return
		}
	}
	if q.Points < 0 || q.Points > 36 {
		response.Error(c, apperror.NewFieldError("points", "must be between 1 and 36"))
		return
	}

	response.OK(c, "", h.reportService.Trend(c.Request.Context(), kind, anchor, q.Points))
}

// Export downloads the report and its trend as an xlsx workbook.
func (h *ReportHandler) Export(c *gin.Context) {
	var q request.ReportQuery
	if !bindQuery(c, &q) {
		return
	}
	kind, r, err := h.reportWindow(&q)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, name, err := h.exportService.Export(c.Request.Context(), kind, r)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Inventory reports estimated bags in stock. ?threshold overrides the
// configured low-stock level.
func (h *ReportHandler) Inventory(c *gin.Context) {
	var threshold *int
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(c, apperror.NewFieldError("threshold", "must be a non-negative integer"))
			return
		}
		threshold = &n
	}
	response.OK(c, "", h.inventoryService.Status(c.Request.Context(), threshold))
}
