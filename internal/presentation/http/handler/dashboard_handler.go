package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns today's and this month's figures with inventory. Parts
// that fail to load are reported as zero.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats := h.dashboardService.GetDashboardStats(c.Request.Context())
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
