package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles driver sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales
// @Summary List Sales
// @Tags sales
// @Security BearerAuth
// @Param startDate query string false "First day, YYYY-MM-DD"
// @Param endDate query string false "Day after the last day, YYYY-MM-DD"
// @Param employeeId query string false "Attributed employee"
// @Success 200 {object} response.APIResponse
// @Router /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	employeeID, ok := queryUUID(c, "employeeId")
	if !ok {
		return
	}

	sales, err := h.saleService.List(c.Request.Context(), repository.SaleFilter{Range: r, EmployeeID: employeeID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", sales)
}

// Get handles fetching one sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", sale)
}

// Create handles recording a sale
// @Summary Create Sale
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req service.SaleInput
	if !bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale recorded", sale)
}

// Update handles editing a sale
func (h *SaleHandler) Update(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.SaleInput
	if !bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale updated", sale)
}

// Delete handles removing a sale
func (h *SaleHandler) Delete(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.saleService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale deleted", nil)
}
