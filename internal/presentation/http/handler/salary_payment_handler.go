package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SalaryPaymentHandler handles salary payment HTTP requests
type SalaryPaymentHandler struct {
	paymentService *service.SalaryPaymentService
}

// NewSalaryPaymentHandler creates a new salary payment handler
func NewSalaryPaymentHandler(paymentService *service.SalaryPaymentService) *SalaryPaymentHandler {
	return &SalaryPaymentHandler{paymentService: paymentService}
}

// List filters on the paid date.
func (h *SalaryPaymentHandler) List(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	employeeID, ok := queryUUID(c, "employeeId")
	if !ok {
		return
	}
	payments, err := h.paymentService.List(c.Request.Context(), repository.SalaryPaymentFilter{Range: r, EmployeeID: employeeID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", payments)
}

func (h *SalaryPaymentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", payment)
}

func (h *SalaryPaymentHandler) Create(c *gin.Context) {
	var req service.SalaryPaymentInput
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.paymentService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Salary payment recorded", payment)
}

func (h *SalaryPaymentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.SalaryPaymentInput
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.paymentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Salary payment updated", payment)
}

func (h *SalaryPaymentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Salary payment deleted", nil)
}
