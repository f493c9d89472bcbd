package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler handles employee records and their commission views
type EmployeeHandler struct {
	employeeService   *service.EmployeeService
	commissionService *service.CommissionService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService, commissionService *service.CommissionService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService:   employeeService,
		commissionService: commissionService,
	}
}

// List handles listing employees
// @Summary List Employees
// @Tags employees
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	employee, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", employee)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req service.EmployeeInput
	if !bindJSON(c, &req) {
		return
	}
	employee, err := h.employeeService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Employee created", employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.EmployeeInput
	if !bindJSON(c, &req) {
		return
	}
	employee, err := h.employeeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Employee updated", employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.employeeService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Employee deleted", nil)
}

// Commission returns the employee's commission over the requested window.
// Packers earn from packing entries, everyone else from driver sales.
// @Summary Employee Commission
// @Tags employees
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param startDate query string false "First day, YYYY-MM-DD"
// @Param endDate query string false "Day after the last day, YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /employees/{id}/commission [get]
func (h *EmployeeHandler) Commission(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, ok := queryRange(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	employee, err := h.employeeService.GetByID(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	var result interface{}
	if employee.Role.IsPacker() {
		result, err = h.commissionService.FromPackerEntries(ctx, id, r)
	} else {
		result, err = h.commissionService.FromSales(ctx, id, r)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", result)
}

// SalaryProjection estimates the salary due for ?period over the window.
func (h *EmployeeHandler) SalaryProjection(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, ok := queryRange(c)
	if !ok {
		return
	}
	p := enum.SalaryPeriod(c.DefaultQuery("period", string(enum.SalaryPeriodMonthly)))

	projection, err := h.commissionService.ProjectSalary(c.Request.Context(), id, p, r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", projection)
}

// CommissionSummary lists every commission earner's bags and commission.
func (h *EmployeeHandler) CommissionSummary(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	rows, err := h.commissionService.Summary(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", rows)
}
