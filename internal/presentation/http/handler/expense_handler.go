package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses, optionally of one type
func (h *ExpenseHandler) List(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	expenses, err := h.expenseService.List(c.Request.Context(), repository.ExpenseFilter{
		Range: r,
		Type:  enum.ExpenseType(c.Query("type")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", expenses)
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	expense, err := h.expenseService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", expense)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req service.ExpenseInput
	if !bindJSON(c, &req) {
		return
	}
	expense, err := h.expenseService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Expense recorded", expense)
}

// CreateBatch handles recording several expenses in one submission. Either
// every expense is stored or none is.
// @Summary Create Expenses
// @Tags expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /expenses/batch [post]
func (h *ExpenseHandler) CreateBatch(c *gin.Context) {
	var req struct {
		Expenses []service.ExpenseInput `json:"expenses"`
	}
	if !bindJSON(c, &req) {
		return
	}
	expenses, err := h.expenseService.CreateBatch(c.Request.Context(), req.Expenses)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Expenses recorded", expenses)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.ExpenseInput
	if !bindJSON(c, &req) {
		return
	}
	expense, err := h.expenseService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense updated", expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense deleted", nil)
}
