package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettlementHandler handles settlements and the cash payments against them
type SettlementHandler struct {
	settlementService *service.SettlementService
	businessName      string
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *service.SettlementService, businessName string) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
		businessName:      businessName,
	}
}

// List handles listing settlements
// @Summary List Settlements
// @Tags settlements
// @Security BearerAuth
// @Param settled query bool false "Settlement state"
// @Success 200 {object} response.APIResponse
// @Router /settlements [get]
func (h *SettlementHandler) List(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	settled, ok := queryBool(c, "settled")
	if !ok {
		return
	}
	settlements, err := h.settlementService.List(c.Request.Context(), repository.SettlementFilter{Range: r, Settled: settled})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", settlements)
}

// Get returns a settlement with its payments.
func (h *SettlementHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	settlement, err := h.settlementService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", settlement)
}

// Create handles opening a settlement for a receptionist sale
// @Summary Create Settlement
// @Tags settlements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /settlements [post]
func (h *SettlementHandler) Create(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	var req service.CreateSettlementInput
	if !bindJSON(c, &req) {
		return
	}
	settlement, err := h.settlementService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Settlement created", settlement)
}

func (h *SettlementHandler) Update(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateSettlementInput
	if !bindJSON(c, &req) {
		return
	}
	settlement, err := h.settlementService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settlement updated", settlement)
}

func (h *SettlementHandler) Delete(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.settlementService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settlement deleted", nil)
}

func (h *SettlementHandler) Receipt(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	receipt, err := h.settlementService.Receipt(c.Request.Context(), id, h.businessName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", receipt)
}

// ListPayments returns payments made within the requested window.
func (h *SettlementHandler) ListPayments(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	payments, err := h.settlementService.ListAllPayments(c.Request.Context(), r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", payments)
}

// SettlementPayments returns the payments of one settlement.
func (h *SettlementHandler) SettlementPayments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payments, err := h.settlementService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", payments)
}

// RecordPayment handles a cash collection against a settlement
// @Summary Record Settlement Payment
// @Tags settlements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Success 201 {object} response.APIResponse
// @Router /settlement-payments [post]
func (h *SettlementHandler) RecordPayment(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	var req service.RecordPaymentInput
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.settlementService.RecordPayment(c.Request.Context(), &req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Payment recorded", result)
}

// DeletePayment removes a payment and returns the re-summed settlement.
func (h *SettlementHandler) DeletePayment(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	settlement, err := h.settlementService.DeletePayment(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment deleted", settlement)
}
