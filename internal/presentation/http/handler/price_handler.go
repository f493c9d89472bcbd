package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PriceHandler serves one price list. The same handler type backs both the
// bag and the material price tables.
type PriceHandler struct {
	priceService *service.PriceService
	list         entity.PriceList
}

// NewPriceHandler creates a handler bound to list
func NewPriceHandler(priceService *service.PriceService, list entity.PriceList) *PriceHandler {
	return &PriceHandler{priceService: priceService, list: list}
}

// List returns the prices ordered by sortOrder. ?active=true hides
// deactivated entries.
func (h *PriceHandler) List(c *gin.Context) {
	active, ok := queryBool(c, "active")
	if !ok {
		return
	}
	prices, err := h.priceService.List(c.Request.Context(), h.list, active != nil && *active)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", prices)
}

func (h *PriceHandler) Create(c *gin.Context) {
	var req service.PriceInput
	if !bindJSON(c, &req) {
		return
	}
	price, err := h.priceService.Create(c.Request.Context(), h.list, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Price created", price)
}

func (h *PriceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.PriceInput
	if !bindJSON(c, &req) {
		return
	}
	price, err := h.priceService.Update(c.Request.Context(), h.list, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Price updated", price)
}

// Toggle flips the active flag of a price.
func (h *PriceHandler) Toggle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	price, err := h.priceService.Toggle(c.Request.Context(), h.list, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Price updated", price)
}

func (h *PriceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.priceService.Delete(c.Request.Context(), h.list, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Price deleted", nil)
}
