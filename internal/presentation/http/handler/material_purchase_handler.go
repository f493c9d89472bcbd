package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// MaterialPurchaseHandler handles sachet roll and packing nylon purchases
type MaterialPurchaseHandler struct {
	purchaseService *service.MaterialPurchaseService
}

// NewMaterialPurchaseHandler creates a new material purchase handler
func NewMaterialPurchaseHandler(purchaseService *service.MaterialPurchaseService) *MaterialPurchaseHandler {
	return &MaterialPurchaseHandler{purchaseService: purchaseService}
}

func (h *MaterialPurchaseHandler) List(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	materialType := enum.MaterialType(c.Query("type"))
	if materialType != "" && !materialType.IsValid() {
		response.Error(c, apperror.NewFieldError("type", "must be one of sachet_roll, packing_nylon"))
		return
	}

	purchases, err := h.purchaseService.List(c.Request.Context(), repository.MaterialPurchaseFilter{Range: r, Type: materialType})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", purchases)
}

func (h *MaterialPurchaseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	purchase, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", purchase)
}

func (h *MaterialPurchaseHandler) Create(c *gin.Context) {
	var req service.MaterialPurchaseInput
	if !bindJSON(c, &req) {
		return
	}
	purchase, err := h.purchaseService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Material purchase recorded", purchase)
}

func (h *MaterialPurchaseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.MaterialPurchaseInput
	if !bindJSON(c, &req) {
		return
	}
	purchase, err := h.purchaseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Material purchase updated", purchase)
}

func (h *MaterialPurchaseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.purchaseService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Material purchase deleted", nil)
}
