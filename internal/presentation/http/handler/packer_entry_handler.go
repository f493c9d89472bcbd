package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PackerEntryHandler handles bags packed by packers
type PackerEntryHandler struct {
	entryService *service.PackerEntryService
}

// NewPackerEntryHandler creates a new packer entry handler
func NewPackerEntryHandler(entryService *service.PackerEntryService) *PackerEntryHandler {
	return &PackerEntryHandler{entryService: entryService}
}

func (h *PackerEntryHandler) List(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	employeeID, ok := queryUUID(c, "employeeId")
	if !ok {
		return
	}
	entries, err := h.entryService.List(c.Request.Context(), repository.PackerEntryFilter{Range: r, EmployeeID: employeeID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", entries)
}

func (h *PackerEntryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entry, err := h.entryService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", entry)
}

func (h *PackerEntryHandler) Create(c *gin.Context) {
	var req service.PackerEntryInput
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Packer entry recorded", entry)
}

func (h *PackerEntryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.PackerEntryInput
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Packer entry updated", entry)
}

func (h *PackerEntryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Packer entry deleted", nil)
}
