package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// ReceptionistSaleHandler handles sales captured at the front desk
type ReceptionistSaleHandler struct {
	saleService *service.ReceptionistSaleService
}

// NewReceptionistSaleHandler creates a new receptionist sale handler
func NewReceptionistSaleHandler(saleService *service.ReceptionistSaleService) *ReceptionistSaleHandler {
	return &ReceptionistSaleHandler{saleService: saleService}
}

// List handles listing receptionist sales
// @Summary List Receptionist Sales
// @Tags receptionist
// @Security BearerAuth
// @Param driverId query string false "Driver"
// @Param submitted query bool false "Submission state"
// @Success 200 {object} response.APIResponse
// @Router /receptionist-sales [get]
func (h *ReceptionistSaleHandler) List(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	driverID, ok := queryUUID(c, "driverId")
	if !ok {
		return
	}
	submitted, ok := queryBool(c, "submitted")
	if !ok {
		return
	}

	sales, err := h.saleService.List(c.Request.Context(), repository.ReceptionistSaleFilter{
		Range:     r,
		DriverID:  driverID,
		Submitted: submitted,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", sales)
}

func (h *ReceptionistSaleHandler) Get(c *gin.Context) {
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

func (h *ReceptionistSaleHandler) Create(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	var req service.ReceptionistSaleInput
	if !bindJSON(c, &req) {
		return
	}
	sale, err := h.saleService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale recorded", sale)
}

func (h *ReceptionistSaleHandler) Update(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.ReceptionistSaleInput
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

// Submit locks the sale for settlement.
func (h *ReceptionistSaleHandler) Submit(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sale, err := h.saleService.Submit(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale submitted", sale)
}

func (h *ReceptionistSaleHandler) Delete(c *gin.Context) {
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

// StorekeeperHandler handles stock movements recorded by the storekeeper
type StorekeeperHandler struct {
	entryService *service.StorekeeperService
}

// NewStorekeeperHandler creates a new storekeeper handler
func NewStorekeeperHandler(entryService *service.StorekeeperService) *StorekeeperHandler {
	return &StorekeeperHandler{entryService: entryService}
}

func (h *StorekeeperHandler) List(c *gin.Context) {
	r, ok := queryRange(c)
	if !ok {
		return
	}
	submitted, ok := queryBool(c, "submitted")
	if !ok {
		return
	}
	entryType := enum.StorekeeperEntryType(c.Query("entryType"))
	if entryType != "" && !entryType.IsValid() {
		response.Error(c, apperror.NewFieldError("entryType", "must be one of driver_pickup, general_sales, packer_production, ministore_pickup"))
		return
	}

	entries, err := h.entryService.List(c.Request.Context(), repository.StorekeeperEntryFilter{
		Range:     r,
		EntryType: entryType,
		Submitted: submitted,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", entries)
}

func (h *StorekeeperHandler) Get(c *gin.Context) {
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

func (h *StorekeeperHandler) Create(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	var req service.StorekeeperEntryInput
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Entry recorded", entry)
}

func (h *StorekeeperHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.StorekeeperEntryInput
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.entryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Entry updated", entry)
}

func (h *StorekeeperHandler) Submit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entry, err := h.entryService.Submit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Entry submitted", entry)
}

func (h *StorekeeperHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Entry deleted", nil)
}
