package handler

import (
	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	result, err := h.printerService.TestPrint(c.Request.Context())
	respondPrint(c, result, err, "Test page sent to printer")
}

// PrintSettlement prints the receipt of a settlement and its payments.
func (h *PrinterHandler) PrintSettlement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.printerService.PrintSettlementReceipt(c.Request.Context(), id)
	respondPrint(c, result, err, "Settlement receipt printed successfully")
}

// respondPrint returns the receipt even when the printer is disabled or
// failed, so the client can fall back to its own rendering.
func respondPrint(c *gin.Context, result *service.PrintResult, err error, printed string) {
	if err != nil {
		if result != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": result.Receipt,
				"printed": false,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	if !result.Printed {
		response.OK(c, "Receipt generated (printer disabled)", result)
		return
	}
	response.OK(c, printed, result)
}
