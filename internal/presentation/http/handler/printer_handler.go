package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/salay-pos/internal/application/service"
	"github.com/sangkips/salay-pos/internal/presentation/http/dto/response"
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
	response.OK(c, h.printerService.GetStatus())
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		// Return the receipt data anyway (useful when printer type is "none")
		response.OK(c, gin.H{
			"message": "Test print completed (printer may be disabled)",
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, gin.H{
		"message": "Test page sent to printer",
		"receipt": receipt,
	})
}

// PrintReceipt prints the receipt of a saved transaction.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c, service.MsgTransactionNotFound)
		return
	}

	receipt, err := h.printerService.PrintTransactionReceipt(c.Request.Context(), id)
	if err != nil {
		// If receipt was built but printing failed, return receipt with warning
		if receipt != nil {
			response.OK(c, gin.H{
				"message": "Receipt generated but printing failed",
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Receipt printed",
		"receipt": receipt,
	})
}
