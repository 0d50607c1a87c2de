package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/printarts/billing-api/internal/application/service"
	"github.com/printarts/billing-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Get handles building a transaction's receipt as JSON
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	receipt, err := h.receiptService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt built successfully", receipt)
}

// Print handles sending a transaction's receipt to the thermal printer.
// The built receipt is returned even when printing fails so the client can
// fall back to showing it on screen.
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	receipt, err := h.receiptService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			response.Success(c, 200, "Printing failed, receipt returned", gin.H{
				"receipt": receipt,
				"printed": false,
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
		"printed": true,
	})
}

// Status handles reporting printer status
func (h *ReceiptHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.GetStatus())
}
