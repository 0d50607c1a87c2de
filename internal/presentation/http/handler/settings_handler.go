package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/printarts/billing-api/internal/application/service"
	"github.com/printarts/billing-api/internal/domain/enum"
	"github.com/printarts/billing-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles business settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles retrieving the business settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles updating the business settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		BusinessName    *string `json:"business_name"`
		Address         *string `json:"address"`
		Phone           *string `json:"phone"`
		Email           *string `json:"email"`
		TaxID           *string `json:"tax_id"`
		Currency        *string `json:"currency"`
		DefaultTaxClass *string `json:"default_tax_class"`
		ReceiptFooter   *string `json:"receipt_footer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateSettingsInput{
		BusinessName:  req.BusinessName,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		TaxID:         req.TaxID,
		Currency:      req.Currency,
		ReceiptFooter: req.ReceiptFooter,
	}

	if req.DefaultTaxClass != nil {
		taxClass, ok := enum.ParseTaxClass(*req.DefaultTaxClass)
		if !ok {
			response.BadRequest(c, "Invalid tax class")
			return
		}
		input.DefaultTaxClass = &taxClass
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
