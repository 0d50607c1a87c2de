package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/printarts/billing-api/internal/application/service"
	"github.com/printarts/billing-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles building the dashboard view
func (h *DashboardHandler) Get(c *gin.Context) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "6"))
	if err != nil {
		response.BadRequest(c, "Invalid months value")
		return
	}

	asOf := time.Now()
	if asOfParam, err := parseDate(c.Query("as_of")); err != nil {
		response.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
		return
	} else if asOfParam != nil {
		asOf = *asOfParam
	}

	dashboard, err := h.dashboardService.BuildDashboard(c.Request.Context(), asOf, months)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}
