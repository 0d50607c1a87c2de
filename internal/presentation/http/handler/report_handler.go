package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/printarts/billing-api/internal/application/service"
	"github.com/printarts/billing-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report export HTTP requests
type ReportHandler struct {
	exportService *service.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{exportService: exportService}
}

// ExportTransactions handles downloading transactions as an XLSX workbook.
// Defaults to the last 12 months when no range is given. The to date is
// exclusive.
func (h *ReportHandler) ExportTransactions(c *gin.Context) {
	to := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	from := to.AddDate(0, -12, 0)

	if fromParam, err := parseDate(c.Query("from")); err != nil {
		response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	} else if fromParam != nil {
		from = *fromParam
	}

	if toParam, err := parseDate(c.Query("to")); err != nil {
		response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	} else if toParam != nil {
		to = *toParam
	}

	if !from.Before(to) {
		response.BadRequest(c, "from must be before to")
		return
	}

	buf, filename, err := h.exportService.ExportTransactions(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
