package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"control_gastos/internal/service" // Ledger use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// SummaryHandler returns the ledger totals and whether the capital matches them
func SummaryHandler(ledger *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := ledger.Summary(c.Request.Context())
		if err != nil {
			respondError(c, err, "No se pudo calcular el resumen")
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// CapitalHistoryHandler returns capital snapshots newest first, paginated
func CapitalHistoryHandler(ledger *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1                           // Default page number
		pageSize := service.DefaultPageSize // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= service.MaxPageSize {
				pageSize = v // Set page size
			}
		}
		history, err := ledger.CapitalHistory(c.Request.Context(), page, pageSize)
		if err != nil {
			respondError(c, err, "No se pudo obtener el historial de capital")
			return
		}
		c.JSON(http.StatusOK, history)
	}
}
