package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"control_gastos/internal/service" // Ledger use cases

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact money amounts
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

// EntryRequest is the body of POST /api/ingreso and POST /api/gasto
type EntryRequest struct {
	Concept string          `json:"concepto"` // 1-25 characters
	Amount  decimal.Decimal `json:"monto"`    // Must be greater than zero
}

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, err error, msg string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		return
	}
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	}).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// CreateExpenseHandler records an expense and updates the capital
func CreateExpenseHandler(ledger *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EntryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgBadRequest})
			return
		}
		expense, err := ledger.RecordExpense(c.Request.Context(), req.Concept, req.Amount)
		if err != nil {
			respondError(c, err, "No se pudo registrar el gasto")
			return
		}
		c.JSON(http.StatusOK, expense) // Return the stored expense
	}
}

// ListExpensesHandler returns every expense
func ListExpensesHandler(ledger *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenses, err := ledger.ListExpenses(c.Request.Context())
		if err != nil {
			respondError(c, err, "No se pudieron obtener los gastos")
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

// CreateIncomeHandler records an income and updates the capital
func CreateIncomeHandler(ledger *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EntryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgBadRequest})
			return
		}
		income, err := ledger.RecordIncome(c.Request.Context(), req.Concept, req.Amount)
		if err != nil {
			respondError(c, err, "No se pudo registrar el ingreso")
			return
		}
		c.JSON(http.StatusOK, income) // Return the stored income
	}
}

// LatestIncomeHandler returns the most recent income, or null
func LatestIncomeHandler(ledger *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		income, err := ledger.LatestIncome(c.Request.Context())
		if err != nil {
			respondError(c, err, "No se pudo obtener el ingreso")
			return
		}
		c.JSON(http.StatusOK, income) // nil renders as null
	}
}

// LatestCapitalHandler returns the current capital snapshot, or null before the first entry
func LatestCapitalHandler(ledger *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		capital, err := ledger.LatestCapital(c.Request.Context())
		if err != nil {
			respondError(c, err, "No se pudo obtener el capital")
			return
		}
		c.JSON(http.StatusOK, capital) // nil renders as null
	}
}
