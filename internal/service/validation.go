package service

import (
	"errors"  // Error inspection
	"strconv" // Integer formatting
	"strings" // Trimming

	"github.com/go-playground/validator/v10" // Field validation
	"github.com/shopspring/decimal"          // Exact money amounts
)

// MaxConceptLength is the longest concept accepted, counted in characters
const MaxConceptLength = 25

// MaxAmount is the largest amount a decimal(15,2) ledger column holds
var MaxAmount = decimal.RequireFromString("9999999999999.99")

// User facing messages
const (
	msgConceptEmpty   = "El campo no puede estar vacío"
	msgConceptTooLong = "El concepto no puede tener más de 25 caracteres"
	msgExpenseAmount  = "El monto debe ser mayor a 0"
	msgIncomeAmount   = "El ingreso debe ser mayor a 0"
	msgAmountTooLarge = "El monto no puede superar 9999999999999.99"
)

var (
	validate     = validator.New()
	conceptRules = "required,max=" + strconv.Itoa(MaxConceptLength)
)

// validateConcept trims the concept and checks it is 1-25 characters long
func validateConcept(concept string) (string, error) {
	concept = strings.TrimSpace(concept)
	err := validate.Var(concept, conceptRules)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msg := msgConceptTooLong
		if verrs[0].Tag() == "required" {
			msg = msgConceptEmpty
		}
		return "", &ValidationError{Field: "concepto", Message: msg}
	}
	if err != nil {
		return "", err
	}
	return concept, nil
}

// validateAmount rounds the amount to cents and checks it is strictly positive
// and fits the ledger column
func validateAmount(amount decimal.Decimal, msg string) (decimal.Decimal, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, &ValidationError{Field: "monto", Message: msg}
	}
	if amount.GreaterThan(MaxAmount) {
		return decimal.Zero, &ValidationError{Field: "monto", Message: msgAmountTooLarge}
	}
	return amount, nil
}
