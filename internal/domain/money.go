package domain

import "github.com/shopspring/decimal"

func init() {
	// The frontend reads monto and capital as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
