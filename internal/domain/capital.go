package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact money amounts
)

// Ledger kinds that can move the capital balance
const (
	SourceIncome  = "ingreso"
	SourceExpense = "gasto"
)

// Capital Model. Rows are append-only; the row with the highest ID is the current balance.
type Capital struct {
	ID         uint            `gorm:"primaryKey" json:"id"`                                   // Primary key
	Balance    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"capital"`             // Balance after the change, may be negative
	PrevID     uint            `gorm:"uniqueIndex;not null" json:"-"`                          // Row this one was derived from, 0 for the first
	Source     string          `gorm:"size:16;not null" json:"origen"`                         // SourceIncome or SourceExpense
	SourceID   uint            `gorm:"not null" json:"origenId"`                               // ID of the ledger row that produced this balance
	RecordedAt time.Time       `gorm:"autoCreateTime;not null;<-:create" json:"fechaRegistro"` // Assigned by the server on insert
}

// TableName pins the table name
func (Capital) TableName() string {
	return "capitals"
}
