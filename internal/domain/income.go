package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact money amounts
)

// Income Model
type Income struct {
	ID         uint            `gorm:"primaryKey" json:"id"`                                   // Primary key
	Concept    string          `gorm:"size:25;not null" json:"concepto"`                       // What the money came from
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monto"`               // Always positive
	RecordedAt time.Time       `gorm:"autoCreateTime;not null;<-:create" json:"fechaRegistro"` // Assigned by the server on insert
}

// TableName pins the table name
func (Income) TableName() string {
	return "incomes"
}
