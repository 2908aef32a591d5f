// Package store persists the ledgers, the capital snapshots and the users through GORM.
package store

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"control_gastos/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact money amounts
	"gorm.io/gorm"                  // GORM ORM library
)

var (
	// ErrStaleCapital means another capital row was already derived from the same predecessor.
	ErrStaleCapital = errors.New("capital snapshot was superseded")
	// ErrDuplicateUser means the username is already registered.
	ErrDuplicateUser = errors.New("username already exists")
)

// Store is the ledger store backed by a GORM connection
type Store struct {
	db *gorm.DB
}

// New wraps an open GORM connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// latest returns the row of type T with the highest ID, or nil when the table is empty
func latest[T any](ctx context.Context, db *gorm.DB) (*T, error) {
	var row T
	err := db.WithContext(ctx).Order("id desc").Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Empty table is not an error
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// sum totals the amount column of model's table, rounded to cents.
// SQLite stores decimal columns as REAL, so its SUM carries float error.
func sum(ctx context.Context, db *gorm.DB, model any) (decimal.Decimal, error) {
	var total decimal.NullDecimal // SUM over no rows is NULL
	if err := db.WithContext(ctx).Model(model).Select("SUM(amount)").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}

// CreateIncome inserts an income row; ID and RecordedAt are assigned by the store
func (s *Store) CreateIncome(ctx context.Context, income *domain.Income) error {
	if err := s.db.WithContext(ctx).Create(income).Error; err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	return nil
}

// CreateExpense inserts an expense row; ID and RecordedAt are assigned by the store
func (s *Store) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// ListExpenses returns every expense in insertion order
func (s *Store) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// LatestIncome returns the most recent income, or nil when none exists
func (s *Store) LatestIncome(ctx context.Context) (*domain.Income, error) {
	income, err := latest[domain.Income](ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("latest income: %w", err)
	}
	return income, nil
}

// LatestCapital returns the current capital snapshot, or nil when none exists
func (s *Store) LatestCapital(ctx context.Context) (*domain.Capital, error) {
	capital, err := latest[domain.Capital](ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("latest capital: %w", err)
	}
	return capital, nil
}

// AppendCapital inserts a capital snapshot derived from capital.PrevID.
// The unique index on prev_id makes this a compare-and-swap: if a row was
// already derived from the same predecessor the insert fails with ErrStaleCapital.
func (s *Store) AppendCapital(ctx context.Context, capital *domain.Capital) error {
	err := s.db.WithContext(ctx).Create(capital).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrStaleCapital
	}
	if err != nil {
		return fmt.Errorf("append capital: %w", err)
	}
	return nil
}

// CapitalPage returns capital snapshots newest first together with the total row count
func (s *Store) CapitalPage(ctx context.Context, offset, limit int) ([]domain.Capital, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Capital{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count capital: %w", err)
	}
	rows := []domain.Capital{}
	if err := s.db.WithContext(ctx).Order("id desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list capital: %w", err)
	}
	return rows, total, nil
}

// SumIncomes totals every recorded income
func (s *Store) SumIncomes(ctx context.Context) (decimal.Decimal, error) {
	total, err := sum(ctx, s.db, &domain.Income{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum incomes: %w", err)
	}
	return total, nil
}

// SumExpenses totals every recorded expense
func (s *Store) SumExpenses(ctx context.Context) (decimal.Decimal, error) {
	total, err := sum(ctx, s.db, &domain.Expense{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}
