// Package service holds the ledger and authentication use cases behind the HTTP API.
package service

import (
	"context" // Request scoped cancellation
	"fmt"     // Error wrapping
	"time"    // Cache TTL

	"control_gastos/internal/domain" // Importing domain models
	"control_gastos/internal/utils"  // Cache helpers

	"github.com/shopspring/decimal" // Exact money amounts
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

// Cache keys for ledger reads; every ledger write drops all of them
const (
	keyLatestCapital = "ledger:capital:latest"
	keyLatestIncome  = "ledger:ingreso:latest"
	keyExpenses      = "ledger:gasto:all"
	keySummary       = "ledger:resumen"
)

var ledgerKeys = []string{keyLatestCapital, keyLatestIncome, keyExpenses, keySummary}

// Paging limits for the capital history
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// LedgerStore is the persistence the ledger service depends on
type LedgerStore interface {
	CreateIncome(ctx context.Context, income *domain.Income) error
	CreateExpense(ctx context.Context, expense *domain.Expense) error
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	LatestIncome(ctx context.Context) (*domain.Income, error)
	LatestCapital(ctx context.Context) (*domain.Capital, error)
	CapitalPage(ctx context.Context, offset, limit int) ([]domain.Capital, int64, error)
	SumIncomes(ctx context.Context) (decimal.Decimal, error)
	SumExpenses(ctx context.Context) (decimal.Decimal, error)
}

// CapitalReconciler turns a ledger amount into a new capital snapshot
type CapitalReconciler interface {
	ApplyIncome(ctx context.Context, amount decimal.Decimal, incomeID uint) (*domain.Capital, error)
	ApplyExpense(ctx context.Context, amount decimal.Decimal, expenseID uint) (*domain.Capital, error)
}

// Summary compares the capital snapshot with the totals derived from the ledgers
type Summary struct {
	TotalIncomes  decimal.Decimal `json:"totalIngresos"`   // Sum of every income
	TotalExpenses decimal.Decimal `json:"totalGastos"`     // Sum of every expense
	Expected      decimal.Decimal `json:"capitalEsperado"` // TotalIncomes - TotalExpenses
	Capital       *domain.Capital `json:"capital"`         // Latest snapshot, nil when none
	Consistent    bool            `json:"consistente"`     // Snapshot (absent = 0) equals Expected
}

// CapitalPage is one page of the capital history, newest first
type CapitalPage struct {
	Items      []domain.Capital `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// LedgerService records incomes and expenses and serves the ledger reads
type LedgerService struct {
	store      LedgerStore
	reconciler CapitalReconciler
	cache      utils.Cache
	cacheTTL   time.Duration
}

// NewLedgerService wires the service; a nil cache disables caching
func NewLedgerService(store LedgerStore, reconciler CapitalReconciler, cache utils.Cache, cacheTTL time.Duration) *LedgerService {
	if cache == nil {
		cache = utils.NoopCache{}
	}
	return &LedgerService{store: store, reconciler: reconciler, cache: cache, cacheTTL: cacheTTL}
}

// RecordExpense validates and stores an expense, then subtracts it from the capital.
// If the capital update fails the expense stays stored: the stored row is returned
// together with the error.
func (s *LedgerService) RecordExpense(ctx context.Context, concept string, amount decimal.Decimal) (*domain.Expense, error) {
	concept, err := validateConcept(concept)
	if err != nil {
		return nil, err
	}
	if amount, err = validateAmount(amount, msgExpenseAmount); err != nil {
		return nil, err
	}
	expense := &domain.Expense{Concept: concept, Amount: amount}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	defer s.invalidate(ctx)
	capital, err := s.reconciler.ApplyExpense(ctx, expense.Amount, expense.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"expense_id": expense.ID,
			"amount":     expense.Amount.String(),
			"error":      err.Error(),
		}).Error("Expense stored but capital not updated")
		return expense, fmt.Errorf("apply expense %d to capital: %w", expense.ID, err)
	}
	logrus.WithFields(logrus.Fields{
		"expense_id": expense.ID,
		"concept":    expense.Concept,
		"amount":     expense.Amount.String(),
		"capital_id": capital.ID,
		"balance":    capital.Balance.String(),
	}).Info("Expense recorded")
	return expense, nil
}

// RecordIncome validates and stores an income, then adds it to the capital.
// If the capital update fails the income stays stored: the stored row is returned
// together with the error.
func (s *LedgerService) RecordIncome(ctx context.Context, concept string, amount decimal.Decimal) (*domain.Income, error) {
	concept, err := validateConcept(concept)
	if err != nil {
		return nil, err
	}
	if amount, err = validateAmount(amount, msgIncomeAmount); err != nil {
		return nil, err
	}
	income := &domain.Income{Concept: concept, Amount: amount}
	if err := s.store.CreateIncome(ctx, income); err != nil {
		return nil, err
	}
	defer s.invalidate(ctx)
	capital, err := s.reconciler.ApplyIncome(ctx, income.Amount, income.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"income_id": income.ID,
			"amount":    income.Amount.String(),
			"error":     err.Error(),
		}).Error("Income stored but capital not updated")
		return income, fmt.Errorf("apply income %d to capital: %w", income.ID, err)
	}
	logrus.WithFields(logrus.Fields{
		"income_id":  income.ID,
		"concept":    income.Concept,
		"amount":     income.Amount.String(),
		"capital_id": capital.ID,
		"balance":    capital.Balance.String(),
	}).Info("Income recorded")
	return income, nil
}

// ListExpenses returns every stored expense
func (s *LedgerService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	list, err := readThrough(ctx, s, keyExpenses, func(ctx context.Context) (*[]domain.Expense, error) {
		expenses, err := s.store.ListExpenses(ctx)
		if err != nil {
			return nil, err
		}
		return &expenses, nil
	})
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// LatestIncome returns the most recent income, or nil when none was recorded
func (s *LedgerService) LatestIncome(ctx context.Context) (*domain.Income, error) {
	return readThrough(ctx, s, keyLatestIncome, s.store.LatestIncome)
}

// LatestCapital returns the current capital snapshot, or nil when the ledger was never written.
// nil is distinct from a zero balance.
func (s *LedgerService) LatestCapital(ctx context.Context) (*domain.Capital, error) {
	return readThrough(ctx, s, keyLatestCapital, s.store.LatestCapital)
}

// Summary totals both ledgers and checks them against the capital snapshot
func (s *LedgerService) Summary(ctx context.Context) (*Summary, error) {
	return readThrough(ctx, s, keySummary, func(ctx context.Context) (*Summary, error) {
		incomes, err := s.store.SumIncomes(ctx)
		if err != nil {
			return nil, err
		}
		expenses, err := s.store.SumExpenses(ctx)
		if err != nil {
			return nil, err
		}
		capital, err := s.store.LatestCapital(ctx)
		if err != nil {
			return nil, err
		}
		sum := &Summary{
			TotalIncomes:  incomes,
			TotalExpenses: expenses,
			Expected:      incomes.Sub(expenses),
			Capital:       capital,
		}
		balance := decimal.Zero
		if capital != nil {
			balance = capital.Balance
		}
		sum.Consistent = balance.Equal(sum.Expected)
		if !sum.Consistent {
			logrus.WithFields(logrus.Fields{
				"balance":  balance.String(),
				"expected": sum.Expected.String(),
			}).Warn("Capital snapshot does not match ledger totals")
		}
		return sum, nil
	})
}

// CapitalHistory pages through the capital snapshots, newest first.
// Out of range page or pageSize values fall back to the defaults.
func (s *LedgerService) CapitalHistory(ctx context.Context, page, pageSize int) (*CapitalPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	rows, total, err := s.store.CapitalPage(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &CapitalPage{
		Items:      rows,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// invalidate drops every cached ledger read.
// A read that loaded before the write may still re-cache its value for up to cacheTTL.
func (s *LedgerService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, ledgerKeys...); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate ledger cache")
	}
}

// readThrough serves key from the cache, loading and caching it on a miss.
// Cache failures only cost a trip to the store. nil results are not cached.
func readThrough[T any](ctx context.Context, s *LedgerService, key string, load func(context.Context) (*T, error)) (*T, error) {
	var hit T
	found, err := s.cache.Get(ctx, key, &hit)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
	} else if found {
		return &hit, nil
	}
	v, err := load(ctx)
	if err != nil || v == nil {
		return v, err
	}
	if err := s.cache.Set(ctx, key, v, s.cacheTTL); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	return v, nil
}
