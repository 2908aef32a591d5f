// Package reconciler keeps the capital snapshot chain in step with the income and expense ledgers.
//
// Every ledger write produces one new capital row derived from the then
// latest row. The read and the insert are not wrapped in a transaction;
// instead the insert names its predecessor and the store refuses a second
// row derived from the same predecessor. A writer that loses re-reads the
// latest row and tries again, so concurrent updates are never lost.
package reconciler

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"control_gastos/internal/domain" // Importing domain models
	"control_gastos/internal/store"  // Ledger store errors

	"github.com/shopspring/decimal" // Exact money amounts
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

var _ CapitalStore = (*store.Store)(nil)

// DefaultMaxAttempts bounds the compare-and-swap loop when no limit is configured
const DefaultMaxAttempts = 64

var (
	// ErrNonPositiveAmount rejects amounts that are zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	// ErrReconcileContention is returned when every attempt lost the race to another writer.
	ErrReconcileContention = errors.New("capital update gave up after repeated conflicts")
)

// CapitalStore is the subset of the ledger store the reconciler needs
type CapitalStore interface {
	LatestCapital(ctx context.Context) (*domain.Capital, error)
	AppendCapital(ctx context.Context, capital *domain.Capital) error
}

// Reconciler derives and persists new capital snapshots
type Reconciler struct {
	store       CapitalStore
	maxAttempts int
}

// New returns a Reconciler; maxAttempts <= 0 selects DefaultMaxAttempts
func New(s CapitalStore, maxAttempts int) *Reconciler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Reconciler{store: s, maxAttempts: maxAttempts}
}

// ApplyIncome adds amount to the current balance on behalf of income incomeID
func (r *Reconciler) ApplyIncome(ctx context.Context, amount decimal.Decimal, incomeID uint) (*domain.Capital, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return r.apply(ctx, amount, domain.SourceIncome, incomeID)
}

// ApplyExpense subtracts amount from the current balance on behalf of expense expenseID.
// The balance may go negative.
func (r *Reconciler) ApplyExpense(ctx context.Context, amount decimal.Decimal, expenseID uint) (*domain.Capital, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return r.apply(ctx, amount.Neg(), domain.SourceExpense, expenseID)
}

func (r *Reconciler) apply(ctx context.Context, delta decimal.Decimal, source string, sourceID uint) (*domain.Capital, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prior, err := r.store.LatestCapital(ctx)
		if err != nil {
			return nil, err // Store failures are not retried
		}
		next := &domain.Capital{Balance: delta, Source: source, SourceID: sourceID}
		if prior != nil {
			next.Balance = prior.Balance.Add(delta)
			next.PrevID = prior.ID
		}
		err = r.store.AppendCapital(ctx, next)
		if errors.Is(err, store.ErrStaleCapital) {
			logrus.WithFields(logrus.Fields{
				"source":    source,
				"source_id": sourceID,
				"prev_id":   next.PrevID,
				"attempt":   attempt,
			}).Debug("Capital snapshot superseded, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}
		return next, nil
	}
	return nil, fmt.Errorf("%w (%s %d, %d attempts)", ErrReconcileContention, source, sourceID, r.maxAttempts)
}
