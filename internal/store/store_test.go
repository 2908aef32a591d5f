package store

import (
	"context"
	"testing"

	"control_gastos/internal/db/dbtest"
	"control_gastos/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(dbtest.Open(t))
}

func TestLatestOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	capital, err := s.LatestCapital(ctx)
	require.NoError(t, err)
	assert.Nil(t, capital)

	income, err := s.LatestIncome(ctx)
	require.NoError(t, err)
	assert.Nil(t, income)

	expenses, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	assert.NotNil(t, expenses)
	assert.Empty(t, expenses)
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first := &domain.Income{Concept: "Salario", Amount: decimal.NewFromInt(1000)}
	second := &domain.Income{Concept: "Bono", Amount: decimal.NewFromInt(200)}
	require.NoError(t, s.CreateIncome(ctx, first))
	require.NoError(t, s.CreateIncome(ctx, second))

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.RecordedAt.IsZero())

	latest, err := s.LatestIncome(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "Bono", latest.Concept)
	assert.True(t, latest.Amount.Equal(decimal.NewFromInt(200)))
}

func TestListExpensesInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, concept := range []string{"Renta", "Comida", "Luz"} {
		require.NoError(t, s.CreateExpense(ctx, &domain.Expense{Concept: concept, Amount: decimal.NewFromInt(10)}))
	}

	expenses, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, "Renta", expenses[0].Concept)
	assert.Equal(t, "Comida", expenses[1].Concept)
	assert.Equal(t, "Luz", expenses[2].Concept)
}

func TestAppendCapitalRejectsStalePredecessor(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first := &domain.Capital{Balance: decimal.NewFromInt(100), Source: domain.SourceIncome, SourceID: 1}
	require.NoError(t, s.AppendCapital(ctx, first))

	second := &domain.Capital{Balance: decimal.NewFromInt(150), PrevID: first.ID, Source: domain.SourceIncome, SourceID: 2}
	require.NoError(t, s.AppendCapital(ctx, second))

	// A writer that read "first" before "second" landed must lose.
	stale := &domain.Capital{Balance: decimal.NewFromInt(20), PrevID: first.ID, Source: domain.SourceExpense, SourceID: 1}
	assert.ErrorIs(t, s.AppendCapital(ctx, stale), ErrStaleCapital)

	// So must a second writer claiming to be the first row.
	genesis := &domain.Capital{Balance: decimal.NewFromInt(5), Source: domain.SourceIncome, SourceID: 3}
	assert.ErrorIs(t, s.AppendCapital(ctx, genesis), ErrStaleCapital)

	latest, err := s.LatestCapital(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
	assert.True(t, latest.Balance.Equal(decimal.NewFromInt(150)))
}

func TestSums(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	total, err := s.SumExpenses(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	require.NoError(t, s.CreateExpense(ctx, &domain.Expense{Concept: "a", Amount: decimal.NewFromInt(100)}))
	require.NoError(t, s.CreateExpense(ctx, &domain.Expense{Concept: "b", Amount: decimal.NewFromInt(50)}))
	require.NoError(t, s.CreateIncome(ctx, &domain.Income{Concept: "c", Amount: decimal.NewFromFloat(12.5)}))

	total, err = s.SumExpenses(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(150)), "got %s", total)

	total, err = s.SumIncomes(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromFloat(12.5)), "got %s", total)
}

func TestSumsRoundToCents(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, v := range []string{"0.1", "0.2"} {
		require.NoError(t, s.CreateIncome(ctx, &domain.Income{Concept: "propina", Amount: decimal.RequireFromString(v)}))
	}
	total, err := s.SumIncomes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.3", total.String())
}

func TestCapitalPage(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	var prev uint
	for i := 1; i <= 5; i++ {
		row := &domain.Capital{Balance: decimal.NewFromInt(int64(i)), PrevID: prev, Source: domain.SourceIncome, SourceID: uint(i)}
		require.NoError(t, s.AppendCapital(ctx, row))
		prev = row.ID
	}

	rows, total, err := s.CapitalPage(ctx, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Balance.Equal(decimal.NewFromInt(5)))
	assert.True(t, rows[1].Balance.Equal(decimal.NewFromInt(4)))

	rows, _, err = s.CapitalPage(ctx, 4, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Balance.Equal(decimal.NewFromInt(1)))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	exists, err := s.UserExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.CreateUser(ctx, &domain.User{Username: "alice", Password: "hash"}))
	assert.ErrorIs(t, s.CreateUser(ctx, &domain.User{Username: "alice", Password: "other"}), ErrDuplicateUser)

	exists, err = s.UserExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	user, err := s.FindUser(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "hash", user.Password)

	user, err = s.FindUser(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, user)
}
