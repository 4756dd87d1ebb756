package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	expenses map[int64]Expense
	entries  map[int64]ManualEntry
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{expenses: make(map[int64]Expense), entries: make(map[int64]ManualEntry)}
}

func (m *memoryRepo) ListExpenses(ctx context.Context, limit, offset int) ([]Expense, error) {
	var out []Expense
	for _, e := range m.expenses {
		out = append(out, e)
	}
	return out, nil
}

func (m *memoryRepo) CreateExpense(ctx context.Context, e Expense) (int64, error) {
	m.nextID++
	e.ID = m.nextID
	m.expenses[e.ID] = e
	return e.ID, nil
}

func (m *memoryRepo) DeleteExpense(ctx context.Context, id int64) error {
	if _, ok := m.expenses[id]; !ok {
		return ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *memoryRepo) ListManualEntries(ctx context.Context, limit, offset int) ([]ManualEntry, error) {
	var out []ManualEntry
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *memoryRepo) CreateManualEntry(ctx context.Context, e ManualEntry) (int64, error) {
	m.nextID++
	e.ID = m.nextID
	m.entries[e.ID] = e
	return e.ID, nil
}

func (m *memoryRepo) DeleteManualEntry(ctx context.Context, id int64) error {
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func TestAddExpenseDefaultsDate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	before := time.Now()

	expense, err := svc.AddExpense(context.Background(), Expense{Description: "lab fees", Amount: 120})
	require.NoError(t, err)
	require.NotZero(t, expense.ID)
	require.False(t, expense.Date.Before(before))
}

func TestAddExpenseKeepsGivenDate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

	expense, err := svc.AddExpense(context.Background(), Expense{Description: "rent", Amount: 2000, Date: date})
	require.NoError(t, err)
	require.True(t, expense.Date.Equal(date))
}

func TestAddManualEntryDefaultsDate(t *testing.T) {
	svc := NewService(newMemoryRepo())

	entry, err := svc.AddManualEntry(context.Background(), ManualEntry{ExtraIncome: 75, Notes: "sold old chair"})
	require.NoError(t, err)
	require.NotZero(t, entry.ID)
	require.False(t, entry.Date.IsZero())
}

func TestDeleteExpenseNotFound(t *testing.T) {
	svc := NewService(newMemoryRepo())
	require.ErrorIs(t, svc.DeleteExpense(context.Background(), 5), ErrNotFound)
}
