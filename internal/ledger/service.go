package ledger

import (
	"context"
	"time"
)

// Service manages expenses and daily manual entries.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddExpense records an expense. A zero date defaults to now.
func (s *Service) AddExpense(ctx context.Context, expense Expense) (Expense, error) {
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	id, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	expense.ID = id
	return expense, nil
}

func (s *Service) ListExpenses(ctx context.Context, limit, offset int) ([]Expense, error) {
	return s.repo.ListExpenses(ctx, limit, offset)
}

func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	return s.repo.DeleteExpense(ctx, id)
}

// AddManualEntry records extra income/expense for a day. A zero date defaults
// to now.
func (s *Service) AddManualEntry(ctx context.Context, entry ManualEntry) (ManualEntry, error) {
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	id, err := s.repo.CreateManualEntry(ctx, entry)
	if err != nil {
		return ManualEntry{}, err
	}
	entry.ID = id
	return entry, nil
}

func (s *Service) ListManualEntries(ctx context.Context, limit, offset int) ([]ManualEntry, error) {
	return s.repo.ListManualEntries(ctx, limit, offset)
}

func (s *Service) DeleteManualEntry(ctx context.Context, id int64) error {
	return s.repo.DeleteManualEntry(ctx, id)
}
