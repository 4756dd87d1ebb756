package ledger

import (
	"errors"
	"time"
)

// Expense is a standalone ledger entry, independent of appointments.
type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}

// ManualEntry records extra income and expense for a day that is not tied to
// a specific appointment. Only payments carry a clinic/doctor split; manual
// income never does.
type ManualEntry struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	ExtraIncome  float64   `json:"extra_income"`
	ExtraExpense float64   `json:"extra_expense"`
	Notes        string    `json:"notes,omitempty"`
}

// ErrNotFound indicates a missing ledger entry id.
var ErrNotFound = errors.New("ledger: entry not found")
