package ledger

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListExpenses(ctx context.Context, limit, offset int) ([]Expense, error)
	CreateExpense(ctx context.Context, expense Expense) (int64, error)
	DeleteExpense(ctx context.Context, id int64) error

	ListManualEntries(ctx context.Context, limit, offset int) ([]ManualEntry, error)
	CreateManualEntry(ctx context.Context, entry ManualEntry) (int64, error)
	DeleteManualEntry(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListExpenses(ctx context.Context, limit, offset int) ([]Expense, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT id, description, category, amount, date FROM expenses ORDER BY date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Category, &e.Amount, &e.Date); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *repository) CreateExpense(ctx context.Context, expense Expense) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO expenses (description, category, amount, date) VALUES ($1, $2, $3, $4) RETURNING id`,
		expense.Description, expense.Category, expense.Amount, expense.Date).Scan(&id)
	return id, err
}

func (r *repository) DeleteExpense(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListManualEntries(ctx context.Context, limit, offset int) ([]ManualEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT id, date, extra_income, extra_expense, notes FROM daily_manual_entries ORDER BY date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ManualEntry
	for rows.Next() {
		var m ManualEntry
		if err := rows.Scan(&m.ID, &m.Date, &m.ExtraIncome, &m.ExtraExpense, &m.Notes); err != nil {
			return nil, err
		}
		entries = append(entries, m)
	}
	return entries, rows.Err()
}

func (r *repository) CreateManualEntry(ctx context.Context, entry ManualEntry) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO daily_manual_entries (date, extra_income, extra_expense, notes) VALUES ($1, $2, $3, $4) RETURNING id`,
		entry.Date, entry.ExtraIncome, entry.ExtraExpense, entry.Notes).Scan(&id)
	return id, err
}

func (r *repository) DeleteManualEntry(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM daily_manual_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
