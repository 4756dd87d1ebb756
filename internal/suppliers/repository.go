package suppliers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists supplier data in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the operations that must share one transaction:
// appending a ledger row and moving the stored balance.
type TxRepository interface {
	InsertTransaction(ctx context.Context, tr Transaction) (int64, error)
	InsertInvoice(ctx context.Context, inv Invoice) (int64, error)
	AdjustBalance(ctx context.Context, supplierID int64, delta float64) error
	SetBalance(ctx context.Context, supplierID int64, balance float64) error
	SumHistory(ctx context.Context, supplierID int64) (float64, error)
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &txRepo{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const supplierColumns = `id, name, category, contact, notes, balance, created_at, updated_at`

func (r *Repository) List(ctx context.Context) ([]Supplier, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("suppliers: list: %w", err)
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Contact, &s.Notes, &s.Balance, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("suppliers: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id int64) (Supplier, error) {
	var s Supplier
	err := r.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Category, &s.Contact, &s.Notes, &s.Balance, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Supplier{}, ErrSupplierNotFound
	}
	if err != nil {
		return Supplier{}, err
	}
	return s, nil
}

func (r *Repository) Create(ctx context.Context, s Supplier) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, category, contact, notes, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id`,
		s.Name, s.Category, s.Contact, s.Notes, s.Balance,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("suppliers: create: %w", err)
	}
	return id, nil
}

func (r *Repository) Update(ctx context.Context, id int64, in UpdateInput) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE suppliers SET
			name = COALESCE($2, name),
			category = COALESCE($3, category),
			contact = COALESCE($4, contact),
			notes = COALESCE($5, notes),
			updated_at = NOW()
		WHERE id = $1`,
		id, in.Name, in.Category, in.Contact, in.Notes)
	if err != nil {
		return fmt.Errorf("suppliers: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("suppliers: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) ListTransactions(ctx context.Context, supplierID int64) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, supplier_id, amount, description, date, created_at
		FROM supplier_transactions
		WHERE supplier_id = $1
		ORDER BY date DESC, id DESC`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("suppliers: list transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var tr Transaction
		if err := rows.Scan(&tr.ID, &tr.SupplierID, &tr.Amount, &tr.Description, &tr.Date, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("suppliers: scan transaction: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

func (r *Repository) ListInvoices(ctx context.Context, supplierID int64) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, supplier_id, number, amount, date, notes, created_at
		FROM supplier_invoices
		WHERE supplier_id = $1
		ORDER BY date DESC, id DESC`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("suppliers: list invoices: %w", err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.SupplierID, &inv.Number, &inv.Amount, &inv.Date, &inv.Notes, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("suppliers: scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM supplier_transactions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("suppliers: delete transaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (t *txRepo) InsertTransaction(ctx context.Context, tr Transaction) (int64, error) {
	var id int64
	date := tr.Date
	if date.IsZero() {
		date = time.Now()
	}
	err := t.tx.QueryRow(ctx, `
		INSERT INTO supplier_transactions (supplier_id, amount, description, date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`,
		tr.SupplierID, tr.Amount, tr.Description, date,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("suppliers: insert transaction: %w", err)
	}
	return id, nil
}

func (t *txRepo) InsertInvoice(ctx context.Context, inv Invoice) (int64, error) {
	var id int64
	date := inv.Date
	if date.IsZero() {
		date = time.Now()
	}
	err := t.tx.QueryRow(ctx, `
		INSERT INTO supplier_invoices (supplier_id, number, amount, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id`,
		inv.SupplierID, inv.Number, inv.Amount, date, inv.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("suppliers: insert invoice: %w", err)
	}
	return id, nil
}

func (t *txRepo) AdjustBalance(ctx context.Context, supplierID int64, delta float64) error {
	tag, err := t.tx.Exec(ctx, `UPDATE suppliers SET balance = balance + $2, updated_at = NOW() WHERE id = $1`, supplierID, delta)
	if err != nil {
		return fmt.Errorf("suppliers: adjust balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

func (t *txRepo) SetBalance(ctx context.Context, supplierID int64, balance float64) error {
	tag, err := t.tx.Exec(ctx, `UPDATE suppliers SET balance = $2, updated_at = NOW() WHERE id = $1`, supplierID, balance)
	if err != nil {
		return fmt.Errorf("suppliers: set balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

// SumHistory re-derives the balance from every surviving transaction and
// invoice row. Only the maintenance recompute uses it.
func (t *txRepo) SumHistory(ctx context.Context, supplierID int64) (float64, error) {
	var total float64
	err := t.tx.QueryRow(ctx, `
		SELECT COALESCE((SELECT SUM(amount) FROM supplier_transactions WHERE supplier_id = $1), 0)
		     + COALESCE((SELECT SUM(amount) FROM supplier_invoices WHERE supplier_id = $1), 0)`,
		supplierID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("suppliers: sum history: %w", err)
	}
	return total, nil
}
