package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	ListLowStock(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int64) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, id int64, input UpdateInput) error
	AdjustQuantity(ctx context.Context, id int64, delta int) (int, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const itemColumns = `id, name, unit, quantity, low_threshold, created_at, updated_at`

func (r *repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *repository) ListLowStock(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE quantity <= low_threshold ORDER BY quantity ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Unit, &it.Quantity, &it.LowThreshold, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Item, error) {
	var it Item
	err := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id).
		Scan(&it.ID, &it.Name, &it.Unit, &it.Quantity, &it.LowThreshold, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrItemNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (r *repository) Create(ctx context.Context, item Item) (Item, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO inventory_items (name, unit, quantity, low_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		item.Name, item.Unit, item.Quantity, item.LowThreshold,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateInput) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_items SET
			name = COALESCE($2, name),
			unit = COALESCE($3, unit),
			quantity = COALESCE($4, quantity),
			low_threshold = COALESCE($5, low_threshold),
			updated_at = NOW()
		WHERE id = $1`,
		id, input.Name, input.Unit, input.Quantity, input.LowThreshold)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) AdjustQuantity(ctx context.Context, id int64, delta int) (int, error) {
	var quantity int
	err := r.db.QueryRow(ctx, `
		UPDATE inventory_items SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING quantity`, id, delta).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrItemNotFound
	}
	if err != nil {
		return 0, err
	}
	return quantity, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}
