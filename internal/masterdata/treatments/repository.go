package treatments

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentara/dentara/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Treatment, error)
	Get(ctx context.Context, id int64) (Treatment, error)
	Create(ctx context.Context, treatment Treatment) (Treatment, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Treatment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, base_cost, created_at, updated_at FROM treatments ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var treatments []Treatment
	for rows.Next() {
		var t Treatment
		if err := rows.Scan(&t.ID, &t.Name, &t.BaseCost, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		treatments = append(treatments, t)
	}
	return treatments, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Treatment, error) {
	var t Treatment
	err := r.db.QueryRow(ctx, `SELECT id, name, base_cost, created_at, updated_at FROM treatments WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.BaseCost, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Treatment{}, shared.ErrNotFound
	}
	return t, err
}

func (r *repository) Create(ctx context.Context, treatment Treatment) (Treatment, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx, `INSERT INTO treatments (name, base_cost, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		treatment.Name, treatment.BaseCost, now, now).Scan(&treatment.ID)
	if err != nil {
		return Treatment{}, err
	}
	treatment.CreatedAt = now
	treatment.UpdatedAt = now
	return treatment, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
