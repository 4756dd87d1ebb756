package doctors

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentara/dentara/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Doctor, int, error)
	Get(ctx context.Context, id int64) (Doctor, error)
	Create(ctx context.Context, doctor Doctor) (Doctor, error)
	Update(ctx context.Context, id int64, input UpdateInput) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Doctor, int, error) {
	query := `SELECT id, name, specialty, phone, email, created_at, updated_at FROM doctors WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR specialty ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM doctors WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countArgs = append(countArgs, "%"+filters.Search+"%")
		countQuery += ` AND (name ILIKE $1 OR specialty ILIKE $1)`
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY id ASC`

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var doctors []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.Phone, &d.Email, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		doctors = append(doctors, d)
	}
	return doctors, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Doctor, error) {
	var d Doctor
	err := r.db.QueryRow(ctx, `SELECT id, name, specialty, phone, email, created_at, updated_at FROM doctors WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Specialty, &d.Phone, &d.Email, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Doctor{}, shared.ErrNotFound
	}
	return d, err
}

func (r *repository) Create(ctx context.Context, doctor Doctor) (Doctor, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx, `INSERT INTO doctors (name, specialty, phone, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		doctor.Name, doctor.Specialty, doctor.Phone, doctor.Email, now, now).Scan(&doctor.ID)
	if err != nil {
		return Doctor{}, err
	}
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	return doctor, nil
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateInput) error {
	query := `UPDATE doctors SET
		name = COALESCE($1, name),
		specialty = COALESCE($2, specialty),
		phone = COALESCE($3, phone),
		email = COALESCE($4, email),
		updated_at = $5
		WHERE id = $6`
	tag, err := r.db.Exec(ctx, query, input.Name, input.Specialty, input.Phone, input.Email, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
