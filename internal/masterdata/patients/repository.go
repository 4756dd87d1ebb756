package patients

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
	List(ctx context.Context, filters shared.ListFilters) ([]Patient, int, error)
	Get(ctx context.Context, id int64) (Patient, error)
	Create(ctx context.Context, patient Patient) (Patient, error)
	Update(ctx context.Context, id int64, input UpdateInput) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Patient, int, error) {
	query := `SELECT id, name, age, gender, phone, address, medical_history, created_at, updated_at FROM patients WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR phone ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM patients WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countArgs = append(countArgs, "%"+filters.Search+"%")
		countQuery += ` AND (name ILIKE $1 OR phone ILIKE $1)`
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)

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

	var patients []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Address, &p.MedicalHistory, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Patient, error) {
	query := `SELECT id, name, age, gender, phone, address, medical_history, created_at, updated_at FROM patients WHERE id = $1`
	var p Patient
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Address, &p.MedicalHistory, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Patient{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, patient Patient) (Patient, error) {
	query := `INSERT INTO patients (name, age, gender, phone, address, medical_history, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, patient.Name, patient.Age, patient.Gender, patient.Phone, patient.Address, patient.MedicalHistory, now, now).Scan(&patient.ID)
	if err != nil {
		return Patient{}, err
	}
	patient.CreatedAt = now
	patient.UpdatedAt = now
	return patient, nil
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateInput) error {
	query := `UPDATE patients SET
		name = COALESCE($1, name),
		age = COALESCE($2, age),
		gender = COALESCE($3, gender),
		phone = COALESCE($4, phone),
		address = COALESCE($5, address),
		medical_history = COALESCE($6, medical_history),
		updated_at = $7
		WHERE id = $8`
	tag, err := r.db.Exec(ctx, query, input.Name, input.Age, input.Gender, input.Phone, input.Address, input.MedicalHistory, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "name":
		return "name " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "id " + dir
	}
}
