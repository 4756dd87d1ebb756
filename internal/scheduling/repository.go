package scheduling

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]Appointment, error)
	Get(ctx context.Context, id int64) (Appointment, error)
	Create(ctx context.Context, appt Appointment) (int64, error)
	Update(ctx context.Context, id int64, input UpdateInput) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectColumns = `a.id, a.patient_id, a.doctor_id, a.treatment_id, a.date, a.status, a.notes,
	COALESCE(p.name, ''), COALESCE(d.name, ''), COALESCE(t.name, '')`

const joinClause = `FROM appointments a
	LEFT JOIN patients p ON p.id = a.patient_id
	LEFT JOIN doctors d ON d.id = a.doctor_id
	LEFT JOIN treatments t ON t.id = a.treatment_id`

// List returns appointments newest first with names joined.
func (r *repository) List(ctx context.Context, limit, offset int) ([]Appointment, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` `+joinClause+` ORDER BY a.date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.TreatmentID, &a.Date, &a.Status, &a.Notes, &a.PatientName, &a.DoctorName, &a.TreatmentName); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Appointment, error) {
	var a Appointment
	err := r.db.QueryRow(ctx, `SELECT `+selectColumns+` `+joinClause+` WHERE a.id = $1`, id).
		Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.TreatmentID, &a.Date, &a.Status, &a.Notes, &a.PatientName, &a.DoctorName, &a.TreatmentName)
	if errors.Is(err, pgx.ErrNoRows) {
		return Appointment{}, ErrNotFound
	}
	return a, err
}

func (r *repository) Create(ctx context.Context, appt Appointment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO appointments (patient_id, doctor_id, treatment_id, date, status, notes) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		appt.PatientID, appt.DoctorID, appt.TreatmentID, appt.Date, appt.Status, appt.Notes).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, input UpdateInput) error {
	tag, err := r.db.Exec(ctx, `UPDATE appointments SET
		date = COALESCE($1, date),
		status = COALESCE($2, status),
		notes = COALESCE($3, notes),
		updated_at = NOW()
		WHERE id = $4`, input.Date, input.Status, input.Notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
