package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists billing data in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes transactional operations used by the service.
type TxRepository interface {
	InsertPayment(ctx context.Context, payment Payment) (int64, error)
	UpsertRule(ctx context.Context, rule SplitRule) (int64, error)
	DeletePayment(ctx context.Context, id int64) (bool, error)
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

func (r *Repository) FindRule(ctx context.Context, treatmentID, doctorID int64) (SplitRule, bool, error) {
	var rule SplitRule
	err := r.pool.QueryRow(ctx, `SELECT id, treatment_id, doctor_id, clinic_percent, doctor_percent, updated_at FROM split_rules WHERE treatment_id = $1 AND doctor_id = $2`, treatmentID, doctorID).
		Scan(&rule.ID, &rule.TreatmentID, &rule.DoctorID, &rule.ClinicPercent, &rule.DoctorPercent, &rule.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return SplitRule{}, false, nil
	}
	if err != nil {
		return SplitRule{}, false, err
	}
	return rule, true, nil
}

// AppointmentRefs resolves the treatment and doctor referenced by an
// appointment. A missing appointment yields nil refs, not an error: the
// payment is then treated like a walk-in.
func (r *Repository) AppointmentRefs(ctx context.Context, appointmentID int64) (treatmentID, doctorID *int64, err error) {
	var tID, dID *int64
	err = r.pool.QueryRow(ctx, `SELECT treatment_id, doctor_id FROM appointments WHERE id = $1`, appointmentID).Scan(&tID, &dID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return tID, dID, nil
}

func (r *Repository) GetPayment(ctx context.Context, id int64) (Payment, error) {
	var p Payment
	err := r.pool.QueryRow(ctx, `SELECT id, code, appointment_id, total_amount, paid_amount, discounts, taxes, clinic_share, doctor_share, payment_method, date_paid FROM payments WHERE id = $1`, id).
		Scan(&p.ID, &p.Code, &p.AppointmentID, &p.TotalAmount, &p.PaidAmount, &p.Discounts, &p.Taxes, &p.ClinicShare, &p.DoctorShare, &p.Method, &p.DatePaid)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, ErrPaymentNotFound
	}
	return p, err
}

// ListPayments returns payments newest first.
func (r *Repository) ListPayments(ctx context.Context, limit, offset int) ([]Payment, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `SELECT id, code, appointment_id, total_amount, paid_amount, discounts, taxes, clinic_share, doctor_share, payment_method, date_paid FROM payments ORDER BY date_paid DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.Code, &p.AppointmentID, &p.TotalAmount, &p.PaidAmount, &p.Discounts, &p.Taxes, &p.ClinicShare, &p.DoctorShare, &p.Method, &p.DatePaid); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// ListRules returns all split rules with treatment and doctor names joined.
func (r *Repository) ListRules(ctx context.Context) ([]SplitRule, error) {
	rows, err := r.pool.Query(ctx, `SELECT sr.id, sr.treatment_id, sr.doctor_id, sr.clinic_percent, sr.doctor_percent, sr.updated_at, COALESCE(t.name, ''), COALESCE(d.name, '')
		FROM split_rules sr
		LEFT JOIN treatments t ON t.id = sr.treatment_id
		LEFT JOIN doctors d ON d.id = sr.doctor_id
		ORDER BY sr.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []SplitRule
	for rows.Next() {
		var rule SplitRule
		if err := rows.Scan(&rule.ID, &rule.TreatmentID, &rule.DoctorID, &rule.ClinicPercent, &rule.DoctorPercent, &rule.UpdatedAt, &rule.TreatmentName, &rule.DoctorName); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (t *txRepo) InsertPayment(ctx context.Context, payment Payment) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO payments (code, appointment_id, total_amount, paid_amount, discounts, taxes, clinic_share, doctor_share, payment_method, date_paid) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		payment.Code, payment.AppointmentID, payment.TotalAmount, payment.PaidAmount, payment.Discounts, payment.Taxes, payment.ClinicShare, payment.DoctorShare, payment.Method, payment.DatePaid).Scan(&id)
	return id, err
}

func (t *txRepo) UpsertRule(ctx context.Context, rule SplitRule) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO split_rules (treatment_id, doctor_id, clinic_percent, doctor_percent, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (treatment_id, doctor_id) DO UPDATE SET clinic_percent = EXCLUDED.clinic_percent, doctor_percent = EXCLUDED.doctor_percent, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		rule.TreatmentID, rule.DoctorID, rule.ClinicPercent, rule.DoctorPercent, time.Now()).Scan(&id)
	return id, err
}

func (t *txRepo) DeletePayment(ctx context.Context, id int64) (bool, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
