package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository exposes the raw ledger reads aggregation works from.
type Repository interface {
	PaymentsBetween(ctx context.Context, from, to time.Time) ([]PaymentRecord, error)
	ExpensesBetween(ctx context.Context, from, to time.Time) ([]ExpenseRecord, error)
	ManualEntriesBetween(ctx context.Context, from, to time.Time) ([]ManualRecord, error)
	AppointmentsBetween(ctx context.Context, from, to time.Time) ([]AppointmentRecord, error)
	PatientPayments(ctx context.Context, patientID int64) ([]PatientPaymentRecord, error)
	InsertSnapshot(ctx context.Context, snap DailySnapshot) (int64, error)
	ListSnapshots(ctx context.Context) ([]DailySnapshot, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the Postgres backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) PaymentsBetween(ctx context.Context, from, to time.Time) ([]PaymentRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT paid_amount, clinic_share, doctor_share, date_paid
		FROM payments
		WHERE date_paid >= $1 AND date_paid <= $2`, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports: query payments: %w", err)
	}
	defer rows.Close()

	var out []PaymentRecord
	for rows.Next() {
		var rec PaymentRecord
		if err := rows.Scan(&rec.PaidAmount, &rec.ClinicShare, &rec.DoctorShare, &rec.DatePaid); err != nil {
			return nil, fmt.Errorf("reports: scan payment: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *pgRepository) ExpensesBetween(ctx context.Context, from, to time.Time) ([]ExpenseRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT amount, date
		FROM expenses
		WHERE date >= $1 AND date <= $2`, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports: query expenses: %w", err)
	}
	defer rows.Close()

	var out []ExpenseRecord
	for rows.Next() {
		var rec ExpenseRecord
		if err := rows.Scan(&rec.Amount, &rec.Date); err != nil {
			return nil, fmt.Errorf("reports: scan expense: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *pgRepository) ManualEntriesBetween(ctx context.Context, from, to time.Time) ([]ManualRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT extra_income, extra_expense, date
		FROM daily_manual_entries
		WHERE date >= $1 AND date <= $2`, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports: query manual entries: %w", err)
	}
	defer rows.Close()

	var out []ManualRecord
	for rows.Next() {
		var rec ManualRecord
		if err := rows.Scan(&rec.ExtraIncome, &rec.ExtraExpense, &rec.Date); err != nil {
			return nil, fmt.Errorf("reports: scan manual entry: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *pgRepository) AppointmentsBetween(ctx context.Context, from, to time.Time) ([]AppointmentRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT patient_id, date
		FROM appointments
		WHERE date >= $1 AND date <= $2`, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports: query appointments: %w", err)
	}
	defer rows.Close()

	var out []AppointmentRecord
	for rows.Next() {
		var rec AppointmentRecord
		if err := rows.Scan(&rec.PatientID, &rec.Date); err != nil {
			return nil, fmt.Errorf("reports: scan appointment: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *pgRepository) PatientPayments(ctx context.Context, patientID int64) ([]PatientPaymentRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.total_amount, p.paid_amount, p.date_paid
		FROM payments p
		JOIN appointments a ON a.id = p.appointment_id
		WHERE a.patient_id = $1`, patientID)
	if err != nil {
		return nil, fmt.Errorf("reports: query patient payments: %w", err)
	}
	defer rows.Close()

	var out []PatientPaymentRecord
	for rows.Next() {
		var rec PatientPaymentRecord
		if err := rows.Scan(&rec.TotalAmount, &rec.PaidAmount, &rec.DatePaid); err != nil {
			return nil, fmt.Errorf("reports: scan patient payment: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *pgRepository) InsertSnapshot(ctx context.Context, snap DailySnapshot) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO daily_summaries (date, total_income, clinic_income, doctor_income, total_expenses, net_profit, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id`,
		snap.Date, snap.TotalIncome, snap.ClinicIncome, snap.DoctorIncome, snap.TotalExpenses, snap.NetProfit, snap.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reports: insert snapshot: %w", err)
	}
	return id, nil
}

func (r *pgRepository) ListSnapshots(ctx context.Context) ([]DailySnapshot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, total_income, clinic_income, doctor_income, total_expenses, net_profit, notes, created_at
		FROM daily_summaries
		ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("reports: query snapshots: %w", err)
	}
	defer rows.Close()

	var out []DailySnapshot
	for rows.Next() {
		var snap DailySnapshot
		if err := rows.Scan(&snap.ID, &snap.Date, &snap.TotalIncome, &snap.ClinicIncome, &snap.DoctorIncome, &snap.TotalExpenses, &snap.NetProfit, &snap.Notes, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("reports: scan snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
