package reports

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dentara/dentara/internal/shared"
)

// AuditPort records report-side write actions.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service runs the financial aggregations over raw ledger rows and keeps
// hot reads behind the versioned cache.
type Service struct {
	repo  Repository
	cache *Cache
	audit AuditPort
	now   func() time.Time
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache, audit AuditPort) *Service {
	return &Service{repo: repo, cache: cache, audit: audit, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// dayWindow is inclusive at both ends: midnight through one microsecond
// before the next midnight.
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Microsecond)
	return start, end
}

// monthWindow ends one full second before the next month, not one
// microsecond. Rows in the last second of the month fall outside it.
func monthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// DailySummary computes the financial view of one calendar day. It never
// writes; snapshots are a separate explicit action.
func (s *Service) DailySummary(ctx context.Context, date time.Time) (DailySummary, error) {
	key, err := s.cache.BuildKey(ctx, keyDaily(date))
	if err != nil {
		return DailySummary{}, err
	}
	var out DailySummary
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		return s.buildDailySummary(ctx, date)
	})
	return out, err
}

func (s *Service) buildDailySummary(ctx context.Context, date time.Time) (DailySummary, error) {
	from, to := dayWindow(date)

	payments, err := s.repo.PaymentsBetween(ctx, from, to)
	if err != nil {
		return DailySummary{}, err
	}
	expenses, err := s.repo.ExpensesBetween(ctx, from, to)
	if err != nil {
		return DailySummary{}, err
	}
	manual, err := s.repo.ManualEntriesBetween(ctx, from, to)
	if err != nil {
		return DailySummary{}, err
	}
	appts, err := s.repo.AppointmentsBetween(ctx, from, to)
	if err != nil {
		return DailySummary{}, err
	}

	out := DailySummary{Date: from}
	for _, p := range payments {
		out.IncomeTotal += p.PaidAmount
		out.ClinicIncome += p.ClinicShare
		out.DoctorIncome += p.DoctorShare
	}
	for _, e := range expenses {
		out.ExpenseTotal += e.Amount
	}
	for _, m := range manual {
		out.IncomeTotal += m.ExtraIncome
		out.ExpenseTotal += m.ExtraExpense
	}
	// Net profit is measured against what the clinic keeps, not gross intake.
	out.DailyNetProfit = out.ClinicIncome - out.ExpenseTotal

	seen := make(map[int64]struct{})
	for _, a := range appts {
		out.AppointmentsCount++
		if a.PatientID != nil {
			seen[*a.PatientID] = struct{}{}
		}
	}
	out.PatientsCount = len(seen)
	return out, nil
}

// MonthlyFinancials returns one row per calendar date that has at least one
// payment, expense or manual entry, ascending by date.
func (s *Service) MonthlyFinancials(ctx context.Context, year int, month time.Month) ([]MonthlyRow, error) {
	key, err := s.cache.BuildKey(ctx, keyMonthly(year, int(month)))
	if err != nil {
		return nil, err
	}
	var out []MonthlyRow
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		return s.buildMonthlyFinancials(ctx, year, month)
	})
	return out, err
}

func (s *Service) buildMonthlyFinancials(ctx context.Context, year int, month time.Month) ([]MonthlyRow, error) {
	from, to := monthWindow(year, month)

	payments, err := s.repo.PaymentsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ExpensesBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	manual, err := s.repo.ManualEntriesBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*MonthlyRow)
	bucket := func(day time.Time) *MonthlyRow {
		k := day.Format("2006-01-02")
		row, ok := buckets[k]
		if !ok {
			row = &MonthlyRow{Date: k}
			buckets[k] = row
		}
		return row
	}

	for _, p := range payments {
		row := bucket(p.DatePaid)
		row.Income += p.PaidAmount
		row.ClinicShare += p.ClinicShare
		row.DoctorShare += p.DoctorShare
	}
	for _, e := range expenses {
		bucket(e.Date).Expense += e.Amount
	}
	for _, m := range manual {
		row := bucket(m.Date)
		row.Income += m.ExtraIncome
		row.Expense += m.ExtraExpense
	}

	out := make([]MonthlyRow, 0, len(buckets))
	for _, row := range buckets {
		// Gross net here, unlike the daily clinic-share net.
		row.NetTotal = row.Income - row.Expense
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// PatientFinancialSummary sums the patient's appointment-linked payments.
// Walk-in payments have no appointment and do not show up in the balance.
func (s *Service) PatientFinancialSummary(ctx context.Context, patientID int64) (PatientSummary, error) {
	records, err := s.repo.PatientPayments(ctx, patientID)
	if err != nil {
		return PatientSummary{}, err
	}
	out := PatientSummary{PatientID: patientID}
	for _, rec := range records {
		out.TotalAmount += rec.TotalAmount
		out.TotalPaid += rec.PaidAmount
		if rec.DatePaid != nil && (out.LastPaymentDate == nil || rec.DatePaid.After(*out.LastPaymentDate)) {
			d := *rec.DatePaid
			out.LastPaymentDate = &d
		}
	}
	out.Balance = out.TotalAmount - out.TotalPaid
	return out, nil
}

// SaveDailySnapshot persists the current aggregate for a date. Repeated
// calls append new rows; snapshots are never updated in place, and later
// payment or expense changes leave old snapshots untouched.
func (s *Service) SaveDailySnapshot(ctx context.Context, date time.Time, notes string, actorID int64) (DailySnapshot, error) {
	summary, err := s.buildDailySummary(ctx, date)
	if err != nil {
		return DailySnapshot{}, err
	}
	snap := DailySnapshot{
		Date:          summary.Date,
		TotalIncome:   summary.IncomeTotal,
		ClinicIncome:  summary.ClinicIncome,
		DoctorIncome:  summary.DoctorIncome,
		TotalExpenses: summary.ExpenseTotal,
		NetProfit:     summary.DailyNetProfit,
		Notes:         notes,
		CreatedAt:     s.now(),
	}
	id, err := s.repo.InsertSnapshot(ctx, snap)
	if err != nil {
		return DailySnapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	snap.ID = id
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "report.snapshot",
			Entity:   "daily_summary",
			EntityID: strconv.FormatInt(id, 10),
			Meta: map[string]any{
				"date":       snap.Date.Format("2006-01-02"),
				"net_profit": snap.NetProfit,
			},
		})
	}
	return snap, nil
}

// ListSnapshots returns every stored snapshot, newest date first.
func (s *Service) ListSnapshots(ctx context.Context) ([]DailySnapshot, error) {
	return s.repo.ListSnapshots(ctx)
}

// Invalidate bumps the report cache version after ledger writes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
