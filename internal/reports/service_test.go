package reports

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockRepo struct {
	payments     []PaymentRecord
	expenses     []ExpenseRecord
	manual       []ManualRecord
	appointments []AppointmentRecord
	patientRows  []PatientPaymentRecord

	paymentCalls int
	snapshots    []DailySnapshot
	nextSnapID   int64
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func (m *mockRepo) PaymentsBetween(ctx context.Context, from, to time.Time) ([]PaymentRecord, error) {
	m.paymentCalls++
	var out []PaymentRecord
	for _, p := range m.payments {
		if within(p.DatePaid, from, to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) ExpensesBetween(ctx context.Context, from, to time.Time) ([]ExpenseRecord, error) {
	var out []ExpenseRecord
	for _, e := range m.expenses {
		if within(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockRepo) ManualEntriesBetween(ctx context.Context, from, to time.Time) ([]ManualRecord, error) {
	var out []ManualRecord
	for _, e := range m.manual {
		if within(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockRepo) AppointmentsBetween(ctx context.Context, from, to time.Time) ([]AppointmentRecord, error) {
	var out []AppointmentRecord
	for _, a := range m.appointments {
		if within(a.Date, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepo) PatientPayments(ctx context.Context, patientID int64) ([]PatientPaymentRecord, error) {
	return m.patientRows, nil
}

func (m *mockRepo) InsertSnapshot(ctx context.Context, snap DailySnapshot) (int64, error) {
	m.nextSnapID++
	snap.ID = m.nextSnapID
	m.snapshots = append(m.snapshots, snap)
	return snap.ID, nil
}

func (m *mockRepo) ListSnapshots(ctx context.Context) ([]DailySnapshot, error) {
	return m.snapshots, nil
}

func newTestService(t *testing.T, repo Repository) (*Service, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, cache, nil)
	return svc, func() {
		_ = client.Close()
		mr.Close()
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func at(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.Local)
}

func int64p(v int64) *int64 { return &v }

func TestDailySummaryAggregates(t *testing.T) {
	repo := &mockRepo{
		payments: []PaymentRecord{
			{PaidAmount: 100, ClinicShare: 60, DoctorShare: 40, DatePaid: at(2025, 3, 10, 9, 0, 0)},
			{PaidAmount: 50, ClinicShare: 25, DoctorShare: 25, DatePaid: at(2025, 3, 10, 14, 30, 0)},
		},
		expenses: []ExpenseRecord{
			{Amount: 20, Date: at(2025, 3, 10, 12, 0, 0)},
		},
		manual: []ManualRecord{
			{ExtraIncome: 10, ExtraExpense: 5, Date: at(2025, 3, 10, 8, 0, 0)},
		},
		appointments: []AppointmentRecord{
			{PatientID: int64p(1), Date: at(2025, 3, 10, 9, 0, 0)},
			{PatientID: int64p(1), Date: at(2025, 3, 10, 14, 0, 0)},
			{PatientID: int64p(2), Date: at(2025, 3, 10, 16, 0, 0)},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	sum, err := svc.DailySummary(context.Background(), day(2025, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.IncomeTotal != 160 {
		t.Fatalf("expected income 160 got %.2f", sum.IncomeTotal)
	}
	if sum.ClinicIncome != 85 || sum.DoctorIncome != 65 {
		t.Fatalf("unexpected shares %.2f/%.2f", sum.ClinicIncome, sum.DoctorIncome)
	}
	if sum.ExpenseTotal != 25 {
		t.Fatalf("expected expenses 25 got %.2f", sum.ExpenseTotal)
	}
	// Clinic share minus expenses, not gross minus expenses.
	if sum.DailyNetProfit != 60 {
		t.Fatalf("expected net profit 60 got %.2f", sum.DailyNetProfit)
	}
	if sum.PatientsCount != 2 || sum.AppointmentsCount != 3 {
		t.Fatalf("unexpected counts patients=%d appointments=%d", sum.PatientsCount, sum.AppointmentsCount)
	}
}

func TestDailySummaryWindowIncludesLastMicrosecond(t *testing.T) {
	lastTick := time.Date(2025, 3, 10, 23, 59, 59, 999999000, time.Local)
	nextMidnight := time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)
	repo := &mockRepo{
		payments: []PaymentRecord{
			{PaidAmount: 70, ClinicShare: 35, DoctorShare: 35, DatePaid: lastTick},
			{PaidAmount: 999, ClinicShare: 999, DatePaid: nextMidnight},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	sum, err := svc.DailySummary(context.Background(), day(2025, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.IncomeTotal != 70 {
		t.Fatalf("expected only the 23:59:59.999999 payment, got income %.2f", sum.IncomeTotal)
	}
}

func TestDailySummaryIsReadOnlyAndRepeatable(t *testing.T) {
	repo := &mockRepo{
		payments: []PaymentRecord{
			{PaidAmount: 100, ClinicShare: 50, DoctorShare: 50, DatePaid: at(2025, 3, 10, 9, 0, 0)},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	first, err := svc.DailySummary(ctx, day(2025, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.DailySummary(ctx, day(2025, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical summaries, got %+v vs %+v", first, second)
	}
	if len(repo.snapshots) != 0 {
		t.Fatalf("summary must not persist anything, found %d snapshots", len(repo.snapshots))
	}
	// Second call is served from cache.
	if repo.paymentCalls != 1 {
		t.Fatalf("expected 1 repo call, got %d", repo.paymentCalls)
	}
}

func TestCacheBumpForcesReload(t *testing.T) {
	repo := &mockRepo{
		payments: []PaymentRecord{
			{PaidAmount: 100, ClinicShare: 50, DoctorShare: 50, DatePaid: at(2025, 3, 10, 9, 0, 0)},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.DailySummary(ctx, day(2025, 3, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.payments = append(repo.payments, PaymentRecord{PaidAmount: 40, ClinicShare: 20, DoctorShare: 20, DatePaid: at(2025, 3, 10, 10, 0, 0)})

	stale, err := svc.DailySummary(ctx, day(2025, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stale.IncomeTotal != 100 {
		t.Fatalf("expected cached income 100 got %.2f", stale.IncomeTotal)
	}

	if err := svc.Invalidate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fresh, err := svc.DailySummary(ctx, day(2025, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.IncomeTotal != 140 {
		t.Fatalf("expected reloaded income 140 got %.2f", fresh.IncomeTotal)
	}
}

func TestMonthlyWindowExcludesLastSecond(t *testing.T) {
	repo := &mockRepo{
		payments: []PaymentRecord{
			{PaidAmount: 10, ClinicShare: 5, DoctorShare: 5, DatePaid: at(2025, 3, 31, 23, 59, 59)},
			// Half a second before April but after 23:59:59, outside the window.
			{PaidAmount: 99, ClinicShare: 99, DatePaid: time.Date(2025, 3, 31, 23, 59, 59, 500000000, time.Local)},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	rows, err := svc.MonthlyFinancials(context.Background(), 2025, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(rows))
	}
	if rows[0].Income != 10 {
		t.Fatalf("expected income 10 got %.2f", rows[0].Income)
	}
}

func TestMonthlyFinancialsBucketsAndOrders(t *testing.T) {
	repo := &mockRepo{
		payments: []PaymentRecord{
			{PaidAmount: 100, ClinicShare: 60, DoctorShare: 40, DatePaid: at(2025, 3, 15, 11, 0, 0)},
			{PaidAmount: 30, ClinicShare: 15, DoctorShare: 15, DatePaid: at(2025, 3, 2, 9, 0, 0)},
		},
		expenses: []ExpenseRecord{
			{Amount: 20, Date: at(2025, 3, 15, 12, 0, 0)},
		},
		manual: []ManualRecord{
			{ExtraIncome: 5, ExtraExpense: 1, Date: at(2025, 3, 20, 8, 0, 0)},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	rows, err := svc.MonthlyFinancials(context.Background(), 2025, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 dated rows got %d", len(rows))
	}
	if rows[0].Date != "2025-03-02" || rows[1].Date != "2025-03-15" || rows[2].Date != "2025-03-20" {
		t.Fatalf("rows not ascending: %v %v %v", rows[0].Date, rows[1].Date, rows[2].Date)
	}
	if rows[1].Income != 100 || rows[1].Expense != 20 || rows[1].NetTotal != 80 {
		t.Fatalf("unexpected 03-15 row %+v", rows[1])
	}
	if rows[2].Income != 5 || rows[2].Expense != 1 || rows[2].NetTotal != 4 {
		t.Fatalf("unexpected manual-entry row %+v", rows[2])
	}
}

// The daily net uses the clinic share while the monthly net uses gross
// income. The same day legitimately reports two different nets.
func TestDailyAndMonthlyNetDiverge(t *testing.T) {
	repo := &mockRepo{
		payments: []PaymentRecord{
			{PaidAmount: 100, ClinicShare: 60, DoctorShare: 40, DatePaid: at(2025, 3, 15, 11, 0, 0)},
		},
		expenses: []ExpenseRecord{
			{Amount: 20, Date: at(2025, 3, 15, 12, 0, 0)},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	daily, err := svc.DailySummary(ctx, day(2025, 3, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	monthly, err := svc.MonthlyFinancials(ctx, 2025, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if daily.DailyNetProfit != 40 {
		t.Fatalf("expected daily net 40 got %.2f", daily.DailyNetProfit)
	}
	if len(monthly) != 1 || monthly[0].NetTotal != 80 {
		t.Fatalf("expected monthly net 80 got %+v", monthly)
	}
}

func TestPatientSummaryExcludesWalkIns(t *testing.T) {
	// The repository join already dropped walk-in payments; the rows below
	// are the appointment-linked ones only.
	last := at(2025, 3, 12, 10, 0, 0)
	repo := &mockRepo{
		patientRows: []PatientPaymentRecord{
			{TotalAmount: 30, PaidAmount: 20, DatePaid: &last},
			{TotalAmount: 20, PaidAmount: 10, DatePaid: timePtr(at(2025, 2, 1, 9, 0, 0))},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	sum, err := svc.PatientFinancialSummary(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalAmount != 50 || sum.TotalPaid != 30 || sum.Balance != 20 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.LastPaymentDate == nil || !sum.LastPaymentDate.Equal(last) {
		t.Fatalf("unexpected last payment date %v", sum.LastPaymentDate)
	}
}

func TestPatientSummaryEmpty(t *testing.T) {
	svc, cleanup := newTestService(t, &mockRepo{})
	defer cleanup()

	sum, err := svc.PatientFinancialSummary(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Balance != 0 || sum.LastPaymentDate != nil {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestSaveDailySnapshotAppends(t *testing.T) {
	repo := &mockRepo{
		payments: []PaymentRecord{
			{PaidAmount: 100, ClinicShare: 60, DoctorShare: 40, DatePaid: at(2025, 3, 15, 11, 0, 0)},
		},
		expenses: []ExpenseRecord{
			{Amount: 20, Date: at(2025, 3, 15, 12, 0, 0)},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()
	saved := at(2025, 3, 15, 23, 30, 0)
	svc.WithNow(func() time.Time { return saved })

	ctx := context.Background()
	first, err := svc.SaveDailySnapshot(ctx, day(2025, 3, 15), "end of day", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TotalIncome != 100 || first.NetProfit != 40 {
		t.Fatalf("unexpected snapshot %+v", first)
	}
	if !first.CreatedAt.Equal(saved) {
		t.Fatalf("expected created_at %v got %v", saved, first.CreatedAt)
	}

	// A later payment changes new snapshots but never the stored one.
	repo.payments = append(repo.payments, PaymentRecord{PaidAmount: 50, ClinicShare: 25, DoctorShare: 25, DatePaid: at(2025, 3, 15, 16, 0, 0)})
	second, err := svc.SaveDailySnapshot(ctx, day(2025, 3, 15), "", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("expected a new row, both snapshots have id %d", first.ID)
	}
	if len(repo.snapshots) != 2 {
		t.Fatalf("expected 2 stored snapshots got %d", len(repo.snapshots))
	}
	if repo.snapshots[0].TotalIncome != 100 {
		t.Fatalf("first snapshot mutated: %+v", repo.snapshots[0])
	}
	if second.TotalIncome != 150 {
		t.Fatalf("expected second snapshot income 150 got %.2f", second.TotalIncome)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
