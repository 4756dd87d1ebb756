package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	rules        map[[2]int64]SplitRule
	appointments map[int64][2]int64
	payments     map[int64]Payment
	nextID       int64
}

type memoryTx struct {
	repo *memoryRepo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		rules:        make(map[[2]int64]SplitRule),
		appointments: make(map[int64][2]int64),
		payments:     make(map[int64]Payment),
	}
}

func (r *memoryRepo) FindRule(ctx context.Context, treatmentID, doctorID int64) (SplitRule, bool, error) {
	rule, ok := r.rules[[2]int64{treatmentID, doctorID}]
	return rule, ok, nil
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryTx{repo: r})
}

func (r *memoryRepo) AppointmentRefs(ctx context.Context, appointmentID int64) (*int64, *int64, error) {
	refs, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil, nil
	}
	t, d := refs[0], refs[1]
	return &t, &d, nil
}

func (r *memoryRepo) GetPayment(ctx context.Context, id int64) (Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (r *memoryRepo) ListPayments(ctx context.Context, limit, offset int) ([]Payment, error) {
	var out []Payment
	for _, p := range r.payments {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryRepo) ListRules(ctx context.Context) ([]SplitRule, error) {
	var out []SplitRule
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	return out, nil
}

func (t *memoryTx) InsertPayment(ctx context.Context, payment Payment) (int64, error) {
	t.repo.nextID++
	payment.ID = t.repo.nextID
	t.repo.payments[payment.ID] = payment
	return payment.ID, nil
}

func (t *memoryTx) UpsertRule(ctx context.Context, rule SplitRule) (int64, error) {
	key := [2]int64{rule.TreatmentID, rule.DoctorID}
	if existing, ok := t.repo.rules[key]; ok {
		rule.ID = existing.ID
	} else {
		t.repo.nextID++
		rule.ID = t.repo.nextID
	}
	t.repo.rules[key] = rule
	return rule.ID, nil
}

func (t *memoryTx) DeletePayment(ctx context.Context, id int64) (bool, error) {
	if _, ok := t.repo.payments[id]; !ok {
		return false, nil
	}
	delete(t.repo.payments, id)
	return true, nil
}

func TestRecordPaymentDefaultSplit(t *testing.T) {
	repo := newMemoryRepo()
	repo.appointments[10] = [2]int64{1, 1} // treatment T1, doctor D1, no rule
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		AppointmentID: int64p(10),
		TotalAmount:   200,
		PaidAmount:    200,
		Method:        "cash",
	})
	require.NoError(t, err)
	require.Equal(t, 100.00, payment.ClinicShare)
	require.Equal(t, 100.00, payment.DoctorShare)
	require.False(t, payment.DatePaid.IsZero())
	require.NotEmpty(t, payment.Code)
}

func TestRecordPaymentConfiguredSplit(t *testing.T) {
	repo := newMemoryRepo()
	repo.appointments[10] = [2]int64{1, 1}
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.SetRule(ctx, SetRuleInput{TreatmentID: 1, DoctorID: 1, ClinicPercent: 60, DoctorPercent: 40})
	require.NoError(t, err)

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		AppointmentID: int64p(10),
		TotalAmount:   100,
		PaidAmount:    100,
		Method:        "card",
		Discounts:     10,
		Taxes:         5,
	})
	require.NoError(t, err)
	require.Equal(t, 57.00, payment.ClinicShare)
	require.Equal(t, 38.00, payment.DoctorShare)
}

func TestRecordPaymentWalkIn(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		TotalAmount: 80,
		PaidAmount:  80,
		Method:      "cash",
	})
	require.NoError(t, err)
	require.Nil(t, payment.AppointmentID)
	require.Equal(t, 40.00, payment.ClinicShare)
	require.Equal(t, 40.00, payment.DoctorShare)
}

func TestRecordPaymentMissingAppointmentTreatedAsWalkIn(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		AppointmentID: int64p(999),
		TotalAmount:   60,
		PaidAmount:    60,
		Method:        "cash",
	})
	require.NoError(t, err)
	require.Equal(t, 30.00, payment.ClinicShare)
	require.Equal(t, 30.00, payment.DoctorShare)
}

func TestRecordPaymentAcceptsOverpayment(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		TotalAmount: 50,
		PaidAmount:  500,
		Method:      "cash",
	})
	require.NoError(t, err)
	require.Equal(t, 500.00, payment.PaidAmount)
}

func TestSetRuleUpserts(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	first, err := svc.SetRule(ctx, SetRuleInput{TreatmentID: 1, DoctorID: 2, ClinicPercent: 70, DoctorPercent: 30})
	require.NoError(t, err)
	second, err := svc.SetRule(ctx, SetRuleInput{TreatmentID: 1, DoctorID: 2, ClinicPercent: 55, DoctorPercent: 45})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	rule, ok, err := repo.FindRule(ctx, 1, 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 55.00, rule.ClinicPercent)
}

func TestRuleChangeDoesNotTouchPastPayments(t *testing.T) {
	repo := newMemoryRepo()
	repo.appointments[10] = [2]int64{1, 1}
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{AppointmentID: int64p(10), TotalAmount: 200, PaidAmount: 200, Method: "cash"})
	require.NoError(t, err)
	require.Equal(t, 100.00, payment.ClinicShare)

	_, err = svc.SetRule(ctx, SetRuleInput{TreatmentID: 1, DoctorID: 1, ClinicPercent: 90, DoctorPercent: 10})
	require.NoError(t, err)

	stored, err := svc.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	require.Equal(t, 100.00, stored.ClinicShare)
}

func TestDeletePaymentNotFound(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)

	err := svc.DeletePayment(context.Background(), 42, 0)
	require.ErrorIs(t, err, ErrPaymentNotFound)
}
