package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	appointments map[int64]Appointment
	nextID       int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{appointments: make(map[int64]Appointment)}
}

func (r *memoryRepo) List(ctx context.Context, limit, offset int) ([]Appointment, error) {
	var out []Appointment
	for _, a := range r.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *memoryRepo) Create(ctx context.Context, appt Appointment) (int64, error) {
	r.nextID++
	appt.ID = r.nextID
	r.appointments[appt.ID] = appt
	return appt.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, input UpdateInput) error {
	a, ok := r.appointments[id]
	if !ok {
		return ErrNotFound
	}
	if input.Date != nil {
		a.Date = *input.Date
	}
	if input.Status != nil {
		a.Status = *input.Status
	}
	if input.Notes != nil {
		a.Notes = *input.Notes
	}
	r.appointments[id] = a
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func TestBookDefaultsStatus(t *testing.T) {
	svc := NewService(newMemoryRepo())
	patientID := int64(1)

	appt, err := svc.Book(context.Background(), BookInput{
		PatientID: &patientID,
		Date:      time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, StatusScheduled, appt.Status)
	require.NotZero(t, appt.ID)
}

func TestBookKeepsFreeTextStatus(t *testing.T) {
	svc := NewService(newMemoryRepo())

	appt, err := svc.Book(context.Background(), BookInput{
		Date:   time.Now(),
		Status: "waiting for lab",
	})
	require.NoError(t, err)
	require.Equal(t, "waiting for lab", appt.Status)
}

func TestUpdateMissingAppointment(t *testing.T) {
	svc := NewService(newMemoryRepo())
	status := StatusDone

	err := svc.Update(context.Background(), 99, UpdateInput{Status: &status})
	require.ErrorIs(t, err, ErrNotFound)
}
