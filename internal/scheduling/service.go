package scheduling

import (
	"context"
)

// Service coordinates appointment booking.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Book creates an appointment. Status defaults to "scheduled" when empty.
func (s *Service) Book(ctx context.Context, input BookInput) (Appointment, error) {
	status := input.Status
	if status == "" {
		status = StatusScheduled
	}
	appt := Appointment{
		PatientID:   input.PatientID,
		DoctorID:    input.DoctorID,
		TreatmentID: input.TreatmentID,
		Date:        input.Date,
		Status:      status,
		Notes:       input.Notes,
	}
	id, err := s.repo.Create(ctx, appt)
	if err != nil {
		return Appointment{}, err
	}
	appt.ID = id
	return appt, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Appointment, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, id int64) (Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) error {
	return s.repo.Update(ctx, id, input)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
