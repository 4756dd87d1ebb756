package patients

import (
	"context"

	"github.com/dentara/dentara/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Patient, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, patient Patient) (Patient, error) {
	if err := s.validate(patient); err != nil {
		return Patient{}, err
	}
	return s.repo.Create(ctx, patient)
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) error {
	if input.Name != nil && *input.Name == "" {
		return shared.ErrRequiredField
	}
	return s.repo.Update(ctx, id, input)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
