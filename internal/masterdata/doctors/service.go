package doctors

import (
	"context"
	"strings"

	"github.com/dentara/dentara/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Doctor, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, doctor Doctor) (Doctor, error) {
	if strings.TrimSpace(doctor.Name) == "" {
		return Doctor{}, shared.ErrRequiredField
	}
	return s.repo.Create(ctx, doctor)
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) error {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return shared.ErrRequiredField
	}
	return s.repo.Update(ctx, id, input)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
