package treatments

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

func (s *Service) List(ctx context.Context) ([]Treatment, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Treatment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, treatment Treatment) (Treatment, error) {
	if strings.TrimSpace(treatment.Name) == "" {
		return Treatment{}, shared.ErrRequiredField
	}
	return s.repo.Create(ctx, treatment)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
