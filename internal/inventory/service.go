package inventory

import (
	"context"
	"errors"
	"strings"
)

var ErrNameRequired = errors.New("item name is required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// LowStock lists every item at or below its threshold.
func (s *Service) LowStock(ctx context.Context) ([]Item, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, item Item) (Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return Item{}, ErrNameRequired
	}
	return s.repo.Create(ctx, item)
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) error {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return ErrNameRequired
	}
	return s.repo.Update(ctx, id, input)
}

// AdjustQuantity moves stock by delta and returns the new quantity.
// Negative results are allowed; the alert listing surfaces them.
func (s *Service) AdjustQuantity(ctx context.Context, id int64, delta int) (int, error) {
	return s.repo.AdjustQuantity(ctx, id, delta)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
