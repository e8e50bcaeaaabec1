package reasons

import (
	"context"
	"errors"

	"gestor-visitas/internal/platform/sentinel"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Reason, error) {
	return s.repo.List(ctx)
}

// Exists indica si el motivo existe. Error solo ante fallas de infraestructura.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
