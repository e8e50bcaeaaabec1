package users

import (
	"context"
	"errors"
	"strings"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/platform/sentinel"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// GetByEmail normaliza el correo (trim + minúsculas) antes de buscar.
func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return User{}, ErrInvalidInput
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, role *access.Role) ([]User, error) {
	if role != nil && !role.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, role)
}

// IsAsesor indica si id corresponde a un usuario con rol ASESOR.
// Lo usa el motor de visitas para validar asignaciones.
func (s *Service) IsAsesor(ctx context.Context, id int64) (bool, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
			return false, nil
		}
		return false, err
	}
	return u.Rol == access.RoleAsesor, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
