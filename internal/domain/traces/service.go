package traces

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListByVisit devuelve la trazabilidad de una visita ordenada por fecha asc.
func (s *Service) ListByVisit(ctx context.Context, visitaID int64) ([]Entry, error) {
	if visitaID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByVisit(ctx, visitaID)
}

// Validate revisa los campos obligatorios antes de un Append.
func Validate(e Entry) error {
	if e.VisitaID <= 0 || e.UsuarioID <= 0 {
		return ErrInvalidInput
	}
	if !e.Accion.Valid() {
		return ErrInvalidInput
	}
	if e.EstadoNuevo == "" || e.Fecha.IsZero() {
		return ErrInvalidInput
	}
	return nil
}
