package visits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/domain/traces"
	"gestor-visitas/internal/platform/logger"
	"gestor-visitas/internal/platform/sentinel"
)

// AdvisorLookup valida que un id sea un asesor existente.
type AdvisorLookup interface {
	IsAsesor(ctx context.Context, id int64) (bool, error)
}

// ReasonLookup valida que un motivo de cancelación exista.
type ReasonLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// TransitionObserver recibe el resultado de cada transición solicitada.
// result es "ok", un ErrorKind o "error".
type TransitionObserver interface {
	ObserveTransition(action, result string)
}

// Formatos aceptados para la fecha programada.
var scheduleLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// Service es el motor del ciclo de vida de visitas.
type Service struct {
	repo    Repository
	trail   traces.Repository
	tx      TxRunner
	users   AdvisorLookup
	reasons ReasonLookup

	obs TransitionObserver
	log logger.Logger
	now func() time.Time
	loc *time.Location
}

type Option func(*Service)

func WithObserver(o TransitionObserver) Option {
	return func(s *Service) { s.obs = o }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation define la zona de las fechas sin offset ("2006-01-02T15:04"). Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func NewService(repo Repository, trail traces.Repository, tx TxRunner, users AdvisorLookup, reasons ReasonLookup, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		trail:   trail,
		tx:      tx,
		users:   users,
		reasons: reasons,
		log:     logger.Nop(),
		now:     time.Now,
		loc:     time.UTC,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create programa una visita nueva (acción PROGRAMAR) y deja su primera entrada de trazabilidad.
func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (v Visit, err error) {
	defer func() { s.observe(access.ActionProgramar, err) }()

	if !access.IsAllowed(actor.Role, access.ActionProgramar) {
		return Visit{}, newError(KindForbidden, "Solo el jefe puede programar visitas")
	}

	objetivo := strings.TrimSpace(in.Objetivo)
	if objetivo == "" {
		return Visit{}, newError(KindInvalidPayload, "El objetivo es obligatorio")
	}
	tipo, ok := ParseVisitKind(in.Tipo)
	if !ok {
		return Visit{}, newError(KindInvalidPayload, "Tipo de visita inválido")
	}
	fecha, err := s.parseSchedule(in.FechaProgramada)
	if err != nil {
		return Visit{}, newError(KindInvalidPayload, "Fecha programada inválida")
	}
	if err := s.requireAsesor(ctx, in.AsesorID); err != nil {
		return Visit{}, err
	}

	now := s.now()
	v = Visit{
		AsesorID:        in.AsesorID,
		Objetivo:        objetivo,
		Tipo:            tipo,
		FechaProgramada: fecha,
		Estado:          StateProgramada,
		CreadoPor:       actor.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		id, err := s.repo.Create(ctx, v)
		if err != nil {
			return err
		}
		v.ID = id
		_, err = s.trail.Append(ctx, traces.Entry{
			VisitaID:    id,
			UsuarioID:   actor.ID,
			Accion:      access.ActionProgramar,
			Detalle:     fmt.Sprintf("Visita programada para %s", objetivo),
			EstadoNuevo: string(StateProgramada),
			Fecha:       now,
		})
		return err
	})
	if err != nil {
		return Visit{}, fmt.Errorf("programar visita: %w", err)
	}

	s.log.Info("visita programada", map[string]any{
		"visita_id": v.ID,
		"asesor_id": v.AsesorID,
		"actor_id":  actor.ID,
	})
	return v, nil
}

// ApplyTransition aplica action sobre la visita visitID. El orden de validación es:
// existencia, política, estado origen, pertenencia (EJECUTAR), payload.
// Ante cualquier rechazo no se escribe nada.
func (s *Service) ApplyTransition(ctx context.Context, visitID int64, action access.Action, actor Actor, payload Payload) (v Visit, err error) {
	defer func() { s.observe(action, err) }()

	current, err := s.load(ctx, visitID)
	if err != nil {
		return Visit{}, err
	}

	if !access.IsAllowed(actor.Role, action) || !actorMayApply(actor.Role, action) {
		return Visit{}, newError(KindForbidden, "No autorizado para esta acción")
	}

	next, ok := Next(action, current.Estado)
	if !ok {
		return Visit{}, newError(KindInvalidStateTransition,
			fmt.Sprintf("No se puede %s una visita en estado %s", strings.ToLower(string(action)), current.Estado))
	}
	if action == access.ActionEjecutar && current.AsesorID != actor.ID {
		return Visit{}, newError(KindForbidden, "Solo el asesor asignado puede ejecutar la visita")
	}

	// El estado pedido es parte del payload: se valida después de la pertenencia.
	if p, ok := payload.(EjecutarPayload); ok && p.Estado != "" && p.Estado != next {
		return Visit{}, newError(KindInvalidStateTransition,
			fmt.Sprintf("Transición inválida de %s a %s", current.Estado, p.Estado))
	}

	fields, detalle, err := s.prepare(ctx, current, next, action, payload)
	if err != nil {
		return Visit{}, err
	}

	now := s.now()
	fields.ModificadoPor = actor.ID
	fields.UpdatedAt = now
	if action == access.ActionReasignar {
		by := actor.ID
		fields.ReasignadaPor = &by
	}

	entry := traces.Entry{
		VisitaID:       current.ID,
		UsuarioID:      actor.ID,
		Accion:         action,
		Detalle:        detalle,
		EstadoAnterior: string(current.Estado),
		EstadoNuevo:    string(next),
		Fecha:          now,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, current.ID, fields, current.Estado); err != nil {
			return err
		}
		_, err := s.trail.Append(ctx, entry)
		return err
	})
	switch {
	case err == nil:
	case errors.Is(err, sentinel.ErrConflict):
		return Visit{}, &Error{Kind: KindConcurrencyConflict, Message: "La visita fue modificada por otra operación", Err: err}
	case errors.Is(err, sentinel.ErrNotFound):
		return Visit{}, &Error{Kind: KindNotFound, Message: "Visita no encontrada", Err: err}
	default:
		return Visit{}, fmt.Errorf("aplicar %s: %w", action, err)
	}

	s.log.Info("transición aplicada", map[string]any{
		"visita_id": current.ID,
		"accion":    string(action),
		"desde":     string(current.Estado),
		"hacia":     string(next),
		"actor_id":  actor.ID,
	})
	return fields.Apply(current), nil
}

func (s *Service) Ejecutar(ctx context.Context, visitID int64, actor Actor, p EjecutarPayload) (Visit, error) {
	return s.ApplyTransition(ctx, visitID, access.ActionEjecutar, actor, p)
}

func (s *Service) Reasignar(ctx context.Context, visitID int64, actor Actor, p ReasignarPayload) (Visit, error) {
	return s.ApplyTransition(ctx, visitID, access.ActionReasignar, actor, p)
}

func (s *Service) Cancelar(ctx context.Context, visitID int64, actor Actor, p CancelarPayload) (Visit, error) {
	return s.ApplyTransition(ctx, visitID, access.ActionCancelar, actor, p)
}

// prepare valida el payload y arma los campos a escribir junto con el detalle de trazabilidad.
func (s *Service) prepare(ctx context.Context, current Visit, next State, action access.Action, payload Payload) (UpdateFields, string, error) {
	if payload == nil || payload.Action() != action {
		return UpdateFields{}, "", newError(KindInvalidPayload, "Datos inválidos para la acción")
	}

	fields := UpdateFields{Estado: next}

	switch p := payload.(type) {
	case EjecutarPayload:
		obs := strings.TrimSpace(p.Observaciones)
		if next == StateEjecutada && obs == "" {
			return UpdateFields{}, "", newError(KindInvalidPayload, "Las observaciones son obligatorias para finalizar la visita")
		}
		detalle := fmt.Sprintf("Visita marcada como %s", next)
		if obs != "" {
			fields.Observaciones = &obs
			detalle = obs
		}
		return fields, detalle, nil

	case ReasignarPayload:
		if p.NuevoAsesorID == current.AsesorID {
			return UpdateFields{}, "", newError(KindInvalidPayload, "La visita ya está asignada a ese asesor")
		}
		if err := s.requireAsesor(ctx, p.NuevoAsesorID); err != nil {
			return UpdateFields{}, "", err
		}
		nuevo := p.NuevoAsesorID
		fields.AsesorID = &nuevo
		detalle := strings.TrimSpace(p.Motivo)
		if detalle == "" {
			detalle = fmt.Sprintf("Visita reasignada a asesor %d", nuevo)
		}
		return fields, detalle, nil

	case CancelarPayload:
		ok, err := s.reasons.Exists(ctx, p.MotivoCancelacionID)
		if err != nil {
			return UpdateFields{}, "", fmt.Errorf("validar motivo: %w", err)
		}
		if !ok {
			return UpdateFields{}, "", newError(KindInvalidPayload, "Motivo de cancelación inválido")
		}
		motivo := p.MotivoCancelacionID
		fields.MotivoCancelacionID = &motivo
		detalle := "Visita cancelada"
		if obs := strings.TrimSpace(p.Observaciones); obs != "" {
			fields.Observaciones = &obs
			detalle = obs
		}
		return fields, detalle, nil
	}

	return UpdateFields{}, "", newError(KindInvalidPayload, "Datos inválidos para la acción")
}

// List: el asesor solo ve sus visitas, sin importar el filtro pedido.
func (s *Service) List(ctx context.Context, actor Actor, filter ListFilter) ([]Visit, error) {
	switch actor.Role {
	case access.RoleAsesor:
		id := actor.ID
		filter.AsesorID = &id
	case access.RoleJefe:
	default:
		return nil, newError(KindForbidden, "No autorizado")
	}
	if filter.Fecha != "" {
		if _, err := time.Parse("2006-01-02", filter.Fecha); err != nil {
			return nil, newError(KindInvalidPayload, "Fecha debe ser YYYY-MM-DD")
		}
	}
	return s.repo.List(ctx, filter)
}

// Get devuelve la visita si el actor puede verla.
func (s *Service) Get(ctx context.Context, actor Actor, visitID int64) (Visit, error) {
	v, err := s.load(ctx, visitID)
	if err != nil {
		return Visit{}, err
	}
	if err := canView(actor, v); err != nil {
		return Visit{}, err
	}
	return v, nil
}

// Trail devuelve la trazabilidad de la visita, más antigua primero.
func (s *Service) Trail(ctx context.Context, actor Actor, visitID int64) ([]traces.Entry, error) {
	if _, err := s.Get(ctx, actor, visitID); err != nil {
		return nil, err
	}
	return s.trail.ListByVisit(ctx, visitID)
}

func canView(actor Actor, v Visit) error {
	switch actor.Role {
	case access.RoleJefe:
		return nil
	case access.RoleAsesor:
		if v.AsesorID == actor.ID {
			return nil
		}
	}
	return newError(KindForbidden, "No autorizado para ver esta visita")
}

func (s *Service) load(ctx context.Context, visitID int64) (Visit, error) {
	if visitID <= 0 {
		return Visit{}, newError(KindNotFound, "Visita no encontrada")
	}
	v, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Visit{}, &Error{Kind: KindNotFound, Message: "Visita no encontrada", Err: err}
		}
		return Visit{}, fmt.Errorf("obtener visita %d: %w", visitID, err)
	}
	return v, nil
}

func (s *Service) requireAsesor(ctx context.Context, id int64) error {
	if id <= 0 {
		return newError(KindInvalidPayload, "Asesor inválido")
	}
	ok, err := s.users.IsAsesor(ctx, id)
	if err != nil {
		return fmt.Errorf("validar asesor: %w", err)
	}
	if !ok {
		return newError(KindInvalidPayload, "El usuario indicado no es un asesor")
	}
	return nil
}

func (s *Service) parseSchedule(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range scheduleLayouts {
		t, err := time.ParseInLocation(layout, raw, s.loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (s *Service) observe(action access.Action, err error) {
	if s.obs == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = string(KindOf(err))
		if result == "" {
			result = "error"
		}
	}
	s.obs.ObserveTransition(string(action), result)
}
