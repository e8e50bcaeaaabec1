package visits

import (
	"strings"
	"time"

	"gestor-visitas/internal/domain/access"
)

// State es el estado del ciclo de vida de una visita.
type State string

const (
	StateProgramada  State = "PROGRAMADA"
	StateEnEjecucion State = "EN_EJECUCION"
	StateEjecutada   State = "EJECUTADA"
	StateReasignada  State = "REASIGNADA"
	StateCancelada   State = "CANCELADA"
)

// Terminal: EJECUTADA y CANCELADA no aceptan más transiciones.
func (s State) Terminal() bool {
	return s == StateEjecutada || s == StateCancelada
}

func ParseState(raw string) (State, bool) {
	s := State(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StateProgramada, StateEnEjecucion, StateEjecutada, StateReasignada, StateCancelada:
		return s, true
	}
	return "", false
}

// VisitKind es el tipo de visita.
// @Enum EMPRESARIAL, INDIVIDUAL
type VisitKind string

const (
	KindEmpresarial VisitKind = "EMPRESARIAL"
	KindIndividual  VisitKind = "INDIVIDUAL"
)

// ParseVisitKind acepta ENTERPRISE como alias de EMPRESARIAL.
func ParseVisitKind(raw string) (VisitKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "EMPRESARIAL", "ENTERPRISE":
		return KindEmpresarial, true
	case "INDIVIDUAL":
		return KindIndividual, true
	}
	return "", false
}

// Visit es una visita de campo programada para un asesor.
type Visit struct {
	ID int64

	AsesorID        int64
	Objetivo        string
	Tipo            VisitKind
	FechaProgramada time.Time

	Estado State

	// MotivoCancelacionID != nil sii Estado == CANCELADA.
	MotivoCancelacionID *int64
	Observaciones       *string

	CreadoPor     int64
	ReasignadaPor *int64
	ModificadoPor *int64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Datos de lectura que completan los repos (joins); no se persisten.
	AsesorNombre        string
	ProgramadaPorNombre string
	MotivoCancelacion   string
}

// Actor es quien solicita la operación.
type Actor struct {
	ID   int64
	Role access.Role
}

// UpdateFields enumera exactamente los campos mutables de una transición.
// nil = no tocar.
type UpdateFields struct {
	Estado              State
	AsesorID            *int64
	MotivoCancelacionID *int64
	Observaciones       *string
	ReasignadaPor       *int64
	ModificadoPor       int64
	UpdatedAt           time.Time
}

// Apply devuelve v con los campos aplicados.
func (f UpdateFields) Apply(v Visit) Visit {
	v.Estado = f.Estado
	if f.AsesorID != nil {
		v.AsesorID = *f.AsesorID
	}
	if f.MotivoCancelacionID != nil {
		id := *f.MotivoCancelacionID
		v.MotivoCancelacionID = &id
	}
	if f.Observaciones != nil {
		obs := *f.Observaciones
		v.Observaciones = &obs
	}
	if f.ReasignadaPor != nil {
		id := *f.ReasignadaPor
		v.ReasignadaPor = &id
	}
	mod := f.ModificadoPor
	v.ModificadoPor = &mod
	v.UpdatedAt = f.UpdatedAt
	return v
}

type ListFilter struct {
	AsesorID *int64
	// Fecha en formato YYYY-MM-DD; compara solo la parte fecha de FechaProgramada.
	Fecha  string
	Estado *State
}
