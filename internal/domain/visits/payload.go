package visits

import "gestor-visitas/internal/domain/access"

// Payload es el cuerpo específico de cada transición. Cada acción tiene su
// propio tipo; pasar uno que no corresponde a la acción es InvalidPayload.
type Payload interface {
	Action() access.Action
}

// EjecutarPayload avanza PROGRAMADA -> EN_EJECUCION -> EJECUTADA.
type EjecutarPayload struct {
	// Obligatorio al cerrar (EN_EJECUCION -> EJECUTADA).
	Observaciones string
	// Estado opcional: si viene y no coincide con el destino calculado, se rechaza.
	Estado State
}

func (EjecutarPayload) Action() access.Action { return access.ActionEjecutar }

type ReasignarPayload struct {
	NuevoAsesorID int64
	Motivo        string
}

func (ReasignarPayload) Action() access.Action { return access.ActionReasignar }

type CancelarPayload struct {
	MotivoCancelacionID int64
	Observaciones       string
}

func (CancelarPayload) Action() access.Action { return access.ActionCancelar }

// CreateInput es el cuerpo de PROGRAMAR.
type CreateInput struct {
	AsesorID        int64
	Objetivo        string
	Tipo            string
	FechaProgramada string
}
