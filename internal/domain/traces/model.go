package traces

import (
	"time"

	"gestor-visitas/internal/domain/access"
)

// Entry es un registro inmutable de trazabilidad: una transición aceptada.
type Entry struct {
	ID       int64
	VisitaID int64

	UsuarioID int64
	Accion    access.Action
	Detalle   string

	// EstadoAnterior queda vacío para PROGRAMAR (creación).
	EstadoAnterior string
	EstadoNuevo    string

	Fecha time.Time
}
