package access

// Role es el rol de negocio de un usuario.
type Role string

const (
	RoleJefe   Role = "JEFE"
	RoleAsesor Role = "ASESOR"
)

func (r Role) Valid() bool {
	return r == RoleJefe || r == RoleAsesor
}

// Action es una acción del ciclo de vida de una visita. También es el tag
// que queda en la trazabilidad.
type Action string

const (
	ActionProgramar Action = "PROGRAMAR"
	ActionReasignar Action = "REASIGNAR"
	ActionCancelar  Action = "CANCELAR"
	ActionEjecutar  Action = "EJECUTAR"
)

func (a Action) Valid() bool {
	switch a {
	case ActionProgramar, ActionReasignar, ActionCancelar, ActionEjecutar:
		return true
	}
	return false
}
