package visits

import "gestor-visitas/internal/domain/access"

// transitions: acción -> estado origen -> estado destino.
// PROGRAMAR no figura: es creación, no transición.
// REASIGNADA vuelve a quedar programable (se puede ejecutar, reasignar o cancelar).
var transitions = map[access.Action]map[State]State{
	access.ActionEjecutar: {
		StateProgramada:  StateEnEjecucion,
		StateReasignada:  StateEnEjecucion,
		StateEnEjecucion: StateEjecutada,
	},
	access.ActionReasignar: {
		StateProgramada:  StateReasignada,
		StateEnEjecucion: StateReasignada,
		StateReasignada:  StateReasignada,
	},
	access.ActionCancelar: {
		StateProgramada:  StateCancelada,
		StateEnEjecucion: StateCancelada,
		StateReasignada:  StateCancelada,
	},
}

// Next devuelve el estado destino de aplicar action sobre from.
func Next(action access.Action, from State) (State, bool) {
	if from.Terminal() {
		return "", false
	}
	to, ok := transitions[action][from]
	return to, ok
}

// AllowedActions lista las acciones que role podría aplicar sobre una visita en from.
// No considera pertenencia (EJECUTAR exige además ser el asesor de la visita).
func AllowedActions(role access.Role, from State) []access.Action {
	out := make([]access.Action, 0, 3)
	for _, a := range []access.Action{access.ActionEjecutar, access.ActionReasignar, access.ActionCancelar} {
		if !access.IsAllowed(role, a) || !actorMayApply(role, a) {
			continue
		}
		if _, ok := Next(a, from); ok {
			out = append(out, a)
		}
	}
	return out
}

// actorMayApply es la restricción del motor por encima de la política:
// la cancelación queda reservada al jefe.
func actorMayApply(role access.Role, action access.Action) bool {
	if action == access.ActionCancelar {
		return role == access.RoleJefe
	}
	return true
}
