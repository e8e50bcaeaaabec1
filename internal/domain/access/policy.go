package access

// table es la tabla fija rol -> acciones permitidas.
// CANCELAR por ASESOR está permitido acá; el motor de visitas restringe
// además el alcance del actor.
var table = map[Role]map[Action]struct{}{
	RoleJefe: {
		ActionProgramar: {},
		ActionReasignar: {},
		ActionCancelar:  {},
	},
	RoleAsesor: {
		ActionCancelar: {},
		ActionEjecutar: {},
	},
}

// IsAllowed indica si role puede ejecutar action. Rol o acción desconocidos => false.
func IsAllowed(role Role, action Action) bool {
	actions, ok := table[role]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}
