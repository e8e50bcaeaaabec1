package visits

import (
	"testing"

	"gestor-visitas/internal/domain/access"

	"github.com/stretchr/testify/assert"
)

func TestNext_TerminalStatesAreAbsorbing(t *testing.T) {
	actions := []access.Action{access.ActionProgramar, access.ActionEjecutar, access.ActionReasignar, access.ActionCancelar}
	for _, st := range []State{StateEjecutada, StateCancelada} {
		for _, a := range actions {
			_, ok := Next(a, st)
			assert.False(t, ok, "%s desde %s", a, st)
		}
	}
}

func TestNext_Table(t *testing.T) {
	cases := []struct {
		action access.Action
		from   State
		want   State
	}{
		{access.ActionEjecutar, StateProgramada, StateEnEjecucion},
		{access.ActionEjecutar, StateReasignada, StateEnEjecucion},
		{access.ActionEjecutar, StateEnEjecucion, StateEjecutada},
		{access.ActionReasignar, StateEnEjecucion, StateReasignada},
		{access.ActionCancelar, StateReasignada, StateCancelada},
	}
	for _, tc := range cases {
		got, ok := Next(tc.action, tc.from)
		assert.True(t, ok)
		assert.Equal(t, tc.want, got)
	}

	_, ok := Next(access.ActionProgramar, StateProgramada)
	assert.False(t, ok)
}

func TestAllowedActions(t *testing.T) {
	assert.ElementsMatch(t,
		[]access.Action{access.ActionReasignar, access.ActionCancelar},
		AllowedActions(access.RoleJefe, StateProgramada))
	assert.Equal(t,
		[]access.Action{access.ActionEjecutar},
		AllowedActions(access.RoleAsesor, StateEnEjecucion))
	assert.Empty(t, AllowedActions(access.RoleJefe, StateCancelada))
}

func TestParseVisitKind(t *testing.T) {
	k, ok := ParseVisitKind("Enterprise")
	assert.True(t, ok)
	assert.Equal(t, KindEmpresarial, k)

	_, ok = ParseVisitKind("")
	assert.False(t, ok)
}
