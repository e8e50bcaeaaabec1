package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/domain/traces"
	"gestor-visitas/internal/domain/visits"
	"gestor-visitas/internal/platform/sentinel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) (*DB, visits.Repository, traces.Repository) {
	t.Helper()
	db := NewDB()
	db.Seed()
	return db, NewVisitRepo(db), NewTraceRepo(db)
}

func newVisit(asesor int64, at time.Time) visits.Visit {
	return visits.Visit{
		AsesorID:        asesor,
		Objetivo:        "Cliente",
		Tipo:            visits.KindIndividual,
		FechaProgramada: at,
		Estado:          visits.StateProgramada,
		CreadoPor:       1,
		CreatedAt:       at,
		UpdatedAt:       at,
	}
}

func TestVisitRepo_UpdateIsCompareAndSwap(t *testing.T) {
	_, repo, _ := seeded(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, newVisit(7, time.Now()))
	require.NoError(t, err)

	fields := visits.UpdateFields{Estado: visits.StateEnEjecucion, ModificadoPor: 7, UpdatedAt: time.Now()}
	require.NoError(t, repo.Update(ctx, id, fields, visits.StateProgramada))

	err = repo.Update(ctx, id, fields, visits.StateProgramada)
	assert.True(t, errors.Is(err, sentinel.ErrConflict))

	err = repo.Update(ctx, 404, fields, visits.StateProgramada)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestRunInTx_RollsBackAllWrites(t *testing.T) {
	db, repo, trail := seeded(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, newVisit(7, time.Now()))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.RunInTx(ctx, func(ctx context.Context) error {
		motivo := int64(1)
		if err := repo.Update(ctx, id, visits.UpdateFields{
			Estado:              visits.StateCancelada,
			MotivoCancelacionID: &motivo,
			ModificadoPor:       1,
			UpdatedAt:           time.Now(),
		}, visits.StateProgramada); err != nil {
			return err
		}
		if _, err := trail.Append(ctx, traces.Entry{
			VisitaID: id, UsuarioID: 1, Accion: access.ActionCancelar,
			EstadoAnterior: "PROGRAMADA", EstadoNuevo: "CANCELADA", Fecha: time.Now(),
		}); err != nil {
			return err
		}
		if _, err := repo.Create(ctx, newVisit(9, time.Now())); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, visits.StateProgramada, v.Estado)
	assert.Nil(t, v.MotivoCancelacionID)

	entries, err := trail.ListByVisit(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, entries)

	all, err := repo.List(ctx, visits.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// El contador de ids también se restauró.
	next, err := repo.Create(ctx, newVisit(9, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, id+1, next)
}

func TestVisitRepo_ListFiltersOrderAndEnrichment(t *testing.T) {
	_, repo, _ := seeded(t)
	ctx := context.Background()

	d1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, newVisit(7, d1))
	require.NoError(t, err)
	id2, err := repo.Create(ctx, newVisit(9, d2))
	require.NoError(t, err)

	all, err := repo.List(ctx, visits.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, id2, all[0].ID)
	assert.Equal(t, "Ana Ruiz", all[0].AsesorNombre)
	assert.Equal(t, "Laura Gómez", all[0].ProgramadaPorNombre)

	seven := int64(7)
	mine, err := repo.List(ctx, visits.ListFilter{AsesorID: &seven})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(7), mine[0].AsesorID)

	byDate, err := repo.List(ctx, visits.ListFilter{Fecha: "2025-03-02"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)

	st := visits.StateCancelada
	none, err := repo.List(ctx, visits.ListFilter{Estado: &st})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestVisitRepo_DateFilterUsesUTC(t *testing.T) {
	_, repo, _ := seeded(t)
	ctx := context.Background()

	// 22:00 en UTC-5 ya es el día siguiente en UTC, igual que en postgres.
	bogota := time.FixedZone("COT", -5*60*60)
	_, err := repo.Create(ctx, newVisit(7, time.Date(2025, 3, 1, 22, 0, 0, 0, bogota)))
	require.NoError(t, err)

	local, err := repo.List(ctx, visits.ListFilter{Fecha: "2025-03-01"})
	require.NoError(t, err)
	assert.Empty(t, local)

	utc, err := repo.List(ctx, visits.ListFilter{Fecha: "2025-03-02"})
	require.NoError(t, err)
	assert.Len(t, utc, 1)
}

func TestTraceRepo_RejectsInvalidEntries(t *testing.T) {
	_, _, trail := seeded(t)
	_, err := trail.Append(context.Background(), traces.Entry{VisitaID: 1})
	assert.ErrorIs(t, err, traces.ErrInvalidInput)
}

func TestUserRepo_EmailIsCaseInsensitive(t *testing.T) {
	db := NewDB()
	db.Seed()
	repo := NewUserRepo(db)

	u, err := repo.GetByEmail(context.Background(), "  JEFE@Comfacauca.com ")
	require.NoError(t, err)
	assert.Equal(t, access.RoleJefe, u.Rol)

	asesor := access.RoleAsesor
	list, err := repo.List(context.Background(), &asesor)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana Ruiz", list[0].Nombre)
}
