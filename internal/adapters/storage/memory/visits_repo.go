package memory

import (
	"context"
	"errors"
	"sort"

	"gestor-visitas/internal/domain/visits"
	"gestor-visitas/internal/platform/sentinel"
)

type visitRepo struct {
	db *DB
}

func NewVisitRepo(db *DB) visits.Repository {
	return &visitRepo{db: db}
}

func (r *visitRepo) Create(ctx context.Context, v visits.Visit) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if v.AsesorID <= 0 || v.CreadoPor <= 0 {
		return 0, errors.New("asesor y creador requeridos")
	}

	r.db.nextVisitID++
	v.ID = r.db.nextVisitID
	v.AsesorNombre, v.ProgramadaPorNombre, v.MotivoCancelacion = "", "", ""
	r.db.visits[v.ID] = v

	id := v.ID
	r.db.onRollback(ctx, func() {
		delete(r.db.visits, id)
		r.db.nextVisitID--
	})
	return id, nil
}

func (r *visitRepo) GetByID(ctx context.Context, id int64) (visits.Visit, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	v, ok := r.db.visits[id]
	if !ok {
		return visits.Visit{}, sentinel.ErrNotFound
	}
	return r.enrich(v), nil
}

func (r *visitRepo) List(ctx context.Context, f visits.ListFilter) ([]visits.Visit, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]visits.Visit, 0)
	for _, v := range r.db.visits {
		if f.AsesorID != nil && v.AsesorID != *f.AsesorID {
			continue
		}
		if f.Estado != nil && v.Estado != *f.Estado {
			continue
		}
		if f.Fecha != "" && v.FechaProgramada.UTC().Format("2006-01-02") != f.Fecha {
			continue
		}
		out = append(out, r.enrich(v))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FechaProgramada.Equal(out[j].FechaProgramada) {
			return out[i].ID > out[j].ID
		}
		return out[i].FechaProgramada.After(out[j].FechaProgramada)
	})
	return out, nil
}

func (r *visitRepo) Update(ctx context.Context, id int64, fields visits.UpdateFields, expected visits.State) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	prev, ok := r.db.visits[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if prev.Estado != expected {
		return sentinel.ErrConflict
	}

	r.db.visits[id] = fields.Apply(prev)
	r.db.onRollback(ctx, func() { r.db.visits[id] = prev })
	return nil
}

// enrich completa los datos de lectura. Llamar con db.mu tomado.
func (r *visitRepo) enrich(v visits.Visit) visits.Visit {
	if u, ok := r.db.users[v.AsesorID]; ok {
		v.AsesorNombre = u.Nombre
	}
	if u, ok := r.db.users[v.CreadoPor]; ok {
		v.ProgramadaPorNombre = u.Nombre
	}
	if v.MotivoCancelacionID != nil {
		if m, ok := r.db.reasons[*v.MotivoCancelacionID]; ok {
			v.MotivoCancelacion = m.Nombre
		}
	}
	return v
}
