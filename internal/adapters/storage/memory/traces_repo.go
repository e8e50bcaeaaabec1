package memory

import (
	"context"
	"sort"

	"gestor-visitas/internal/domain/traces"
)

type traceRepo struct {
	db *DB
}

func NewTraceRepo(db *DB) traces.Repository {
	return &traceRepo{db: db}
}

func (r *traceRepo) Append(ctx context.Context, e traces.Entry) (int64, error) {
	if err := traces.Validate(e); err != nil {
		return 0, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextTraceID++
	e.ID = r.db.nextTraceID
	r.db.trail = append(r.db.trail, e)

	n := len(r.db.trail) - 1
	r.db.onRollback(ctx, func() {
		r.db.trail = r.db.trail[:n]
		r.db.nextTraceID--
	})
	return e.ID, nil
}

func (r *traceRepo) ListByVisit(ctx context.Context, visitaID int64) ([]traces.Entry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]traces.Entry, 0)
	for _, e := range r.db.trail {
		if e.VisitaID == visitaID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}
