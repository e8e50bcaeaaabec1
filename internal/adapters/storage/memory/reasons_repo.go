package memory

import (
	"context"
	"sort"

	"gestor-visitas/internal/domain/reasons"
	"gestor-visitas/internal/platform/sentinel"
)

type reasonRepo struct {
	db *DB
}

func NewReasonRepo(db *DB) reasons.Repository {
	return &reasonRepo{db: db}
}

func (r *reasonRepo) GetByID(ctx context.Context, id int64) (reasons.Reason, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	m, ok := r.db.reasons[id]
	if !ok {
		return reasons.Reason{}, sentinel.ErrNotFound
	}
	return m, nil
}

func (r *reasonRepo) List(ctx context.Context) ([]reasons.Reason, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]reasons.Reason, 0, len(r.db.reasons))
	for _, m := range r.db.reasons {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}
