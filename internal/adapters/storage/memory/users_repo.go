package memory

import (
	"context"
	"sort"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/domain/users"
	"gestor-visitas/internal/platform/sentinel"
)

type userRepo struct {
	db *DB
}

func NewUserRepo(db *DB) users.Repository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return users.User{}, sentinel.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	email = users.NormalizeEmail(email)
	for _, u := range r.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, sentinel.ErrNotFound
}

func (r *userRepo) List(ctx context.Context, role *access.Role) ([]users.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]users.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		if role != nil && u.Rol != *role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}
