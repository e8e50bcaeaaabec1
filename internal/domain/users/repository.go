package users

import (
	"context"

	"gestor-visitas/internal/domain/access"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// List filtra por rol si role != nil. Orden por nombre.
	List(ctx context.Context, role *access.Role) ([]User, error)
}
