package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/domain/users"
	"gestor-visitas/internal/platform/sentinel"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userSelect = `SELECT id, nombre, correo, rol, area, fecha_creacion FROM usuario`

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	return r.one(ctx, userSelect+` WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.one(ctx, userSelect+` WHERE lower(correo) = $1`, users.NormalizeEmail(email))
}

func (r *UsersRepo) List(ctx context.Context, role *access.Role) ([]users.User, error) {
	q := userSelect
	var args []any
	if role != nil {
		q += ` WHERE rol = $1`
		args = append(args, string(*role))
	}
	q += ` ORDER BY nombre`

	rows, err := conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) one(ctx context.Context, q string, arg any) (users.User, error) {
	u, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, sentinel.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func scanUser(s rowScanner) (users.User, error) {
	var u users.User
	var rol string
	if err := s.Scan(&u.ID, &u.Nombre, &u.Email, &rol, &u.Area, &u.CreatedAt); err != nil {
		return users.User{}, err
	}
	u.Rol = access.Role(rol)
	return u, nil
}
