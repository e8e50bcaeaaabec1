package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gestor-visitas/internal/domain/reasons"
	"gestor-visitas/internal/platform/sentinel"
)

type ReasonsRepo struct {
	db *sql.DB
}

func NewReasonsRepo(db *sql.DB) *ReasonsRepo {
	return &ReasonsRepo{db: db}
}

func (r *ReasonsRepo) GetByID(ctx context.Context, id int64) (reasons.Reason, error) {
	var m reasons.Reason
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, nombre, descripcion FROM motivo_cancelacion WHERE id = $1`, id,
	).Scan(&m.ID, &m.Nombre, &m.Descripcion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reasons.Reason{}, sentinel.ErrNotFound
		}
		return reasons.Reason{}, err
	}
	return m, nil
}

func (r *ReasonsRepo) List(ctx context.Context) ([]reasons.Reason, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT id, nombre, descripcion FROM motivo_cancelacion ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reasons.Reason, 0)
	for rows.Next() {
		var m reasons.Reason
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Descripcion); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
