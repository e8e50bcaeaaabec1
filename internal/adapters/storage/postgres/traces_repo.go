package postgres

import (
	"context"
	"database/sql"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/domain/traces"
)

// TracesRepo es append-only: no expone UPDATE ni DELETE.
type TracesRepo struct {
	db *sql.DB
}

func NewTracesRepo(db *sql.DB) *TracesRepo {
	return &TracesRepo{db: db}
}

func (r *TracesRepo) Append(ctx context.Context, e traces.Entry) (int64, error) {
	if err := traces.Validate(e); err != nil {
		return 0, err
	}

	var id int64
	err := conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO trazabilidad (
			visita_id, id_usuario, accion, descripcion,
			estado_anterior, estado_nuevo, fecha
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		e.VisitaID,
		e.UsuarioID,
		string(e.Accion),
		e.Detalle,
		e.EstadoAnterior,
		e.EstadoNuevo,
		e.Fecha,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *TracesRepo) ListByVisit(ctx context.Context, visitaID int64) ([]traces.Entry, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT id, visita_id, id_usuario, accion, descripcion, estado_anterior, estado_nuevo, fecha
		FROM trazabilidad
		WHERE visita_id = $1
		ORDER BY fecha ASC, id ASC
	`, visitaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]traces.Entry, 0)
	for rows.Next() {
		var e traces.Entry
		var accion string
		if err := rows.Scan(
			&e.ID,
			&e.VisitaID,
			&e.UsuarioID,
			&accion,
			&e.Detalle,
			&e.EstadoAnterior,
			&e.EstadoNuevo,
			&e.Fecha,
		); err != nil {
			return nil, err
		}
		e.Accion = access.Action(accion)
		out = append(out, e)
	}
	return out, rows.Err()
}
