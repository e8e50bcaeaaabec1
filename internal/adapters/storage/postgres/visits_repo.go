package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gestor-visitas/internal/domain/visits"
	"gestor-visitas/internal/platform/sentinel"
)

type VisitsRepo struct {
	db *sql.DB
}

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

const visitSelect = `
	SELECT
		v.id, v.id_asesor, o.nombre, o.tipo_visita,
		v.fecha_programada, v.estado,
		v.motivo_cancelacion_id, v.observaciones,
		v.creado_por, v.reasignada_por, v.modificado_por,
		v.fecha_creacion, v.fecha_modificacion,
		u.nombre, p.nombre, COALESCE(mc.nombre, '')
	FROM visita v
	INNER JOIN objetivo o ON v.id_objetivo = o.id
	INNER JOIN usuario u ON v.id_asesor = u.id
	INNER JOIN usuario p ON v.creado_por = p.id
	LEFT JOIN motivo_cancelacion mc ON v.motivo_cancelacion_id = mc.id
`

// Create inserta primero el objetivo y luego la visita. Debe correr dentro de RunInTx.
func (r *VisitsRepo) Create(ctx context.Context, v visits.Visit) (int64, error) {
	c := conn(ctx, r.db)

	var objetivoID int64
	if err := c.QueryRowContext(ctx,
		`INSERT INTO objetivo (nombre, tipo_visita) VALUES ($1, $2) RETURNING id`,
		v.Objetivo, string(v.Tipo),
	).Scan(&objetivoID); err != nil {
		return 0, fmt.Errorf("insert objetivo: %w", err)
	}

	var id int64
	if err := c.QueryRowContext(ctx, `
		INSERT INTO visita (
			id_asesor, id_objetivo, fecha_programada, estado,
			creado_por, fecha_creacion, fecha_modificacion
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		v.AsesorID,
		objetivoID,
		v.FechaProgramada,
		string(v.Estado),
		v.CreadoPor,
		v.CreatedAt,
		v.UpdatedAt,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert visita: %w", err)
	}
	return id, nil
}

func (r *VisitsRepo) GetByID(ctx context.Context, id int64) (visits.Visit, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, visitSelect+` WHERE v.id = $1`, id)
	v, err := scanVisit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return visits.Visit{}, sentinel.ErrNotFound
		}
		return visits.Visit{}, err
	}
	return v, nil
}

func (r *VisitsRepo) List(ctx context.Context, f visits.ListFilter) ([]visits.Visit, error) {
	var (
		where []string
		args  []any
	)
	if f.AsesorID != nil {
		args = append(args, *f.AsesorID)
		where = append(where, fmt.Sprintf("v.id_asesor = $%d", len(args)))
	}
	if f.Fecha != "" {
		args = append(args, f.Fecha)
		where = append(where, fmt.Sprintf("(v.fecha_programada AT TIME ZONE 'UTC')::date = $%d::date", len(args)))
	}
	if f.Estado != nil {
		args = append(args, string(*f.Estado))
		where = append(where, fmt.Sprintf("v.estado = $%d", len(args)))
	}

	q := visitSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY v.fecha_programada DESC, v.id DESC"

	rows, err := conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visits.Visit, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Update es un compare-and-swap sobre estado. Los campos nil no se tocan.
func (r *VisitsRepo) Update(ctx context.Context, id int64, fields visits.UpdateFields, expected visits.State) error {
	c := conn(ctx, r.db)

	res, err := c.ExecContext(ctx, `
		UPDATE visita
		SET
			estado = $2,
			id_asesor = COALESCE($3, id_asesor),
			motivo_cancelacion_id = COALESCE($4, motivo_cancelacion_id),
			observaciones = COALESCE($5, observaciones),
			reasignada_por = COALESCE($6, reasignada_por),
			modificado_por = $7,
			fecha_modificacion = $8
		WHERE id = $1 AND estado = $9
	`,
		id,
		string(fields.Estado),
		nullInt64(fields.AsesorID),
		nullInt64(fields.MotivoCancelacionID),
		nullString(fields.Observaciones),
		nullInt64(fields.ReasignadaPor),
		fields.ModificadoPor,
		fields.UpdatedAt,
		string(expected),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists bool
	if err := c.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM visita WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisit(s rowScanner) (visits.Visit, error) {
	var (
		v              visits.Visit
		tipo, estado   string
		motivo, reasig sql.NullInt64
		modif          sql.NullInt64
		obs            sql.NullString
	)
	if err := s.Scan(
		&v.ID,
		&v.AsesorID,
		&v.Objetivo,
		&tipo,
		&v.FechaProgramada,
		&estado,
		&motivo,
		&obs,
		&v.CreadoPor,
		&reasig,
		&modif,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.AsesorNombre,
		&v.ProgramadaPorNombre,
		&v.MotivoCancelacion,
	); err != nil {
		return visits.Visit{}, err
	}

	v.Tipo = visits.VisitKind(tipo)
	v.Estado = visits.State(estado)
	v.MotivoCancelacionID = int64Ptr(motivo)
	v.ReasignadaPor = int64Ptr(reasig)
	v.ModificadoPor = int64Ptr(modif)
	if obs.Valid {
		text := obs.String
		v.Observaciones = &text
	}
	return v, nil
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
