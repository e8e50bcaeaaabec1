package visits

import "context"

// Repository es el único dueño de las filas de visitas.
// Los errores de infraestructura son los de platform/sentinel.
type Repository interface {
	Create(ctx context.Context, v Visit) (int64, error)
	GetByID(ctx context.Context, id int64) (Visit, error)
	// List ordena por FechaProgramada desc.
	List(ctx context.Context, filter ListFilter) ([]Visit, error)
	// Update aplica fields solo si el estado actual sigue siendo expected.
	// Si no => sentinel.ErrConflict. Si la visita no existe => sentinel.ErrNotFound.
	Update(ctx context.Context, id int64, fields UpdateFields, expected State) error
}

// TxRunner ejecuta fn como una unidad atómica: todo lo que fn escriba en los
// repos (usando el ctx recibido) se confirma junto o no se confirma.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
