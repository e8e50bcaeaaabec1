package reasons

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (Reason, error)
	// List ordena por nombre.
	List(ctx context.Context) ([]Reason, error)
}
