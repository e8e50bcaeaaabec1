package traces

import "context"

// Repository es append-only: no hay Update ni Delete.
type Repository interface {
	Append(ctx context.Context, e Entry) (int64, error)
	ListByVisit(ctx context.Context, visitaID int64) ([]Entry, error)
}
