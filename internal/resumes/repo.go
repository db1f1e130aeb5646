package resumes

import "context"

// Repo persists analysis records. Every read and delete is scoped to the
// owning user; a mismatch surfaces as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByIDForUser(ctx context.Context, userID, id string) (Record, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error)
	DeleteByIDForUser(ctx context.Context, userID, id string) error
}
