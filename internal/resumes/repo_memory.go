package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for local development
// and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Record // userId -> records
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Record),
	}
}

// Create stores a record for its owning user.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.UserID] = append(r.data[rec.UserID], rec)
	return nil
}

// GetByIDForUser returns a record by ID scoped to the user.
func (r *MemoryRepo) GetByIDForUser(ctx context.Context, userID, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := r.data[userID]
	for i := range recs {
		if recs[i].ID == id {
			return recs[i], nil
		}
	}
	return Record{}, ErrNotFound
}

// ListByUser returns records for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	userRecs := r.data[userID]
	r.mu.RUnlock()

	if len(userRecs) == 0 || offset >= len(userRecs) {
		return []Record{}, nil
	}

	recs := make([]Record, len(userRecs))
	copy(recs, userRecs)
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	end := len(recs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return recs[offset:end], nil
}

// DeleteByIDForUser removes a record by ID scoped to the user.
func (r *MemoryRepo) DeleteByIDForUser(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.data[userID]
	for i := range recs {
		if recs[i].ID == id {
			r.data[userID] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
