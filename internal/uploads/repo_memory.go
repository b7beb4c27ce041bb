package uploads

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo used for tests and database-less
// development runs.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[uuid.UUID]PendingUpload
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[uuid.UUID]PendingUpload)}
}

func (r *MemoryRepo) Create(_ context.Context, up PendingUpload) (PendingUpload, error) {
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}
	if up.CreatedAt.IsZero() {
		up.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[up.ID] = up
	return up, nil
}

func (r *MemoryRepo) ListPending(_ context.Context, f Filter) ([]PendingUpload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []PendingUpload
	for _, up := range r.data {
		if up.FetchedAt != nil {
			continue
		}
		if f.StudentID != "" && up.StudentID != f.StudentID {
			continue
		}
		if f.DocType != "" && up.DocType != f.DocType {
			continue
		}
		out = append(out, up)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MemoryRepo) MarkFetched(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	up, ok := r.data[id]
	if !ok || up.FetchedAt != nil {
		return fmt.Errorf("%w: upload %s", ErrUploadNotFound, id)
	}
	now := time.Now().UTC()
	up.FetchedAt = &now
	r.data[id] = up
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
