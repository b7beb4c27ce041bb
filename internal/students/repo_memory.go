package students

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"intake-backend/internal/schema"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]*StudentRecord
	seq  atomic.Int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]*StudentRecord),
	}
}

// UpsertDocument appends under a single lock, mirroring the single-statement
// atomicity of the Postgres repo.
func (r *MemoryRepo) UpsertDocument(ctx context.Context, studentID string, doc NormalizedDocument) (NormalizedDocument, error) {
	if err := ctx.Err(); err != nil {
		return NormalizedDocument{}, err
	}
	doc.Seq = r.seq.Add(1)
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.data[studentID]
	if !ok {
		rec = &StudentRecord{StudentID: studentID, CreatedAt: now}
		r.data[studentID] = rec
	}
	rec.Documents = append(rec.Documents, doc)
	rec.UpdatedAt = now
	return doc, nil
}

// GetRecord returns a copy of the student record.
func (r *MemoryRepo) GetRecord(ctx context.Context, studentID string) (StudentRecord, error) {
	if err := ctx.Err(); err != nil {
		return StudentRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.data[studentID]
	if !ok {
		return StudentRecord{}, ErrStudentNotFound
	}
	out := *rec
	out.Documents = make([]NormalizedDocument, len(rec.Documents))
	copy(out.Documents, rec.Documents)
	return out, nil
}

// GetLatestDocument returns the highest-Seq document of the given type.
func (r *MemoryRepo) GetLatestDocument(ctx context.Context, studentID string, docType schema.DocType) (NormalizedDocument, error) {
	rec, err := r.GetRecord(ctx, studentID)
	if err != nil {
		return NormalizedDocument{}, err
	}
	return latestByType(rec, docType)
}

var _ Repo = (*MemoryRepo)(nil)
