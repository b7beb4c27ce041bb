package uploads

import (
	"context"

	"github.com/google/uuid"
)

// Repo defines persistence operations for queued uploads.
type Repo interface {
	Create(ctx context.Context, up PendingUpload) (PendingUpload, error)
	ListPending(ctx context.Context, f Filter) ([]PendingUpload, error)
	MarkFetched(ctx context.Context, id uuid.UUID) error
}
