package uploads

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"intake-backend/internal/schema"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a queued upload. A zero ID is assigned here.
func (r *PGRepo) Create(ctx context.Context, up PendingUpload) (PendingUpload, error) {
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}

	const query = `
INSERT INTO pending_uploads (id, student_id, doc_type, source_url)
VALUES ($1, $2, $3, $4)
RETURNING created_at`

	err := r.DB.QueryRowContext(ctx, query, up.ID, up.StudentID, string(up.DocType), up.SourceURL).Scan(&up.CreatedAt)
	if err != nil {
		return PendingUpload{}, fmt.Errorf("%w: create upload for %s: %v", ErrStoreUnavailable, up.StudentID, err)
	}
	return up, nil
}

// ListPending returns unfetched uploads, oldest first.
func (r *PGRepo) ListPending(ctx context.Context, f Filter) ([]PendingUpload, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`
SELECT id, student_id, doc_type, source_url, fetched_at, created_at
FROM pending_uploads
WHERE fetched_at IS NULL`)

	if f.StudentID != "" {
		args = append(args, f.StudentID)
		fmt.Fprintf(&sb, " AND student_id = $%d", len(args))
	}
	if f.DocType != "" {
		args = append(args, string(f.DocType))
		fmt.Fprintf(&sb, " AND doc_type = $%d", len(args))
	}
	sb.WriteString(" ORDER BY created_at")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list pending uploads: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []PendingUpload
	for rows.Next() {
		var (
			up      PendingUpload
			docType string
		)
		if err := rows.Scan(&up.ID, &up.StudentID, &docType, &up.SourceURL, &up.FetchedAt, &up.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan pending upload: %v", ErrStoreUnavailable, err)
		}
		up.DocType = schema.DocType(docType)
		out = append(out, up)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list pending uploads: %v", ErrStoreUnavailable, err)
	}
	return out, nil
}

// MarkFetched stamps the upload as processed.
func (r *PGRepo) MarkFetched(ctx context.Context, id uuid.UUID) error {
	const query = `
UPDATE pending_uploads
SET fetched_at = now()
WHERE id = $1 AND fetched_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: mark upload %s fetched: %v", ErrStoreUnavailable, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: upload %s", ErrUploadNotFound, id)
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
