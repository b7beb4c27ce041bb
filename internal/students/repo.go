package students

import (
	"context"

	"intake-backend/internal/schema"
)

// Repo defines persistence operations for student records.
//
// UpsertDocument must be atomic per studentId: creating the record if
// absent and appending the document otherwise, in a single storage-layer
// operation, so concurrent appends for the same student never lose writes.
type Repo interface {
	UpsertDocument(ctx context.Context, studentID string, doc NormalizedDocument) (NormalizedDocument, error)
	GetRecord(ctx context.Context, studentID string) (StudentRecord, error)
	GetLatestDocument(ctx context.Context, studentID string, docType schema.DocType) (NormalizedDocument, error)
}
