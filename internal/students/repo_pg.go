package students

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"intake-backend/internal/schema"
)

// PGRepo implements Repo using Postgres. Documents live in a jsonb array on
// the students row; the append is a single INSERT .. ON CONFLICT statement
// so two concurrent upserts for one student both land.
type PGRepo struct {
	DB *sql.DB
}

// UpsertDocument creates the student record if absent, otherwise appends.
// The document's Seq is assigned from the document_seq sequence inside the
// same statement.
func (r *PGRepo) UpsertDocument(ctx context.Context, studentID string, doc NormalizedDocument) (NormalizedDocument, error) {
	const query = `
INSERT INTO students (student_id, documents, created_at, updated_at)
VALUES ($1, jsonb_build_array(jsonb_set($2::jsonb, '{seq}', to_jsonb(nextval('document_seq')))), now(), now())
ON CONFLICT (student_id) DO UPDATE
SET documents = students.documents || excluded.documents,
    updated_at = now()
RETURNING documents -> -1`

	payload, err := json.Marshal(doc)
	if err != nil {
		return NormalizedDocument{}, fmt.Errorf("marshal document: %w", err)
	}

	var stored []byte
	if err := r.DB.QueryRowContext(ctx, query, studentID, payload).Scan(&stored); err != nil {
		return NormalizedDocument{}, fmt.Errorf("%w: upsert student %s: %v", ErrStoreUnavailable, studentID, err)
	}

	var out NormalizedDocument
	if err := json.Unmarshal(stored, &out); err != nil {
		return NormalizedDocument{}, fmt.Errorf("decode stored document: %w", err)
	}
	return out, nil
}

// GetRecord fetches the full student record.
func (r *PGRepo) GetRecord(ctx context.Context, studentID string) (StudentRecord, error) {
	const query = `
SELECT documents, created_at, updated_at
FROM students
WHERE student_id = $1`

	var (
		rec  StudentRecord
		docs []byte
	)
	err := r.DB.QueryRowContext(ctx, query, studentID).Scan(&docs, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StudentRecord{}, ErrStudentNotFound
		}
		return StudentRecord{}, fmt.Errorf("%w: get student %s: %v", ErrStoreUnavailable, studentID, err)
	}

	rec.StudentID = studentID
	if err := json.Unmarshal(docs, &rec.Documents); err != nil {
		return StudentRecord{}, fmt.Errorf("decode documents for %s: %w", studentID, err)
	}
	return rec, nil
}

// GetLatestDocument returns the document of the given type with the highest
// sequence number. A student with no documents of that type yields
// ErrDocumentNotFound, distinct from ErrStudentNotFound.
func (r *PGRepo) GetLatestDocument(ctx context.Context, studentID string, docType schema.DocType) (NormalizedDocument, error) {
	rec, err := r.GetRecord(ctx, studentID)
	if err != nil {
		return NormalizedDocument{}, err
	}
	return latestByType(rec, docType)
}

func latestByType(rec StudentRecord, docType schema.DocType) (NormalizedDocument, error) {
	var (
		best  NormalizedDocument
		found bool
	)
	for _, doc := range rec.Documents {
		if doc.DocType != docType {
			continue
		}
		if !found || doc.Seq > best.Seq {
			best = doc
			found = true
		}
	}
	if !found {
		return NormalizedDocument{}, fmt.Errorf("%w: student %s has no %s", ErrDocumentNotFound, rec.StudentID, docType)
	}
	return best, nil
}

var _ Repo = (*PGRepo)(nil)
