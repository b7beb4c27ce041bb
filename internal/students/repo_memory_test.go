package students

import (
	"context"
	"errors"
	"sync"
	"testing"

	"intake-backend/internal/schema"
)

func TestMemoryRepoUpsertAndGet(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	stored, err := repo.UpsertDocument(ctx, "s-1", NormalizedDocument{
		DocType: schema.AadhaarCard,
		Fields:  map[string]any{"Name": "John Doe"},
	})
	if err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	if stored.Seq == 0 {
		t.Fatalf("expected assigned seq, got 0")
	}

	rec, err := repo.GetRecord(ctx, "s-1")
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if len(rec.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(rec.Documents))
	}
	if rec.StudentID != "s-1" {
		t.Fatalf("unexpected student id %s", rec.StudentID)
	}
}

func TestMemoryRepoGetRecordNotFound(t *testing.T) {
	repo := NewMemoryRepo()

	_, err := repo.GetRecord(context.Background(), "missing")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestMemoryRepoLatestByHighestSeq(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.UpsertDocument(ctx, "s-1", NormalizedDocument{
		DocType: schema.Marksheet10th,
		Fields:  map[string]any{"RollNumber": "old"},
	})
	if err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	second, err := repo.UpsertDocument(ctx, "s-1", NormalizedDocument{
		DocType: schema.Marksheet10th,
		Fields:  map[string]any{"RollNumber": "new"},
	})
	if err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	if second.Seq <= first.Seq {
		t.Fatalf("expected increasing seq, got %d then %d", first.Seq, second.Seq)
	}

	latest, err := repo.GetLatestDocument(ctx, "s-1", schema.Marksheet10th)
	if err != nil {
		t.Fatalf("GetLatestDocument: %v", err)
	}
	if latest.Fields["RollNumber"] != "new" {
		t.Fatalf("expected newest document, got %v", latest.Fields)
	}
}

func TestMemoryRepoDocumentNotFoundDistinct(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if _, err := repo.UpsertDocument(ctx, "s-1", NormalizedDocument{DocType: schema.AadhaarCard}); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	// Student exists but has no marksheet.
	_, err := repo.GetLatestDocument(ctx, "s-1", schema.Marksheet10th)
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("error should not be ErrStudentNotFound: %v", err)
	}

	// Unknown student yields the other kind.
	_, err = repo.GetLatestDocument(ctx, "s-2", schema.Marksheet10th)
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestMemoryRepoConcurrentUpserts(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	const writers = 32
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			if _, err := repo.UpsertDocument(ctx, "s-1", NormalizedDocument{DocType: schema.AadhaarCard}); err != nil {
				t.Errorf("UpsertDocument: %v", err)
			}
		}()
	}
	wg.Wait()

	rec, err := repo.GetRecord(ctx, "s-1")
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if len(rec.Documents) != writers {
		t.Fatalf("lost writes: expected %d documents, got %d", writers, len(rec.Documents))
	}

	seen := map[int64]bool{}
	for _, doc := range rec.Documents {
		if seen[doc.Seq] {
			t.Fatalf("duplicate seq %d", doc.Seq)
		}
		seen[doc.Seq] = true
	}
}
