package uploads

import (
	"time"

	"github.com/google/uuid"

	"intake-backend/internal/schema"
)

// PendingUpload is a queued document reference waiting to be fetched
// and processed.
type PendingUpload struct {
	ID        uuid.UUID      `json:"id"`
	StudentID string         `json:"studentId"`
	DocType   schema.DocType `json:"docType"`
	SourceURL string         `json:"sourceUrl"`
	FetchedAt *time.Time     `json:"fetchedAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Filter narrows a pending-upload listing.
type Filter struct {
	StudentID string
	DocType   schema.DocType
	Limit     int
}
