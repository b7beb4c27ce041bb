package students

import (
	"time"

	"intake-backend/internal/normalize"
	"intake-backend/internal/schema"
)

// NormalizedDocument is one processed document appended to a student record.
// It is immutable once persisted.
type NormalizedDocument struct {
	DocType          schema.DocType    `json:"docType"`
	SourceURI        string            `json:"sourceUri"`
	Fields           map[string]any    `json:"fields"`
	Confidence       float64           `json:"confidence"`
	Model            string            `json:"model,omitempty"`
	ValidationIssues []normalize.Issue `json:"validationIssues"`
	ProcessedAt      time.Time         `json:"processedAt"`
	// Seq is a store-assigned monotonic sequence number. "Latest document
	// of a type" is decided by Seq, never by wall-clock timestamps.
	Seq int64 `json:"seq"`
}

// Ready reports whether every required field was found and passed its
// format rule. Issues on optional fields do not block readiness.
func (d NormalizedDocument) Ready() bool {
	s, err := schema.Lookup(d.DocType)
	if err != nil {
		return len(d.ValidationIssues) == 0
	}
	for _, issue := range d.ValidationIssues {
		if s.IsRequired(issue.Field) {
			return false
		}
	}
	return true
}

// StudentRecord holds all processed documents for one student, in append
// order. Multiple documents per type are allowed.
type StudentRecord struct {
	StudentID string               `json:"studentId"`
	Documents []NormalizedDocument `json:"documents"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}
