package students

import "errors"

var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrStoreUnavailable = errors.New("document store unavailable")
)
