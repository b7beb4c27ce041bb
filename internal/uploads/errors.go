package uploads

import "errors"

var (
	// ErrUploadNotFound indicates the referenced pending upload does not exist.
	ErrUploadNotFound = errors.New("pending upload not found")
	// ErrStoreUnavailable indicates the backing store failed.
	ErrStoreUnavailable = errors.New("upload store unavailable")
)
