package assets

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrTooLarge             = errors.New("asset too large")
	ErrDownloadFailed       = errors.New("asset download failed")
)
