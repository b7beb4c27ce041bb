// Package extraction defines the gateway to the hosted multimodal model that
// turns document images into raw key/value JSON.
package extraction

import (
	"context"
	"errors"

	"intake-backend/internal/assets"
	"intake-backend/internal/schema"
)

// Error taxonomy for extraction failures.
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type for extraction")
	ErrQuotaExceeded        = errors.New("extraction quota exceeded")
	ErrTransport            = errors.New("extraction transport error")
	ErrInvalidResponse      = errors.New("extraction returned invalid response")
)

// Result holds the untyped output of one extraction call. RawFields is
// whatever JSON mapping the model produced; nothing about its shape is
// assumed beyond "it decoded".
type Result struct {
	RawFields  map[string]any
	Confidence float64
	Model      string
}

// Extractor turns a resolved asset into raw extracted fields for the given
// document type.
type Extractor interface {
	Extract(ctx context.Context, asset assets.Asset, docType schema.DocType) (Result, error)
}

// ConfidenceFromFillRate scores a raw extraction by how many fields came
// back populated: base 0.7, +0.1 at three or more, +0.2 at five or more,
// clamped to [0,1].
func ConfidenceFromFillRate(rawFields map[string]any) float64 {
	if len(rawFields) == 0 {
		return 0
	}
	populated := 0
	for _, v := range rawFields {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		populated++
	}
	confidence := 0.7
	switch {
	case populated >= 5:
		confidence += 0.2
	case populated >= 3:
		confidence += 0.1
	}
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}
