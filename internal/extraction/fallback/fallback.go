// Package fallback is the degraded extraction path used when the hosted
// model denies a call for quota. It does no field-aware extraction: PDFs get
// their plain text scanned for a few obvious patterns, images produce
// nothing. Confidence is pinned below the normal acceptance band.
package fallback

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"intake-backend/internal/assets"
	"intake-backend/internal/extraction"
	"intake-backend/internal/schema"
)

// Confidence assigned to every fallback result.
const Confidence = 0.25

const modelTag = "local-fallback"

var (
	aadhaarRun  = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)
	labeledName = regexp.MustCompile(`(?i)\bname\s*[:\-]\s*([A-Za-z][A-Za-z .]+)`)
	dateRun     = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`)
)

// Extractor implements extraction.Extractor with local best-effort text
// extraction only.
type Extractor struct{}

// New constructs the fallback extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract produces best-effort raw fields from the asset without calling
// out. It never fails on content it cannot read; it just returns an empty
// mapping.
func (e *Extractor) Extract(ctx context.Context, asset assets.Asset, docType schema.DocType) (extraction.Result, error) {
	if err := ctx.Err(); err != nil {
		return extraction.Result{}, err
	}

	rawFields := map[string]any{}
	if asset.MimeType == assets.MimePDF {
		if text := pdfText(asset.Bytes); text != "" {
			rawFields = guessFields(text)
		}
	}

	return extraction.Result{
		RawFields:  rawFields,
		Confidence: Confidence,
		Model:      modelTag,
	}, nil
}

func pdfText(data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return ""
	}
	return buf.String()
}

// guessFields scans plain text for the few patterns distinctive enough to
// trust without a model: labeled names, 12-digit Aadhaar runs, dates.
func guessFields(text string) map[string]any {
	out := map[string]any{}

	if m := labeledName.FindStringSubmatch(text); m != nil {
		out["name"] = strings.TrimSpace(m[1])
	}
	if m := aadhaarRun.FindString(text); m != "" {
		out["aadhaar_number"] = m
	}
	if m := dateRun.FindString(text); m != "" {
		out["date_of_birth"] = m
	}
	return out
}

var _ extraction.Extractor = (*Extractor)(nil)
