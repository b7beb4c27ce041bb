// Package intake orchestrates the document pipeline: resolve the asset,
// extract raw fields, normalize them against the document-type schema, and
// persist the result on the student record.
package intake

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"intake-backend/internal/assets"
	"intake-backend/internal/extraction"
	"intake-backend/internal/normalize"
	"intake-backend/internal/schema"
	"intake-backend/internal/shared/telemetry"
	"intake-backend/internal/students"
	"intake-backend/internal/uploads"
)

// Stage identifies where the pipeline was when an item finished or failed.
type Stage string

const (
	StageFetching    Stage = "fetching"
	StageExtracting  Stage = "extracting"
	StageNormalizing Stage = "normalizing"
	StagePersisting  Stage = "persisting"
	StageDone        Stage = "done"
)

// Service runs the intake pipeline. Fallback is optional; when set it is
// invoked only after the primary extractor reports a quota failure.
type Service struct {
	Fetcher   *assets.Fetcher
	Extractor extraction.Extractor
	Fallback  extraction.Extractor
	Students  students.Repo
	Uploads   uploads.Repo

	FetchTimeout   time.Duration
	ExtractTimeout time.Duration
	BatchWorkers   int
	BatchMaxItems  int

	CallbackClient *http.Client
}

// ItemResult is the outcome of one document through the pipeline.
type ItemResult struct {
	StudentID string                       `json:"studentId"`
	DocType   schema.DocType               `json:"docType"`
	SourceURI string                       `json:"sourceUri,omitempty"`
	Status    string                       `json:"status"`
	Stage     Stage                        `json:"stage"`
	ErrorCode string                       `json:"errorCode,omitempty"`
	Error     string                       `json:"error,omitempty"`
	Ready     bool                         `json:"ready"`
	Document  *students.NormalizedDocument `json:"document,omitempty"`
}

// ProcessUpload runs a directly uploaded file through the pipeline.
func (s *Service) ProcessUpload(ctx context.Context, studentID string, docType schema.DocType, fileName string, r io.Reader) ItemResult {
	return s.process(ctx, studentID, docType, func(context.Context) (assets.Asset, error) {
		return s.Fetcher.FromUpload(fileName, r)
	})
}

// ProcessURL downloads a remote document and runs it through the pipeline.
func (s *Service) ProcessURL(ctx context.Context, studentID string, docType schema.DocType, sourceURL string) ItemResult {
	return s.process(ctx, studentID, docType, func(fetchCtx context.Context) (assets.Asset, error) {
		return s.Fetcher.FromURL(fetchCtx, sourceURL)
	})
}

func (s *Service) process(ctx context.Context, studentID string, docType schema.DocType, resolve func(context.Context) (assets.Asset, error)) ItemResult {
	res := ItemResult{StudentID: studentID, DocType: docType, Status: "failed"}

	if _, err := schema.Lookup(docType); err != nil {
		res.Stage = StageFetching
		res.ErrorCode, res.Error = errorCode(err), err.Error()
		return res
	}

	res.Stage = StageFetching
	fetchCtx, cancelFetch := context.WithTimeout(ctx, s.FetchTimeout)
	asset, err := resolve(fetchCtx)
	cancelFetch()
	if err != nil {
		res.ErrorCode, res.Error = errorCode(err), err.Error()
		return res
	}
	res.SourceURI = asset.SourceURI

	res.Stage = StageExtracting
	extracted, err := s.extract(ctx, asset, docType)
	if err != nil {
		res.ErrorCode, res.Error = errorCode(err), err.Error()
		return res
	}

	res.Stage = StageNormalizing
	fields, issues, err := normalize.Normalize(docType, extracted.RawFields)
	if err != nil {
		res.ErrorCode, res.Error = errorCode(err), err.Error()
		return res
	}

	res.Stage = StagePersisting
	doc := students.NormalizedDocument{
		DocType:          docType,
		SourceURI:        asset.SourceURI,
		Fields:           fields,
		Confidence:       extracted.Confidence,
		Model:            extracted.Model,
		ValidationIssues: issues,
		ProcessedAt:      time.Now().UTC(),
	}
	stored, err := s.Students.UpsertDocument(ctx, studentID, doc)
	if err != nil {
		res.ErrorCode, res.Error = errorCode(err), err.Error()
		return res
	}

	res.Stage = StageDone
	res.Status = "done"
	res.Ready = stored.Ready()
	res.Document = &stored

	telemetry.Info("intake.item.done", map[string]any{
		"student_id": studentID,
		"doc_type":   string(docType),
		"source_uri": asset.SourceURI,
		"model":      stored.Model,
		"confidence": stored.Confidence,
		"issues":     len(stored.ValidationIssues),
	})
	return res
}

// extract calls the primary extractor and, on quota exhaustion, the
// fallback when one is configured. Other failures pass through unchanged.
func (s *Service) extract(ctx context.Context, asset assets.Asset, docType schema.DocType) (extraction.Result, error) {
	extractCtx, cancel := context.WithTimeout(ctx, s.ExtractTimeout)
	defer cancel()

	result, err := s.Extractor.Extract(extractCtx, asset, docType)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, extraction.ErrQuotaExceeded) || s.Fallback == nil {
		return extraction.Result{}, err
	}

	telemetry.Warn("intake.extract.fallback", map[string]any{
		"doc_type": string(docType),
		"reason":   err.Error(),
	})
	return s.Fallback.Extract(extractCtx, asset, docType)
}
