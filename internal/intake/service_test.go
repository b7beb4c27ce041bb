package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"intake-backend/internal/assets"
	"intake-backend/internal/extraction"
	"intake-backend/internal/schema"
	"intake-backend/internal/students"
	"intake-backend/internal/uploads"
)

var jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)

type stubExtractor struct {
	result extraction.Result
	err    error
	calls  atomic.Int64
}

func (s *stubExtractor) Extract(ctx context.Context, asset assets.Asset, docType schema.DocType) (extraction.Result, error) {
	s.calls.Add(1)
	if s.err != nil {
		return extraction.Result{}, s.err
	}
	return s.result, nil
}

func aadhaarResult() extraction.Result {
	return extraction.Result{
		RawFields: map[string]any{
			"full_name":      "john doe",
			"aadhaar_number": "1234 5678 9012",
			"dob":            "15/08/1995",
			"address":        "12 MG Road, Pune",
		},
		Confidence: 0.9,
		Model:      "stub-model",
	}
}

func newTestService(primary, fb extraction.Extractor) (*Service, *students.MemoryRepo, *uploads.MemoryRepo) {
	studentsRepo := students.NewMemoryRepo()
	uploadsRepo := uploads.NewMemoryRepo()
	svc := &Service{
		Fetcher:        assets.NewFetcher(1<<20, time.Second),
		Extractor:      primary,
		Fallback:       fb,
		Students:       studentsRepo,
		Uploads:        uploadsRepo,
		FetchTimeout:   time.Second,
		ExtractTimeout: time.Second,
		BatchWorkers:   4,
		BatchMaxItems:  25,
	}
	return svc, studentsRepo, uploadsRepo
}

func assetServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(jpegBytes)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProcessUploadHappyPath(t *testing.T) {
	stub := &stubExtractor{result: aadhaarResult()}
	svc, studentsRepo, _ := newTestService(stub, nil)

	res := svc.ProcessUpload(context.Background(), "s-1", schema.AadhaarCard, "aadhaar.jpg", bytes.NewReader(jpegBytes))
	if res.Status != "done" {
		t.Fatalf("expected done, got %s (%s: %s)", res.Status, res.ErrorCode, res.Error)
	}
	if res.Stage != StageDone {
		t.Fatalf("expected stage done, got %s", res.Stage)
	}
	if !res.Ready {
		t.Fatalf("expected ready document, issues: %v", res.Document.ValidationIssues)
	}
	if res.Document.Fields["Name"] != "John Doe" {
		t.Fatalf("unexpected fields %v", res.Document.Fields)
	}
	if res.Document.Model != "stub-model" {
		t.Fatalf("unexpected model %s", res.Document.Model)
	}

	rec, err := studentsRepo.GetRecord(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if len(rec.Documents) != 1 {
		t.Fatalf("expected persisted document, got %d", len(rec.Documents))
	}
}

func TestProcessUploadValidationIssuesStillSucceed(t *testing.T) {
	stub := &stubExtractor{result: extraction.Result{
		RawFields:  map[string]any{"full_name": "jane doe"},
		Confidence: 0.7,
		Model:      "stub-model",
	}}
	svc, _, _ := newTestService(stub, nil)

	res := svc.ProcessUpload(context.Background(), "s-1", schema.AadhaarCard, "a.jpg", bytes.NewReader(jpegBytes))
	if res.Status != "done" {
		t.Fatalf("expected done despite issues, got %s (%s)", res.Status, res.Error)
	}
	if res.Ready {
		t.Fatalf("expected not ready with missing required fields")
	}
	if len(res.Document.ValidationIssues) == 0 {
		t.Fatalf("expected validation issues")
	}
}

func TestProcessUploadUnknownDocType(t *testing.T) {
	svc, _, _ := newTestService(&stubExtractor{}, nil)

	res := svc.ProcessUpload(context.Background(), "s-1", schema.DocType("passport"), "a.jpg", bytes.NewReader(jpegBytes))
	if res.Status != "failed" || res.ErrorCode != "unknown_document_type" {
		t.Fatalf("expected unknown_document_type failure, got %+v", res)
	}
}

func TestProcessUploadUnsupportedMedia(t *testing.T) {
	svc, _, _ := newTestService(&stubExtractor{}, nil)

	res := svc.ProcessUpload(context.Background(), "s-1", schema.AadhaarCard, "a.txt", bytes.NewReader([]byte("plain text")))
	if res.Status != "failed" || res.ErrorCode != "unsupported_media_type" {
		t.Fatalf("expected unsupported_media_type failure, got %+v", res)
	}
	if res.Stage != StageFetching {
		t.Fatalf("expected failure at fetching, got %s", res.Stage)
	}
}

func TestProcessURLDownloadFailure(t *testing.T) {
	svc, _, _ := newTestService(&stubExtractor{}, nil)

	res := svc.ProcessURL(context.Background(), "s-1", schema.AadhaarCard, "http://127.0.0.1:1/missing.jpg")
	if res.Status != "failed" || res.ErrorCode != "asset_download_failed" {
		t.Fatalf("expected asset_download_failed, got %+v", res)
	}
}

func TestQuotaFallsBackToLocalExtractor(t *testing.T) {
	primary := &stubExtractor{err: extraction.ErrQuotaExceeded}
	fb := &stubExtractor{result: extraction.Result{
		RawFields:  map[string]any{"name": "fallback person"},
		Confidence: 0.25,
		Model:      "local-fallback",
	}}
	svc, _, _ := newTestService(primary, fb)

	res := svc.ProcessUpload(context.Background(), "s-1", schema.AadhaarCard, "a.jpg", bytes.NewReader(jpegBytes))
	if res.Status != "done" {
		t.Fatalf("expected done via fallback, got %s (%s)", res.Status, res.Error)
	}
	if res.Document.Model != "local-fallback" {
		t.Fatalf("expected fallback model tag, got %s", res.Document.Model)
	}
	if primary.calls.Load() != 1 || fb.calls.Load() != 1 {
		t.Fatalf("expected one call each, got primary=%d fallback=%d", primary.calls.Load(), fb.calls.Load())
	}
}

func TestQuotaWithoutFallbackFails(t *testing.T) {
	svc, _, _ := newTestService(&stubExtractor{err: extraction.ErrQuotaExceeded}, nil)

	res := svc.ProcessUpload(context.Background(), "s-1", schema.AadhaarCard, "a.jpg", bytes.NewReader(jpegBytes))
	if res.Status != "failed" || res.ErrorCode != "quota_exceeded" {
		t.Fatalf("expected quota_exceeded failure, got %+v", res)
	}
	if res.Stage != StageExtracting {
		t.Fatalf("expected failure at extracting, got %s", res.Stage)
	}
}

func TestTransportErrorDoesNotFallBack(t *testing.T) {
	primary := &stubExtractor{err: extraction.ErrTransport}
	fb := &stubExtractor{}
	svc, _, _ := newTestService(primary, fb)

	res := svc.ProcessUpload(context.Background(), "s-1", schema.AadhaarCard, "a.jpg", bytes.NewReader(jpegBytes))
	if res.Status != "failed" || res.ErrorCode != "transport_error" {
		t.Fatalf("expected transport_error failure, got %+v", res)
	}
	if fb.calls.Load() != 0 {
		t.Fatalf("fallback should not run on transport errors")
	}
}

func TestProcessBatchMixedResults(t *testing.T) {
	srv := assetServer(t)
	stub := &stubExtractor{result: aadhaarResult()}
	svc, _, _ := newTestService(stub, nil)

	items := []BatchItem{
		{StudentID: "s-1", DocType: schema.AadhaarCard, SourceURL: srv.URL + "/a.jpg"},
		{StudentID: "s-2", DocType: schema.AadhaarCard, SourceURL: srv.URL + "/b.jpg"},
		{StudentID: "s-3", DocType: schema.AadhaarCard, SourceURL: "http://127.0.0.1:1/broken.jpg"},
	}

	agg, err := svc.ProcessBatch(context.Background(), items, "")
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if agg.Total != 3 || agg.Succeeded != 2 || agg.Failed != 1 {
		t.Fatalf("unexpected aggregate %+v", agg)
	}

	failed := 0
	for _, item := range agg.Items {
		if item.Status == "failed" {
			failed++
			if item.ErrorCode == "" {
				t.Fatalf("failed item missing error code: %+v", item)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("expected exactly 1 failed item entry, got %d", failed)
	}
}

func TestProcessBatchTooLarge(t *testing.T) {
	svc, _, _ := newTestService(&stubExtractor{}, nil)
	svc.BatchMaxItems = 2

	items := make([]BatchItem, 3)
	_, err := svc.ProcessBatch(context.Background(), items, "")
	if err == nil {
		t.Fatalf("expected batch size error")
	}
}

func TestProcessBatchDeliversCallbackOnce(t *testing.T) {
	srv := assetServer(t)

	var callbackCount atomic.Int64
	var received BatchResult
	callbackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callbackCount.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer callbackSrv.Close()

	stub := &stubExtractor{result: aadhaarResult()}
	svc, _, _ := newTestService(stub, nil)

	items := []BatchItem{{StudentID: "s-1", DocType: schema.AadhaarCard, SourceURL: srv.URL + "/a.jpg"}}
	agg, err := svc.ProcessBatch(context.Background(), items, callbackSrv.URL)
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if agg.Succeeded != 1 {
		t.Fatalf("unexpected aggregate %+v", agg)
	}
	if callbackCount.Load() != 1 {
		t.Fatalf("expected 1 callback delivery, got %d", callbackCount.Load())
	}
	if received.Total != 1 || received.Succeeded != 1 {
		t.Fatalf("unexpected callback payload %+v", received)
	}
}

func TestProcessBatchCallbackFailureSwallowed(t *testing.T) {
	srv := assetServer(t)
	stub := &stubExtractor{result: aadhaarResult()}
	svc, _, _ := newTestService(stub, nil)

	items := []BatchItem{{StudentID: "s-1", DocType: schema.AadhaarCard, SourceURL: srv.URL + "/a.jpg"}}
	agg, err := svc.ProcessBatch(context.Background(), items, "http://127.0.0.1:1/callback")
	if err != nil {
		t.Fatalf("callback failure must not fail the batch: %v", err)
	}
	if agg.Succeeded != 1 {
		t.Fatalf("unexpected aggregate %+v", agg)
	}
}

func TestPendingBatchItemsMarkFetchedAfterSuccess(t *testing.T) {
	srv := assetServer(t)
	stub := &stubExtractor{result: aadhaarResult()}
	svc, _, uploadsRepo := newTestService(stub, nil)

	ctx := context.Background()
	if _, err := uploadsRepo.Create(ctx, uploads.PendingUpload{
		StudentID: "s-1",
		DocType:   schema.AadhaarCard,
		SourceURL: srv.URL + "/a.jpg",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, err := svc.PendingBatchItems(ctx, uploads.Filter{StudentID: "s-1"})
	if err != nil {
		t.Fatalf("PendingBatchItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	agg, err := svc.ProcessBatch(ctx, items, "")
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if agg.Succeeded != 1 {
		t.Fatalf("unexpected aggregate %+v", agg)
	}

	remaining, err := uploadsRepo.ListPending(ctx, uploads.Filter{})
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected queue drained, got %d pending", len(remaining))
	}
}
