package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"intake-backend/internal/schema"
	"intake-backend/internal/shared/telemetry"
	"intake-backend/internal/uploads"
)

// BatchItem is one document reference inside a batch request.
type BatchItem struct {
	StudentID string         `json:"studentId"`
	DocType   schema.DocType `json:"docType"`
	SourceURL string         `json:"sourceUrl"`

	uploadID uuid.UUID
}

// BatchResult aggregates the per-item outcomes of one batch run.
type BatchResult struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// ErrBatchTooLarge indicates a batch exceeding the configured item cap.
var ErrBatchTooLarge = fmt.Errorf("batch exceeds item limit")

// ProcessBatch fans the items out over a bounded worker pool. Item failures
// are recorded in the aggregate and never stop the rest of the batch. When
// callbackURL is set, the aggregate is POSTed there once, best effort.
func (s *Service) ProcessBatch(ctx context.Context, items []BatchItem, callbackURL string) (BatchResult, error) {
	if len(items) > s.BatchMaxItems {
		return BatchResult{}, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(items), s.BatchMaxItems)
	}

	results := make([]ItemResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.BatchWorkers)
	for i, item := range items {
		g.Go(func() error {
			results[i] = s.ProcessURL(gctx, item.StudentID, item.DocType, item.SourceURL)
			if results[i].Status == "done" && item.uploadID != uuid.Nil && s.Uploads != nil {
				s.markFetched(gctx, item.uploadID)
			}
			return nil
		})
	}
	g.Wait()

	agg := BatchResult{Total: len(items), Items: results}
	for _, r := range results {
		if r.Status == "done" {
			agg.Succeeded++
		} else {
			agg.Failed++
		}
	}

	telemetry.Info("intake.batch.done", map[string]any{
		"total":     agg.Total,
		"succeeded": agg.Succeeded,
		"failed":    agg.Failed,
	})

	if callbackURL != "" {
		s.deliverCallback(ctx, callbackURL, agg)
	}
	return agg, nil
}

// PendingBatchItems loads queued uploads matching the filter as batch
// items. The filter limit is capped at the batch item limit.
func (s *Service) PendingBatchItems(ctx context.Context, f uploads.Filter) ([]BatchItem, error) {
	if f.Limit <= 0 || f.Limit > s.BatchMaxItems {
		f.Limit = s.BatchMaxItems
	}

	pending, err := s.Uploads.ListPending(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, 0, len(pending))
	for _, up := range pending {
		items = append(items, BatchItem{
			StudentID: up.StudentID,
			DocType:   up.DocType,
			SourceURL: up.SourceURL,
			uploadID:  up.ID,
		})
	}
	return items, nil
}

func (s *Service) markFetched(ctx context.Context, id uuid.UUID) {
	if err := s.Uploads.MarkFetched(ctx, id); err != nil {
		telemetry.Warn("intake.upload.mark_failed", map[string]any{
			"upload_id": id.String(),
			"error":     err.Error(),
		})
	}
}

// deliverCallback POSTs the aggregate to the caller-supplied URL. Delivery
// is attempted once; failures are logged, never surfaced.
func (s *Service) deliverCallback(ctx context.Context, url string, agg BatchResult) {
	payload, err := json.Marshal(agg)
	if err != nil {
		telemetry.Error("intake.callback.failed", map[string]any{"url": url, "error": err.Error()})
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		telemetry.Error("intake.callback.failed", map[string]any{"url": url, "error": err.Error()})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.CallbackClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		telemetry.Error("intake.callback.failed", map[string]any{"url": url, "error": err.Error()})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		telemetry.Error("intake.callback.failed", map[string]any{"url": url, "status": resp.StatusCode})
		return
	}
	telemetry.Info("intake.callback.delivered", map[string]any{"url": url, "status": resp.StatusCode})
}
