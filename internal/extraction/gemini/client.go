// Package gemini implements the extraction gateway against Vertex AI's
// multimodal Gemini models.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"intake-backend/internal/assets"
	"intake-backend/internal/extraction"
	"intake-backend/internal/schema"
	"intake-backend/internal/shared/telemetry"
)

// Client implements extraction.Extractor using Vertex AI Gemini.
type Client struct {
	model     *genai.GenerativeModel
	modelName string
	base      *genai.Client
	limiter   *rate.Limiter
}

// NewClient constructs a Gemini extraction client. The limiter throttles
// outbound calls so batch fan-out cannot trip the provider's rate limits.
func NewClient(ctx context.Context, projectID, region, modelName string, callRate float64, burst int) (*Client, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("GCP_PROJECT_ID is required for Gemini extraction")
	}
	if strings.TrimSpace(modelName) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}

	base, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := base.GenerativeModel(modelName)
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	}

	if callRate <= 0 {
		callRate = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		model:     model,
		modelName: modelName,
		base:      base,
		limiter:   rate.NewLimiter(rate.Limit(callRate), burst),
	}, nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	if c.base != nil {
		return c.base.Close()
	}
	return nil
}

// Extract submits the asset bytes with a per-docType instruction and parses
// the returned JSON mapping.
func (c *Client) Extract(ctx context.Context, asset assets.Asset, docType schema.DocType) (extraction.Result, error) {
	if asset.MimeType == "" || len(asset.Bytes) == 0 {
		return extraction.Result{}, extraction.ErrUnsupportedMediaType
	}

	s, err := schema.Lookup(docType)
	if err != nil {
		return extraction.Result{}, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return extraction.Result{}, fmt.Errorf("%w: %v", extraction.ErrTransport, err)
	}

	resp, err := c.model.GenerateContent(ctx,
		genai.Text(extraction.BuildPrompt(s)),
		genai.Blob{MIMEType: asset.MimeType, Data: asset.Bytes},
	)
	if err != nil {
		return extraction.Result{}, mapCallError(err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return extraction.Result{}, fmt.Errorf("%w: empty content", extraction.ErrInvalidResponse)
	}

	rawFields, err := parseJSONObject(text)
	if err != nil {
		return extraction.Result{}, err
	}

	telemetry.Info("extraction.complete", map[string]any{
		"model":    c.modelName,
		"doc_type": string(docType),
		"fields":   len(rawFields),
	})

	return extraction.Result{
		RawFields:  rawFields,
		Confidence: extraction.ConfidenceFromFillRate(rawFields),
		Model:      c.modelName,
	}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// parseJSONObject decodes the model output, windowing to the outermost
// braces first since models occasionally wrap JSON in prose despite the
// response MIME type.
func parseJSONObject(text string) (map[string]any, error) {
	candidate := strings.TrimSpace(text)
	if start, end := strings.Index(candidate, "{"), strings.LastIndex(candidate, "}"); start != -1 && end > start {
		candidate = candidate[start : end+1]
	}

	var rawFields map[string]any
	if err := json.Unmarshal([]byte(candidate), &rawFields); err != nil {
		return nil, fmt.Errorf("%w: %v", extraction.ErrInvalidResponse, err)
	}
	return rawFields, nil
}

// mapCallError converts provider failures into the local error taxonomy.
func mapCallError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return fmt.Errorf("%w: %v", extraction.ErrQuotaExceeded, err)
	}
	if st, ok := status.FromError(err); ok && st.Code() == codes.ResourceExhausted {
		return fmt.Errorf("%w: %v", extraction.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%w: %v", extraction.ErrTransport, err)
}

var _ extraction.Extractor = (*Client)(nil)
