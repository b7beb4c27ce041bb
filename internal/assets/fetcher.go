// Package assets resolves document submissions into raw bytes plus a
// descriptive source URI, from either a direct upload or a remote URL.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Asset is a resolved document: its bytes, sniffed media type, and where it
// came from.
type Asset struct {
	Bytes     []byte
	MimeType  string
	SourceURI string
}

// Fetcher resolves uploads and remote URLs, enforcing a size cap and the
// supported-media allow-list on both paths.
type Fetcher struct {
	MaxBytes   int64
	HTTPClient *http.Client
}

// NewFetcher constructs a Fetcher with the given size cap and fetch timeout.
func NewFetcher(maxBytes int64, timeout time.Duration) *Fetcher {
	return &Fetcher{
		MaxBytes:   maxBytes,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// FromUpload resolves a directly uploaded file. The reader is capped at
// MaxBytes and the content is identified by byte signature.
func (f *Fetcher) FromUpload(fileName string, r io.Reader) (Asset, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.MaxBytes+1))
	if err != nil {
		return Asset{}, fmt.Errorf("read upload %s: %w", fileName, err)
	}
	if int64(len(data)) > f.MaxBytes {
		return Asset{}, fmt.Errorf("upload %s: %w", fileName, ErrTooLarge)
	}

	mime := SniffMimeType(data)
	if mime == "" {
		return Asset{}, fmt.Errorf("upload %s: %w", fileName, ErrUnsupportedMediaType)
	}

	return Asset{
		Bytes:     data,
		MimeType:  mime,
		SourceURI: "upload://" + fileName,
	}, nil
}

// FromURL downloads a document from a remote URL (e.g. a Cloudinary CDN
// link). The Content-Length header is checked first, then the cap is
// enforced again while reading the body.
func (f *Fetcher) FromURL(ctx context.Context, url string) (Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Asset{}, fmt.Errorf("%w: status %d from %s", ErrDownloadFailed, resp.StatusCode, url)
	}
	if resp.ContentLength > f.MaxBytes {
		return Asset{}, fmt.Errorf("%s: %w", url, ErrTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBytes+1))
	if err != nil {
		return Asset{}, fmt.Errorf("%w: read body: %v", ErrDownloadFailed, err)
	}
	if int64(len(data)) > f.MaxBytes {
		return Asset{}, fmt.Errorf("%s: %w", url, ErrTooLarge)
	}

	mime := SniffMimeType(data)
	if mime == "" {
		return Asset{}, fmt.Errorf("%s: %w", url, ErrUnsupportedMediaType)
	}

	return Asset{
		Bytes:     data,
		MimeType:  mime,
		SourceURI: url,
	}, nil
}
