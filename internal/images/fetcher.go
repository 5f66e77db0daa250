package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/inajphotography/visionboard/internal/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout = 15 * time.Second

	// gallery originals are a few MB; anything far beyond that is not a photo we serve
	maxImageBytes = 25 * 1024 * 1024
)

// Fetcher retrieves selection images over HTTP
type Fetcher struct {
	HTTPClient *http.Client
	// Timeout bounds each fetch on its own; there is no overall deadline.
	Timeout time.Duration
}

// NewFetcher creates a new image fetcher with the given per-fetch timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		HTTPClient: &http.Client{},
		Timeout:    timeout,
	}
}

// FetchAll downloads every URL concurrently. The result has one entry per URL,
// in order; an entry is nil when that fetch failed or timed out.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) [][]byte {
	results := make([][]byte, len(urls))

	var g errgroup.Group
	for i, url := range urls {
		g.Go(func() error {
			data, err := f.Fetch(ctx, url)
			if err != nil {
				slog.Warn("Failed to fetch image", "url", url, "err", err)
				metrics.ImageFetchTotal.WithLabelValues("failed").Inc()
				return nil
			}
			metrics.ImageFetchTotal.WithLabelValues("ok").Inc()
			results[i] = data
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Fetch downloads a single image, bounded by the fetcher's timeout
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty image URL")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) > maxImageBytes {
		return nil, fmt.Errorf("image too large (max %d bytes)", maxImageBytes)
	}
	if len(imageData) == 0 {
		return nil, fmt.Errorf("image URL returned an empty body")
	}

	return imageData, nil
}
