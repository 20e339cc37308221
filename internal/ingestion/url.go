package ingestion

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/gap-analyzer/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when an HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
	// ErrEmptyContent is returned when a page yields no usable text
	ErrEmptyContent = fmt.Errorf("no usable text content")
)

// maxConcurrentFetches bounds parallel portfolio downloads.
const maxConcurrentFetches = 4

// IngestJobFromURL fetches a job posting page and returns its cleaned text.
// Platform-specific selectors (Greenhouse, Lever, Workday) strip application
// forms and legal boilerplate before extraction.
func IngestJobFromURL(ctx context.Context, urlStr string) (string, error) {
	platform := fetch.DetectPlatform(urlStr)

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	text, err := fetch.ExtractMainText(result.HTML,
		fetch.PlatformContentSelectors(platform),
		fetch.PlatformNoiseSelectors(platform)...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, urlStr)
	}
	return cleaned, nil
}

// IngestPortfolioFromURL fetches one portfolio page and returns its cleaned
// text.
func IngestPortfolioFromURL(ctx context.Context, urlStr string) (string, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.PortfolioPageSelectors())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, urlStr)
	}
	return cleaned, nil
}

// IngestPortfolioURLs fetches several portfolio pages concurrently,
// preserving input order in the returned texts. One failed URL fails the
// whole batch; partial portfolio evidence would silently skew an analysis.
func IngestPortfolioURLs(ctx context.Context, urls []string) ([]string, error) {
	texts := make([]string, len(urls))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, urlStr := range urls {
		g.Go(func() error {
			text, err := IngestPortfolioFromURL(gCtx, urlStr)
			if err != nil {
				return fmt.Errorf("portfolio fetch failed for %s: %w", urlStr, err)
			}
			texts[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}
