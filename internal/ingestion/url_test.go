package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func htmlServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIngestJobFromURL(t *testing.T) {
	server := htmlServer(t, `
		<html><body>
			<nav>Jobs Home</nav>
			<main>
				<h1>VP Communications</h1>
				<p>Lead   crisis   communications for the company.</p>
				<form id="application-form">Apply now</form>
			</main>
		</body></html>`)

	text, err := IngestJobFromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "VP Communications")
	assert.Contains(t, text, "Lead crisis communications for the company.")
	assert.NotContains(t, text, "Jobs Home")
	assert.NotContains(t, text, "Apply now")
}

func TestIngestJobFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := IngestJobFromURL(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHTTPRequestFailed))
}

func TestIngestJobFromURL_EmptyContent(t *testing.T) {
	server := htmlServer(t, `<html><body><main>   </main></body></html>`)

	_, err := IngestJobFromURL(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyContent))
}

func TestIngestPortfolioFromURL(t *testing.T) {
	server := htmlServer(t, `
		<html><body>
			<article>
				<h1>Rebrand Case Study</h1>
				<p>Sentiment recovered within two quarters.</p>
			</article>
			<footer>Copyright</footer>
		</body></html>`)

	text, err := IngestPortfolioFromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Rebrand Case Study")
	assert.NotContains(t, text, "Copyright")
}

func TestIngestPortfolioURLs_PreservesOrder(t *testing.T) {
	first := htmlServer(t, `<html><body><main>first case study</main></body></html>`)
	second := htmlServer(t, `<html><body><main>second case study</main></body></html>`)

	texts, err := IngestPortfolioURLs(context.Background(), []string{first.URL, second.URL})
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "first case study", texts[0])
	assert.Equal(t, "second case study", texts[1])
}

func TestIngestPortfolioURLs_OneFailureFailsBatch(t *testing.T) {
	good := htmlServer(t, `<html><body><main>fine</main></body></html>`)
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	_, err := IngestPortfolioURLs(context.Background(), []string{good.URL, bad.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "portfolio fetch failed")
}

func TestIngestPortfolioURLs_BoundedConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		_, _ = w.Write([]byte(`<html><body><main>content</main></body></html>`))
	}))
	defer server.Close()

	urls := make([]string, 12)
	for i := range urls {
		urls[i] = server.URL
	}

	texts, err := IngestPortfolioURLs(context.Background(), urls)
	require.NoError(t, err)
	assert.Len(t, texts, 12)
	assert.LessOrEqual(t, peak.Load(), int32(maxConcurrentFetches))
}

func TestIngestPortfolioURLs_Empty(t *testing.T) {
	texts, err := IngestPortfolioURLs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, texts)
}
