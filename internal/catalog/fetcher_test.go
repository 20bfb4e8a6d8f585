package catalog

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-server/internal/config"
	"github.com/campushub/campus-server/internal/domain"
)

func newTestFetcher() *Fetcher {
	f := NewFetcher(2*time.Second, nil, nil)
	transport := httpmock.NewMockTransport()
	f.client = &http.Client{Transport: transport}
	return f
}

func mockTransport(f *Fetcher) *httpmock.MockTransport {
	return f.client.Transport.(*httpmock.MockTransport)
}

func TestFetcherLoadsRemoteSource(t *testing.T) {
	f := newTestFetcher()
	mockTransport(f).RegisterResponder(http.MethodGet, "https://portal.example.edu/catalogo_salud.csv",
		httpmock.NewStringResponder(200,
			"Catálogo\nTítulo;Autor/a;Materias\nIntro to Stats;J. Doe;Math, Stats\n"))

	payload := f.Load(context.Background(), config.CatalogSource{
		Area:      "Salud",
		URL:       "https://portal.example.edu/catalogo_salud.csv",
		SkipLines: 1,
	})

	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Salud", payload.Area)
	assert.Equal(t, "Intro to Stats", payload.Items[0].Title)
	assert.Equal(t, []string{"Math", "Stats"}, payload.Items[0].Subjects)
}

func TestFetcherFallsBackOnNetworkFailure(t *testing.T) {
	f := newTestFetcher()
	// No responder registered: the request fails.

	payload := f.Load(context.Background(), config.CatalogSource{
		Area: "Salud",
		URL:  "https://portal.example.edu/missing.csv",
	})

	// The view stays usable on the built-in dataset.
	require.NotEmpty(t, payload.Items)
	assert.Equal(t, "Salud", payload.Area)
	for _, item := range payload.Items {
		assert.NotEmpty(t, item.Title)
		assert.Equal(t, "Salud", item.Area)
	}
}

func TestFetcherFallsBackOnHTTPError(t *testing.T) {
	f := newTestFetcher()
	mockTransport(f).RegisterResponder(http.MethodGet, "https://portal.example.edu/catalogo.csv",
		httpmock.NewStringResponder(503, "unavailable"))

	payload := f.Load(context.Background(), config.CatalogSource{
		Area: "Humanidades",
		URL:  "https://portal.example.edu/catalogo.csv",
	})

	require.NotEmpty(t, payload.Items)
}

func TestFetcherReadsLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogo.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("Título;Autor/a\nLocal Book;A. Author\n"), 0o644))

	f := newTestFetcher()
	payload := f.Load(context.Background(), config.CatalogSource{Area: "Salud", Path: path})

	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Local Book", payload.Items[0].Title)
}

func TestFallbackDatasetParses(t *testing.T) {
	items := Parse(fallbackCSV, "Salud", fallbackOptions)
	require.NotEmpty(t, items)
	// The fallback exercises quoting and multi-value subjects too.
	var sawLoaned bool
	for _, item := range items {
		if item.Status == domain.StatusLoaned {
			sawLoaned = true
		}
	}
	assert.True(t, sawLoaned)
}
