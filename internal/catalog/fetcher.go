package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/campushub/campus-server/internal/config"
	"github.com/campushub/campus-server/internal/domain"
)

// maxPayloadBytes caps a catalog download; the exports are small text files.
const maxPayloadBytes = 16 << 20

// fallbackCSV is the built-in dataset substituted when a source cannot be
// fetched, so the library view stays usable offline. It deliberately runs
// through the same parser as real payloads.
const fallbackCSV = `Catálogo de ejemplo
Título;Autor/a;Materias;Resumen;Estado
Introducción a la Estadística;J. Doe;Matemáticas, Estadística;Manual introductorio;Disponible
Anatomía Básica;M. García;Salud;;Disponible
Historia de la Ciencia;"Pérez, Luis";Historia, Ciencia;Panorama general;Prestado
`

// fallbackOptions matches the banner-plus-header shape of fallbackCSV.
var fallbackOptions = ParseOptions{SkipLines: 1, Delimiter: ';'}

// Fetcher retrieves raw catalog payloads from remote URLs or local files.
type Fetcher struct {
	client  *http.Client
	metrics *Metrics
	logger  *slog.Logger
}

// NewFetcher creates a fetcher. The metrics registry may be nil.
func NewFetcher(timeout time.Duration, metrics *Metrics, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch returns the raw text of one catalog source.
func (f *Fetcher) Fetch(ctx context.Context, src config.CatalogSource) (string, error) {
	start := time.Now()

	var raw string
	var err error
	if src.URL != "" {
		raw, err = f.fetchURL(ctx, src.URL)
	} else {
		raw, err = f.fetchFile(src.Path)
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	f.metrics.ObserveFetch(src.Area, outcome, time.Since(start))

	return raw, err
}

// Load fetches and parses one source. A fetch failure degrades gracefully to
// the built-in fallback dataset: the failure is logged, not surfaced.
func (f *Fetcher) Load(ctx context.Context, src config.CatalogSource) Payload {
	raw, err := f.Fetch(ctx, src)
	opts := ParseOptions{SkipLines: src.SkipLines, Delimiter: src.Delimiter}
	if err != nil {
		f.logger.Warn("catalog source unavailable, using built-in fallback",
			"area", src.Area,
			"error", err,
		)
		raw = fallbackCSV
		opts = fallbackOptions
	}

	items := Parse(raw, src.Area, opts)
	f.metrics.ObserveRows(len(items))
	return Payload{Area: src.Area, Items: items}
}

// Payload is one parsed catalog source.
type Payload struct {
	Area  string
	Items []domain.CatalogItem
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return "", fmt.Errorf("read catalog body: %w", err)
	}
	return string(body), nil
}

func (f *Fetcher) fetchFile(path string) (string, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- Source paths come from operator config
	if err != nil {
		return "", fmt.Errorf("read catalog file: %w", err)
	}
	return string(data), nil
}
