package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/config"
	"github.com/campushub/campus-server/internal/domain"
	apperrors "github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/store"
)

const testCatalogCSV = `Biblioteca Central - exportación
Título;Autor/a;Materias;Resumen;Estado
Cálculo I;R. Soto;Matemáticas, Análisis;Curso introductorio;Disponible
Física General;A. Vidal;Física;;Disponible
Química Orgánica;L. Mora;Química;Compuestos del carbono;Prestado
`

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func setupServiceStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

// writeCatalogFile writes a catalog payload and returns a source pointing at it.
func writeCatalogFile(t *testing.T, area, content string) config.CatalogSource {
	t.Helper()

	path := filepath.Join(t.TempDir(), area+".csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return config.CatalogSource{Area: area, Path: path, SkipLines: 1, Delimiter: ';'}
}

func newTestCatalog(t *testing.T, st *store.Store, sources ...config.CatalogSource) *CatalogService {
	t.Helper()

	fetcher := catalog.NewFetcher(5*time.Second, nil, discardLogger())
	svc, err := NewCatalogService(fetcher, sources, st, nil, nil, discardLogger())
	require.NoError(t, err)
	return svc
}

func TestCatalogService_Items(t *testing.T) {
	st := setupServiceStore(t)
	svc := newTestCatalog(t, st, writeCatalogFile(t, "general", testCatalogCSV))

	items := svc.Items(context.Background())
	require.Len(t, items, 3)
	assert.Equal(t, "general-0", items[0].ID)
	assert.Equal(t, "Cálculo I", items[0].Title)
	assert.Equal(t, []string{"Matemáticas", "Análisis"}, items[0].Subjects)
	assert.Equal(t, domain.StatusLoaned, items[2].Status)
}

func TestCatalogService_ItemNotFound(t *testing.T) {
	st := setupServiceStore(t)
	svc := newTestCatalog(t, st, writeCatalogFile(t, "general", testCatalogCSV))

	_, err := svc.Item(context.Background(), "general-99")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_QueryFilters(t *testing.T) {
	st := setupServiceStore(t)
	svc := newTestCatalog(t, st, writeCatalogFile(t, "general", testCatalogCSV))
	ctx := context.Background()

	byQuery, err := svc.Query(ctx, "", catalog.FilterSpec{Query: "física"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Física General", byQuery[0].Title)

	bySubject, err := svc.Query(ctx, "", catalog.FilterSpec{Subject: "análisis"})
	require.NoError(t, err)
	require.Len(t, bySubject, 1)
	assert.Equal(t, "Cálculo I", bySubject[0].Title)

	byStatus, err := svc.Query(ctx, "", catalog.FilterSpec{Status: domain.StatusLoaned})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Química Orgánica", byStatus[0].Title)
}

func TestCatalogService_QueryMultipleAreas(t *testing.T) {
	st := setupServiceStore(t)
	svc := newTestCatalog(t, st,
		writeCatalogFile(t, "general", testCatalogCSV),
		writeCatalogFile(t, "health", "Sede Salud\nTítulo;Autor/a;Materias;Resumen;Estado\nAnatomía;P. Ruiz;Salud;;Disponible\n"),
	)
	ctx := context.Background()

	all := svc.Items(ctx)
	assert.Len(t, all, 4)

	health, err := svc.Query(ctx, "", catalog.FilterSpec{Area: "health"})
	require.NoError(t, err)
	require.Len(t, health, 1)
	assert.Equal(t, "health-0", health[0].ID)
}

func TestCatalogService_FavoriteToggleAndView(t *testing.T) {
	st := setupServiceStore(t)
	svc := newTestCatalog(t, st, writeCatalogFile(t, "general", testCatalogCSV))
	ctx := context.Background()

	on, err := svc.ToggleFavorite(ctx, "ana@campus.edu", "general-0")
	require.NoError(t, err)
	assert.True(t, on)

	favs, err := svc.Query(ctx, "ana@campus.edu", catalog.FilterSpec{View: catalog.ViewFavorites})
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "general-0", favs[0].ID)

	list, err := svc.Favorites(ctx, "ana@campus.edu")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cálculo I", list[0].Title)
}

func TestCatalogService_FavoriteUnknownItem(t *testing.T) {
	st := setupServiceStore(t)
	svc := newTestCatalog(t, st, writeCatalogFile(t, "general", testCatalogCSV))

	_, err := svc.ToggleFavorite(context.Background(), "ana@campus.edu", "general-42")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_InvalidateReloads(t *testing.T) {
	st := setupServiceStore(t)
	src := writeCatalogFile(t, "general", testCatalogCSV)
	svc := newTestCatalog(t, st, src)
	ctx := context.Background()

	require.Len(t, svc.Items(ctx), 3)

	updated := testCatalogCSV + "Álgebra Lineal;N. Prado;Matemáticas;;Disponible\n"
	require.NoError(t, os.WriteFile(src.Path, []byte(updated), 0o600))

	// Still the cached payload until the watcher invalidates.
	assert.Len(t, svc.Items(ctx), 3)

	svc.Invalidate("general")
	assert.Len(t, svc.Items(ctx), 4)
}

func TestCatalogService_FallbackOnMissingSource(t *testing.T) {
	st := setupServiceStore(t)
	missing := config.CatalogSource{
		Area:      "general",
		Path:      filepath.Join(t.TempDir(), "nope.csv"),
		SkipLines: 1,
		Delimiter: ';',
	}
	svc := newTestCatalog(t, st, missing)

	// A dead source degrades to the built-in dataset instead of an empty view.
	items := svc.Items(context.Background())
	require.NotEmpty(t, items)
	assert.Equal(t, "general", items[0].Area)
}

func TestCatalogService_WatchPaths(t *testing.T) {
	st := setupServiceStore(t)
	local := writeCatalogFile(t, "general", testCatalogCSV)
	remote := config.CatalogSource{Area: "health", URL: "https://example.edu/feed.csv"}
	svc := newTestCatalog(t, st, local, remote)

	paths := svc.WatchPaths()
	assert.Equal(t, map[string]string{local.Path: "general"}, paths)
	assert.Equal(t, []string{"general", "health"}, svc.Areas())
}
