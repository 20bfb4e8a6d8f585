package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) *SearchIndex {
	t.Helper()

	index, err := NewSearchIndex(Options{
		DataPath: t.TempDir(),
		Logger:   nil,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = index.Close()
	})

	return index
}

func TestNewSearchIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_IndexDocument(t *testing.T) {
	index := setupTestIndex(t)

	doc := &SearchDocument{
		ID:     "notice-123",
		Type:   DocTypeNotice,
		Name:   "Library closed Friday",
		Author: "Ana",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchIndex_IndexDocuments_Batch(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*SearchDocument{
		{ID: "notice-1", Type: DocTypeNotice, Name: "Notice One"},
		{ID: "notice-2", Type: DocTypeNotice, Name: "Notice Two"},
		{ID: "notice-3", Type: DocTypeNotice, Name: "Notice Three"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchIndex_DeleteDocument(t *testing.T) {
	index := setupTestIndex(t)

	err := index.IndexDocument(&SearchDocument{
		ID:   "notice-123",
		Type: DocTypeNotice,
		Name: "Test Notice",
	})
	require.NoError(t, err)

	err = index.DeleteDocument("notice-123")
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearch_ByName(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	docs := []*SearchDocument{
		{ID: "notice-1", Type: DocTypeNotice, Name: "Robotics workshop this Saturday", Author: "Ana"},
		{ID: "community-1", Type: DocTypeCommunity, Name: "Robotics Club", Kind: "club", Author: "ben@campus.edu"},
		{ID: "project-1", Type: DocTypeProject, Name: "Solar car prototype", Tags: []string{"engineering"}},
	}
	require.NoError(t, index.IndexDocuments(docs))

	params := DefaultSearchParams()
	params.Query = "robotics"

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)

	ids := make(map[string]bool)
	for _, hit := range result.Hits {
		ids[hit.ID] = true
	}
	assert.True(t, ids["notice-1"])
	assert.True(t, ids["community-1"])
	assert.False(t, ids["project-1"])
}

func TestSearch_TypeFilter(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	docs := []*SearchDocument{
		{ID: "notice-1", Type: DocTypeNotice, Name: "Chess tournament"},
		{ID: "community-1", Type: DocTypeCommunity, Name: "Chess Society", Kind: "community"},
	}
	require.NoError(t, index.IndexDocuments(docs))

	params := DefaultSearchParams()
	params.Query = "chess"
	params.Types = []string{"community"}

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "community-1", result.Hits[0].ID)
}

func TestSearch_KindFilter(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	docs := []*SearchDocument{
		{ID: "community-1", Type: DocTypeCommunity, Name: "Debate Club", Kind: "club"},
		{ID: "community-2", Type: DocTypeCommunity, Name: "Debate Championship", Kind: "competition"},
	}
	require.NoError(t, index.IndexDocuments(docs))

	params := DefaultSearchParams()
	params.Query = "debate"
	params.Kinds = []string{"competition"}

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "community-2", result.Hits[0].ID)
}

func TestSearch_TagFilter(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	docs := []*SearchDocument{
		{ID: "project-1", Type: DocTypeProject, Name: "Weather station", Tags: []string{"iot", "sensors"}},
		{ID: "project-2", Type: DocTypeProject, Name: "Weather forecasting model", Tags: []string{"machine-learning"}},
	}
	require.NoError(t, index.IndexDocuments(docs))

	params := DefaultSearchParams()
	params.Query = "weather"
	params.Tags = []string{"machine-learning"}

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "project-2", result.Hits[0].ID)
}

func TestSearch_BodyMatch(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	notice := domain.NewNotice("notice-1", "Schedule change", "The cafeteria opens at noon during exam week", "ana@campus.edu", "Ana")
	require.NoError(t, index.IndexDocument(NoticeToSearchDocument(notice)))

	params := DefaultSearchParams()
	params.Query = "cafeteria"

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "notice-1", result.Hits[0].ID)
}

func TestSearch_FuzzyTolerance(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	require.NoError(t, index.IndexDocument(&SearchDocument{
		ID: "community-1", Type: DocTypeCommunity, Name: "Photography Society", Kind: "community",
	}))

	params := DefaultSearchParams()
	params.Query = "photograpy" // one character off

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(result.Hits), 1)
}

func TestSearch_Facets(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	docs := []*SearchDocument{
		{ID: "notice-1", Type: DocTypeNotice, Name: "Open call for projects"},
		{ID: "project-1", Type: DocTypeProject, Name: "Open source dashboard", Tags: []string{"web"}},
		{ID: "project-2", Type: DocTypeProject, Name: "Open data crawler", Tags: []string{"web", "data"}},
	}
	require.NoError(t, index.IndexDocuments(docs))

	params := DefaultSearchParams()
	params.Query = "open"

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Facets.Types)

	typeCounts := make(map[string]int)
	for _, fc := range result.Facets.Types {
		typeCounts[fc.Value] = fc.Count
	}
	assert.Equal(t, 2, typeCounts["project"])
	assert.Equal(t, 1, typeCounts["notice"])
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	docs := []*SearchDocument{
		{ID: "notice-1", Type: DocTypeNotice, Name: "One"},
		{ID: "project-1", Type: DocTypeProject, Name: "Two"},
	}
	require.NoError(t, index.IndexDocuments(docs))

	params := DefaultSearchParams()

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}

func TestSearch_SortByRecent(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	now := time.Now()
	docs := []*SearchDocument{
		{ID: "notice-1", Type: DocTypeNotice, Name: "Old announcement", CreatedAt: now.Add(-48 * time.Hour).UnixMilli()},
		{ID: "notice-2", Type: DocTypeNotice, Name: "Fresh announcement", CreatedAt: now.UnixMilli()},
	}
	require.NoError(t, index.IndexDocuments(docs))

	params := DefaultSearchParams()
	params.Query = "announcement"
	params.SortBy = "recent"

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 2)
	assert.Equal(t, "notice-2", result.Hits[0].ID)
}

func TestRebuildClearsIndex(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexDocument(&SearchDocument{
		ID: "notice-1", Type: DocTypeNotice, Name: "Stale",
	}))

	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
