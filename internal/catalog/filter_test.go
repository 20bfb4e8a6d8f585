package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-server/internal/domain"
)

func testItems() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: "Salud-0", Title: "Intro to Stats", Author: "J. Doe", Area: "Salud", Subjects: []string{"Math", "Stats"}, Status: domain.StatusAvailable},
		{ID: "Salud-1", Title: "Anatomy", Author: "M. García", Area: "Salud", Subjects: []string{"Biology"}, Status: domain.StatusLoaned},
		{ID: "Humanidades-0", Title: "World History", Author: "L. Pérez", Area: "Humanidades", Subjects: []string{"History"}, Summary: "from antiquity to stats of today", Status: domain.StatusAvailable},
	}
}

func TestApplyNoFilters(t *testing.T) {
	items := testItems()
	got := Apply(items, FilterSpec{}, RelationSets{})
	assert.Equal(t, items, got)
}

func TestApplyQuerySubstring(t *testing.T) {
	items := testItems()

	// Case-insensitive substring over title.
	got := Apply(items, FilterSpec{Query: "STATS"}, RelationSets{})
	require.Len(t, got, 2)
	assert.Equal(t, "Salud-0", got[0].ID)
	// Summary matches too.
	assert.Equal(t, "Humanidades-0", got[1].ID)

	// Author match.
	got = Apply(items, FilterSpec{Query: "garcía"}, RelationSets{})
	require.Len(t, got, 1)
	assert.Equal(t, "Salud-1", got[0].ID)

	// Subject tag match.
	got = Apply(items, FilterSpec{Query: "biolog"}, RelationSets{})
	require.Len(t, got, 1)

	got = Apply(items, FilterSpec{Query: "no such thing"}, RelationSets{})
	assert.Empty(t, got)
}

func TestApplyConjunction(t *testing.T) {
	items := testItems()

	// All predicates must pass together.
	got := Apply(items, FilterSpec{Query: "stats", Area: "Salud", Subject: "Math", Status: domain.StatusAvailable}, RelationSets{})
	require.Len(t, got, 1)
	assert.Equal(t, "Salud-0", got[0].ID)

	// Same query but wrong area: empty.
	got = Apply(items, FilterSpec{Query: "stats", Area: "Humanidades", Subject: "Math"}, RelationSets{})
	assert.Empty(t, got)
}

func TestApplyStatusOverlay(t *testing.T) {
	items := testItems()

	// Without holds, two items are available.
	got := Apply(items, FilterSpec{Status: domain.StatusAvailable}, RelationSets{})
	require.Len(t, got, 2)

	// An active hold on Salud-0 overlays it to loaned at query time.
	holds := map[string]bool{"Salud-0": true}
	got = Apply(items, FilterSpec{Status: domain.StatusAvailable}, RelationSets{ActiveHolds: holds})
	require.Len(t, got, 1)
	assert.Equal(t, "Humanidades-0", got[0].ID)

	got = Apply(items, FilterSpec{Status: domain.StatusLoaned}, RelationSets{ActiveHolds: holds})
	require.Len(t, got, 2)
}

func TestApplyViewSelector(t *testing.T) {
	items := testItems()
	rels := RelationSets{
		Favorites: map[string]bool{"Salud-1": true},
		Reserved:  map[string]bool{"Humanidades-0": true},
	}

	got := Apply(items, FilterSpec{View: ViewFavorites}, rels)
	require.Len(t, got, 1)
	assert.Equal(t, "Salud-1", got[0].ID)

	got = Apply(items, FilterSpec{View: ViewReserved}, rels)
	require.Len(t, got, 1)
	assert.Equal(t, "Humanidades-0", got[0].ID)

	got = Apply(items, FilterSpec{View: ViewAll}, rels)
	assert.Len(t, got, 3)

	// The view selector is applied on top of the other predicates.
	got = Apply(items, FilterSpec{Area: "Salud", View: ViewReserved}, rels)
	assert.Empty(t, got)
}

func TestApplyDeterministicAndStable(t *testing.T) {
	items := testItems()
	spec := FilterSpec{Query: "a", Status: domain.StatusAvailable}
	rels := RelationSets{ActiveHolds: map[string]bool{}}

	first := Apply(items, spec, rels)
	second := Apply(items, spec, rels)
	assert.Equal(t, first, second, "identical inputs yield identical results")

	// Relative input order is preserved.
	for i := 1; i < len(first); i++ {
		prev, cur := indexOf(items, first[i-1].ID), indexOf(items, first[i].ID)
		assert.Less(t, prev, cur)
	}

	// The input slice is never mutated.
	assert.Equal(t, testItems(), items)
}

func indexOf(items []domain.CatalogItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func TestEffectiveStatus(t *testing.T) {
	available := &domain.CatalogItem{ID: "x", Status: domain.StatusAvailable}
	loaned := &domain.CatalogItem{ID: "y", Status: domain.StatusLoaned}

	assert.Equal(t, domain.StatusAvailable, EffectiveStatus(available, nil))
	assert.Equal(t, domain.StatusLoaned, EffectiveStatus(available, map[string]bool{"x": true}))
	// Import-time loaned stays loaned regardless of holds.
	assert.Equal(t, domain.StatusLoaned, EffectiveStatus(loaned, nil))
}
