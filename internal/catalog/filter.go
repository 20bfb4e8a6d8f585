package catalog

import (
	"strings"

	"github.com/campushub/campus-server/internal/domain"
)

// ViewSelector restricts results to a relation-backed subset.
type ViewSelector string

// View selectors.
const (
	ViewAll       ViewSelector = "all"
	ViewFavorites ViewSelector = "favorites"
	ViewReserved  ViewSelector = "reserved"
)

// FilterSpec is a compound predicate over the catalog. Every active field
// must pass (conjunction); empty fields are inactive.
type FilterSpec struct {
	Query   string            // Case-insensitive substring over title/author/area/subjects/summary
	Area    string            // Exact area match, case-insensitive
	Subject string            // Item must carry this subject tag, case-insensitive
	Status  domain.ItemStatus // Effective status after overlaying active holds
	View    ViewSelector      // Applied last against the caller's relation sets
}

// RelationSets carries the ID sets the filter consults.
type RelationSets struct {
	// Favorites and Reserved are the calling user's relations, backing the
	// view selector.
	Favorites map[string]bool
	Reserved  map[string]bool
	// ActiveHolds are items actively reserved by anyone; they overlay the
	// static import status at query time.
	ActiveHolds map[string]bool
}

// Apply returns the ordered sublist of items satisfying every active
// predicate. It is a pure function of its inputs: identical inputs yield
// identical output order and membership, and the input order is preserved
// (stable filter, no re-sorting).
func Apply(items []domain.CatalogItem, spec FilterSpec, rels RelationSets) []domain.CatalogItem {
	query := strings.ToLower(strings.TrimSpace(spec.Query))

	result := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if !matchesQuery(&item, query) {
			continue
		}
		if spec.Area != "" && !strings.EqualFold(item.Area, spec.Area) {
			continue
		}
		if spec.Subject != "" && !hasSubjectFold(&item, spec.Subject) {
			continue
		}
		if spec.Status != "" && EffectiveStatus(&item, rels.ActiveHolds) != spec.Status {
			continue
		}
		if !matchesView(item.ID, spec.View, rels) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// EffectiveStatus overlays active reservation holds onto the static import
// status: an actively held item reads as loaned regardless of the import.
func EffectiveStatus(item *domain.CatalogItem, activeHolds map[string]bool) domain.ItemStatus {
	if item.Status == domain.StatusLoaned {
		return domain.StatusLoaned
	}
	if activeHolds[item.ID] {
		return domain.StatusLoaned
	}
	return domain.StatusAvailable
}

// matchesQuery is a case-insensitive "substring contains" over every text
// field. Not tokenized, not fuzzy.
func matchesQuery(item *domain.CatalogItem, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Author), query) ||
		strings.Contains(strings.ToLower(item.Area), query) ||
		strings.Contains(strings.ToLower(item.Summary), query) {
		return true
	}
	for _, s := range item.Subjects {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

func hasSubjectFold(item *domain.CatalogItem, subject string) bool {
	for _, s := range item.Subjects {
		if strings.EqualFold(s, subject) {
			return true
		}
	}
	return false
}

func matchesView(itemID string, view ViewSelector, rels RelationSets) bool {
	switch view {
	case ViewFavorites:
		return rels.Favorites[itemID]
	case ViewReserved:
		return rels.Reserved[itemID]
	default:
		return true
	}
}
