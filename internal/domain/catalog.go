package domain

import "fmt"

// ItemStatus is the import-time availability of a catalog item.
// It is static per load cycle; reservations are tracked separately and
// overlaid at query time.
type ItemStatus string

// Catalog item statuses.
const (
	StatusAvailable ItemStatus = "available"
	StatusLoaned    ItemStatus = "loaned"
)

// CatalogItem is a normalized book/resource record derived from one source row.
//
// IDs are formed from (area, row index) and are unique only within one load
// cycle: a re-import regenerates them from scratch, so they must never be
// persisted as stable references across reloads.
type CatalogItem struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Author   string     `json:"author"`
	Area     string     `json:"area"`
	Subjects []string   `json:"subjects"`
	Summary  string     `json:"summary"`
	Status   ItemStatus `json:"status"`
}

// CatalogItemID builds the per-load-cycle item identifier from its area and
// source row index.
func CatalogItemID(area string, row int) string {
	return fmt.Sprintf("%s-%d", area, row)
}

// HasSubject reports whether the item carries the given subject tag.
// Comparison is exact; callers normalize beforehand if needed.
func (i *CatalogItem) HasSubject(subject string) bool {
	for _, s := range i.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
