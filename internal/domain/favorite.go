package domain

import "slices"

// FavoriteSet is one user's favorited catalog item IDs, in toggle order.
type FavoriteSet struct {
	UserEmail string   `json:"user_email"`
	ItemIDs   []string `json:"item_ids"`
}

// Toggle flips membership of an item ID and reports the new membership.
// Two toggles in a row restore the original state.
func (f *FavoriteSet) Toggle(itemID string) bool {
	for i, id := range f.ItemIDs {
		if id == itemID {
			f.ItemIDs = append(f.ItemIDs[:i], f.ItemIDs[i+1:]...)
			return false
		}
	}
	f.ItemIDs = append(f.ItemIDs, itemID)
	return true
}

// Contains reports whether the item is favorited.
func (f *FavoriteSet) Contains(itemID string) bool {
	return slices.Contains(f.ItemIDs, itemID)
}

// IDSet returns membership as a lookup map for the filter engine.
func (f *FavoriteSet) IDSet() map[string]bool {
	set := make(map[string]bool, len(f.ItemIDs))
	for _, id := range f.ItemIDs {
		set[id] = true
	}
	return set
}
