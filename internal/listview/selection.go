package listview

import (
	"maps"
	"slices"
)

// Selection is the set of checked row keys.
type Selection struct {
	keys map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{keys: make(map[string]struct{})}
}

func (s *Selection) ensure() {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
}

// Toggle flips one key without touching the others.
func (s *Selection) Toggle(key string) {
	s.ensure()
	if _, ok := s.keys[key]; ok {
		delete(s.keys, key)
		return
	}
	s.keys[key] = struct{}{}
}

// Has reports whether key is selected.
func (s *Selection) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of selected keys.
func (s *Selection) Len() int { return len(s.keys) }

// Keys returns the selected keys in sorted order.
func (s *Selection) Keys() []string {
	return slices.Sorted(maps.Keys(s.keys))
}

// Clear empties the selection.
func (s *Selection) Clear() {
	clear(s.keys)
}

// AllSelected reports whether visible is non-empty and every row is selected.
func AllSelected[E Entity](s *Selection, visible []E) bool {
	if len(visible) == 0 {
		return false
	}
	for _, row := range visible {
		if !s.Has(row.Key()) {
			return false
		}
	}
	return true
}

// ToggleAll applies the "select all" checkbox to the visible rows: when they
// are all selected the selection is cleared, otherwise it becomes exactly the
// visible set.
func ToggleAll[E Entity](s *Selection, visible []E) {
	s.ensure()
	if AllSelected(s, visible) {
		s.Clear()
		return
	}
	s.Clear()
	for _, row := range visible {
		s.keys[row.Key()] = struct{}{}
	}
}

// Prune drops keys that are no longer present in the fetched collection.
func Prune[E Entity](s *Selection, collection []E) {
	if len(s.keys) == 0 {
		return
	}
	present := make(map[string]struct{}, len(collection))
	for _, row := range collection {
		present[row.Key()] = struct{}{}
	}
	for key := range s.keys {
		if _, ok := present[key]; !ok {
			delete(s.keys, key)
		}
	}
}
