package listview

import "slices"

// Direction is the ordering applied to the sort column.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "none"
	}
}

// SortConfig names the sort column and its direction. The zero value means
// natural (API) order; Key is empty exactly when Direction is Unsorted.
type SortConfig struct {
	Key       string
	Direction Direction
}

// Active reports whether a sort is applied.
func (c SortConfig) Active() bool {
	return c.Key != "" && c.Direction != Unsorted
}

// DirectionFor returns the direction shown on the header of column key.
func (c SortConfig) DirectionFor(key string) Direction {
	if c.Key != key {
		return Unsorted
	}
	return c.Direction
}

// Cycle returns the config after a click on the header of column key.
// Repeated clicks go none → ascending → descending → ascending; clicking a
// different column starts it at ascending and forgets the previous column.
func (c SortConfig) Cycle(key string) SortConfig {
	if key == "" {
		return SortConfig{}
	}
	if c.Key != key {
		return SortConfig{Key: key, Direction: Ascending}
	}
	switch c.Direction {
	case Ascending:
		return SortConfig{Key: key, Direction: Descending}
	default:
		return SortConfig{Key: key, Direction: Ascending}
	}
}

// Sort returns a stably sorted copy of rows. Unknown or unsortable keys leave
// the order untouched.
func Sort[E Entity](s *Schema[E], rows []E, c SortConfig) []E {
	out := slices.Clone(rows)
	if !c.Active() {
		return out
	}
	f, ok := s.Field(c.Key)
	if !ok || !f.Sortable {
		return out
	}
	sign := 1
	if c.Direction == Descending {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b E) int {
		return sign * Compare(f.Get(a), f.Get(b))
	})
	return out
}
