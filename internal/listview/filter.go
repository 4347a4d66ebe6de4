package listview

import (
	"slices"
	"strings"
)

// SearchConfig is a free-text term plus the fields it is matched against.
type SearchConfig struct {
	Term          string   `json:"term"`
	ActiveFilters []string `json:"activeFilters"`
}

// Active reports whether the config filters anything.
func (c SearchConfig) Active() bool {
	return strings.TrimSpace(c.Term) != ""
}

// Has reports whether field is among the active filters.
func (c SearchConfig) Has(field string) bool {
	return slices.Contains(c.ActiveFilters, field)
}

// Clone returns a copy that does not share the filter slice.
func (c SearchConfig) Clone() SearchConfig {
	c.ActiveFilters = slices.Clone(c.ActiveFilters)
	return c
}

// NormalizeSearch drops filters the schema does not declare searchable and
// removes duplicates, keeping schema order.
func NormalizeSearch[E Entity](s *Schema[E], c SearchConfig) SearchConfig {
	out := SearchConfig{Term: c.Term}
	for _, key := range s.Searchable() {
		if c.Has(key) {
			out.ActiveFilters = append(out.ActiveFilters, key)
		}
	}
	return out
}

// Filter returns the rows matching c. A row matches when any active field,
// case-folded and trimmed, contains the case-folded trimmed term. Null and
// blank values never match. The input slice is not modified.
func Filter[E Entity](s *Schema[E], rows []E, c SearchConfig) []E {
	term := fold(c.Term)
	if term == "" {
		return slices.Clone(rows)
	}
	var fields []Field[E]
	for _, key := range c.ActiveFilters {
		if f, ok := s.Field(key); ok && f.Searchable {
			fields = append(fields, f)
		}
	}
	out := make([]E, 0, len(rows))
	for _, row := range rows {
		if matches(fields, row, term) {
			out = append(out, row)
		}
	}
	return out
}

func matches[E any](fields []Field[E], row E, term string) bool {
	for _, f := range fields {
		v := f.Get(row)
		if v.IsNull() {
			continue
		}
		hay := fold(v.String())
		if hay == "" {
			continue
		}
		if strings.Contains(hay, term) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
