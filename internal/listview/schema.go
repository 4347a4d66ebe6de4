package listview

import (
	"fmt"
	"strings"
)

// Entity is a record with a stable identifier.
type Entity interface {
	Key() string
}

// Field describes one named column of an entity. Get is the only place a
// field is read, so missing nested data is handled once here.
type Field[E any] struct {
	Key        string
	Label      string
	Get        func(E) Value
	Searchable bool
	Sortable   bool
	Editable   bool
	// Kind is the value kind Get produces; edit forms parse input into it.
	Kind Kind
	// Rules is a validator tag checked against edited input, e.g. "required,email".
	Rules string
	// Wire is the JSON name sent on create and update. Empty uses Key.
	Wire string
	// Width is the preferred column width in cells.
	Width int
}

// Schema is the accessor table for an entity type.
type Schema[E Entity] struct {
	fields []Field[E]
	index  map[string]int
}

// NewSchema builds a schema, rejecting duplicate keys and missing accessors.
func NewSchema[E Entity](fields ...Field[E]) (*Schema[E], error) {
	s := &Schema[E]{
		fields: make([]Field[E], 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		key := strings.TrimSpace(f.Key)
		if key == "" {
			return nil, fmt.Errorf("field key is empty")
		}
		if f.Get == nil {
			return nil, fmt.Errorf("field %q has no accessor", key)
		}
		if _, dup := s.index[key]; dup {
			return nil, fmt.Errorf("duplicate field %q", key)
		}
		f.Key = key
		if f.Label == "" {
			f.Label = key
		}
		if f.Wire == "" {
			f.Wire = key
		}
		s.index[key] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is NewSchema for package-level declarations.
func MustSchema[E Entity](fields ...Field[E]) *Schema[E] {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the declared fields in order.
func (s *Schema[E]) Fields() []Field[E] {
	out := make([]Field[E], len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by key.
func (s *Schema[E]) Field(key string) (Field[E], bool) {
	i, ok := s.index[key]
	if !ok {
		return Field[E]{}, false
	}
	return s.fields[i], true
}

// Searchable returns the keys of fields that can be used as search filters.
func (s *Schema[E]) Searchable() []string {
	var keys []string
	for _, f := range s.fields {
		if f.Searchable {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// IsSearchable reports whether key names a searchable field.
func (s *Schema[E]) IsSearchable(key string) bool {
	f, ok := s.Field(key)
	return ok && f.Searchable
}

// Editable returns the fields shown on edit and create forms.
func (s *Schema[E]) Editable() []Field[E] {
	var out []Field[E]
	for _, f := range s.fields {
		if f.Editable {
			out = append(out, f)
		}
	}
	return out
}

// Value reads a field from a record. Unknown keys yield Null.
func (s *Schema[E]) Value(e E, key string) Value {
	f, ok := s.Field(key)
	if !ok {
		return Null()
	}
	return f.Get(e)
}
