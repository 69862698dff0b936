package target

import (
	"fmt"
	"strings"
)

// Store is an append-only, insertion-ordered collection of records.
type Store struct {
	records []*Record
	byKey   map[string]*Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byKey: make(map[string]*Record)}
}

func key(kind Kind, name string) string {
	return fmt.Sprintf("%d\x00%s", kind, strings.ToLower(name))
}

// Append adds a record and returns it. Names are unique per kind,
// case-insensitively; a clash panics because it means two translators
// claimed the same identity.
func (s *Store) Append(kind Kind, name string, fields ...Field) *Record {
	k := key(kind, name)
	if _, exists := s.byKey[k]; exists {
		panic(fmt.Sprintf("target: duplicate %s record %q", kind, name))
	}

	r := &Record{
		Kind:   kind,
		Name:   name,
		Fields: fields,
		index:  len(s.records),
	}
	s.records = append(s.records, r)
	s.byKey[k] = r

	return r
}

// Find looks a record up by kind and case-insensitive name.
func (s *Store) Find(kind Kind, name string) (*Record, bool) {
	r, ok := s.byKey[key(kind, name)]
	return r, ok
}

// ByKind returns the records of one kind in insertion order.
func (s *Store) ByKind(kind Kind) []*Record {
	var out []*Record

	for _, r := range s.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}

	return out
}

// All returns every record in insertion order.
func (s *Store) All() []*Record {
	return s.records
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}
