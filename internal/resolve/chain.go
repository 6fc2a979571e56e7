// Package resolve merges metadata from competing sources into course and
// lesson fields, recording which source supplied each value.
//
// Every field has a fixed precedence chain. Sources are consulted in order
// and the first one that yields a value wins; later sources are not
// consulted once a field is set.
package resolve

import (
	"github.com/vmunix/eduscan/internal/catalog"
)

// Candidate is one source in a precedence chain.
type Candidate[T any] struct {
	Kind    catalog.SourceKind
	Attempt func() (T, bool)
}

// Chain is an ordered list of candidates, highest precedence first.
type Chain[T any] []Candidate[T]

// Attempt records one consulted source and what it offered.
type Attempt struct {
	Kind    catalog.SourceKind
	Value   any // nil when the source had nothing
	Present bool
}

// Resolution is the record of resolving one field.
type Resolution struct {
	Field    catalog.Field
	Attempts []Attempt
	Winner   int // index into Attempts, -1 when no source supplied a value
}

// Source returns the winning source, or SourceNone.
func (r Resolution) Source() catalog.SourceKind {
	if r.Winner < 0 || r.Winner >= len(r.Attempts) {
		return catalog.SourceNone
	}
	return r.Attempts[r.Winner].Kind
}

// Resolved reports whether any source supplied a value.
func (r Resolution) Resolved() bool {
	return r.Winner >= 0
}

// Resolve consults candidates in order and stops at the first value.
func (c Chain[T]) Resolve(field catalog.Field) (T, Resolution) {
	res := Resolution{Field: field, Winner: -1}
	var zero T
	for _, cand := range c {
		v, ok := cand.Attempt()
		if !ok {
			res.Attempts = append(res.Attempts, Attempt{Kind: cand.Kind})
			continue
		}
		res.Attempts = append(res.Attempts, Attempt{Kind: cand.Kind, Value: v, Present: true})
		res.Winner = len(res.Attempts) - 1
		return v, res
	}
	return zero, res
}

// ptr adapts an optional pointer to an attempt function.
func ptr[T any](p *T) func() (T, bool) {
	return func() (T, bool) {
		if p == nil {
			var zero T
			return zero, false
		}
		return *p, true
	}
}
