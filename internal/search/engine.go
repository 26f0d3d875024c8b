// Package search filters and orders list views by field-match relevance.
//
// Relevance is not a score. Each record gets a vector of booleans, one per
// searchable field, and records are ordered by that vector with a stable sort,
// so records that tie keep the order of the base collection.
package search

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Results is a finite ordered sequence that can be iterated any number of times.
type Results[T any] struct {
	items []T
}

// All yields the results in rank order.
func (r Results[T]) All() iter.Seq[T] {
	return slices.Values(r.items)
}

func (r Results[T]) Len() int {
	return len(r.items)
}

// Items returns a copy of the ordered results.
func (r Results[T]) Items() []T {
	return slices.Clone(r.items)
}

type scored[T any] struct {
	item  T
	match []bool
}

// Rank filters items by q and orders them by relevance. items must already be
// in the entity's default order. An absent query returns items unchanged.
func Rank[T any](items []T, q Query, d Descriptor[T]) Results[T] {
	if q.IsEmpty() {
		return Results[T]{items: slices.Clone(items)}
	}

	// A Caser is stateful, so each call folds with its own instance.
	folder := cases.Fold()
	needle := folder.String(q.String())

	seen := make(map[uint64]struct{}, len(items))
	matches := make([]scored[T], 0, len(items))
	for _, item := range items {
		vec, hit := matchVector(folder, needle, item, d.Fields)
		if !hit {
			continue
		}
		if d.Key != nil {
			key := d.Key(item)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		matches = append(matches, scored[T]{item: item, match: vec})
	}

	switch d.Strategy {
	case RankByFirstMatch:
		slices.SortStableFunc(matches, func(a, b scored[T]) int {
			return firstMatch(a.match) - firstMatch(b.match)
		})
	default:
		slices.SortStableFunc(matches, func(a, b scored[T]) int {
			return compareVectors(a.match, b.match)
		})
	}

	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return Results[T]{items: out}
}

// matchesQuery reports whether any field of item contains q. An absent query
// matches everything.
func matchesQuery[T any](item T, q Query, d Descriptor[T]) bool {
	if q.IsEmpty() {
		return true
	}
	folder := cases.Fold()
	_, hit := matchVector(folder, folder.String(q.String()), item, d.Fields)
	return hit
}

func matchVector[T any](folder cases.Caser, needle string, item T, fields []Field[T]) ([]bool, bool) {
	vec := make([]bool, len(fields))
	hit := false
	for i, f := range fields {
		for _, v := range f.Values(item) {
			if strings.Contains(folder.String(v), needle) {
				vec[i] = true
				hit = true
				break
			}
		}
	}
	return vec, hit
}

// compareVectors orders true before false, component by component.
func compareVectors(a, b []bool) int {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if a[i] {
			return -1
		}
		return 1
	}
	return 0
}

func firstMatch(vec []bool) int {
	for i, ok := range vec {
		if ok {
			return i
		}
	}
	return len(vec)
}
