// Package listing implements the filtered, sorted, paginated query resolution
// shared by every list endpoint. The same Params drive both the in-memory
// resolver below and the SQL compilers in the postgres repositories.
package listing

import (
	"sort"
	"strings"
)

// Params is the caller-supplied page window.
//
// Filter is matched as a case-sensitive substring against each entity's
// designated searchable text fields; case sensitivity follows the underlying
// store's collation and is intentionally not normalized here. A filter that is
// empty after trimming means "no filter".
//
// Sort names one of a closed set of per-entity sort keys; an absent or
// unrecognized key falls back to the entity's default. Sorting is ascending
// only, with ID ascending as the deterministic tie-break.
//
// Take carries no upper bound here; bounding belongs to the boundary layer.
type Params struct {
	Filter string
	Sort   string
	Skip   int
	Take   int
}

// NormalizedFilter returns the effective filter text, or "" when filtering is
// disabled.
func (p Params) NormalizedFilter() string {
	return strings.TrimSpace(p.Filter)
}

// SortKeys is the closed sort-key enumeration of one entity: recognized key
// (lower-cased) -> store column name.
type SortKeys struct {
	columns    map[string]string
	defaultKey string
}

// NewSortKeys builds a key set. defaultKey must be present in columns.
func NewSortKeys(defaultKey string, columns map[string]string) SortKeys {
	if _, ok := columns[defaultKey]; !ok {
		panic("listing: default sort key not in column map")
	}
	return SortKeys{columns: columns, defaultKey: defaultKey}
}

// Resolve maps a caller-supplied sort key to its store column, falling back to
// the default for an absent or unrecognized key. Matching is case-insensitive.
func (s SortKeys) Resolve(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	if col, ok := s.columns[k]; ok {
		return col
	}
	return s.columns[s.defaultKey]
}

// Spec describes how to filter and sort one entity type in memory.
type Spec[T any] struct {
	// SearchText returns the searchable text fields of a record.
	SearchText func(T) []string
	// Less compares two records under the named resolved sort key.
	Less map[string]func(a, b T) bool
	// DefaultKey is used when the caller's key is absent or unrecognized.
	DefaultKey string
	// TieBreak orders records that compare equal under the sort key;
	// implementations use ID ascending.
	TieBreak func(a, b T) bool
}

// Resolve applies filter, sort, and page window to a snapshot of records and
// returns the page plus the pre-paging total count. A Skip beyond the end
// yields an empty page, not an error.
func Resolve[T any](items []T, spec Spec[T], p Params) ([]T, int) {
	filtered := items
	if f := p.NormalizedFilter(); f != "" {
		filtered = make([]T, 0, len(items))
		for _, it := range items {
			for _, text := range spec.SearchText(it) {
				if strings.Contains(text, f) {
					filtered = append(filtered, it)
					break
				}
			}
		}
	}

	total := len(filtered)

	less := spec.Less[strings.ToLower(strings.TrimSpace(p.Sort))]
	if less == nil {
		less = spec.Less[spec.DefaultKey]
	}
	sorted := make([]T, total)
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return spec.TieBreak(a, b)
	})

	return window(sorted, p.Skip, p.Take), total
}

func window[T any](items []T, skip, take int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return nil
	}
	rest := items[skip:]
	if take < 0 {
		take = 0
	}
	if take > len(rest) {
		take = len(rest)
	}
	return rest[:take]
}
