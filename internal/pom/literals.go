package pom

import "sort"

// LiteralVersionSet collects group:artifact:version coordinates of dependencies
// pinned to hard-coded versions. The zero value is ready to use.
type LiteralVersionSet struct {
	coordinates map[string]struct{}
}

// NewLiteralVersionSet constructs an empty set.
func NewLiteralVersionSet() *LiteralVersionSet {
	return &LiteralVersionSet{coordinates: make(map[string]struct{})}
}

// Add records coordinates; duplicates are ignored.
func (set *LiteralVersionSet) Add(coordinates string) {
	if set.coordinates == nil {
		set.coordinates = make(map[string]struct{})
	}
	set.coordinates[coordinates] = struct{}{}
}

// Len returns the number of distinct coordinates.
func (set *LiteralVersionSet) Len() int {
	if set == nil {
		return 0
	}
	return len(set.coordinates)
}

// Sorted returns every recorded coordinate in lexical order.
func (set *LiteralVersionSet) Sorted() []string {
	if set == nil {
		return []string{}
	}
	sorted := make([]string, 0, len(set.coordinates))
	for coordinates := range set.coordinates {
		sorted = append(sorted, coordinates)
	}
	sort.Strings(sorted)
	return sorted
}
