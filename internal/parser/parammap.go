package parser

import (
	"sort"
	"strings"

	"github.com/layoutforge/abi/internal/resolver"
)

// ParamMap is the caller-supplied mapping from dynamic parameter paths to
// runtime values (spec.md §6 item 4), the first and highest-priority level
// of the parser's four-level field-reference fallback (spec.md §4.5 item
// 3). Keys are normalized through resolver.Normalize on insert and lookup
// so that aliasing forms ("a.b", "a::b", "a/b", "a[b]") all address the
// same entry, and a lookup for a shorter suffix ("count") still finds an
// entry stored under a longer, owner-prefixed path ("data.count") when no
// exact match exists.
type ParamMap struct {
	values map[string]uint64
}

// NewParamMap returns an empty ParamMap.
func NewParamMap() *ParamMap {
	return &ParamMap{values: make(map[string]uint64)}
}

// Set records path -> value, normalizing path first.
func (m *ParamMap) Set(path string, value uint64) {
	m.values[resolver.Normalize(path)] = value
}

// Lookup resolves path against the map: first by exact normalized match,
// then by suffix match against every stored key (ties broken by picking
// the lexicographically smallest matching key, so lookup stays
// deterministic regardless of Go's randomized map iteration order).
func (m *ParamMap) Lookup(path string) (uint64, bool) {
	norm := resolver.Normalize(path)
	if v, ok := m.values[norm]; ok {
		return v, true
	}

	var candidates []string
	for k := range m.values {
		if strings.HasSuffix(k, "."+norm) || strings.HasSuffix(norm, "."+k) {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	sort.Strings(candidates)
	return m.values[candidates[0]], true
}
