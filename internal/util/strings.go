package util

import (
	"cmp"
	"slices"
)

// SortedKeys returns the keys of m in ascending order.
// Returns nil for an empty or nil map.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	if len(m) == 0 {
		return nil
	}
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
