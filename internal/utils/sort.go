package utils

import (
	"cmp"
	"sort"
)

// SortedKeys returns a map's keys in ascending order so exports and
// printouts iterate deterministically.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
