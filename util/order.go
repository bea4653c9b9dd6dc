package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Entry is a single (key, value) pair of a map.
type Entry[K constraints.Ordered, V any] struct {
	Key   K
	Value V
}

// OrderedKeys returns the keys of the map in ascending order.
func OrderedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// OrderedEntries returns the entries of the map ordered by key.
func OrderedEntries[K constraints.Ordered, V any](m map[K]V) []Entry[K, V] {
	result := make([]Entry[K, V], 0, len(m))
	for _, k := range OrderedKeys(m) {
		result = append(result, Entry[K, V]{Key: k, Value: m[k]})
	}
	return result
}
