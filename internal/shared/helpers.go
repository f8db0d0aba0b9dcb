// Package shared provides common utility functions used across multiple
// packages in the buildstage codebase.
package shared

import (
	"sort"
	"strings"
)

// NormalizeDependencyName lowercases a package name and trims
// surrounding whitespace. Catalog lookups and option patterns use the
// normalized form so that declarations are case-insensitive.
func NormalizeDependencyName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// SortedKeys returns the keys of a string-keyed map in sorted order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
