// Package pathmap provides access into nested string-keyed maps using
// dot-delimited paths like "abilities.str.score".
package pathmap

import "strings"

// Get walks root along the dot-delimited path and returns the value at the
// final segment. The boolean is false when any intermediate segment is
// missing or not a map.
func Get(root map[string]any, path string) (any, bool) {
	var current any = root
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set assigns value at the dot-delimited path, creating intermediate maps as
// needed. An intermediate segment holding anything other than a map
// (including a slice) is replaced with a fresh map, discarding the previous
// value. Mutates root in place.
func Set(root map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := root
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
