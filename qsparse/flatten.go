package qsparse

import (
	"maps"
	"net/url"
	"reflect"
	"slices"
)

// flatten produces the same pairs tokenize would, from an already structured
// map. Keys are visited in sorted order and still go through the key parser.
// With ParseObjectsRecursively nested maps are descended into; a map that was
// already visited in this call is kept as a leaf, which stops cycles.
func flatten(m map[string]any, o *Options) pairs {
	var out pairs
	visited := map[uintptr]struct{}{identity(m): {}}
	flattenInto(&out, m, nil, visited, o)
	return out
}

func flattenInto(out *pairs, m map[string]any, prefix []string, visited map[uintptr]struct{}, o *Options) {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		parsed := parseKey(key, o)
		if parsed == nil {
			continue
		}
		path := append(slices.Clone(prefix), parsed...)

		val := m[key]
		if nested, ok := val.(map[string]any); ok && o.ParseObjectsRecursively {
			id := identity(nested)
			if _, seen := visited[id]; !seen {
				visited[id] = struct{}{}
				flattenInto(out, nested, path, visited, o)
				continue
			}
		}
		out.add(path, val)
	}
}

// flattenValues turns every value of every key into its own pair, so
// url.Values{"a": {"1", "2"}} decodes like "a=1&a=2".
func flattenValues(v url.Values, o *Options) pairs {
	var out pairs
	for _, key := range slices.Sorted(maps.Keys(v)) {
		for _, val := range v[key] {
			out.add(parseKey(key, o), val)
		}
	}
	return out
}

func identity(m map[string]any) uintptr {
	return reflect.ValueOf(m).Pointer()
}
