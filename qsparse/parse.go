// Package qsparse decodes bracket and dot annotated query strings such as
// "a[b][c]=1&d[]=2" or "a.b.c=1" into nested map[string]any / []any trees.
//
// Leaf values are strings (or nil with strict null handling); containers are
// map[string]any and []any without holes.
package qsparse

import "net/url"

// Parse decodes a raw query string.
func Parse(query string, opts ...Option) (map[string]any, error) {
	return Decode(query, opts...)
}

// ParseValues decodes an already structured map whose keys may still carry
// bracket or dot notation.
func ParseValues(values map[string]any, opts ...Option) (map[string]any, error) {
	return Decode(values, opts...)
}

// Decode decodes input, which may be a string, a []byte, a map[string]any or
// url.Values. Empty input and any other type yield an empty map. The only
// errors are invalid options and, in strict decode mode, malformed escapes.
func Decode(input any, opts ...Option) (map[string]any, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	kv, err := o.collect(input)
	if err != nil {
		return nil, err
	}
	return o.assemble(kv), nil
}

// collect picks the tokenizer or the flattener for input.
func (o *Options) collect(input any) (pairs, error) {
	switch in := input.(type) {
	case string:
		return tokenize(in, o)
	case []byte:
		return tokenize(string(in), o)
	case map[string]any:
		return flatten(in, o), nil
	case url.Values:
		return flattenValues(in, o), nil
	default:
		return pairs{}, nil
	}
}

// assemble normalizes indices across all pairs, then builds and merges one
// entry per surviving pair.
func (o *Options) assemble(kv pairs) map[string]any {
	normalizeIndices(kv.paths, o)

	var root any = make(object)
	for i, path := range kv.paths {
		if path == nil {
			continue
		}
		root = merge(root, buildEntry(path, kv.values[i], o))
	}
	return compact(root).(map[string]any)
}
