package qsparse

// compact turns decoder-built containers into map[string]any and []any,
// closing the holes left by non-contiguous indices. Caller-owned values are
// returned unchanged.
func compact(v any) any {
	switch t := v.(type) {
	case object:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = compact(e)
		}
		return out
	case *sequence:
		out := make([]any, 0, len(t.items))
		for _, i := range t.indices() {
			out = append(out, compact(t.items[i]))
		}
		return out
	default:
		return v
	}
}
