package qsparse

import "slices"

// object is a mapping built by the decoder. Plain map[string]any values are
// caller-owned and are copied into an object before being written to.
type object map[string]any

// sequence is an ordered sequence built by the decoder. It may have holes
// until it is compacted.
type sequence struct {
	items  map[int]any
	length int
}

func newSequence() *sequence {
	return &sequence{items: make(map[int]any)}
}

func (s *sequence) set(i int, v any) {
	s.items[i] = v
	if i >= s.length {
		s.length = i + 1
	}
}

func (s *sequence) push(v any) {
	s.set(s.length, v)
}

// concat appends v, splicing in its elements when v is itself a sequence.
// Holes are carried over.
func (s *sequence) concat(v any) {
	switch t := v.(type) {
	case *sequence:
		base := s.length
		for _, i := range t.indices() {
			s.set(base+i, t.items[i])
		}
		s.length = base + t.length
	case []any:
		for _, e := range t {
			s.push(e)
		}
	default:
		s.push(v)
	}
}

// indices returns the occupied positions in ascending order.
func (s *sequence) indices() []int {
	out := make([]int, 0, len(s.items))
	for i := range s.items {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// buildEntry builds the standalone fragment for one key path, innermost
// segment first: ["a", "[0]", "[b]"] with leaf "x" gives {a: [{b: "x"}]}.
func buildEntry(path []string, leaf any, o *Options) any {
	cur := leaf
	for i := len(path) - 1; i >= 0; i-- {
		seg := path[i]
		if seg == appendMarker {
			s := newSequence()
			s.concat(cur)
			cur = s
			continue
		}
		if o.ParseArrays {
			if n, ok := arrayIndex(seg, o); ok {
				s := newSequence()
				s.set(n, cur)
				cur = s
				continue
			}
		}
		key, _ := unbracket(seg)
		cur = object{key: cur}
	}
	return cur
}
