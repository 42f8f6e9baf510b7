package qsparse

import (
	"fmt"
	"strconv"
)

// merge folds source into target and returns the new target. Decoder-built
// containers are updated in place; caller-owned maps and slices are copied
// first.
//
//   - scalar into sequence: appended
//   - scalar into mapping: stored as key with value true
//   - scalar into scalar: both collected into a sequence
//   - container into scalar: scalar prepended to the container
//   - sequence into sequence: merged position by position
//   - mapping into sequence: the sequence becomes a mapping first
//   - anything into mapping: merged key by key
func merge(target, source any) any {
	if source == nil {
		return target
	}
	if target == nil {
		return source
	}

	if !isContainer(source) {
		switch {
		case isSequence(target):
			s := asSequence(target)
			s.push(source)
			return s
		case isMapping(target):
			m := asObject(target)
			m[scalarKey(source)] = true
			return m
		default:
			s := newSequence()
			s.push(target)
			s.push(source)
			return s
		}
	}

	if !isContainer(target) {
		s := newSequence()
		s.push(target)
		s.concat(source)
		return s
	}

	if isSequence(target) && isSequence(source) {
		dst := asSequence(target)
		eachIndex(source, func(i int, v any) {
			if cur, ok := dst.items[i]; ok {
				dst.items[i] = merge(cur, v)
			} else {
				dst.set(i, v)
			}
		})
		return dst
	}

	dst := asObject(target)
	eachKey(source, func(k string, v any) {
		if cur, ok := dst[k]; ok {
			dst[k] = merge(cur, v)
		} else {
			dst[k] = v
		}
	})
	return dst
}

func isSequence(v any) bool {
	switch v.(type) {
	case *sequence, []any:
		return true
	}
	return false
}

func isMapping(v any) bool {
	switch v.(type) {
	case object, map[string]any:
		return true
	}
	return false
}

func isContainer(v any) bool {
	return isSequence(v) || isMapping(v)
}

// asSequence returns v as a writable sequence.
func asSequence(v any) *sequence {
	if s, ok := v.(*sequence); ok {
		return s
	}
	s := newSequence()
	s.concat(v)
	return s
}

// asObject returns v as a writable mapping. Sequences turn into mappings
// keyed by their decimal positions.
func asObject(v any) object {
	if m, ok := v.(object); ok {
		return m
	}
	m := make(object)
	eachKey(v, func(k string, e any) { m[k] = e })
	return m
}

func eachIndex(v any, fn func(int, any)) {
	switch t := v.(type) {
	case *sequence:
		for _, i := range t.indices() {
			fn(i, t.items[i])
		}
	case []any:
		for i, e := range t {
			fn(i, e)
		}
	}
}

func eachKey(v any, fn func(string, any)) {
	switch t := v.(type) {
	case object:
		for k, e := range t {
			fn(k, e)
		}
	case map[string]any:
		for k, e := range t {
			fn(k, e)
		}
	default:
		eachIndex(v, func(i int, e any) { fn(strconv.Itoa(i), e) })
	}
}

func scalarKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
