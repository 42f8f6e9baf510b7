package qsparse

import (
	"regexp"
	"strconv"
)

// appendMarker is the segment meaning "next free position".
const appendMarker = "[]"

var (
	dotSegment   = regexp.MustCompile(`\.([^.\[]+)`)
	bracketGroup = regexp.MustCompile(`\[[^\[\]]*\]`)
)

// reservedNames are the properties every standard mapping inherits from the
// shared base object. Keys using them are rejected unless allowed.
var reservedNames = map[string]struct{}{
	"__proto__":            {},
	"__defineGetter__":     {},
	"__defineSetter__":     {},
	"__lookupGetter__":     {},
	"__lookupSetter__":     {},
	"constructor":          {},
	"hasOwnProperty":       {},
	"isPrototypeOf":        {},
	"propertyIsEnumerable": {},
	"toLocaleString":       {},
	"toString":             {},
	"valueOf":              {},
}

// parseKey splits a decoded key like "a[b][c]" into ["a", "[b]", "[c]"].
// Bracket segments keep their brackets; "[]" stays as the append marker.
// After o.Depth groups the unparsed rest is kept as one segment wrapped in an
// extra pair of brackets: "a[b][c]" with depth 1 gives ["a", "[b]", "[[c]]"].
// A nil result means the key was empty or rejected by the pollution guard.
func parseKey(key string, o *Options) []string {
	if key == "" {
		return nil
	}
	if o.AllowDots {
		key = dotSegment.ReplaceAllString(key, "[${1}]")
	}

	groups := bracketGroup.FindAllStringIndex(key, -1)
	parent := key
	if len(groups) > 0 {
		parent = key[:groups[0][0]]
	}

	var path []string
	if parent != "" {
		if o.guarded(parent) {
			o.Logger.Debug("qsparse.key.dropped", "key", key, "name", parent)
			return nil
		}
		path = append(path, parent)
	}

	for i, g := range groups {
		if i >= o.Depth {
			path = append(path, "["+key[g[0]:]+"]")
			break
		}
		seg := key[g[0]:g[1]]
		if name := seg[1 : len(seg)-1]; o.guarded(name) {
			o.Logger.Debug("qsparse.key.dropped", "key", key, "name", name)
			return nil
		}
		path = append(path, seg)
	}
	return path
}

// unbracket strips one layer of surrounding brackets.
func unbracket(seg string) (string, bool) {
	if len(seg) >= 2 && seg[0] == '[' && seg[len(seg)-1] == ']' {
		return seg[1 : len(seg)-1], true
	}
	return seg, false
}

// arrayIndex reports the position a bracketed segment addresses. Only a
// canonical decimal ("[3]", not "[03]", "[+3]" or "[ 3]") within ArrayLimit
// counts; everything else is a mapping key.
func arrayIndex(seg string, o *Options) (int, bool) {
	inner, ok := unbracket(seg)
	if !ok || inner == "" {
		return 0, false
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n < 0 || strconv.Itoa(n) != inner {
		return 0, false
	}
	if n > o.ArrayLimit {
		return 0, false
	}
	return n, true
}
