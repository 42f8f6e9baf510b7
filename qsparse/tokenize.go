package qsparse

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// pairs holds parsed key paths and their leaf values in input order.
// A nil path marks an entry dropped by the key parser.
type pairs struct {
	paths  [][]string
	values []any
}

func (p *pairs) add(path []string, value any) {
	p.paths = append(p.paths, path)
	p.values = append(p.values, value)
}

func (p *pairs) extend(q pairs) {
	p.paths = append(p.paths, q.paths...)
	p.values = append(p.values, q.values...)
}

// tokenize splits raw text into decoded pairs and parses every key.
func tokenize(s string, o *Options) (pairs, error) {
	var out pairs
	if o.IgnoreQueryPrefix {
		s = strings.TrimPrefix(s, "?")
	}
	if s == "" {
		return out, nil
	}

	parts := splitParts(s, o)
	if o.ParameterLimit > 0 && len(parts) > o.ParameterLimit {
		o.Logger.Debug("qsparse.parameters.truncated",
			"limit", o.ParameterLimit,
			"count", len(parts))
		parts = parts[:o.ParameterLimit]
	}

	for _, part := range parts {
		k, v, hasEq := splitPair(part)

		key, err := o.decode(k)
		if err != nil {
			return pairs{}, fmt.Errorf("decode key error: %w", err)
		}
		var value any
		switch {
		case hasEq:
			dv, err := o.decode(v)
			if err != nil {
				return pairs{}, fmt.Errorf("decode value error: %w", err)
			}
			value = dv
		case o.StrictNullHandling:
			value = nil
		default:
			value = ""
		}
		out.add(parseKey(key, o), value)
	}
	return out, nil
}

// splitParts splits s on the configured delimiter. Empty parts are preserved;
// they decode to an empty key which the key parser drops.
func splitParts(s string, o *Options) []string {
	if o.DelimiterPattern != nil {
		return o.DelimiterPattern.Split(s, -1)
	}
	return strings.Split(s, o.Delimiter)
}

// splitPair splits a raw pair into key and value. A "]=" sequence is preferred
// so that keys such as "a[=]" keep their literal '='; otherwise the first '='
// is used. Returns key, value, and a boolean indicating if a separator existed.
func splitPair(s string) (string, string, bool) {
	i := strings.Index(s, "]=")
	if i >= 0 {
		i++
	} else {
		i = strings.IndexByte(s, '=')
	}
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

// decode runs one half through the configured decoder.
func (o *Options) decode(raw string) (string, error) {
	def := o.defaultDecoder()
	if o.Decoder != nil {
		return o.Decoder(raw, def)
	}
	return def(raw)
}

func (o *Options) defaultDecoder() DecodeFunc {
	if o.StrictDecode {
		return strictDecode
	}
	return func(s string) (string, error) { return lenientDecode(s), nil }
}

// strictDecode applies application/x-www-form-urlencoded rules and fails on
// malformed escapes.
func strictDecode(s string) (string, error) {
	d, err := url.QueryUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPercent, err)
	}
	return d, nil
}

// lenientDecode performs application/x-www-form-urlencoded decoding without failing on malformed escapes.
// '+' -> space; valid %XX hex are decoded; invalid '%' sequences are kept literally.
func lenientDecode(s string) string {
	if d, err := url.QueryUnescape(s); err == nil {
		return d
	}
	var out []byte
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch c {
		case '+':
			out = append(out, ' ')
		case '%':
			if i+2 < len(b) && isHex(b[i+1]) && isHex(b[i+2]) {
				v, _ := strconv.ParseUint(string(b[i+1:i+3]), 16, 8)
				out = append(out, byte(v))
				i += 2
			} else {
				// keep literal '%'; following bytes are appended normally
				out = append(out, '%')
			}
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
