package qsparse

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitPair(t *testing.T) {
	cases := []struct {
		in       string
		key, val string
		hasEq    bool
	}{
		{"a=b", "a", "b", true},
		{"a=b=c", "a", "b=c", true},
		{"a[=]=b", "a[=]", "b", true},
		{"a]=b=c", "a]", "b=c", true},
		{"flag", "flag", "", false},
		{"=v", "", "v", true},
		{"", "", "", false},
	}
	for _, c := range cases {
		k, v, ok := splitPair(c.in)
		require.Equal(t, c.key, k, c.in)
		require.Equal(t, c.val, v, c.in)
		require.Equal(t, c.hasEq, ok, c.in)
	}
}

func TestLenientDecode(t *testing.T) {
	cases := map[string]string{
		"a+b":       "a b",
		"%41%42":    "AB",
		"100%":      "100%",
		"%zz%41":    "%zzA",
		"%4":        "%4",
		"%E4%BD%A0": "你",
	}
	for in, want := range cases {
		require.Equal(t, want, lenientDecode(in), in)
	}
}

func TestTokenizeDelimiters(t *testing.T) {
	cases := []struct {
		name string
		in   string
		opts []Option
		want map[string]any
	}{
		{"semicolon", "a=b;c=d", []Option{WithDelimiter(";")}, map[string]any{"a": "b", "c": "d"}},
		{"default_keeps_semicolon", "a=b;c=d", nil, map[string]any{"a": "b;c=d"}},
		{"pattern", "a=b;c=d&e=f", []Option{WithDelimiterPattern(regexp.MustCompile(`[;&]`))}, map[string]any{"a": "b", "c": "d", "e": "f"}},
		{"empty_falls_back", "a=b&c=d", []Option{WithDelimiter("")}, map[string]any{"a": "b", "c": "d"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(c.in, c.opts...)
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestTokenizeParameterLimit(t *testing.T) {
	got, err := Parse("a=1&b=2&c=3", WithParameterLimit(2))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": "1", "b": "2"}, got)

	got, err = Parse("a=1&b=2&c=3", WithParameterLimit(0))
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestTokenizeKeepsOrder(t *testing.T) {
	o := testOptions(t)
	kv, err := tokenize("b=2&a[x]=1&c", o)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"b"}, {"a", "[x]"}, {"c"}}, kv.paths)
	require.Equal(t, []any{"2", "1", ""}, kv.values)
}

func TestTokenizeDecodesEachHalfOnce(t *testing.T) {
	var calls []string
	count := func(raw string, def DecodeFunc) (string, error) {
		calls = append(calls, raw)
		return def(raw)
	}
	_, err := Parse("a%5Bb%5D=%2541&c", WithDecoder(count))
	require.NoError(t, err)
	require.Equal(t, []string{"a%5Bb%5D", "%2541", "c"}, calls)
}
