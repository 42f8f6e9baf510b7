package qsparse

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseValues(t *testing.T) {
	got, err := ParseValues(map[string]any{
		"a[b]":        "c",
		"d.e":         "f",
		"g[]":         "h",
		"constructor": "x",
	}, WithAllowDots(true))
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"a": map[string]any{"b": "c"},
		"d": map[string]any{"e": "f"},
		"g": []any{"h"},
	}, got)
}

func TestParseValuesNestedMaps(t *testing.T) {
	in := map[string]any{"a": map[string]any{"b[c]": "d"}}

	flat, err := ParseValues(in)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": map[string]any{"b[c]": "d"}}, flat)

	deep, err := ParseValues(in, WithParseObjectsRecursively(true))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": "d"}}}, deep)
}

func TestParseValuesRecursiveAppend(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{"x[]": "1"},
		"b": map[string]any{"y": map[string]any{"[]": "2"}},
	}
	got, err := ParseValues(in, WithParseObjectsRecursively(true))
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"a": map[string]any{"x": []any{"1"}},
		"b": map[string]any{"y": []any{"2"}},
	}, got)
}

func TestParseValuesCycle(t *testing.T) {
	self := map[string]any{"x": "1"}
	self["self"] = self
	inner := map[string]any{"v": "2"}
	self["inner"] = inner
	inner["back"] = inner

	got, err := ParseValues(self, WithParseObjectsRecursively(true))
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "1", got["x"])
	require.Equal(t, reflect.ValueOf(self).Pointer(), reflect.ValueOf(got["self"]).Pointer())

	nested, ok := got["inner"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "2", nested["v"])
	require.Equal(t, reflect.ValueOf(inner).Pointer(), reflect.ValueOf(nested["back"]).Pointer())
}

func TestFlattenSortedKeys(t *testing.T) {
	kv := flatten(map[string]any{"b": "2", "a": "1", "c[]": "3"}, testOptions(t))
	require.Equal(t, [][]string{{"a"}, {"b"}, {"c", "[]"}}, kv.paths)
	require.Equal(t, []any{"1", "2", "3"}, kv.values)
}

func TestFlattenDoesNotMutateInput(t *testing.T) {
	in := map[string]any{"a": map[string]any{"b": "c"}, "a[d]": "e"}
	got, err := ParseValues(in)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": map[string]any{"b": "c", "d": "e"}}, got)
	require.Equal(t, map[string]any{"b": "c"}, in["a"])
}
