package qsparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsFromEnvDefaults(t *testing.T) {
	o, err := OptionsFromEnv()
	require.NoError(t, err)
	require.Equal(t, DefaultDelimiter, o.Delimiter)
	require.Equal(t, DefaultDepth, o.Depth)
	require.Equal(t, DefaultArrayLimit, o.ArrayLimit)
	require.Equal(t, DefaultParameterLimit, o.ParameterLimit)
	require.True(t, o.ParseArrays)
	require.Nil(t, o.DelimiterPattern)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("QS_DEPTH", "1")
	t.Setenv("QS_ALLOW_DOTS", "true")
	t.Setenv("QS_DELIMITER_PATTERN", "[;,]")

	o, err := OptionsFromEnv()
	require.NoError(t, err)
	require.Equal(t, 1, o.Depth)
	require.True(t, o.AllowDots)

	got, err := Parse("a.b.c=d;e=f", WithOptions(o))
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"a": map[string]any{"b": map[string]any{"[c]": "d"}},
		"e": "f",
	}, got)
}

func TestOptionsFromEnvInvalid(t *testing.T) {
	t.Run("pattern", func(t *testing.T) {
		t.Setenv("QS_DELIMITER_PATTERN", "[")
		_, err := OptionsFromEnv()
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})
	t.Run("negative_depth", func(t *testing.T) {
		t.Setenv("QS_DEPTH", "-2")
		_, err := OptionsFromEnv()
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})
	t.Run("not_a_number", func(t *testing.T) {
		t.Setenv("QS_ARRAY_LIMIT", "many")
		_, err := OptionsFromEnv()
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}
