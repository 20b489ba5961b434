package wiretree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiretree/wiretree"
)

func TestWireEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"scalars", "x", "x", true},
		{"scalar mismatch", "x", "y", false},
		{"nil both", nil, nil, true},
		{"nil one side", nil, "x", false},
		{
			"mappings ignore key order",
			map[string]any{"a": 1, "b": []any{"x"}},
			map[string]any{"b": []any{"x"}, "a": 1},
			true,
		},
		{
			"missing key",
			map[string]any{"a": 1},
			map[string]any{"b": 1},
			false,
		},
		{
			"slices are ordered",
			[]any{1, 2},
			[]any{2, 1},
			false,
		},
		{
			"nested trees",
			map[string]any{"a": map[string]any{"b": []any{1, "x", nil}}},
			map[string]any{"a": map[string]any{"b": []any{1, "x", nil}}},
			true,
		},
		{
			"mapping vs scalar",
			map[string]any{"a": 1},
			"a",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wiretree.WireEqual(tt.a, tt.b))
		})
	}
}

func TestDeepCopyWire(t *testing.T) {
	r := require.New(t)

	src := map[string]any{
		"a": nil,
		"b": int64(123),
		"c": map[string]any{"a": "b"},
		"d": []any{int64(1), int64(2)},
		"e": "estr",
		"f": true,
	}
	deepCopy := wiretree.DeepCopyWire(src)
	r.Equal(src, deepCopy)

	// mutating the copy must not show through
	deepCopy.(map[string]any)["c"].(map[string]any)["a"] = "mutated"
	r.Equal("b", src["c"].(map[string]any)["a"])
}

func TestCanonicalWireHash_StableAcrossKeyOrder(t *testing.T) {
	r := require.New(t)

	h1, err := wiretree.CanonicalWireHash(map[string]any{"a": 1, "b": 2})
	r.NoError(err)
	h2, err := wiretree.CanonicalWireHash(map[string]any{"b": 2, "a": 1})
	r.NoError(err)
	r.Equal(h1, h2)

	h3, err := wiretree.CanonicalWireHash(map[string]any{"a": 1, "b": 3})
	r.NoError(err)
	r.NotEqual(h1, h3)
}

func TestGet(t *testing.T) {
	r := require.New(t)
	wire := map[string]any{"name": "Ann", "age": 3.0}

	name, ok := wiretree.Get[string](wire, "name")
	r.True(ok)
	r.Equal("Ann", name)

	_, ok = wiretree.Get[string](wire, "missing")
	r.False(ok)

	// present but wrong type
	_, ok = wiretree.Get[int](wire, "age")
	r.False(ok)
}
