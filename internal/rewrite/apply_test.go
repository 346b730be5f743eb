package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/resew-dev/resew/internal/model"
)

func TestApply(t *testing.T) {
	t.Run("empty batch returns buffer unchanged", func(t *testing.T) {
		out, n, err := Apply("hello", nil)
		require.NoError(t, err)

		assert.Equal(t, "hello", out)
		assert.Equal(t, 0, n)
	})

	t.Run("single replacement", func(t *testing.T) {
		out, n, err := Apply("a cat sat", []m.Replacement{
			{Start: 2, End: 5, NewText: "dog"},
		})
		require.NoError(t, err)

		assert.Equal(t, "a dog sat", out)
		assert.Equal(t, 1, n)
	})

	t.Run("insertion at a point", func(t *testing.T) {
		out, _, err := Apply("ac", []m.Replacement{
			{Start: 1, End: 1, NewText: "b"},
		})
		require.NoError(t, err)

		assert.Equal(t, "abc", out)
	})

	t.Run("multiple replacements preserve earlier offsets", func(t *testing.T) {
		// Both refer to offsets in the original buffer even though the first
		// edit grows the text.
		out, n, err := Apply("x y z", []m.Replacement{
			{Start: 0, End: 1, NewText: "alpha"},
			{Start: 4, End: 5, NewText: "omega"},
		})
		require.NoError(t, err)

		assert.Equal(t, "alpha y omega", out)
		assert.Equal(t, 2, n)
	})

	t.Run("unsorted input handled", func(t *testing.T) {
		out, _, err := Apply("x y z", []m.Replacement{
			{Start: 4, End: 5, NewText: "omega"},
			{Start: 0, End: 1, NewText: "alpha"},
		})
		require.NoError(t, err)

		assert.Equal(t, "alpha y omega", out)
	})

	t.Run("adjacent ranges are not overlapping", func(t *testing.T) {
		out, _, err := Apply("abcd", []m.Replacement{
			{Start: 0, End: 2, NewText: "1"},
			{Start: 2, End: 4, NewText: "2"},
		})
		require.NoError(t, err)

		assert.Equal(t, "12", out)
	})

	t.Run("overlap rejects whole batch", func(t *testing.T) {
		out, n, err := Apply("abcdef", []m.Replacement{
			{Start: 0, End: 3, NewText: "x"},
			{Start: 2, End: 4, NewText: "y"},
		})
		require.ErrorIs(t, err, ErrOverlap)

		assert.Equal(t, "abcdef", out, "buffer must be untouched on overlap")
		assert.Equal(t, 0, n)
	})

	t.Run("out of bounds rejected", func(t *testing.T) {
		_, _, err := Apply("ab", []m.Replacement{{Start: 1, End: 5, NewText: "x"}})
		require.Error(t, err)

		_, _, err = Apply("ab", []m.Replacement{{Start: -1, End: 1, NewText: "x"}})
		require.Error(t, err)

		_, _, err = Apply("ab", []m.Replacement{{Start: 2, End: 1, NewText: "x"}})
		require.Error(t, err)
	})

	t.Run("deletion", func(t *testing.T) {
		out, _, err := Apply("hello world", []m.Replacement{
			{Start: 5, End: 11, NewText: ""},
		})
		require.NoError(t, err)

		assert.Equal(t, "hello", out)
	})

	t.Run("input slice not mutated", func(t *testing.T) {
		replacements := []m.Replacement{
			{Start: 4, End: 5, NewText: "b"},
			{Start: 0, End: 1, NewText: "a"},
		}

		_, _, err := Apply("x y z", replacements)
		require.NoError(t, err)

		assert.Equal(t, 4, replacements[0].Start, "caller's slice order must be preserved")
	})
}
