package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRemove(t *testing.T) {
	t.Run("removing the first occurrence", func(t *testing.T) {
		got, ok := Remove([]int{1, 2, 3, 2}, 2)
		require.True(t, ok)
		require.Equal(t, []int{1, 3, 2}, got)
	})

	t.Run("missing items leave the slice alone", func(t *testing.T) {
		got, ok := Remove([]string{"a"}, "b")
		require.False(t, ok)
		require.Equal(t, []string{"a"}, got)
	})
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := []int{1, 2, 3, 4, 5, 6}

	t.Run("picking distinct elements", func(t *testing.T) {
		got := Sample(rng, items, 4)
		require.Len(t, got, 4)
		seen := map[int]bool{}
		for _, v := range got {
			require.Contains(t, items, v)
			require.False(t, seen[v])
			seen[v] = true
		}
	})

	t.Run("asking for too many returns everything", func(t *testing.T) {
		got := Sample(rng, items, 10)
		require.ElementsMatch(t, items, got)
	})

	t.Run("same seed gives the same shuffle", func(t *testing.T) {
		a := []int{1, 2, 3, 4, 5, 6, 7, 8}
		b := []int{1, 2, 3, 4, 5, 6, 7, 8}
		Shuffle(rand.New(rand.NewSource(42)), a)
		Shuffle(rand.New(rand.NewSource(42)), b)
		require.Equal(t, a, b)
		require.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, a)
	})
}
