package utils

import (
	"golang.org/x/exp/rand"
)

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Remove deletes the first occurrence of item, reporting whether it was found.
func Remove[T comparable](slice []T, item T) ([]T, bool) {
	i := FindIndex(slice, item)
	if i < 0 {
		return slice, false
	}
	return append(slice[:i], slice[i+1:]...), true
}

func Shuffle[T any](rng *rand.Rand, slice []T) {
	rng.Shuffle(len(slice), func(i, j int) {
		slice[i], slice[j] = slice[j], slice[i]
	})
}

// Sample returns n distinct elements chosen uniformly, leaving slice untouched.
func Sample[T any](rng *rand.Rand, slice []T, n int) []T {
	n = min(n, len(slice))
	picked := make([]T, 0, n)
	for _, i := range rng.Perm(len(slice))[:n] {
		picked = append(picked, slice[i])
	}
	return picked
}
