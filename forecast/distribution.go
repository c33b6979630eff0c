package forecast

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Distribution maps outcomes to probabilities.
type Distribution[K Number] map[K]float64

// ToDistribution normalizes a weighted population so its weights sum to 1.
func ToDistribution[K Number](population map[K]float64) (Distribution[K], error) {
	total := 0.0
	for _, w := range population {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %v", ErrInvalidInput, w)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: population has no weight", ErrInvalidInput)
	}
	d := make(Distribution[K], len(population))
	for k, w := range population {
		if w > 0 {
			d[k] = w / total
		}
	}
	return d, nil
}

func (d Distribution[K]) Sum() float64 {
	total := 0.0
	for _, p := range d {
		total += p
	}
	return total
}

// Keys returns the outcomes in ascending order.
func (d Distribution[K]) Keys() []K {
	keys := make([]K, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (d Distribution[K]) ExpectedValue() float64 {
	total := 0.0
	for k, p := range d {
		total += float64(k) * p
	}
	return total
}
