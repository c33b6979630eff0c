package forecast

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrInvalidInput = errors.New("invalid forecast input")

// Probabilities below epsilon are rounding noise.
const epsilon = 1e-12

func binomial(n, k int) *big.Int {
	if k < 0 || k > n {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// SelectProbability is the probability that exactly count of selects cards
// drawn without replacement from objects cards land on the subjects marked
// ones. Counting is exact; only the final ratio is converted to float.
func SelectProbability(count, selects, subjects, objects int) (float64, error) {
	switch {
	case count < 0 || selects < 0 || subjects < 0 || objects < 0:
		return 0, fmt.Errorf("%w: negative argument", ErrInvalidInput)
	case count > selects:
		return 0, fmt.Errorf("%w: count %d exceeds selects %d", ErrInvalidInput, count, selects)
	case objects < subjects:
		return 0, fmt.Errorf("%w: objects %d fewer than subjects %d", ErrInvalidInput, objects, subjects)
	case objects < selects:
		return 0, fmt.Errorf("%w: objects %d fewer than selects %d", ErrInvalidInput, objects, selects)
	}
	if count > subjects || selects-count > objects-subjects {
		return 0, nil
	}
	ways := new(big.Int).Mul(binomial(subjects, count), binomial(objects-subjects, selects-count))
	p, _ := new(big.Rat).SetFrac(ways, binomial(objects, selects)).Float64()
	return p, nil
}

// ExplodingDistribution is the distribution of marked cards consumed while
// filling explodes slots from objects cards, subjects of them marked, where
// every marked card drawn is set aside and forces one more draw.
func ExplodingDistribution(explodes, subjects, objects int) (Distribution[int], error) {
	switch {
	case explodes < 0 || subjects < 0 || objects < 0:
		return nil, fmt.Errorf("%w: negative argument", ErrInvalidInput)
	case objects < subjects:
		return nil, fmt.Errorf("%w: objects %d fewer than subjects %d", ErrInvalidInput, objects, subjects)
	}
	return explode(explodes, subjects, objects, make(map[[3]int]Distribution[int]))
}

func explode(explodes, subjects, objects int, memo map[[3]int]Distribution[int]) (Distribution[int], error) {
	if explodes == 0 || subjects == 0 {
		return Distribution[int]{0: 1}, nil
	}
	if objects == subjects {
		return Distribution[int]{subjects: 1}, nil
	}
	key := [3]int{explodes, subjects, objects}
	if d, ok := memo[key]; ok {
		return d, nil
	}

	// Split on how many marked cards show up among the first draws, then
	// each of those has to be replaced from what is left.
	draws := min(explodes, objects)
	result := make(Distribution[int])
	for marked := max(0, draws-(objects-subjects)); marked <= min(draws, subjects); marked++ {
		p, err := SelectProbability(marked, draws, subjects, objects)
		if err != nil {
			return nil, err
		}
		if p == 0 {
			continue
		}
		child, err := explode(marked, subjects-marked, objects-draws, memo)
		if err != nil {
			return nil, err
		}
		for e, q := range child {
			result[marked+e] += p * q
		}
	}
	memo[key] = result
	return result, nil
}

// DrawDistribution is the distribution of disaster cards surfacing in one
// shop refill of shop rooms from a deck of deck cards, marked of them
// disasters. Dealing stops once the shop holds shop rooms. A single
// disaster stands; more than one keeps the first, reshuffles the rest with
// the dealt rooms and redeals a full shop.
func DrawDistribution(marked, deck, shop int) (Distribution[int], error) {
	switch {
	case marked < 0 || deck < 0 || shop < 0:
		return nil, fmt.Errorf("%w: negative argument", ErrInvalidInput)
	case deck < marked:
		return nil, fmt.Errorf("%w: deck %d smaller than %d disasters", ErrInvalidInput, deck, marked)
	}
	if marked == 0 || shop == 0 {
		return Distribution[int]{0: 1}, nil
	}
	if deck <= shop {
		// The whole deck is dealt and nothing is left to redeal from.
		return Distribution[int]{marked: 1}, nil
	}

	none, err := SelectProbability(0, shop, marked, deck)
	if err != nil {
		return nil, err
	}
	one, err := SelectProbability(1, shop, marked, deck)
	if err != nil {
		return nil, err
	}
	// One disaster stands only if the card completing the shop is a room.
	one *= float64(deck-shop-(marked-1)) / float64(deck-shop)
	redeal := max(0, 1-none-one)

	result := Distribution[int]{}
	if none > 0 {
		result[0] = none
	}
	if one > 0 {
		result[1] += one
	}
	if redeal > epsilon {
		redealt, err := ExplodingDistribution(shop, marked-1, deck-1)
		if err != nil {
			return nil, err
		}
		for e, q := range redealt {
			result[1+e] += redeal * q
		}
	}
	return result, nil
}
