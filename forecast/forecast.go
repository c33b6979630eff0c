package forecast

import (
	"fmt"

	"disastle/connector"
	"disastle/disaster"

	"github.com/rs/zerolog/log"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/exp/slices"
)

// State is the part of a game the forecast depends on.
type State struct {
	// Disasters and Catastrophes are the counts dealt into the game.
	Disasters    int `json:"disasters"`
	Catastrophes int `json:"catastrophes"`
	// Resolved names every disaster or catastrophe already drawn.
	Resolved []string `json:"resolved"`
	// Deck is the number of cards left to draw, disasters included.
	Deck int `json:"deck"`
	Shop int `json:"shop"`
}

// WithResolved returns a copy of the state with more names drawn.
func (s State) WithResolved(names ...string) State {
	s.Resolved = append(slices.Clone(s.Resolved), names...)
	return s
}

// Damages holds one distribution per connector and one for the total.
type Damages struct {
	Diamond Distribution[float64]
	Cross   Distribution[float64]
	Moon    Distribution[float64]
	Total   Distribution[float64]
}

// Forecaster evaluates upcoming refills against a fixed disaster catalog.
// It holds no mutable state and is safe for concurrent use.
type Forecaster struct {
	catalog *disaster.Catalog
}

func New(catalog *disaster.Catalog) *Forecaster {
	return &Forecaster{catalog: catalog}
}

type group struct {
	left  int
	cards []disaster.Disaster
}

// unseen splits what is left in the deck into the two pools.
func (f *Forecaster) unseen(s State) (group, group, error) {
	seen := mapset.New[string]()
	var resolvedDisasters, resolvedCatastrophes int
	for _, name := range s.Resolved {
		d, ok := f.catalog.Get(name)
		if !ok {
			return group{}, group{}, fmt.Errorf("%w: %w %q", ErrInvalidInput, disaster.ErrUnknownDisaster, name)
		}
		if seen.Has(name) {
			continue
		}
		seen.Put(name)
		if d.Kind == disaster.KindCatastrophe {
			resolvedCatastrophes++
		} else {
			resolvedDisasters++
		}
	}

	dis := group{left: s.Disasters - resolvedDisasters}
	cat := group{left: s.Catastrophes - resolvedCatastrophes}
	if dis.left < 0 || cat.left < 0 {
		return group{}, group{}, fmt.Errorf("%w: more resolved than dealt", ErrInvalidInput)
	}
	for _, d := range f.catalog.Disasters() {
		if !seen.Has(d.Name) {
			dis.cards = append(dis.cards, d)
		}
	}
	for _, d := range f.catalog.Catastrophes() {
		if !seen.Has(d.Name) {
			cat.cards = append(cat.cards, d)
		}
	}
	return dis, cat, nil
}

// DrawDistribution is the distribution of disaster and catastrophe cards
// surfacing in the next refill.
func (f *Forecaster) DrawDistribution(s State) (Distribution[int], error) {
	dis, cat, err := f.unseen(s)
	if err != nil {
		return nil, err
	}
	return DrawDistribution(dis.left+cat.left, s.Deck, s.Shop)
}

// DamageDistribution folds the draw distribution with every unseen card's
// damage against the given link totals. When n cards surface together they
// hit back to back before any rebuilding, weighted by n(n+1)/2.
func (f *Forecaster) DamageDistribution(s State, totals connector.Totals, reduction int) (Damages, error) {
	dis, cat, err := f.unseen(s)
	if err != nil {
		return Damages{}, err
	}
	draws, err := DrawDistribution(dis.left+cat.left, s.Deck, s.Shop)
	if err != nil {
		return Damages{}, err
	}

	x := len(s.Resolved)
	left := float64(dis.left + cat.left)
	diamond, cross, moon, total := map[float64]float64{}, map[float64]float64{}, map[float64]float64{}, map[float64]float64{}
	for _, n := range draws.Keys() {
		p := draws[n]
		if n == 0 {
			diamond[0] += p
			cross[0] += p
			moon[0] += p
			total[0] += p
			continue
		}
		multiplier := float64(n*(n+1)) / 2
		for _, g := range []group{dis, cat} {
			if g.left == 0 || len(g.cards) == 0 {
				continue
			}
			w := p * float64(g.left) / left / float64(len(g.cards))
			for _, d := range g.cards {
				dmg := d.Damage(x, totals, reduction, multiplier)
				diamond[dmg.Diamond] += w
				cross[dmg.Cross] += w
				moon[dmg.Moon] += w
				total[dmg.Total] += w
			}
		}
	}

	var out Damages
	for _, pair := range []struct {
		dst *Distribution[float64]
		pop map[float64]float64
	}{{&out.Diamond, diamond}, {&out.Cross, cross}, {&out.Moon, moon}, {&out.Total, total}} {
		if *pair.dst, err = ToDistribution(pair.pop); err != nil {
			return Damages{}, fmt.Errorf("%w: no unseen cards left to draw", err)
		}
	}
	log.Debug().Int("resolved", x).Int("deck", s.Deck).Int("outcomes", len(out.Total)).Msg("damage distribution")
	return out, nil
}

// ExpectedDamage reduces DamageDistribution to its expected values.
func (f *Forecaster) ExpectedDamage(s State, totals connector.Totals, reduction int) (disaster.Damage, error) {
	d, err := f.DamageDistribution(s, totals, reduction)
	if err != nil {
		return disaster.Damage{}, err
	}
	return disaster.Damage{
		Diamond: d.Diamond.ExpectedValue(),
		Cross:   d.Cross.ExpectedValue(),
		Moon:    d.Moon.ExpectedValue(),
		Total:   d.Total.ExpectedValue(),
	}, nil
}
