package deck

import (
	"errors"
	"fmt"
	"strconv"

	"disastle/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

var (
	ErrInvalidDeck = errors.New("invalid deck")
	ErrEmpty       = errors.New("deck and discard pile are empty")
)

// Card is either a room or a disaster; exactly one field is set.
type Card struct {
	Room     int    `json:"room,omitempty"`
	Disaster string `json:"disaster,omitempty"`
}

func RoomCard(id int) Card          { return Card{Room: id} }
func DisasterCard(name string) Card { return Card{Disaster: name} }

func (c Card) IsDisaster() bool {
	return c.Disaster != ""
}

func (c Card) String() string {
	if c.IsDisaster() {
		return c.Disaster
	}
	return strconv.Itoa(c.Room)
}

// Setup controls how a fresh deck is dealt.
type Setup struct {
	Disasters    int
	Catastrophes int
	// Safe rooms sit on top so the opening shop holds no disasters.
	Safe int
	Shop int
}

// Deck is the shared draw pile and discard pile. Cards are drawn from the
// front of the pile.
type Deck struct {
	rng     *rand.Rand
	cards   []Card
	discard []Card
}

// New shuffles the rooms, sets the safe ones aside, mixes a sample of the
// disaster and catastrophe pools into the rest and puts the safe rooms on top.
func New(rng *rand.Rand, rooms []int, disasters, catastrophes []string, setup Setup) (*Deck, error) {
	switch {
	case setup.Safe < setup.Shop:
		return nil, fmt.Errorf("%w: %d safe rooms cannot cover a shop of %d", ErrInvalidDeck, setup.Safe, setup.Shop)
	case setup.Safe > len(rooms):
		return nil, fmt.Errorf("%w: %d safe rooms from %d", ErrInvalidDeck, setup.Safe, len(rooms))
	case setup.Disasters < 0 || setup.Disasters > len(disasters):
		return nil, fmt.Errorf("%w: %d disasters from a pool of %d", ErrInvalidDeck, setup.Disasters, len(disasters))
	case setup.Catastrophes < 0 || setup.Catastrophes > len(catastrophes):
		return nil, fmt.Errorf("%w: %d catastrophes from a pool of %d", ErrInvalidDeck, setup.Catastrophes, len(catastrophes))
	}

	shuffled := slices.Clone(rooms)
	utils.Shuffle(rng, shuffled)

	safe := make([]Card, 0, setup.Safe)
	for _, id := range shuffled[:setup.Safe] {
		safe = append(safe, RoomCard(id))
	}
	var rest []Card
	for _, id := range shuffled[setup.Safe:] {
		rest = append(rest, RoomCard(id))
	}
	for _, name := range utils.Sample(rng, disasters, setup.Disasters) {
		rest = append(rest, DisasterCard(name))
	}
	for _, name := range utils.Sample(rng, catastrophes, setup.Catastrophes) {
		rest = append(rest, DisasterCard(name))
	}
	utils.Shuffle(rng, rest)

	return &Deck{rng: rng, cards: append(safe, rest...)}, nil
}

// FromState rebuilds a deck from its serialized piles.
func FromState(rng *rand.Rand, s State) *Deck {
	return &Deck{rng: rng, cards: slices.Clone(s.Cards), discard: slices.Clone(s.Discard)}
}

type State struct {
	Cards   []Card `json:"cards"`
	Discard []Card `json:"discard"`
}

func (d *Deck) State() State {
	return State{Cards: slices.Clone(d.cards), Discard: slices.Clone(d.discard)}
}

// Len is the number of cards left in the draw pile.
func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}

func (d *Deck) Discarded() []Card {
	return slices.Clone(d.discard)
}

// Disasters counts the disaster cards still in the draw pile.
func (d *Deck) Disasters() int {
	n := 0
	for _, c := range d.cards {
		if c.IsDisaster() {
			n++
		}
	}
	return n
}

// Discard puts rooms on the discard pile.
func (d *Deck) Discard(rooms ...int) {
	for _, id := range rooms {
		d.discard = append(d.discard, RoomCard(id))
	}
}

// draw takes the top card, or a random discarded one when the pile is out.
func (d *Deck) draw() (Card, error) {
	if len(d.cards) > 0 {
		c := d.cards[0]
		d.cards = d.cards[1:]
		return c, nil
	}
	if len(d.discard) == 0 {
		return Card{}, ErrEmpty
	}
	i := d.rng.Intn(len(d.discard))
	c := d.discard[i]
	d.discard = append(d.discard[:i], d.discard[i+1:]...)
	return c, nil
}

// deal draws until the shop holds size rooms or nothing is left, setting
// disasters aside.
func (d *Deck) deal(size int, shop []int, surfaced []string) ([]int, []string) {
	for len(shop) < size {
		c, err := d.draw()
		if err != nil {
			break
		}
		if c.IsDisaster() {
			surfaced = append(surfaced, c.Disaster)
		} else {
			shop = append(shop, c.Room)
		}
	}
	return shop, surfaced
}

// Refill deals a new shop. When more than one disaster surfaces, the first
// stands and everything else dealt is shuffled back before a full redeal;
// disasters surfacing in the redeal all stand.
func (d *Deck) Refill(size int) (shop []int, surfaced []string) {
	shop, surfaced = d.deal(size, nil, nil)
	if len(surfaced) <= 1 {
		return shop, surfaced
	}

	log.Debug().Int("surfaced", len(surfaced)).Msg("redealing shop")
	for _, id := range shop {
		d.cards = append(d.cards, RoomCard(id))
	}
	for _, name := range surfaced[1:] {
		d.cards = append(d.cards, DisasterCard(name))
	}
	utils.Shuffle(d.rng, d.cards)
	return d.deal(size, nil, []string{surfaced[0]})
}

// Copy returns a deck sharing the random source but not the piles.
func (d *Deck) Copy() *Deck {
	return &Deck{rng: d.rng, cards: slices.Clone(d.cards), discard: slices.Clone(d.discard)}
}

