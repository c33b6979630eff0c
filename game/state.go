package game

import (
	"encoding/json"
	"fmt"

	"disastle/castle"
	"disastle/deck"
	"disastle/disaster"
	"disastle/room"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

type playerState struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Castle    castle.Layout `json:"castle"`
	Pending   []int         `json:"pending,omitempty"`
	Submitted bool          `json:"submitted,omitempty"`
}

// state is the serialized form of a game handed to the session store.
type state struct {
	ID           uuid.UUID     `json:"id"`
	ShopSize     int           `json:"shop_size"`
	SafeCards    int           `json:"safe_cards"`
	Disasters    int           `json:"disasters"`
	Catastrophes int           `json:"catastrophes"`
	Players      []playerState `json:"players"`
	TurnOrder    []string      `json:"turn_order"`
	TurnIndex    int           `json:"turn_index"`
	Round        int           `json:"round"`
	Shop         []int         `json:"shop"`
	Phase        Phase         `json:"phase"`
	Current      []string      `json:"current_disasters"`
	Resolved     []string      `json:"resolved_disasters"`
	Deck         deck.State    `json:"deck"`
}

func (g *Game) MarshalJSON() ([]byte, error) {
	s := state{
		ID:           g.id,
		ShopSize:     g.shopSize,
		SafeCards:    g.safeCards,
		Disasters:    g.numDisasters,
		Catastrophes: g.numCatastrophes,
		TurnOrder:    g.turnOrder,
		TurnIndex:    g.turnIndex,
		Round:        g.round,
		Shop:         g.shop,
		Phase:        g.phase,
		Current:      g.current,
		Resolved:     g.resolved,
		Deck:         g.deck.State(),
	}
	for _, id := range g.turnOrder {
		p := g.players[id]
		s.Players = append(s.Players, playerState{
			ID:        p.ID,
			Name:      p.Name,
			Castle:    p.Castle.Layout(),
			Pending:   p.pending,
			Submitted: p.submitted,
		})
	}
	return json.Marshal(s)
}

// Restore rebuilds a game from MarshalJSON output. Castles are validated
// against the room catalog and disasters against the disaster catalog.
func Restore(rng *rand.Rand, rooms *room.Catalog, disasters *disaster.Catalog, data []byte) (*Game, error) {
	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}

	g := defaults(rooms, disasters, rng)
	g.id = s.ID
	g.shopSize, g.safeCards = s.ShopSize, s.SafeCards
	g.numDisasters, g.numCatastrophes = s.Disasters, s.Catastrophes
	g.turnIndex, g.round, g.phase = s.TurnIndex, s.Round, s.Phase
	g.turnOrder = slices.Clone(s.TurnOrder)
	g.shop = slices.Clone(s.Shop)
	g.current = slices.Clone(s.Current)
	g.resolved = slices.Clone(s.Resolved)
	g.deck = deck.FromState(rng, s.Deck)

	for _, ps := range s.Players {
		c, err := castle.FromLayout(rooms, ps.Castle)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", ps.ID, err)
		}
		g.players[ps.ID] = &Player{ID: ps.ID, Name: ps.Name, Castle: c, pending: ps.Pending, submitted: ps.Submitted}
	}

	if len(g.turnOrder) == 0 || len(g.turnOrder) != len(g.players) {
		return nil, fmt.Errorf("turn order %v does not seat every player", g.turnOrder)
	}
	for _, id := range g.turnOrder {
		if _, err := g.player(id); err != nil {
			return nil, fmt.Errorf("turn order: %w", err)
		}
	}
	if g.turnIndex < 0 || g.turnIndex >= len(g.turnOrder) {
		return nil, fmt.Errorf("turn index %d out of range", g.turnIndex)
	}
	for _, name := range append(slices.Clone(g.current), g.resolved...) {
		if _, ok := disasters.Get(name); !ok {
			return nil, fmt.Errorf("%w: %q", disaster.ErrUnknownDisaster, name)
		}
	}
	if g.phase == PhaseResolveDisaster && len(g.current) == 0 {
		return nil, fmt.Errorf("%w: resolving with no disaster", ErrWrongPhase)
	}
	return g, nil
}
