package game

import (
	"errors"
	"fmt"

	"disastle/castle"
	"disastle/deck"
	"disastle/disaster"
	"disastle/forecast"
	"disastle/meta"
	"disastle/room"
	"disastle/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

var (
	ErrNotYourTurn   = errors.New("not your turn")
	ErrWrongPhase    = errors.New("action not allowed in this phase")
	ErrNotInShop     = errors.New("room not in shop")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrDiscardCount  = errors.New("wrong number of rooms discarded")
)

type Phase int

const (
	PhaseMain Phase = iota
	PhaseResolveDisaster
	PhaseOver
)

var phaseNames = map[Phase]string{
	PhaseMain:            "main",
	PhaseResolveDisaster: "resolve_disaster",
	PhaseOver:            "over",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Seat describes a player joining a game.
type Seat struct {
	ID     string
	Name   string
	Throne int
}

type Player struct {
	ID     string
	Name   string
	Castle *castle.Castle
	// pending is the discard submitted against the current disaster.
	pending   []int
	submitted bool
}

// Game is one Disastle session: a castle per player and a shared deck and
// shop. It is not safe for concurrent use.
type Game struct {
	id         uuid.UUID
	rooms      *room.Catalog
	disasters  *disaster.Catalog
	forecaster *forecast.Forecaster
	rng        *rand.Rand
	deck       *deck.Deck

	shopSize        int
	safeCards       int
	numDisasters    int
	numCatastrophes int

	players   map[string]*Player
	turnOrder []string
	turnIndex int
	round     int
	shop      []int
	phase     Phase
	// current holds surfaced disasters in resolution order.
	current  []string
	resolved []string
}

func defaults(rooms *room.Catalog, disasters *disaster.Catalog, rng *rand.Rand) *Game {
	return &Game{
		rooms:           rooms,
		disasters:       disasters,
		forecaster:      forecast.New(disasters),
		rng:             rng,
		shopSize:        meta.ShopSize,
		safeCards:       meta.SafeCards,
		numDisasters:    meta.Disasters,
		numCatastrophes: meta.Catastrophes,
		players:         make(map[string]*Player),
	}
}

// New seats the players in a random turn order and deals the opening shop.
func New(rng *rand.Rand, rooms *room.Catalog, disasters *disaster.Catalog, seats []Seat, options ...Option) (*Game, error) {
	g := defaults(rooms, disasters, rng)
	for _, option := range options {
		option(g)
	}
	if len(seats) == 0 {
		return nil, errors.New("a game needs at least one player")
	}

	thrones := make(map[int]string)
	for _, seat := range seats {
		if _, ok := g.players[seat.ID]; ok {
			return nil, fmt.Errorf("player %q seated twice", seat.ID)
		}
		r, err := rooms.MustGet(seat.Throne)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", seat.ID, err)
		}
		if !r.IsThrone() {
			return nil, fmt.Errorf("player %q: room %d is not a throne room", seat.ID, seat.Throne)
		}
		if other, ok := thrones[seat.Throne]; ok {
			return nil, fmt.Errorf("player %q: throne room %d already taken by %q", seat.ID, seat.Throne, other)
		}
		thrones[seat.Throne] = seat.ID

		c, err := castle.New(rooms, seat.Throne)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", seat.ID, err)
		}
		g.players[seat.ID] = &Player{ID: seat.ID, Name: seat.Name, Castle: c}
		g.turnOrder = append(g.turnOrder, seat.ID)
	}

	var err error
	g.deck, err = deck.New(rng, rooms.Deck(), names(disasters.Disasters()), names(disasters.Catastrophes()), deck.Setup{
		Disasters:    g.numDisasters,
		Catastrophes: g.numCatastrophes,
		Safe:         g.safeCards,
		Shop:         g.shopSize,
	})
	if err != nil {
		return nil, err
	}
	utils.Shuffle(rng, g.turnOrder)
	g.id = uuid.New()

	log.Info().Str("game", g.id.String()).Strs("turn_order", g.turnOrder).
		Int("disasters", g.numDisasters).Int("catastrophes", g.numCatastrophes).Msg("game started")
	g.restock()
	return g, nil
}

func names(cards []disaster.Disaster) []string {
	out := make([]string, 0, len(cards))
	for _, d := range cards {
		out = append(out, d.Name)
	}
	return out
}

func (g *Game) ID() uuid.UUID {
	return g.id
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) Round() int {
	return g.round
}

// Player returns whose turn it is, or "" outside the main phase.
func (g *Game) Player() string {
	if g.phase != PhaseMain {
		return ""
	}
	return g.turnOrder[g.turnIndex]
}

// TurnOrder returns the players in the order they act this round.
func (g *Game) TurnOrder() []string {
	return slices.Clone(g.turnOrder)
}

func (g *Game) Shop() []int {
	return slices.Clone(g.shop)
}

func (g *Game) Deck() *deck.Deck {
	return g.deck
}

// Disaster returns the disaster being resolved, if any.
func (g *Game) Disaster() (disaster.Disaster, bool) {
	if len(g.current) == 0 {
		return disaster.Disaster{}, false
	}
	return g.disasters.Get(g.current[0])
}

func (g *Game) Resolved() []string {
	return slices.Clone(g.resolved)
}

func (g *Game) Castle(player string) (*castle.Castle, error) {
	p, err := g.player(player)
	if err != nil {
		return nil, err
	}
	return p.Castle, nil
}

// IsOver reports whether every disaster and catastrophe has been resolved.
func (g *Game) IsOver() bool {
	return len(g.resolved) == g.numDisasters+g.numCatastrophes
}

func (g *Game) player(id string) (*Player, error) {
	p, ok := g.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	return p, nil
}

// turn checks that player may take a main phase action now.
func (g *Game) turn(player string) (*Player, error) {
	p, err := g.player(player)
	if err != nil {
		return nil, err
	}
	if g.phase != PhaseMain {
		return nil, fmt.Errorf("%w: %s", ErrWrongPhase, g.phase)
	}
	if current := g.turnOrder[g.turnIndex]; current != player {
		return nil, fmt.Errorf("%w: %q is up", ErrNotYourTurn, current)
	}
	return p, nil
}

// Buy places a room from the shop into the player's castle and ends the turn.
func (g *Game) Buy(player string, id, x, y, rotation int) error {
	p, err := g.turn(player)
	if err != nil {
		return err
	}
	if utils.FindIndex(g.shop, id) < 0 {
		return fmt.Errorf("%w: %d", ErrNotInShop, id)
	}
	if err := p.Castle.Place(id, x, y, rotation); err != nil {
		return err
	}
	g.shop, _ = utils.Remove(g.shop, id)
	g.passTurn()
	return nil
}

func (g *Game) Move(player string, id, x, y, rotation int) error {
	p, err := g.turn(player)
	if err != nil {
		return err
	}
	if err := p.Castle.Move(id, x, y, rotation); err != nil {
		return err
	}
	g.passTurn()
	return nil
}

func (g *Game) Swap(player string, idA, idB, rotA, rotB int) error {
	p, err := g.turn(player)
	if err != nil {
		return err
	}
	if err := p.Castle.Swap(idA, idB, rotA, rotB); err != nil {
		return err
	}
	g.passTurn()
	return nil
}

func (g *Game) Rotate(player string, id, rotation int) error {
	p, err := g.turn(player)
	if err != nil {
		return err
	}
	if err := p.Castle.Rotate(id, rotation); err != nil {
		return err
	}
	g.passTurn()
	return nil
}

func (g *Game) Pass(player string) error {
	if _, err := g.turn(player); err != nil {
		return err
	}
	g.passTurn()
	return nil
}

// Play dispatches an action to the matching method.
func (g *Game) Play(a Action) error {
	switch a.Type {
	case BuyAction:
		return g.Buy(a.Player, a.Room, a.X, a.Y, a.Rotation)
	case MoveAction:
		return g.Move(a.Player, a.Room, a.X, a.Y, a.Rotation)
	case SwapAction:
		return g.Swap(a.Player, a.Room, a.Other, a.Rotation, a.OtherRotation)
	case RotateAction:
		return g.Rotate(a.Player, a.Room, a.Rotation)
	case DiscardAction:
		return g.Discard(a.Player, a.Rooms...)
	case PassAction:
		return g.Pass(a.Player)
	}
	return fmt.Errorf("unknown action type %d", a.Type)
}

func (g *Game) passTurn() {
	g.turnIndex++
	if g.turnIndex < len(g.turnOrder) {
		return
	}
	g.turnIndex = 0
	g.turnOrder = append(slices.Clone(g.turnOrder[1:]), g.turnOrder[0])
	g.round++
	g.restock()
}

// restock discards what is left of the shop and deals a new one.
func (g *Game) restock() {
	g.deck.Discard(g.shop...)
	var surfaced []string
	g.shop, surfaced = g.deck.Refill(g.shopSize)
	log.Debug().Int("round", g.round).Ints("shop", g.shop).Strs("surfaced", surfaced).Int("deck", g.deck.Len()).Msg("shop restocked")
	if len(surfaced) == 0 {
		return
	}
	g.current = append(g.current, surfaced...)
	g.phase = PhaseResolveDisaster
	g.resolve()
}

// Damage is what the current disaster deals to the player's castle, in
// rooms to discard.
func (g *Game) Damage(player string) (int, error) {
	p, err := g.player(player)
	if err != nil {
		return 0, err
	}
	return g.damage(p), nil
}

func (g *Game) damage(p *Player) int {
	d, ok := g.Disaster()
	if !ok {
		return 0
	}
	totals := p.Castle.ConnectorTotals()
	return int(d.Damage(len(g.resolved), totals, totals.Wild, 1).Total)
}

// owes reports whether the player still has to choose rooms to discard.
func (g *Game) owes(p *Player) bool {
	return !p.submitted && g.damage(p) > 0 && len(p.Castle.OuterRooms()) > 0
}

// Discard submits the rooms a player gives up to the current disaster. It
// must be exactly the damage owed, or fewer only when no outer room would
// be left to discard.
func (g *Game) Discard(player string, ids ...int) error {
	p, err := g.player(player)
	if err != nil {
		return err
	}
	if g.phase != PhaseResolveDisaster {
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.phase)
	}
	owed := g.damage(p)
	if owed == 0 {
		return fmt.Errorf("%w: %q owes nothing", ErrDiscardCount, player)
	}

	trial := p.Castle.Copy()
	if err := trial.Discard(ids...); err != nil {
		return err
	}
	if len(ids) > owed || (len(ids) < owed && len(trial.OuterRooms()) > 0) {
		return fmt.Errorf("%w: %d discarded, %d owed", ErrDiscardCount, len(ids), owed)
	}
	p.pending = slices.Clone(ids)
	p.submitted = true
	g.resolve()
	return nil
}

// resolve applies every submitted discard once nobody owes anything and
// moves on to the next surfaced disaster.
func (g *Game) resolve() {
	for g.phase == PhaseResolveDisaster {
		for _, id := range g.turnOrder {
			if g.owes(g.players[id]) {
				return
			}
		}

		name := g.current[0]
		for _, id := range g.turnOrder {
			p := g.players[id]
			if err := p.Castle.Discard(p.pending...); err != nil {
				// Submissions were checked against this very castle.
				log.Error().Str("player", id).Err(err).Msg("discard failed at resolution")
			} else {
				g.deck.Discard(p.pending...)
			}
			p.pending, p.submitted = nil, false
		}
		g.current = g.current[1:]
		g.resolved = append(g.resolved, name)
		log.Info().Str("game", g.id.String()).Str("disaster", name).Int("resolved", len(g.resolved)).Msg("disaster resolved")

		if len(g.current) > 0 {
			continue
		}
		if g.IsOver() {
			g.phase = PhaseOver
			log.Info().Str("game", g.id.String()).Int("rounds", g.round).Msg("game over")
		} else {
			g.phase = PhaseMain
		}
	}
}

// ForecastState describes the next refill as the forecast engine sees it.
// Surfaced disasters count as drawn.
func (g *Game) ForecastState() forecast.State {
	return forecast.State{
		Disasters:    g.numDisasters,
		Catastrophes: g.numCatastrophes,
		Resolved:     append(slices.Clone(g.resolved), g.current...),
		Deck:         g.deck.Len(),
		Shop:         g.shopSize,
	}
}

// Forecast is the expected damage of the next refill against the player's
// castle as it stands.
func (g *Game) Forecast(player string) (disaster.Damage, error) {
	p, err := g.player(player)
	if err != nil {
		return disaster.Damage{}, err
	}
	totals := p.Castle.ConnectorTotals()
	return g.forecaster.ExpectedDamage(g.ForecastState(), totals, totals.Wild)
}

func (g *Game) Forecaster() *forecast.Forecaster {
	return g.forecaster
}

// Copy returns a deep copy. The copy shares the catalogs and the random
// source.
func (g *Game) Copy() *Game {
	cp := *g
	cp.deck = g.deck.Copy()
	cp.players = make(map[string]*Player, len(g.players))
	for id, p := range g.players {
		cp.players[id] = &Player{
			ID:        p.ID,
			Name:      p.Name,
			Castle:    p.Castle.Copy(),
			pending:   slices.Clone(p.pending),
			submitted: p.submitted,
		}
	}
	cp.turnOrder = slices.Clone(g.turnOrder)
	cp.shop = slices.Clone(g.shop)
	cp.current = slices.Clone(g.current)
	cp.resolved = slices.Clone(g.resolved)
	return &cp
}
