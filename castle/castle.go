package castle

import (
	"errors"
	"fmt"

	"disastle/connector"
	"disastle/meta"
	"disastle/room"

	"github.com/rs/zerolog/log"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/exp/slices"
)

var (
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrOutOfBounds      = fmt.Errorf("%w: out of bounds", ErrInvalidPlacement)
	ErrNotPlaced        = errors.New("room not placed")
	ErrDiscardFailed    = errors.New("discard failed")
	ErrThroneRoom       = errors.New("throne room is fixed")
	ErrInvalidRotation  = room.ErrInvalidRotation
)

// Position is a grid coordinate. Up is +Y, right is +X.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var Origin = Position{}

func (p Position) Step(d room.Direction) Position {
	dx, dy := d.Offset()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) InBounds() bool {
	return p.X >= -meta.GridRadius && p.X <= meta.GridRadius &&
		p.Y >= -meta.GridRadius && p.Y <= meta.GridRadius
}

func comparePositions(a, b Position) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}

type cell struct {
	view     room.Room // rotated
	rotation room.Rotation
}

// Castle is one player's grid of placed rooms. It is not safe for
// concurrent mutation.
type Castle struct {
	catalog   *room.Catalog
	throne    int
	cells     map[Position]cell
	positions map[int]Position
	ids       mapset.Set[int]
}

// New starts a castle with the throne room at the origin.
func New(catalog *room.Catalog, throneID int) (*Castle, error) {
	c := empty(catalog, throneID)
	if err := c.Place(throneID, 0, 0, 0); err != nil {
		return nil, fmt.Errorf("place throne room: %w", err)
	}
	return c, nil
}

func empty(catalog *room.Catalog, throneID int) *Castle {
	return &Castle{
		catalog:   catalog,
		throne:    throneID,
		cells:     make(map[Position]cell),
		positions: make(map[int]Position),
		ids:       mapset.New[int](),
	}
}

// Copy returns a deep copy sharing only the immutable catalog.
func (c *Castle) Copy() *Castle {
	cp := empty(c.catalog, c.throne)
	for pos, placed := range c.cells {
		cp.cells[pos] = placed
	}
	for id, pos := range c.positions {
		cp.positions[id] = pos
	}
	c.ids.Each(func(id int) {
		cp.ids.Put(id)
	})
	return cp
}

func (c *Castle) restore(snapshot *Castle) {
	c.cells = snapshot.cells
	c.positions = snapshot.positions
	c.ids = snapshot.ids
}

func (c *Castle) Throne() int {
	return c.throne
}

func (c *Castle) Catalog() *room.Catalog {
	return c.catalog
}

func (c *Castle) Len() int {
	return c.ids.Size()
}

func (c *Castle) Has(id int) bool {
	return c.ids.Has(id)
}

// Rooms returns the placed room ids in ascending order.
func (c *Castle) Rooms() []int {
	ids := make([]int, 0, c.ids.Size())
	c.ids.Each(func(id int) {
		ids = append(ids, id)
	})
	slices.Sort(ids)
	return ids
}

// At returns the rotated view of the room at (x, y).
func (c *Castle) At(x, y int) (room.Room, room.Rotation, bool) {
	placed, ok := c.cells[Position{X: x, Y: y}]
	return placed.view, placed.rotation, ok
}

func (c *Castle) Position(id int) (Position, bool) {
	pos, ok := c.positions[id]
	return pos, ok
}

// Place puts a room from the catalog at (x, y). The cell must be empty and
// in bounds, every occupied neighbour must match, and at least one
// neighbour must be linked. An empty castle only accepts the origin.
func (c *Castle) Place(id, x, y, rotation int) error {
	rot, err := room.ParseRotation(rotation)
	if err != nil {
		return err
	}
	view, pos, err := c.validatePlace(id, Position{X: x, Y: y}, rot)
	if err != nil {
		return err
	}
	c.insert(id, view, rot, pos)
	return nil
}

// CanPlace reports whether Place would succeed without mutating the castle.
func (c *Castle) CanPlace(id, x, y, rotation int) bool {
	rot, err := room.ParseRotation(rotation)
	if err != nil {
		return false
	}
	_, _, err = c.validatePlace(id, Position{X: x, Y: y}, rot)
	return err == nil
}

func (c *Castle) validatePlace(id int, pos Position, rot room.Rotation) (room.Room, Position, error) {
	r, ok := c.catalog.Get(id)
	if !ok {
		return room.Room{}, pos, fmt.Errorf("%w: %w %d", ErrInvalidPlacement, room.ErrUnknownRoom, id)
	}
	if c.ids.Has(id) {
		return room.Room{}, pos, fmt.Errorf("%w: room %d is already placed", ErrInvalidPlacement, id)
	}
	if !pos.InBounds() {
		return room.Room{}, pos, fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
	}
	if _, occupied := c.cells[pos]; occupied {
		return room.Room{}, pos, fmt.Errorf("%w: %v is occupied", ErrInvalidPlacement, pos)
	}
	view := r.Rotate(rot)
	if c.ids.Size() == 0 {
		if pos != Origin {
			return room.Room{}, pos, fmt.Errorf("%w: the first room must sit at the origin", ErrInvalidPlacement)
		}
		return view, pos, nil
	}
	if err := c.check(view, pos); err != nil {
		return room.Room{}, pos, err
	}
	return view, pos, nil
}

// check validates view standing at pos against its current neighbours.
func (c *Castle) check(view room.Room, pos Position) error {
	linked := false
	for _, d := range room.Directions {
		neighbour, ok := c.cells[pos.Step(d)]
		if !ok {
			continue
		}
		mine, theirs := view.Side(d), neighbour.view.Side(d.Opposite())
		if !connector.Matches(mine, theirs) {
			return fmt.Errorf("%w: %s %s does not match %s of room %d",
				ErrInvalidPlacement, d, mine, theirs, neighbour.view.ID)
		}
		if connector.Link(mine, theirs) != connector.None {
			linked = true
		}
	}
	if !linked {
		return fmt.Errorf("%w: %v has no linked neighbour", ErrInvalidPlacement, pos)
	}
	return nil
}

func (c *Castle) insert(id int, view room.Room, rot room.Rotation, pos Position) {
	c.cells[pos] = cell{view: view, rotation: rot}
	c.positions[id] = pos
	c.ids.Put(id)
}

func (c *Castle) erase(pos Position) {
	placed := c.cells[pos]
	delete(c.cells, pos)
	delete(c.positions, placed.view.ID)
	c.ids.Remove(placed.view.ID)
}

// Remove takes the room at (x, y) off the grid without checking that the
// rest of the castle stays connected. The throne room is refused.
func (c *Castle) Remove(x, y int) error {
	pos := Position{X: x, Y: y}
	placed, ok := c.cells[pos]
	if !ok {
		return fmt.Errorf("%w: %v is empty", ErrNotPlaced, pos)
	}
	if placed.view.ID == c.throne {
		return ErrThroneRoom
	}
	c.erase(pos)
	return nil
}

// Move relocates an outer room, optionally rotating it.
func (c *Castle) Move(id, x, y, rotation int) error {
	if _, err := room.ParseRotation(rotation); err != nil {
		return err
	}
	from, ok := c.positions[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotPlaced, id)
	}
	if id == c.throne {
		return ErrThroneRoom
	}
	if !c.IsOuterRoom(id) {
		return fmt.Errorf("%w: room %d is not an outer room", ErrInvalidPlacement, id)
	}

	snapshot := c.Copy()
	c.erase(from)
	if err := c.Place(id, x, y, rotation); err != nil {
		c.restore(snapshot)
		log.Debug().Int("room", id).Err(err).Msg("move rolled back")
		return err
	}
	return nil
}

// CanMove reports whether Move would succeed.
func (c *Castle) CanMove(id, x, y, rotation int) bool {
	return c.Copy().Move(id, x, y, rotation) == nil
}

// Rotate turns a placed room in its own cell.
func (c *Castle) Rotate(id, rotation int) error {
	if _, err := room.ParseRotation(rotation); err != nil {
		return err
	}
	pos, ok := c.positions[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotPlaced, id)
	}

	snapshot := c.Copy()
	c.erase(pos)
	if err := c.Place(id, pos.X, pos.Y, rotation); err != nil {
		c.restore(snapshot)
		log.Debug().Int("room", id).Err(err).Msg("rotate rolled back")
		return err
	}
	return nil
}

// CanRotate reports whether Rotate would succeed.
func (c *Castle) CanRotate(id, rotation int) bool {
	return c.Copy().Rotate(id, rotation) == nil
}

// Swap exchanges the cells of two rooms: a goes to b's cell turned by rotA
// and b goes to a's cell turned by rotB.
func (c *Castle) Swap(idA, idB, rotA, rotB int) error {
	ra, err := room.ParseRotation(rotA)
	if err != nil {
		return err
	}
	rb, err := room.ParseRotation(rotB)
	if err != nil {
		return err
	}
	if idA == idB {
		return fmt.Errorf("%w: cannot swap room %d with itself", ErrInvalidPlacement, idA)
	}
	posA, ok := c.positions[idA]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotPlaced, idA)
	}
	posB, ok := c.positions[idB]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotPlaced, idB)
	}
	if idA == c.throne || idB == c.throne {
		return ErrThroneRoom
	}

	roomA, _ := c.catalog.Get(idA)
	roomB, _ := c.catalog.Get(idB)
	viewA, viewB := roomA.Rotate(ra), roomB.Rotate(rb)

	snapshot := c.Copy()
	c.erase(posA)
	c.erase(posB)
	c.insert(idA, viewA, ra, posB)
	c.insert(idB, viewB, rb, posA)
	err = c.check(viewA, posB)
	if err == nil {
		err = c.check(viewB, posA)
	}
	if err != nil {
		c.restore(snapshot)
		log.Debug().Int("a", idA).Int("b", idB).Err(err).Msg("swap rolled back")
		return err
	}
	return nil
}

// CanSwap reports whether Swap would succeed.
func (c *Castle) CanSwap(idA, idB, rotA, rotB int) bool {
	return c.Copy().Swap(idA, idB, rotA, rotB) == nil
}

// Discard removes rooms in order. Each room must be an outer room at the
// moment it is removed; otherwise nothing is removed.
func (c *Castle) Discard(ids ...int) error {
	snapshot := c.Copy()
	for _, id := range ids {
		var err error
		pos, ok := c.positions[id]
		switch {
		case !ok:
			err = fmt.Errorf("%w: room %d: %w", ErrDiscardFailed, id, ErrNotPlaced)
		case id == c.throne:
			err = fmt.Errorf("%w: %w", ErrDiscardFailed, ErrThroneRoom)
		case !c.IsOuterRoom(id):
			err = fmt.Errorf("%w: room %d is not an outer room", ErrDiscardFailed, id)
		}
		if err != nil {
			c.restore(snapshot)
			log.Debug().Ints("rooms", ids).Err(err).Msg("discard rolled back")
			return err
		}
		c.erase(pos)
	}
	return nil
}

// IsOuterRoom reports whether the room has exactly one linked neighbour.
func (c *Castle) IsOuterRoom(id int) bool {
	pos, ok := c.positions[id]
	if !ok {
		return false
	}
	return c.linkedNeighbours(pos) == 1
}

// OuterRooms returns the ids of every outer room other than the throne.
func (c *Castle) OuterRooms() []int {
	var ids []int
	for _, id := range c.Rooms() {
		if id != c.throne && c.IsOuterRoom(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *Castle) linkedNeighbours(pos Position) int {
	placed := c.cells[pos]
	n := 0
	for _, d := range room.Directions {
		neighbour, ok := c.cells[pos.Step(d)]
		if !ok {
			continue
		}
		if connector.Link(placed.view.Side(d), neighbour.view.Side(d.Opposite())) != connector.None {
			n++
		}
	}
	return n
}

// FreePositions returns the empty cells faced by an open connector.
func (c *Castle) FreePositions() []Position {
	seen := make(map[Position]bool)
	var free []Position
	for pos, placed := range c.cells {
		for _, d := range room.Directions {
			if placed.view.Side(d) == connector.None {
				continue
			}
			next := pos.Step(d)
			if _, occupied := c.cells[next]; occupied || !next.InBounds() || seen[next] {
				continue
			}
			seen[next] = true
			free = append(free, next)
		}
	}
	slices.SortFunc(free, comparePositions)
	return free
}

// ConnectorTotals counts the realized link of every edge once.
func (c *Castle) ConnectorTotals() connector.Totals {
	var totals connector.Totals
	for pos, placed := range c.cells {
		for _, d := range []room.Direction{room.Up, room.Right} {
			neighbour, ok := c.cells[pos.Step(d)]
			if !ok {
				continue
			}
			totals.Add(connector.Link(placed.view.Side(d), neighbour.view.Side(d.Opposite())))
		}
	}
	return totals
}

// IsPowered reports whether every golden connector of the room at (x, y)
// faces a neighbour of the same base type that is not wild.
func (c *Castle) IsPowered(x, y int) (bool, error) {
	pos := Position{X: x, Y: y}
	placed, ok := c.cells[pos]
	if !ok {
		return false, fmt.Errorf("%w: %v is empty", ErrNotPlaced, pos)
	}
	for _, d := range room.Directions {
		mine := placed.view.Side(d)
		if !connector.IsGolden(mine) {
			continue
		}
		neighbour, ok := c.cells[pos.Step(d)]
		if !ok {
			return false, nil
		}
		theirs := neighbour.view.Side(d.Opposite())
		if theirs == connector.Wild || connector.Base(theirs) != connector.Base(mine) {
			return false, nil
		}
	}
	return true, nil
}
