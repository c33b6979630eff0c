package castle

import (
	"encoding/json"
	"fmt"

	"disastle/room"
)

// Placement records where and how a room sits in a castle.
type Placement struct {
	X        int           `json:"x"`
	Y        int           `json:"y"`
	Rotation room.Rotation `json:"rotation"`
}

// Layout is the serialized form of a castle handed to the session store.
type Layout struct {
	Throne int               `json:"throne"`
	Rooms  map[int]Placement `json:"rooms"`
}

func (c *Castle) Placement(id int) (Placement, bool) {
	pos, ok := c.positions[id]
	if !ok {
		return Placement{}, false
	}
	return Placement{X: pos.X, Y: pos.Y, Rotation: c.cells[pos].rotation}, true
}

func (c *Castle) Layout() Layout {
	layout := Layout{Throne: c.throne, Rooms: make(map[int]Placement, len(c.positions))}
	for id := range c.positions {
		layout.Rooms[id], _ = c.Placement(id)
	}
	return layout
}

func (c *Castle) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Layout())
}

// FromLayout rebuilds a castle and checks every castle invariant on the way.
func FromLayout(catalog *room.Catalog, layout Layout) (*Castle, error) {
	throne, ok := layout.Rooms[layout.Throne]
	if !ok || throne.X != 0 || throne.Y != 0 {
		return nil, fmt.Errorf("%w: throne room %d must sit at the origin", ErrInvalidPlacement, layout.Throne)
	}

	c := empty(catalog, layout.Throne)
	for id, p := range layout.Rooms {
		rot, err := room.ParseRotation(int(p.Rotation))
		if err != nil {
			return nil, fmt.Errorf("room %d: %w", id, err)
		}
		r, ok := catalog.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %w %d", ErrInvalidPlacement, room.ErrUnknownRoom, id)
		}
		pos := Position{X: p.X, Y: p.Y}
		if !pos.InBounds() {
			return nil, fmt.Errorf("room %d: %w: %v", id, ErrOutOfBounds, pos)
		}
		if _, occupied := c.cells[pos]; occupied {
			return nil, fmt.Errorf("%w: %v holds two rooms", ErrInvalidPlacement, pos)
		}
		c.insert(id, r.Rotate(rot), rot, pos)
	}

	if c.Len() == 1 {
		return c, nil
	}
	for pos, placed := range c.cells {
		if err := c.check(placed.view, pos); err != nil {
			return nil, fmt.Errorf("room %d: %w", placed.view.ID, err)
		}
	}
	return c, nil
}
