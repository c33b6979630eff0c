package castle

import (
	"encoding/json"
	"testing"

	"disastle/connector"
	"disastle/room"

	"github.com/stretchr/testify/require"
)

const throne = 101

func testCatalog(t *testing.T) *room.Catalog {
	t.Helper()
	var rooms []room.Room
	for id, code := range map[int]string{
		throne: "aaaa",
		1:      "dddd",
		2:      "cccc",
		3:      "mnnn",
		4:      "nnnd",
		5:      "Dnnn",
		6:      "nndn",
		7:      "nnnn",
		9:      "nndc",
		10:     "aaaa",
	} {
		r, err := room.Parse(id, "room", code)
		require.NoError(t, err)
		rooms = append(rooms, r)
	}
	c, err := room.NewCatalog(rooms...)
	require.NoError(t, err)
	return c
}

func build(t *testing.T, placements ...[4]int) *Castle {
	t.Helper()
	c, err := New(testCatalog(t), throne)
	require.NoError(t, err)
	for _, p := range placements {
		require.NoError(t, c.Place(p[0], p[1], p[2], p[3]), "placing %v", p)
	}
	return c
}

func TestNew(t *testing.T) {
	c := build(t)

	require.Equal(t, 1, c.Len())
	require.Equal(t, []int{throne}, c.Rooms())
	pos, ok := c.Position(throne)
	require.True(t, ok)
	require.Equal(t, Origin, pos)
}

func TestPlace(t *testing.T) {
	t.Run("placing next to a wild connector", func(t *testing.T) {
		c := build(t)
		require.NoError(t, c.Place(1, 1, 0, 0))
		require.True(t, c.Has(1))
		r, rot, ok := c.At(1, 0)
		require.True(t, ok)
		require.Equal(t, 1, r.ID)
		require.Equal(t, room.Rotate0, rot)
	})

	t.Run("rejecting a room that is already placed", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0})
		require.ErrorIs(t, c.Place(1, -1, 0, 0), ErrInvalidPlacement)
	})

	t.Run("rejecting an occupied cell", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0})
		require.ErrorIs(t, c.Place(2, 1, 0, 0), ErrInvalidPlacement)
	})

	t.Run("rejecting mismatched connectors", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0})
		require.ErrorIs(t, c.Place(2, 2, 0, 0), ErrInvalidPlacement, "cross should not face diamond")
	})

	t.Run("rejecting a closed room against an open side", func(t *testing.T) {
		c := build(t)
		require.ErrorIs(t, c.Place(7, 0, 1, 0), ErrInvalidPlacement)
	})

	t.Run("rejecting an isolated room", func(t *testing.T) {
		c := build(t)
		require.ErrorIs(t, c.Place(1, 5, 5, 0), ErrInvalidPlacement)
	})

	t.Run("rejecting cells out of bounds", func(t *testing.T) {
		c := build(t)
		err := c.Place(1, 51, 0, 0)
		require.ErrorIs(t, err, ErrOutOfBounds)
		require.ErrorIs(t, err, ErrInvalidPlacement)
	})

	t.Run("rejecting rotations that are not right angles", func(t *testing.T) {
		c := build(t)
		require.ErrorIs(t, c.Place(1, 1, 0, 45), ErrInvalidRotation)
		require.Equal(t, 1, c.Len(), "Failed placement should not mutate the castle")
	})

	t.Run("rejecting unknown rooms", func(t *testing.T) {
		c := build(t)
		err := c.Place(99, 1, 0, 0)
		require.ErrorIs(t, err, ErrInvalidPlacement)
		require.ErrorIs(t, err, room.ErrUnknownRoom)
	})

	t.Run("rotation decides which side faces the neighbour", func(t *testing.T) {
		c := build(t)
		require.ErrorIs(t, c.Place(6, -1, 0, 90), ErrInvalidPlacement, "Diamond should face away from the throne")
		require.True(t, c.CanPlace(6, -1, 0, 270))
		require.NoError(t, c.Place(6, -1, 0, 270))
	})
}

func TestPlaceWildScenario(t *testing.T) {
	// Throne with a single wild connector facing down.
	thr, _ := room.Parse(throne, "Throne", "nnan")
	r, _ := room.Parse(1, "Room", "andn")
	catalog, err := room.NewCatalog(thr, r)
	require.NoError(t, err)

	t.Run("wild matches the room placed below it", func(t *testing.T) {
		c, err := New(catalog, throne)
		require.NoError(t, err)
		require.NoError(t, c.Place(1, 0, -1, 0))
	})

	t.Run("wild matches a diamond turned towards it", func(t *testing.T) {
		c, err := New(catalog, throne)
		require.NoError(t, err)
		require.NoError(t, c.Place(1, 0, -1, 180))
		view, _, _ := c.At(0, -1)
		require.Equal(t, connector.Diamond, view.Side(room.Up))
		require.Equal(t, connector.Totals{Diamond: 1}, c.ConnectorTotals())
	})

	t.Run("placing against a closed side fails", func(t *testing.T) {
		c, err := New(catalog, throne)
		require.NoError(t, err)
		require.ErrorIs(t, c.Place(1, 1, 0, 0), ErrInvalidPlacement)
		require.ErrorIs(t, c.Place(1, 1, 0, 90), ErrInvalidPlacement)
		require.Equal(t, []int{throne}, c.Rooms())
	})
}

func TestRemove(t *testing.T) {
	t.Run("place then remove restores the castle", func(t *testing.T) {
		c := build(t, [4]int{2, 0, 1, 0})
		before, totals := c.Layout(), c.ConnectorTotals()

		require.NoError(t, c.Place(1, 1, 0, 0))
		require.NoError(t, c.Remove(1, 0))

		require.Equal(t, before, c.Layout())
		require.Equal(t, totals, c.ConnectorTotals())
	})

	t.Run("removing an empty cell fails", func(t *testing.T) {
		c := build(t)
		require.ErrorIs(t, c.Remove(3, 3), ErrNotPlaced)
	})

	t.Run("removing the throne room fails", func(t *testing.T) {
		c := build(t)
		require.ErrorIs(t, c.Remove(0, 0), ErrThroneRoom)
	})
}

func TestConnectorTotals(t *testing.T) {
	c := build(t,
		[4]int{1, 1, 0, 0},   // diamond with the throne
		[4]int{2, 0, 1, 0},   // cross with the throne
		[4]int{9, 1, 1, 0},   // diamond down, cross left
		[4]int{10, -1, 0, 0}, // wild with the throne
	)

	want := connector.Totals{Diamond: 2, Cross: 2, Wild: 1}
	require.Equal(t, want, c.ConnectorTotals(), "Each edge should be counted once")
	require.Equal(t, c.ConnectorTotals(), c.ConnectorTotals(), "Totals should be idempotent")
}

func TestIsOuterRoom(t *testing.T) {
	c := build(t,
		[4]int{1, 1, 0, 0},
		[4]int{2, 0, 1, 0},
		[4]int{9, 1, 1, 0},
		[4]int{10, -1, 0, 0},
	)

	require.True(t, c.IsOuterRoom(10))
	require.False(t, c.IsOuterRoom(1))
	require.False(t, c.IsOuterRoom(9))
	require.False(t, c.IsOuterRoom(throne))
	require.False(t, c.IsOuterRoom(3), "Unplaced rooms are not outer rooms")
	require.Equal(t, []int{10}, c.OuterRooms())
}

func TestDiscard(t *testing.T) {
	chain := [][4]int{{1, 1, 0, 0}, {4, 2, 0, 0}}

	t.Run("discarding rooms that are outer at their turn", func(t *testing.T) {
		c := build(t, chain...)
		require.NoError(t, c.Discard(4, 1))
		require.Equal(t, []int{throne}, c.Rooms())
	})

	t.Run("discarding a room that is not outer rolls back the batch", func(t *testing.T) {
		c := build(t, chain...)
		before := c.Layout()

		err := c.Discard(1, 4)

		require.ErrorIs(t, err, ErrDiscardFailed)
		require.Equal(t, before, c.Layout())
	})

	t.Run("discarding after a valid removal still rolls back", func(t *testing.T) {
		c := build(t, append(chain, [4]int{2, 0, 1, 0})...)
		before := c.Layout()

		err := c.Discard(2, 1)

		require.ErrorIs(t, err, ErrDiscardFailed)
		require.Equal(t, before, c.Layout(), "The first discard should be undone")
	})

	t.Run("discarding the throne or an unplaced room fails", func(t *testing.T) {
		c := build(t)
		require.ErrorIs(t, c.Discard(throne), ErrDiscardFailed)
		require.ErrorIs(t, c.Discard(3), ErrDiscardFailed)
		require.ErrorIs(t, c.Discard(3), ErrNotPlaced)
	})
}

func TestMove(t *testing.T) {
	chain := [][4]int{{1, 1, 0, 0}, {4, 2, 0, 0}}

	t.Run("moving an outer room with a rotation", func(t *testing.T) {
		c := build(t, chain...)
		require.NoError(t, c.Move(4, 0, -1, 90))
		p, ok := c.Placement(4)
		require.True(t, ok)
		require.Equal(t, Placement{X: 0, Y: -1, Rotation: room.Rotate90}, p)
		require.True(t, c.IsOuterRoom(1), "The old neighbour should become an outer room")
	})

	t.Run("failed moves leave the castle untouched", func(t *testing.T) {
		c := build(t, chain...)
		before, totals := c.Layout(), c.ConnectorTotals()

		require.ErrorIs(t, c.Move(4, 0, 1, 0), ErrInvalidPlacement)
		require.False(t, c.CanMove(4, 0, 1, 0))

		require.Equal(t, before, c.Layout())
		require.Equal(t, totals, c.ConnectorTotals())
		require.Equal(t, []int{1, 4, throne}, c.Rooms())
	})

	t.Run("moving a room that is not outer fails", func(t *testing.T) {
		c := build(t, chain...)
		require.ErrorIs(t, c.Move(1, 0, 1, 0), ErrInvalidPlacement)
	})

	t.Run("moving the throne or an unplaced room fails", func(t *testing.T) {
		c := build(t, chain...)
		require.ErrorIs(t, c.Move(throne, 0, 1, 0), ErrThroneRoom)
		require.ErrorIs(t, c.Move(3, 0, 1, 0), ErrNotPlaced)
		require.ErrorIs(t, c.Move(4, 0, -1, 30), ErrInvalidRotation)
	})
}

func TestSwap(t *testing.T) {
	t.Run("swapping two matching rooms", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0}, [4]int{2, 0, 1, 0})
		require.NoError(t, c.Swap(1, 2, 0, 0))

		a, _ := c.Position(1)
		b, _ := c.Position(2)
		require.Equal(t, Position{X: 0, Y: 1}, a)
		require.Equal(t, Position{X: 1, Y: 0}, b)
	})

	t.Run("failed swaps leave the castle untouched", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0}, [4]int{4, 2, 0, 0}, [4]int{2, 0, 1, 0})
		before, totals := c.Layout(), c.ConnectorTotals()

		require.ErrorIs(t, c.Swap(4, 2, 0, 0), ErrInvalidPlacement)
		require.False(t, c.CanSwap(4, 2, 0, 0))

		require.Equal(t, before, c.Layout())
		require.Equal(t, totals, c.ConnectorTotals())
	})

	t.Run("swapping adjacent rooms", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0}, [4]int{10, 2, 0, 0})
		require.NoError(t, c.Swap(1, 10, 0, 0))
		r, _, _ := c.At(1, 0)
		require.Equal(t, 10, r.ID)
		require.Equal(t, connector.Totals{Diamond: 1, Wild: 1}, c.ConnectorTotals())
	})

	t.Run("rejecting the throne, itself and unplaced rooms", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0})
		require.ErrorIs(t, c.Swap(1, throne, 0, 0), ErrThroneRoom)
		require.ErrorIs(t, c.Swap(1, 1, 0, 0), ErrInvalidPlacement)
		require.ErrorIs(t, c.Swap(1, 2, 0, 0), ErrNotPlaced)
		require.ErrorIs(t, c.Swap(1, 2, 0, 10), ErrInvalidRotation)
	})
}

func TestRotate(t *testing.T) {
	t.Run("rotating into a mismatch rolls back", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0}, [4]int{4, 2, 0, 0})
		before := c.Layout()

		require.ErrorIs(t, c.Rotate(4, 90), ErrInvalidPlacement)
		require.False(t, c.CanRotate(4, 90))
		require.Equal(t, before, c.Layout())
	})

	t.Run("rotating a symmetric room", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0})
		require.NoError(t, c.Rotate(1, 180))
		p, _ := c.Placement(1)
		require.Equal(t, room.Rotate180, p.Rotation)
	})

	t.Run("rotating the lone throne room", func(t *testing.T) {
		c := build(t)
		require.NoError(t, c.Rotate(throne, 270))
		pos, _ := c.Position(throne)
		require.Equal(t, Origin, pos)
	})
}

func TestFreePositions(t *testing.T) {
	t.Run("all sides of the throne are free", func(t *testing.T) {
		c := build(t)
		want := []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}, {X: 1, Y: 0}}
		require.Equal(t, want, c.FreePositions())
	})

	t.Run("closed sides do not open positions", func(t *testing.T) {
		c := build(t, [4]int{4, 1, 0, 0})
		want := []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}
		require.Equal(t, want, c.FreePositions())
	})
}

func TestIsPowered(t *testing.T) {
	t.Run("golden connector facing a wild is not powered", func(t *testing.T) {
		c := build(t, [4]int{5, 0, -1, 0})
		powered, err := c.IsPowered(0, -1)
		require.NoError(t, err)
		require.False(t, powered)
	})

	t.Run("golden connector facing its base type is powered", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0}, [4]int{5, 1, -1, 0})
		powered, err := c.IsPowered(1, -1)
		require.NoError(t, err)
		require.True(t, powered)
	})

	t.Run("rooms without golden connectors are powered", func(t *testing.T) {
		c := build(t, [4]int{1, 1, 0, 0})
		powered, err := c.IsPowered(1, 0)
		require.NoError(t, err)
		require.True(t, powered)
	})

	t.Run("empty cells are an error", func(t *testing.T) {
		c := build(t)
		_, err := c.IsPowered(4, 4)
		require.ErrorIs(t, err, ErrNotPlaced)
	})
}

func TestLayout(t *testing.T) {
	t.Run("round trip through json", func(t *testing.T) {
		c := build(t,
			[4]int{1, 1, 0, 0},
			[4]int{2, 0, 1, 0},
			[4]int{9, 1, 1, 0},
			[4]int{6, -1, 0, 270},
		)
		data, err := json.Marshal(c)
		require.NoError(t, err)

		var layout Layout
		require.NoError(t, json.Unmarshal(data, &layout))
		got, err := FromLayout(c.Catalog(), layout)
		require.NoError(t, err)

		require.Equal(t, c.Layout(), got.Layout())
		require.Equal(t, c.ConnectorTotals(), got.ConnectorTotals())
		require.Equal(t, c.OuterRooms(), got.OuterRooms())
	})

	t.Run("rejecting a throne away from the origin", func(t *testing.T) {
		layout := Layout{Throne: throne, Rooms: map[int]Placement{throne: {X: 1}}}
		_, err := FromLayout(testCatalog(t), layout)
		require.ErrorIs(t, err, ErrInvalidPlacement)
	})

	t.Run("rejecting mismatched edges", func(t *testing.T) {
		layout := Layout{Throne: throne, Rooms: map[int]Placement{
			throne: {},
			1:      {X: 1},
			2:      {X: 2},
		}}
		_, err := FromLayout(testCatalog(t), layout)
		require.ErrorIs(t, err, ErrInvalidPlacement)
	})

	t.Run("rejecting bad rotations", func(t *testing.T) {
		layout := Layout{Throne: throne, Rooms: map[int]Placement{throne: {Rotation: 45}}}
		_, err := FromLayout(testCatalog(t), layout)
		require.ErrorIs(t, err, ErrInvalidRotation)
	})
}

func TestCopy(t *testing.T) {
	c := build(t, [4]int{1, 1, 0, 0})
	cp := c.Copy()
	require.NoError(t, cp.Place(2, 0, 1, 0))

	require.False(t, c.Has(2), "Mutating a copy should not affect the original")
	require.True(t, cp.Has(2))
}
