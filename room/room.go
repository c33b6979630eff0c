package room

import (
	"errors"
	"fmt"

	"disastle/connector"
	"disastle/meta"
)

var (
	ErrInvalidRotation = errors.New("invalid rotation")
	ErrUnknownRoom     = errors.New("unknown room")
)

// Direction indexes the four sides of a room, clockwise from up.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var Directions = [4]Direction{Up, Right, Down, Left}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset returns the grid step towards d. Up is +y.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Right:
		return 1, 0
	case Down:
		return 0, -1
	default:
		return -1, 0
	}
}

func (d Direction) String() string {
	return [...]string{"up", "right", "down", "left"}[d%4]
}

// Rotation is a clockwise right-angle rotation in degrees.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

var Rotations = [4]Rotation{Rotate0, Rotate90, Rotate180, Rotate270}

// ParseRotation accepts 0, 90, 180 and 270 only.
func ParseRotation(degrees int) (Rotation, error) {
	switch Rotation(degrees) {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return Rotation(degrees), nil
	}
	return Rotate0, fmt.Errorf("%w: %d is not one of 0, 90, 180, 270", ErrInvalidRotation, degrees)
}

func (r Rotation) Valid() bool {
	_, err := ParseRotation(int(r))
	return err == nil
}

// Room is an immutable room card. Sides are ordered up, right, down, left.
type Room struct {
	ID    int
	Name  string
	Sides [4]connector.Connector
}

// Parse builds a room from its four character connector code.
func Parse(id int, name string, code string) (Room, error) {
	sides, err := connector.ParseSides(code)
	if err != nil {
		return Room{}, fmt.Errorf("room %d (%s): %w", id, name, err)
	}
	return Room{ID: id, Name: name, Sides: sides}, nil
}

func (r Room) Side(d Direction) connector.Connector {
	return r.Sides[d%4]
}

// Rotate returns the view of r turned clockwise by rot. The slot facing up
// after a 90 degree turn is the one that faced left before.
func (r Room) Rotate(rot Rotation) Room {
	steps := (int(rot) / 90) % 4
	if steps < 0 {
		steps += 4
	}
	rotated := r
	for i, c := range r.Sides {
		rotated.Sides[(i+steps)%4] = c
	}
	return rotated
}

func (r Room) IsThrone() bool {
	return r.ID >= meta.ThroneRoomIDStart
}

// Code returns the connector code of the room as currently oriented.
func (r Room) Code() string {
	b := make([]byte, 4)
	for i, c := range r.Sides {
		b[i] = c.Code()
	}
	return string(b)
}

func (r Room) String() string {
	return fmt.Sprintf("%s#%d[%s]", r.Name, r.ID, r.Code())
}
