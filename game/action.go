package game

import "fmt"

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	BuyAction ActionType = iota
	MoveAction
	SwapAction
	RotateAction
	DiscardAction
	PassAction
)

func (t ActionType) String() string {
	switch t {
	case BuyAction:
		return "buy"
	case MoveAction:
		return "move"
	case SwapAction:
		return "swap"
	case RotateAction:
		return "rotate"
	case DiscardAction:
		return "discard"
	case PassAction:
		return "pass"
	}
	return fmt.Sprintf("ActionType(%d)", int(t))
}

// Action represents an action taken by a player. Fields the type does not
// use are left zero.
type Action struct {
	Player   string     `json:"player"`
	Type     ActionType `json:"type"`
	Room     int        `json:"room,omitempty"`
	X        int        `json:"x,omitempty"`
	Y        int        `json:"y,omitempty"`
	Rotation int        `json:"rotation,omitempty"`
	// Other and OtherRotation describe the second room of a swap.
	Other         int `json:"other,omitempty"`
	OtherRotation int `json:"other_rotation,omitempty"`
	// Rooms lists a discard in the order the rooms are removed.
	Rooms []int `json:"rooms,omitempty"`
}

func (a Action) String() string {
	switch a.Type {
	case BuyAction, MoveAction:
		return fmt.Sprintf("%s %s %d to (%d,%d) at %d", a.Player, a.Type, a.Room, a.X, a.Y, a.Rotation)
	case SwapAction:
		return fmt.Sprintf("%s swap %d@%d with %d@%d", a.Player, a.Room, a.Rotation, a.Other, a.OtherRotation)
	case RotateAction:
		return fmt.Sprintf("%s rotate %d to %d", a.Player, a.Room, a.Rotation)
	case DiscardAction:
		return fmt.Sprintf("%s discard %v", a.Player, a.Rooms)
	}
	return fmt.Sprintf("%s %s", a.Player, a.Type)
}
