package game

import (
	"fmt"

	"disastle/castle"
	"disastle/room"

	"golang.org/x/exp/slices"
)

// LegalActions returns every action the player may take right now. It is
// empty when the player has nothing to do.
func (g *Game) LegalActions(player string) ([]Action, error) {
	p, err := g.player(player)
	if err != nil {
		return nil, err
	}
	switch g.phase {
	case PhaseMain:
		if g.Player() != player {
			return nil, nil
		}
		var actions []Action
		actions = append(actions, g.buyActions(p)...)
		actions = append(actions, moveActions(p)...)
		actions = append(actions, swapActions(p)...)
		actions = append(actions, rotateActions(p)...)
		return append(actions, Action{Player: p.ID, Type: PassAction}), nil
	case PhaseResolveDisaster:
		return g.discardActions(p), nil
	}
	return nil, nil
}

func (g *Game) buyActions(p *Player) []Action {
	var actions []Action
	free := p.Castle.FreePositions()
	for _, id := range g.shop {
		for _, pos := range free {
			for _, rot := range room.Rotations {
				if p.Castle.CanPlace(id, pos.X, pos.Y, int(rot)) {
					actions = append(actions, Action{Player: p.ID, Type: BuyAction, Room: id, X: pos.X, Y: pos.Y, Rotation: int(rot)})
				}
			}
		}
	}
	return actions
}

func moveActions(p *Player) []Action {
	var actions []Action
	free := p.Castle.FreePositions()
	for _, id := range p.Castle.OuterRooms() {
		for _, pos := range free {
			for _, rot := range room.Rotations {
				if p.Castle.CanMove(id, pos.X, pos.Y, int(rot)) {
					actions = append(actions, Action{Player: p.ID, Type: MoveAction, Room: id, X: pos.X, Y: pos.Y, Rotation: int(rot)})
				}
			}
		}
	}
	return actions
}

func swapActions(p *Player) []Action {
	var actions []Action
	ids := p.Castle.Rooms()
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			if a == p.Castle.Throne() || b == p.Castle.Throne() {
				continue
			}
			for _, rotA := range room.Rotations {
				for _, rotB := range room.Rotations {
					if p.Castle.CanSwap(a, b, int(rotA), int(rotB)) {
						actions = append(actions, Action{Player: p.ID, Type: SwapAction, Room: a, Rotation: int(rotA), Other: b, OtherRotation: int(rotB)})
					}
				}
			}
		}
	}
	return actions
}

func rotateActions(p *Player) []Action {
	var actions []Action
	for _, id := range p.Castle.Rooms() {
		current, _ := p.Castle.Placement(id)
		for _, rot := range room.Rotations {
			if rot != current.Rotation && p.Castle.CanRotate(id, int(rot)) {
				actions = append(actions, Action{Player: p.ID, Type: RotateAction, Room: id, Rotation: int(rot)})
			}
		}
	}
	return actions
}

// discardActions lists one discard order per distinct set of rooms that
// settles the player's damage.
func (g *Game) discardActions(p *Player) []Action {
	if !g.owes(p) {
		return nil
	}
	owed := g.damage(p)
	visited := make(map[string]bool)
	var actions []Action

	var walk func(c *castle.Castle, picked []int)
	walk = func(c *castle.Castle, picked []int) {
		sorted := slices.Clone(picked)
		slices.Sort(sorted)
		key := fmt.Sprint(sorted)
		if visited[key] {
			return
		}
		visited[key] = true

		outer := c.OuterRooms()
		if len(picked) == owed || len(outer) == 0 {
			actions = append(actions, Action{Player: p.ID, Type: DiscardAction, Rooms: slices.Clone(picked)})
			return
		}
		for _, id := range outer {
			next := c.Copy()
			if err := next.Discard(id); err != nil {
				continue
			}
			walk(next, append(slices.Clone(picked), id))
		}
	}
	walk(p.Castle, nil)
	return actions
}
