package connector

import (
	"errors"
	"fmt"
)

// Connector is the typed edge-face printed on each side of a room.
type Connector int

const (
	None Connector = iota
	Wild
	Diamond
	Cross
	Moon
	GoldenDiamond
	GoldenCross
	GoldenMoon
)

var ErrInvalidConnector = errors.New("invalid connector")

// Codes used by the room tables, indexed by Connector.
const codes = "nadcmDCM"

func (c Connector) String() string {
	switch c {
	case None:
		return "none"
	case Wild:
		return "wild"
	case Diamond:
		return "diamond"
	case Cross:
		return "cross"
	case Moon:
		return "moon"
	case GoldenDiamond:
		return "golden-diamond"
	case GoldenCross:
		return "golden-cross"
	case GoldenMoon:
		return "golden-moon"
	default:
		return fmt.Sprintf("connector(%d)", int(c))
	}
}

// Code returns the single character table encoding of c.
func (c Connector) Code() byte {
	if c < None || c > GoldenMoon {
		return '?'
	}
	return codes[c]
}

// Parse decodes a single character table encoding.
func Parse(code byte) (Connector, error) {
	for i := 0; i < len(codes); i++ {
		if codes[i] == code {
			return Connector(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidConnector, code)
}

// ParseSides decodes a four character (up, right, down, left) encoding.
func ParseSides(s string) ([4]Connector, error) {
	var sides [4]Connector
	if len(s) != 4 {
		return sides, fmt.Errorf("%w: %q must have 4 connectors", ErrInvalidConnector, s)
	}
	for i := 0; i < 4; i++ {
		c, err := Parse(s[i])
		if err != nil {
			return sides, err
		}
		sides[i] = c
	}
	return sides, nil
}

// Base maps golden connectors to their plain counterpart.
func Base(c Connector) Connector {
	switch c {
	case GoldenDiamond:
		return Diamond
	case GoldenCross:
		return Cross
	case GoldenMoon:
		return Moon
	default:
		return c
	}
}

func IsGolden(c Connector) bool {
	switch c {
	case GoldenDiamond, GoldenCross, GoldenMoon:
		return true
	default:
		return false
	}
}

// Valid reports whether a and b can face each other at all: either both
// sides are closed or both are open.
func Valid(a, b Connector) bool {
	return (a == None) == (b == None)
}

// Matches reports whether a and b can face each other. Wild matches any
// open connector, golden connectors match their base type.
func Matches(a, b Connector) bool {
	if !Valid(a, b) {
		return false
	}
	if a == Wild || b == Wild {
		return true
	}
	return Base(a) == Base(b)
}

// Link resolves the connector type realized by the edge a|b. Unmatched and
// closed edges realize None.
func Link(a, b Connector) Connector {
	if !Matches(a, b) {
		return None
	}
	switch {
	case a == Wild && b == Wild:
		return Wild
	case a == Wild:
		return Base(b)
	default:
		return Base(a)
	}
}

// Totals counts realized links by type across a castle.
type Totals struct {
	Diamond int `json:"diamond"`
	Cross   int `json:"cross"`
	Moon    int `json:"moon"`
	Wild    int `json:"wild"`
}

// Add tallies one realized link. None is ignored.
func (t *Totals) Add(c Connector) {
	switch Base(c) {
	case Diamond:
		t.Diamond++
	case Cross:
		t.Cross++
	case Moon:
		t.Moon++
	case Wild:
		t.Wild++
	case None:
	}
}

// Of returns the count for a base connector type.
func (t Totals) Of(c Connector) int {
	switch Base(c) {
	case Diamond:
		return t.Diamond
	case Cross:
		return t.Cross
	case Moon:
		return t.Moon
	case Wild:
		return t.Wild
	default:
		return 0
	}
}
