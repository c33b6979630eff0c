package disaster

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidDamageSpec = errors.New("invalid damage spec")

type formulaKind int

const (
	constant formulaKind = iota
	linear               // x
	onePlusX             // 1+x
	twoX                 // 2x
)

// Formula is the damage printed for one connector type, as a function of
// the number of disasters already resolved this game.
type Formula struct {
	kind  formulaKind
	value int
}

// Constant returns a formula that ignores x.
func Constant(k int) Formula {
	return Formula{kind: constant, value: k}
}

// ParseFormula accepts a non-negative integer, "x", "1+x" or "2x".
func ParseFormula(s string) (Formula, error) {
	switch strings.ReplaceAll(strings.TrimSpace(s), " ", "") {
	case "x":
		return Formula{kind: linear}, nil
	case "1+x", "x+1":
		return Formula{kind: onePlusX}, nil
	case "2x":
		return Formula{kind: twoX}, nil
	}
	k, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || k < 0 {
		return Formula{}, fmt.Errorf("%w: %q", ErrInvalidDamageSpec, s)
	}
	return Constant(k), nil
}

func (f Formula) Eval(x int) int {
	switch f.kind {
	case linear:
		return x
	case onePlusX:
		return 1 + x
	case twoX:
		return 2 * x
	default:
		return f.value
	}
}

func (f Formula) String() string {
	switch f.kind {
	case linear:
		return "x"
	case onePlusX:
		return "1+x"
	case twoX:
		return "2x"
	default:
		return strconv.Itoa(f.value)
	}
}

func (f Formula) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Formula) UnmarshalText(text []byte) error {
	parsed, err := ParseFormula(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
