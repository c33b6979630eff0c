package disaster

import (
	"fmt"
	"math"

	"disastle/connector"
)

// Kind separates the two event pools. Catastrophes resolve exactly like
// disasters but are drawn and counted separately.
type Kind int

const (
	KindDisaster Kind = iota
	KindCatastrophe
)

func (k Kind) String() string {
	if k == KindCatastrophe {
		return "catastrophe"
	}
	return "disaster"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "disaster":
		*k = KindDisaster
	case "catastrophe":
		*k = KindCatastrophe
	default:
		return fmt.Errorf("unknown disaster kind %q", text)
	}
	return nil
}

type Disaster struct {
	Name    string  `json:"name"`
	Kind    Kind    `json:"kind"`
	Diamond Formula `json:"diamond"`
	Cross   Formula `json:"cross"`
	Moon    Formula `json:"moon"`
}

// New parses the three damage formulas of a disaster card.
func New(name string, kind Kind, diamond, cross, moon string) (Disaster, error) {
	d := Disaster{Name: name, Kind: kind}
	var err error
	if d.Diamond, err = ParseFormula(diamond); err != nil {
		return Disaster{}, fmt.Errorf("%s diamond: %w", name, err)
	}
	if d.Cross, err = ParseFormula(cross); err != nil {
		return Disaster{}, fmt.Errorf("%s cross: %w", name, err)
	}
	if d.Moon, err = ParseFormula(moon); err != nil {
		return Disaster{}, fmt.Errorf("%s moon: %w", name, err)
	}
	return d, nil
}

// Damage is the outcome of a disaster against one castle.
type Damage struct {
	Diamond float64
	Cross   float64
	Moon    float64
	Total   float64
}

// Damage evaluates the disaster after x resolved disasters against the
// castle's link totals. Each connector deals max(0, formula(x)*multiplier -
// links) and the total is reduced by reduction, never below zero.
func (d Disaster) Damage(x int, totals connector.Totals, reduction int, multiplier float64) Damage {
	dmg := Damage{
		Diamond: connectorDamage(d.Diamond, x, totals.Diamond, multiplier),
		Cross:   connectorDamage(d.Cross, x, totals.Cross, multiplier),
		Moon:    connectorDamage(d.Moon, x, totals.Moon, multiplier),
	}
	dmg.Total = math.Max(0, dmg.Diamond+dmg.Cross+dmg.Moon-float64(reduction))
	return dmg
}

func connectorDamage(f Formula, x, links int, multiplier float64) float64 {
	return math.Max(0, float64(f.Eval(x))*multiplier-float64(links))
}

func (d Disaster) String() string {
	return fmt.Sprintf("%s(%s %s/%s/%s)", d.Name, d.Kind, d.Diamond, d.Cross, d.Moon)
}
