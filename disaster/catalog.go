package disaster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agnivade/levenshtein"
)

var ErrUnknownDisaster = errors.New("unknown disaster")

// Catalog holds every disaster and catastrophe card. It is never mutated
// after construction.
type Catalog struct {
	disasters    []Disaster
	catastrophes []Disaster
	byName       map[string]Disaster
}

func NewCatalog(cards ...Disaster) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Disaster, len(cards))}
	for _, d := range cards {
		if _, ok := c.byName[d.Name]; ok {
			return nil, fmt.Errorf("duplicate disaster %q", d.Name)
		}
		c.byName[d.Name] = d
		if d.Kind == KindCatastrophe {
			c.catastrophes = append(c.catastrophes, d)
		} else {
			c.disasters = append(c.disasters, d)
		}
	}
	return c, nil
}

// LoadCatalog reads two tables of [name, diamond, cross, moon] rows, one
// per pool. Every formula is validated here.
func LoadCatalog(disasters, catastrophes io.Reader) (*Catalog, error) {
	var cards []Disaster
	for _, table := range []struct {
		r    io.Reader
		kind Kind
	}{{disasters, KindDisaster}, {catastrophes, KindCatastrophe}} {
		var rows [][4]string
		if err := json.NewDecoder(table.r).Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode %s table: %w", table.kind, err)
		}
		for _, row := range rows {
			d, err := New(row[0], table.kind, row[1], row[2], row[3])
			if err != nil {
				return nil, err
			}
			cards = append(cards, d)
		}
	}
	return NewCatalog(cards...)
}

func (c *Catalog) Disasters() []Disaster {
	return append([]Disaster(nil), c.disasters...)
}

func (c *Catalog) Catastrophes() []Disaster {
	return append([]Disaster(nil), c.catastrophes...)
}

// Pool returns the cards of one kind.
func (c *Catalog) Pool(kind Kind) []Disaster {
	if kind == KindCatastrophe {
		return c.Catastrophes()
	}
	return c.Disasters()
}

func (c *Catalog) Get(name string) (Disaster, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Lookup finds a card by name, ignoring case, and suggests the closest name
// on a miss.
func (c *Catalog) Lookup(name string) (Disaster, error) {
	if d, ok := c.byName[name]; ok {
		return d, nil
	}
	key := strings.ToLower(strings.TrimSpace(name))
	best, bestDist := "", -1
	for candidate, d := range c.byName {
		dist := levenshtein.ComputeDistance(key, strings.ToLower(candidate))
		if dist == 0 {
			return d, nil
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && candidate < best) {
			best, bestDist = candidate, dist
		}
	}
	if best == "" || bestDist > len(key)/2+1 {
		return Disaster{}, fmt.Errorf("%w: %q", ErrUnknownDisaster, name)
	}
	return Disaster{}, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownDisaster, name, best)
}

func (c *Catalog) Len() int {
	return len(c.byName)
}
