package room

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/exp/slices"
)

// Catalog is the immutable lookup table of room cards.
type Catalog struct {
	rooms  map[int]Room
	byName map[string]int
	ids    []int
}

func NewCatalog(rooms ...Room) (*Catalog, error) {
	c := &Catalog{
		rooms:  make(map[int]Room, len(rooms)),
		byName: make(map[string]int, len(rooms)),
	}
	for _, r := range rooms {
		if _, ok := c.rooms[r.ID]; ok {
			return nil, fmt.Errorf("duplicate room id %d", r.ID)
		}
		c.rooms[r.ID] = r
		c.byName[strings.ToLower(r.Name)] = r.ID
		c.ids = append(c.ids, r.ID)
	}
	slices.Sort(c.ids)
	return c, nil
}

// LoadCatalog reads a table of the form {"id": ["name", "code"], ...}.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var table map[string][2]string
	if err := json.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("decode room table: %w", err)
	}
	rooms := make([]Room, 0, len(table))
	for key, entry := range table {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("room id %q: %w", key, err)
		}
		room, err := Parse(id, entry[0], entry[1])
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return NewCatalog(rooms...)
}

func (c *Catalog) Get(id int) (Room, bool) {
	r, ok := c.rooms[id]
	return r, ok
}

// MustGet returns the room or an ErrUnknownRoom error.
func (c *Catalog) MustGet(id int) (Room, error) {
	r, ok := c.rooms[id]
	if !ok {
		return Room{}, fmt.Errorf("%w: %d", ErrUnknownRoom, id)
	}
	return r, nil
}

// Lookup finds a room by name, ignoring case. A miss suggests the closest
// known name.
func (c *Catalog) Lookup(name string) (Room, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := c.byName[key]; ok {
		return c.rooms[id], nil
	}
	best, bestDist := "", -1
	for _, id := range c.ids {
		candidate := c.rooms[id].Name
		dist := levenshtein.ComputeDistance(key, strings.ToLower(candidate))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	if best == "" || bestDist > len(key)/2+1 {
		return Room{}, fmt.Errorf("%w: %q", ErrUnknownRoom, name)
	}
	return Room{}, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownRoom, name, best)
}

// IDs returns every room id in ascending order.
func (c *Catalog) IDs() []int {
	return slices.Clone(c.ids)
}

// Deck returns the ids of every room that can be shuffled into a deck.
func (c *Catalog) Deck() []int {
	var ids []int
	for _, id := range c.ids {
		if !c.rooms[id].IsThrone() {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *Catalog) Thrones() []int {
	var ids []int
	for _, id := range c.ids {
		if c.rooms[id].IsThrone() {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *Catalog) Len() int {
	return len(c.ids)
}
