package disaster

// Standard returns the built-in disaster and catastrophe tables.
func Standard() *Catalog {
	var cards []Disaster
	for _, table := range []struct {
		kind Kind
		rows [][4]string
	}{{KindDisaster, standardDisasters}, {KindCatastrophe, standardCatastrophes}} {
		for _, row := range table.rows {
			d, err := New(row[0], table.kind, row[1], row[2], row[3])
			if err != nil {
				panic(err)
			}
			cards = append(cards, d)
		}
	}
	c, err := NewCatalog(cards...)
	if err != nil {
		panic(err)
	}
	return c
}

// name, diamond, cross, moon
var standardDisasters = [][4]string{
	{"Blizzard", "x", "1", "1"},
	{"Drought", "1", "1+x", "0"},
	{"Earthquake", "2x", "0", "1"},
	{"Famine", "0", "x", "1+x"},
	{"Fire", "1+x", "1", "0"},
	{"Flood", "1", "0", "2x"},
	{"Landslide", "0", "2x", "1"},
	{"Locusts", "x", "x", "0"},
	{"Plague", "1", "1", "x"},
	{"Sandstorm", "0", "1+x", "1"},
	{"Tornado", "2x", "1", "0"},
	{"Tsunami", "1", "0", "1+x"},
}

var standardCatastrophes = [][4]string{
	{"Dragon", "2x", "2x", "x"},
	{"Kraken", "x", "2x", "2x"},
	{"Meteor", "1+x", "1+x", "1+x"},
	{"Volcano", "2x", "x", "2x"},
	{"Zombies", "3", "3", "3"},
}
