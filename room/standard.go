package room

// Standard returns the built-in room table.
func Standard() *Catalog {
	rooms := make([]Room, 0, len(standardRooms))
	for _, entry := range standardRooms {
		r, err := Parse(entry.id, entry.name, entry.code)
		if err != nil {
			panic(err)
		}
		rooms = append(rooms, r)
	}
	c, err := NewCatalog(rooms...)
	if err != nil {
		panic(err)
	}
	return c
}

// Connector codes, up/right/down/left:
// n none, a wild, d diamond, c cross, m moon, D/C/M golden.
var standardRooms = []struct {
	id   int
	name string
	code string
}{
	{1, "Armory", "dncn"},
	{2, "Bakery", "mnmn"},
	{3, "Barracks", "ddnc"},
	{4, "Bath House", "nmnm"},
	{5, "Belfry", "cnnn"},
	{6, "Chapel", "mcmn"},
	{7, "Courtyard", "dcmd"},
	{8, "Crypt", "nnDn"},
	{9, "Dungeon", "ccnn"},
	{10, "Forge", "dnDn"},
	{11, "Gallery", "mnnd"},
	{12, "Garden", "amnn"},
	{13, "Gatehouse", "dndn"},
	{14, "Great Hall", "cmdc"},
	{15, "Greenhouse", "mmnn"},
	{16, "Guard Room", "cncn"},
	{17, "Kitchen", "mndn"},
	{18, "Laboratory", "Cnmn"},
	{19, "Larder", "dnnn"},
	{20, "Library", "dmdn"},
	{21, "Mews", "nnca"},
	{22, "Observatory", "Mndn"},
	{23, "Oubliette", "nncn"},
	{24, "Pantry", "nmnn"},
	{25, "Parlor", "cdnm"},
	{26, "Salon", "ancn"},
	{27, "Scriptorium", "ndnD"},
	{28, "Smithy", "cncd"},
	{29, "Solar", "Mmnn"},
	{30, "Stables", "ndnc"},
	{31, "Storeroom", "nnmn"},
	{32, "Study", "dmnn"},
	{33, "Tower", "nCnc"},
	{34, "Treasury", "DnDn"},
	{35, "Vault", "ndmc"},
	{36, "Wine Cellar", "mnca"},
	{101, "Throne Room", "aaaa"},
	{102, "Sunken Throne", "aaaa"},
	{103, "Iron Throne", "aaaa"},
	{104, "Moon Throne", "aaaa"},
}
