// meta/meta.go
package meta

// ShopSize is the number of rooms dealt to the shop each round.
const ShopSize = 5

// SafeCards is the default number of rooms kept on top of the deck so the
// opening shops cannot surface a disaster.
const SafeCards = 15

// Disasters and Catastrophes are the default counts shuffled into a deck.
const (
	Disasters    = 6
	Catastrophes = 3
)

// GridRadius bounds castle coordinates to [-GridRadius, GridRadius].
const GridRadius = 50

// ThroneRoomIDStart is the first room id reserved for throne rooms.
const ThroneRoomIDStart = 101
