package models

import (
	"github.com/google/uuid"
)

// Position defines the roster position of a draftable player.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
)

// itemNamespace is the fixed UUID namespace for deriving item IDs.
// Re-ingesting the same catalog yields the same IDs.
var itemNamespace = uuid.MustParse("7a1c2e4d-90b3-4f6a-8c5e-d2b019f7c3a4")

// Item is a draftable catalog entry. Items are owned by the catalog pool
// and mutated only through MarkTaken / MarkAvailable.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position Position  `json:"position"`
	Team     string    `json:"team"`
	ByeWeek  int       `json:"bye_week"`
	Rank     int       `json:"rank"`
	Taken    bool      `json:"taken"`
}

// ItemID derives the stable identifier for an item from its identity
// attributes.
func ItemID(name, team string, position Position) uuid.UUID {
	return uuid.NewSHA1(itemNamespace, []byte(name+"|"+team+"|"+string(position)))
}
