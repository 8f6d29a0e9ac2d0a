package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus defines the lifecycle state of a draft session.
type DraftStatus string

const (
	DraftStatusNotStarted DraftStatus = "NOT_STARTED"
	DraftStatusInProgress DraftStatus = "IN_PROGRESS"
	DraftStatusComplete   DraftStatus = "COMPLETE"
)

// Participant occupies a fixed slot in the draft order. The slot index is
// the participant's identity; labels are editable only before the session
// starts.
type Participant struct {
	Slot  int    `json:"slot"`
	Label string `json:"label"`
}

// PickRecord is one completed pick. Records are immutable once created and
// removed only by undo.
type PickRecord struct {
	Round    int       `json:"round"`
	Overall  int       `json:"overall"`
	Slot     int       `json:"slot"`
	ItemID   uuid.UUID `json:"item_id"`
	PickedAt time.Time `json:"picked_at"`
}

// SessionState is the flat serializable record of an entire draft session,
// suitable for write-through persistence and reload.
//
// Invariant: Pointer == len(Picks), and the set of taken catalog items is
// exactly the set of items referenced by Picks.
type SessionState struct {
	Catalog        []Item        `json:"catalog"`
	Participants   []Participant `json:"participants"`
	Started        bool          `json:"started"`
	Pointer        int           `json:"pointer"`
	Picks          []PickRecord  `json:"picks"`
	ClockPaused    bool          `json:"clock_paused"`
	ClockRemaining int           `json:"clock_remaining_sec"`
}

// Clone returns a deep copy sharing no mutable structure with the receiver.
// All slice elements are value types, so copying the slices is sufficient.
func (s SessionState) Clone() SessionState {
	out := s
	out.Catalog = append([]Item(nil), s.Catalog...)
	out.Participants = append([]Participant(nil), s.Participants...)
	out.Picks = append([]PickRecord(nil), s.Picks...)
	return out
}
