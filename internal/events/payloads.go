package events

import (
	"encoding/json"
	"time"
)

// DraftStartedPayload is the payload for a DraftStarted event.
type DraftStartedPayload struct {
	Participants int       `json:"participants"`
	Rounds       int       `json:"rounds"`
	TotalPicks   int       `json:"total_picks"`
	StartedAt    time.Time `json:"started_at"`
}

// PickCompletedPayload is the payload for a PickCompleted event.
type PickCompletedPayload struct {
	Round            int       `json:"round"`
	Overall          int       `json:"overall"`
	Slot             int       `json:"slot"`
	ParticipantLabel string    `json:"participant_label"`
	ItemID           string    `json:"item_id"`
	ItemName         string    `json:"item_name"`
	Position         string    `json:"position"`
	PickedAt         time.Time `json:"picked_at"`
}

// ThresholdCrossedPayload fires once per turn when remaining time first
// reaches the warning mark.
type ThresholdCrossedPayload struct {
	RemainingSec int `json:"remaining_sec"`
	Round        int `json:"round"`
	Overall      int `json:"overall"`
}

// ClockExpiredPayload is informational only; expiry never advances the turn.
type ClockExpiredPayload struct {
	Round     int       `json:"round"`
	Overall   int       `json:"overall"`
	ExpiredAt time.Time `json:"expired_at"`
}

// TimerTickPayload contains periodic timer updates for connected clients.
type TimerTickPayload struct {
	RemainingSec int  `json:"remaining_sec"`
	Paused       bool `json:"paused"`
}

// DraftPausedPayload is the payload for a DraftPaused event.
type DraftPausedPayload struct {
	PausedAt time.Time `json:"paused_at"`
}

// DraftResumedPayload is the payload for a DraftResumed event.
type DraftResumedPayload struct {
	ResumedAt time.Time `json:"resumed_at"`
}

// DraftCompletedPayload is the payload for a DraftCompleted event.
type DraftCompletedPayload struct {
	TotalPicks  int       `json:"total_picks"`
	CompletedAt time.Time `json:"completed_at"`
}

// UndoAppliedPayload reports the pick pointer after an undo.
type UndoAppliedPayload struct {
	Pointer int `json:"pointer"`
}

// RedoAppliedPayload reports the pick pointer after a redo.
type RedoAppliedPayload struct {
	Pointer int `json:"pointer"`
}

// ParseEventPayload parses event data into the appropriate payload struct.
func ParseEventPayload(event Event) (any, error) {
	switch event.Type {
	case TypeDraftStarted:
		return unmarshalPayload[DraftStartedPayload](event.Data)
	case TypePickCompleted:
		return unmarshalPayload[PickCompletedPayload](event.Data)
	case TypeThresholdCrossed:
		return unmarshalPayload[ThresholdCrossedPayload](event.Data)
	case TypeClockExpired:
		return unmarshalPayload[ClockExpiredPayload](event.Data)
	case TypeTimerTick:
		return unmarshalPayload[TimerTickPayload](event.Data)
	case TypeDraftPaused:
		return unmarshalPayload[DraftPausedPayload](event.Data)
	case TypeDraftResumed:
		return unmarshalPayload[DraftResumedPayload](event.Data)
	case TypeDraftCompleted:
		return unmarshalPayload[DraftCompletedPayload](event.Data)
	case TypeUndoApplied:
		return unmarshalPayload[UndoAppliedPayload](event.Data)
	case TypeRedoApplied:
		return unmarshalPayload[RedoAppliedPayload](event.Data)
	default:
		return nil, nil // unknown event type
	}
}

func unmarshalPayload[T any](data json.RawMessage) (T, error) {
	var payload T
	err := json.Unmarshal(data, &payload)
	return payload, err
}
