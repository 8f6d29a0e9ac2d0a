// Package events defines the draft event envelope and payload types shared
// by the engine, gateway, and outbox publisher.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type identifies a draft event.
type Type string

const (
	TypeDraftStarted     Type = "DraftStarted"
	TypePickCompleted    Type = "PickCompleted"
	TypeThresholdCrossed Type = "ThresholdCrossed"
	TypeClockExpired     Type = "ClockExpired"
	TypeTimerTick        Type = "TimerTick"
	TypeDraftPaused      Type = "DraftPaused"
	TypeDraftResumed     Type = "DraftResumed"
	TypeDraftCompleted   Type = "DraftCompleted"
	TypeUndoApplied      Type = "UndoApplied"
	TypeRedoApplied      Type = "RedoApplied"
)

// Event is the envelope broadcast to clients and published to the bus.
type Event struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// New wraps a payload in an event envelope. Payloads defined in this package
// always marshal; a failure here indicates a programming error, so New panics
// rather than returning an error every caller would have to ignore.
func New(t Type, payload any) Event {
	data, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("events: marshal %s payload: %v", t, err))
	}
	return Event{
		ID:        uuid.New().String(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
