// Package engine implements the authoritative draft session state machine:
// turn pointer, pick history, clock orchestration, and snapshot-based
// undo/redo. All operations go through a single mutex, so access to session
// state is serialized by construction.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/internal/catalog"
	"github.com/mcdev12/draftroom/internal/clock"
	"github.com/mcdev12/draftroom/internal/draftorder"
	"github.com/mcdev12/draftroom/internal/events"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/rs/zerolog/log"
)

// Config holds session-wide settings fixed at construction.
type Config struct {
	Rounds     int
	Durations  clock.DurationPolicy
	WarningSec int
}

// Engine owns the session state. External callers never mutate sub-fields
// directly; every action either succeeds and returns emitted events, or
// fails leaving the session exactly as before the call.
type Engine struct {
	mu  sync.Mutex
	cfg Config

	pool         *catalog.Pool
	clk          *clock.Clock
	participants []models.Participant
	status       models.DraftStatus
	pointer      int
	picks        []models.PickRecord
	history      *History

	now func() time.Time
}

// New creates an engine in the NotStarted state.
func New(cfg Config) (*Engine, error) {
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive: %w", ErrInvalidConfig)
	}
	if cfg.Durations.EarlySeconds <= 0 || cfg.Durations.LateSeconds <= 0 {
		return nil, fmt.Errorf("pick durations must be positive: %w", ErrInvalidConfig)
	}
	return &Engine{
		cfg:     cfg,
		pool:    catalog.NewPool(),
		clk:     clock.New(cfg.WarningSec),
		status:  models.DraftStatusNotStarted,
		history: NewHistory(),
		now:     time.Now,
	}, nil
}

// SetParticipants configures the draft order before the session starts.
// Slot indexes are assigned from list position.
func (e *Engine) SetParticipants(participants []models.Participant) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != models.DraftStatusNotStarted {
		return fmt.Errorf("participants are immutable once the session starts: %w", ErrInvalidConfig)
	}
	e.history.RecordChange(e.snapshotLocked())
	e.setParticipantsLocked(participants)
	return nil
}

// SetParticipantLabel renames a participant before the session starts.
func (e *Engine) SetParticipantLabel(slot int, label string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != models.DraftStatusNotStarted {
		return fmt.Errorf("labels are immutable once the session starts: %w", ErrInvalidConfig)
	}
	if slot < 0 || slot >= len(e.participants) {
		return fmt.Errorf("no participant in slot %d: %w", slot, catalog.ErrNotFound)
	}
	e.history.RecordChange(e.snapshotLocked())
	e.participants[slot].Label = label
	return nil
}

// Start ingests the catalog, arms the clock for round 1, and moves the
// session to InProgress. Passing a nil participant list keeps the roster
// configured via SetParticipants.
func (e *Engine) Start(items []models.Item, participants []models.Participant) ([]events.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != models.DraftStatusNotStarted {
		return nil, fmt.Errorf("session already started: %w", ErrInvalidConfig)
	}
	if participants == nil {
		participants = e.participants
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("no participants configured: %w", ErrInvalidConfig)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot start with an empty catalog: %w", ErrInvalidConfig)
	}

	e.history.RecordChange(e.snapshotLocked())

	if err := e.pool.Ingest(items); err != nil {
		return nil, fmt.Errorf("failed to ingest catalog: %w", err)
	}
	e.setParticipantsLocked(participants)
	e.pointer = 0
	e.picks = nil
	e.status = models.DraftStatusInProgress
	e.clk.Arm(e.cfg.Durations.ForRound(1))

	startedAt := e.now().UTC()
	log.Info().
		Int("participants", len(e.participants)).
		Int("rounds", e.cfg.Rounds).
		Int("catalog_size", e.pool.Len()).
		Msg("draft started")

	return []events.Event{events.New(events.TypeDraftStarted, events.DraftStartedPayload{
		Participants: len(e.participants),
		Rounds:       e.cfg.Rounds,
		TotalPicks:   e.totalPicksLocked(),
		StartedAt:    startedAt,
	})}, nil
}

// Pick records the current slot's selection of the given item, advances the
// pointer, and re-arms the clock for the new pointer's round.
func (e *Engine) Pick(itemID uuid.UUID) ([]events.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.status {
	case models.DraftStatusComplete:
		return nil, ErrDraftComplete
	case models.DraftStatusNotStarted:
		return nil, fmt.Errorf("session not started: %w", ErrInvalidConfig)
	}

	item, ok := e.pool.Get(itemID)
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, catalog.ErrNotFound)
	}
	if item.Taken {
		return nil, fmt.Errorf("item %s: %w", itemID, catalog.ErrAlreadyTaken)
	}

	e.history.RecordChange(e.snapshotLocked())

	slot := draftorder.At(e.pointer, len(e.participants))
	record := models.PickRecord{
		Round:    slot.Round,
		Overall:  slot.Overall,
		Slot:     slot.Participant,
		ItemID:   itemID,
		PickedAt: e.now().UTC(),
	}
	if err := e.pool.MarkTaken(itemID); err != nil {
		return nil, fmt.Errorf("failed to mark item taken: %w", err)
	}
	e.picks = append(e.picks, record)
	e.pointer++

	log.Info().
		Int("round", record.Round).
		Int("overall", record.Overall).
		Int("slot", record.Slot).
		Str("item", item.Name).
		Msg("pick recorded")

	evts := []events.Event{events.New(events.TypePickCompleted, events.PickCompletedPayload{
		Round:            record.Round,
		Overall:          record.Overall,
		Slot:             record.Slot,
		ParticipantLabel: e.participants[record.Slot].Label,
		ItemID:           itemID.String(),
		ItemName:         item.Name,
		Position:         string(item.Position),
		PickedAt:         record.PickedAt,
	})}

	if e.pointer == e.totalPicksLocked() {
		e.status = models.DraftStatusComplete
		e.clk.Stop()
		log.Info().Int("total_picks", e.pointer).Msg("draft completed")
		evts = append(evts, events.New(events.TypeDraftCompleted, events.DraftCompletedPayload{
			TotalPicks:  e.pointer,
			CompletedAt: e.now().UTC(),
		}))
	} else {
		next := draftorder.At(e.pointer, len(e.participants))
		e.clk.Reset(e.cfg.Durations.ForRound(next.Round))
	}

	return evts, nil
}

// Tick advances the clock by one second. Ticks on an idle, paused, or
// expired clock are no-ops; expiry is informational and never advances the
// turn.
func (e *Engine) Tick() []events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.clk.Running() {
		return nil
	}

	current := draftorder.At(e.pointer, len(e.participants))
	signal := e.clk.Tick()

	evts := []events.Event{events.New(events.TypeTimerTick, events.TimerTickPayload{
		RemainingSec: e.clk.Remaining(),
		Paused:       e.clk.Paused(),
	})}

	switch signal {
	case clock.SignalThreshold:
		evts = append(evts, events.New(events.TypeThresholdCrossed, events.ThresholdCrossedPayload{
			RemainingSec: e.clk.Remaining(),
			Round:        current.Round,
			Overall:      current.Overall,
		}))
	case clock.SignalExpired:
		log.Info().Int("overall", current.Overall).Msg("pick clock expired")
		evts = append(evts, events.New(events.TypeClockExpired, events.ClockExpiredPayload{
			Round:     current.Round,
			Overall:   current.Overall,
			ExpiredAt: e.now().UTC(),
		}))
	}
	return evts
}

// Pause freezes the pick clock. Pausing suspends only the clock; picks are
// still accepted while paused. Pausing a clock that is not running is
// harmless and emits nothing.
func (e *Engine) Pause() []events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.clk.Pause(); err != nil {
		return nil
	}
	return []events.Event{events.New(events.TypeDraftPaused, events.DraftPausedPayload{
		PausedAt: e.now().UTC(),
	})}
}

// Resume continues a paused pick clock.
func (e *Engine) Resume() []events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.clk.Resume(); err != nil {
		return nil
	}
	return []events.Event{events.New(events.TypeDraftResumed, events.DraftResumedPayload{
		ResumedAt: e.now().UTC(),
	})}
}

// Undo restores the immediately preceding session snapshot, moving the
// displaced state onto the redo stack.
func (e *Engine) Undo() ([]events.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, ok := e.history.Undo(e.snapshotLocked())
	if !ok {
		return nil, ErrNothingToUndo
	}
	e.restoreLocked(prev)

	log.Info().Int("pointer", e.pointer).Msg("undo applied")
	return []events.Event{events.New(events.TypeUndoApplied, events.UndoAppliedPayload{
		Pointer: e.pointer,
	})}, nil
}

// Redo re-applies the most recently undone snapshot.
func (e *Engine) Redo() ([]events.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, ok := e.history.Redo(e.snapshotLocked())
	if !ok {
		return nil, ErrNothingToRedo
	}
	e.restoreLocked(next)

	log.Info().Int("pointer", e.pointer).Msg("redo applied")
	return []events.Event{events.New(events.TypeRedoApplied, events.RedoAppliedPayload{
		Pointer: e.pointer,
	})}, nil
}

// Reset clears pick history, pointer, and taken flags, detaches the clock,
// and returns to NotStarted. The catalog stays loaded.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pool.ClearTaken()
	e.picks = nil
	e.pointer = 0
	e.status = models.DraftStatusNotStarted
	e.clk.Stop()
	e.history.Reset()

	log.Info().Msg("session reset")
}

// Snapshot returns an independent value copy of the full session state.
func (e *Engine) Snapshot() models.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// RestoreSnapshot reloads session state, e.g. from write-through
// persistence. Undo/redo history does not survive a reload. Snapshots come
// from storage a person can edit, so structural invariants are re-checked
// here rather than trusted.
func (e *Engine) RestoreSnapshot(s models.SessionState) error {
	if s.Pointer != len(s.Picks) {
		return fmt.Errorf("snapshot pointer %d does not match %d picks: %w",
			s.Pointer, len(s.Picks), ErrInvalidConfig)
	}
	if s.Started && len(s.Participants) == 0 {
		return fmt.Errorf("started snapshot names no participants: %w", ErrInvalidConfig)
	}
	if total := e.cfg.Rounds * len(s.Participants); s.Pointer > total {
		return fmt.Errorf("snapshot pointer %d exceeds the %d-pick board: %w",
			s.Pointer, total, ErrInvalidConfig)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.restoreLocked(s)
	e.history.Reset()
	return nil
}

// QueryItems materializes the available items matching the filter, in rank
// order.
func (e *Engine) QueryItems(f catalog.Filter) []models.Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []models.Item
	for item := range e.pool.Query(f) {
		out = append(out, item)
	}
	return out
}

// CurrentSlot reports whose turn it is. The second return is false unless
// the session is in progress.
func (e *Engine) CurrentSlot() (draftorder.Slot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != models.DraftStatusInProgress {
		return draftorder.Slot{}, false
	}
	return draftorder.At(e.pointer, len(e.participants)), true
}

// Status reports the session lifecycle state.
func (e *Engine) Status() models.DraftStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// CanUndo reports whether an Undo would succeed, so clients can disable the
// control instead of issuing a no-op command.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo reports whether a Redo would succeed.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

func (e *Engine) setParticipantsLocked(participants []models.Participant) {
	e.participants = make([]models.Participant, len(participants))
	for i, p := range participants {
		p.Slot = i
		e.participants[i] = p
	}
}

func (e *Engine) totalPicksLocked() int {
	return e.cfg.Rounds * len(e.participants)
}

func (e *Engine) snapshotLocked() models.SessionState {
	return models.SessionState{
		Catalog:        e.pool.Snapshot(),
		Participants:   append([]models.Participant(nil), e.participants...),
		Started:        e.status != models.DraftStatusNotStarted,
		Pointer:        e.pointer,
		Picks:          append([]models.PickRecord(nil), e.picks...),
		ClockPaused:    e.clk.Paused(),
		ClockRemaining: e.clk.Remaining(),
	}
}

func (e *Engine) restoreLocked(s models.SessionState) {
	e.pool.Restore(s.Catalog)
	e.participants = append([]models.Participant(nil), s.Participants...)
	e.pointer = s.Pointer
	e.picks = append([]models.PickRecord(nil), s.Picks...)

	switch {
	case !s.Started:
		e.status = models.DraftStatusNotStarted
	case len(s.Participants) > 0 && s.Pointer >= e.cfg.Rounds*len(s.Participants):
		e.status = models.DraftStatusComplete
	default:
		e.status = models.DraftStatusInProgress
	}
	e.clk.Restore(s.ClockRemaining, s.ClockPaused, e.status == models.DraftStatusInProgress)
}
