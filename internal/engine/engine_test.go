package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/internal/catalog"
	"github.com/mcdev12/draftroom/internal/clock"
	"github.com/mcdev12/draftroom/internal/events"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 27, 19, 0, 0, 0, time.UTC)

func testItems(n int) []models.Item {
	items := make([]models.Item, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("Player %02d", i+1)
		items[i] = models.Item{
			ID:       models.ItemID(name, "FA", models.PositionWR),
			Name:     name,
			Position: models.PositionWR,
			Team:     "FA",
			ByeWeek:  5,
			Rank:     i + 1,
		}
	}
	return items
}

func testParticipants(labels ...string) []models.Participant {
	out := make([]models.Participant, len(labels))
	for i, label := range labels {
		out[i] = models.Participant{Slot: i, Label: label}
	}
	return out
}

func newTestEngine(t *testing.T, rounds int) *Engine {
	t.Helper()
	e, err := New(Config{
		Rounds:     rounds,
		Durations:  clock.DurationPolicy{EarlySeconds: 120, LateSeconds: 60},
		WarningSec: 10,
	})
	require.NoError(t, err)
	e.now = func() time.Time { return testNow }
	return e
}

func startedEngine(t *testing.T, rounds, participants, catalogSize int) *Engine {
	t.Helper()
	e := newTestEngine(t, rounds)
	labels := make([]string, participants)
	for i := range labels {
		labels[i] = fmt.Sprintf("Team %d", i+1)
	}
	_, err := e.Start(testItems(catalogSize), testParticipants(labels...))
	require.NoError(t, err)
	return e
}

func eventTypes(evts []events.Event) []events.Type {
	out := make([]events.Type, len(evts))
	for i, e := range evts {
		out[i] = e.Type
	}
	return out
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Rounds: 0, Durations: clock.DurationPolicy{EarlySeconds: 1, LateSeconds: 1}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(Config{Rounds: 1, Durations: clock.DurationPolicy{EarlySeconds: 0, LateSeconds: 60}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStart_Validation(t *testing.T) {
	e := newTestEngine(t, 2)

	_, err := e.Start(nil, testParticipants("A", "B"))
	assert.ErrorIs(t, err, ErrInvalidConfig, "empty catalog")

	_, err = e.Start(testItems(4), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig, "no participants")

	_, err = e.Start(testItems(4), testParticipants("A", "B"))
	require.NoError(t, err)

	_, err = e.Start(testItems(4), testParticipants("A", "B"))
	assert.ErrorIs(t, err, ErrInvalidConfig, "double start")
}

func TestStart_EmitsDraftStarted(t *testing.T) {
	e := newTestEngine(t, 2)

	evts, err := e.Start(testItems(4), testParticipants("A", "B"))
	require.NoError(t, err)
	require.Len(t, evts, 1)
	assert.Equal(t, events.TypeDraftStarted, evts[0].Type)

	payload, err := events.ParseEventPayload(evts[0])
	require.NoError(t, err)
	assert.Equal(t, events.DraftStartedPayload{
		Participants: 2,
		Rounds:       2,
		TotalPicks:   4,
		StartedAt:    testNow,
	}, payload)
}

func TestPick_FullSnakeSession(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	items := testItems(6)

	wantSlots := []int{0, 1, 1, 0} // two participants, two rounds

	for i, wantSlot := range wantSlots {
		evts, err := e.Pick(items[i].ID)
		require.NoError(t, err)
		require.NotEmpty(t, evts)
		assert.Equal(t, events.TypePickCompleted, evts[0].Type)

		snap := e.Snapshot()
		rec := snap.Picks[len(snap.Picks)-1]
		assert.Equal(t, wantSlot, rec.Slot)
		assert.Equal(t, i+1, rec.Overall)
		assert.Equal(t, snap.Pointer, len(snap.Picks), "pointer tracks history length")
	}

	assert.Equal(t, models.DraftStatusComplete, e.Status())

	// Overall numbers are 1..4 with no gaps, no item drafted twice.
	snap := e.Snapshot()
	seenItems := make(map[uuid.UUID]bool)
	for i, rec := range snap.Picks {
		assert.Equal(t, i+1, rec.Overall)
		assert.False(t, seenItems[rec.ItemID])
		seenItems[rec.ItemID] = true
	}

	_, err := e.Pick(items[4].ID)
	assert.ErrorIs(t, err, ErrDraftComplete)
}

func TestPick_LastPickEmitsDraftCompleted(t *testing.T) {
	e := startedEngine(t, 1, 2, 4)
	items := testItems(4)

	_, err := e.Pick(items[0].ID)
	require.NoError(t, err)

	evts, err := e.Pick(items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []events.Type{events.TypePickCompleted, events.TypeDraftCompleted}, eventTypes(evts))
}

func TestPick_RejectionsLeaveStateUntouched(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	items := testItems(6)

	_, err := e.Pick(items[0].ID)
	require.NoError(t, err)
	before := e.Snapshot()

	_, err = e.Pick(uuid.New())
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, before, e.Snapshot())

	_, err = e.Pick(items[0].ID)
	assert.ErrorIs(t, err, catalog.ErrAlreadyTaken)
	assert.Equal(t, before, e.Snapshot())
}

func TestPick_NotStarted(t *testing.T) {
	e := newTestEngine(t, 2)
	_, err := e.Pick(uuid.New())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUndoRedo_RoundTripReproducesState(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	items := testItems(6)

	_, err := e.Pick(items[0].ID)
	require.NoError(t, err)
	_, err = e.Pick(items[1].ID)
	require.NoError(t, err)

	before := e.Snapshot()

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, 1, e.Snapshot().Pointer)

	_, err = e.Redo()
	require.NoError(t, err)
	assert.Equal(t, before, e.Snapshot(), "undo then redo is structural identity")
}

func TestUndo_RevertsTakenFlagsAndClock(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	items := testItems(6)

	_, err := e.Pick(items[0].ID)
	require.NoError(t, err)

	_, err = e.Undo()
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Zero(t, snap.Pointer)
	assert.Empty(t, snap.Picks)
	for _, item := range snap.Catalog {
		assert.False(t, item.Taken)
	}
	assert.Equal(t, 120, snap.ClockRemaining, "round 1 clock restored")

	// The undone pick can be made again.
	_, err = e.Pick(items[0].ID)
	require.NoError(t, err)
}

func TestUndo_AcrossStartReturnsToNotStarted(t *testing.T) {
	e := newTestEngine(t, 2)
	_, err := e.Start(testItems(4), testParticipants("A", "B"))
	require.NoError(t, err)

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, models.DraftStatusNotStarted, e.Status())

	_, err = e.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestRedo_ClearedByNewMutation(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	items := testItems(6)

	_, err := e.Pick(items[0].ID)
	require.NoError(t, err)
	_, err = e.Undo()
	require.NoError(t, err)

	_, err = e.Pick(items[1].ID)
	require.NoError(t, err)

	_, err = e.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo, "history is linear, no branching")
}

func TestRedo_EmptyStack(t *testing.T) {
	e := newTestEngine(t, 2)
	_, err := e.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestCanUndoCanRedo(t *testing.T) {
	e := newTestEngine(t, 2)
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())

	_, err := e.Start(testItems(4), testParticipants("A", "B"))
	require.NoError(t, err)
	assert.True(t, e.CanUndo())
	assert.False(t, e.CanRedo())

	_, err = e.Undo()
	require.NoError(t, err)
	assert.False(t, e.CanUndo())
	assert.True(t, e.CanRedo())

	_, err = e.Redo()
	require.NoError(t, err)
	assert.True(t, e.CanUndo())
	assert.False(t, e.CanRedo())

	// A reload wipes history in both directions.
	require.NoError(t, e.RestoreSnapshot(e.Snapshot()))
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())
}

func TestPause_PickStillAccepted(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	items := testItems(6)

	evts := e.Pause()
	require.Len(t, evts, 1)
	assert.Equal(t, events.TypeDraftPaused, evts[0].Type)

	// Pausing suspends only the clock, never the session.
	_, err := e.Pick(items[0].ID)
	require.NoError(t, err)
	assert.True(t, e.Snapshot().ClockPaused, "re-armed clock keeps paused intent")

	evts = e.Resume()
	require.Len(t, evts, 1)
	assert.Equal(t, events.TypeDraftResumed, evts[0].Type)
}

func TestPause_NotRunningIsSilent(t *testing.T) {
	e := newTestEngine(t, 2)
	assert.Empty(t, e.Pause())
	assert.Empty(t, e.Resume())
}

func TestTick_ThresholdAndExpiry(t *testing.T) {
	e := newTestEngine(t, 1)
	e.cfg.Durations = clock.DurationPolicy{EarlySeconds: 12, LateSeconds: 12}
	_, err := e.Start(testItems(2), testParticipants("A"))
	require.NoError(t, err)

	var thresholds, expiries int
	for i := 0; i < 20; i++ {
		for _, evt := range e.Tick() {
			switch evt.Type {
			case events.TypeThresholdCrossed:
				thresholds++
			case events.TypeClockExpired:
				expiries++
			}
		}
	}

	assert.Equal(t, 1, thresholds)
	assert.Equal(t, 1, expiries)

	// Expiry is informational only: the turn does not advance.
	snap := e.Snapshot()
	assert.Zero(t, snap.Pointer)
	assert.Equal(t, models.DraftStatusInProgress, e.Status())
	assert.Zero(t, snap.ClockRemaining)

	assert.Empty(t, e.Tick(), "expired clock ignores further ticks")
}

func TestTick_ReArmsPerRoundPolicy(t *testing.T) {
	e := startedEngine(t, 5, 1, 6)
	items := testItems(6)

	assert.Equal(t, 120, e.Snapshot().ClockRemaining)

	for i := 0; i < 4; i++ {
		_, err := e.Pick(items[i].ID)
		require.NoError(t, err)
	}

	// Pointer is now in round 5: the short duration applies.
	assert.Equal(t, 60, e.Snapshot().ClockRemaining)
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	items := testItems(6)
	_, err := e.Pick(items[0].ID)
	require.NoError(t, err)

	snap := e.Snapshot()

	restored := newTestEngine(t, 2)
	require.NoError(t, restored.RestoreSnapshot(snap))
	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, models.DraftStatusInProgress, restored.Status())

	// A restored session keeps drafting.
	_, err = restored.Pick(items[1].ID)
	require.NoError(t, err)
}

func TestRestoreSnapshot_RejectsInconsistentPointer(t *testing.T) {
	e := newTestEngine(t, 2)
	err := e.RestoreSnapshot(models.SessionState{Pointer: 3})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRestoreSnapshot_RejectsStartedWithoutParticipants(t *testing.T) {
	e := newTestEngine(t, 2)

	err := e.RestoreSnapshot(models.SessionState{Started: true, ClockRemaining: 30})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	// The rejected snapshot must leave the engine untouched: no running
	// clock, so ticking stays a no-op instead of acting on a phantom turn.
	assert.Equal(t, models.DraftStatusNotStarted, e.Status())
	assert.Empty(t, e.Tick())
}

func TestRestoreSnapshot_RejectsPointerBeyondBoard(t *testing.T) {
	e := newTestEngine(t, 2) // 2 rounds x 2 participants = 4 picks
	items := testItems(6)

	picks := make([]models.PickRecord, 5)
	for i := range picks {
		picks[i] = models.PickRecord{Round: 1, Overall: i + 1, ItemID: items[i].ID, PickedAt: testNow}
	}
	err := e.RestoreSnapshot(models.SessionState{
		Catalog:      items,
		Participants: testParticipants("A", "B"),
		Started:      true,
		Pointer:      5,
		Picks:        picks,
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, models.DraftStatusNotStarted, e.Status())
}

func TestSnapshot_IsIndependentCopy(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	snap := e.Snapshot()
	snap.Catalog[0].Taken = true
	snap.Participants[0].Label = "mutated"

	fresh := e.Snapshot()
	assert.False(t, fresh.Catalog[0].Taken)
	assert.NotEqual(t, "mutated", fresh.Participants[0].Label)
}

func TestSetParticipantLabel(t *testing.T) {
	e := newTestEngine(t, 2)
	require.NoError(t, e.SetParticipants(testParticipants("A", "B")))

	require.NoError(t, e.SetParticipantLabel(1, "Renamed"))
	assert.Equal(t, "Renamed", e.Snapshot().Participants[1].Label)

	assert.ErrorIs(t, e.SetParticipantLabel(5, "nope"), catalog.ErrNotFound)

	// Label edits are undoable configuration changes.
	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, "B", e.Snapshot().Participants[1].Label)

	_, err = e.Start(testItems(4), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, e.SetParticipantLabel(0, "late"), ErrInvalidConfig)
	assert.ErrorIs(t, e.SetParticipants(testParticipants("X")), ErrInvalidConfig)
}

func TestReset(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	items := testItems(6)
	_, err := e.Pick(items[0].ID)
	require.NoError(t, err)

	e.Reset()

	snap := e.Snapshot()
	assert.Equal(t, models.DraftStatusNotStarted, e.Status())
	assert.Zero(t, snap.Pointer)
	assert.Empty(t, snap.Picks)
	assert.Len(t, snap.Catalog, 6, "catalog stays loaded")
	for _, item := range snap.Catalog {
		assert.False(t, item.Taken)
	}
	assert.Zero(t, snap.ClockRemaining)

	_, err = e.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestCurrentSlot(t *testing.T) {
	e := newTestEngine(t, 2)
	_, ok := e.CurrentSlot()
	assert.False(t, ok)

	_, err := e.Start(testItems(4), testParticipants("A", "B"))
	require.NoError(t, err)

	slot, ok := e.CurrentSlot()
	require.True(t, ok)
	assert.Equal(t, 1, slot.Round)
	assert.Equal(t, 0, slot.Participant)
}

func TestQueryItems(t *testing.T) {
	e := startedEngine(t, 2, 2, 6)
	items := testItems(6)

	_, err := e.Pick(items[0].ID)
	require.NoError(t, err)

	available := e.QueryItems(catalog.Filter{})
	assert.Len(t, available, 5)

	named := e.QueryItems(catalog.Filter{Search: "player 03"})
	require.Len(t, named, 1)
	assert.Equal(t, "Player 03", named[0].Name)
}
