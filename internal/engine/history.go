package engine

import "github.com/mcdev12/draftroom/internal/models"

// History holds snapshot-based undo/redo over full session state. Stacks
// are unbounded; snapshots are value copies sharing nothing with live state.
type History struct {
	undo []models.SessionState
	redo []models.SessionState
}

func NewHistory() *History {
	return &History{}
}

// RecordChange pushes a pre-mutation snapshot onto the undo stack and clears
// the redo stack. History is linear: mutating after an undo discards the
// redone branch.
func (h *History) RecordChange(snapshot models.SessionState) {
	h.undo = append(h.undo, snapshot.Clone())
	h.redo = h.redo[:0]
}

// Undo exchanges the current state for the most recent snapshot. The
// displaced current state moves to the redo stack.
func (h *History) Undo(current models.SessionState) (models.SessionState, bool) {
	if len(h.undo) == 0 {
		return models.SessionState{}, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current.Clone())
	return prev, true
}

// Redo re-applies the most recently undone state, moving the displaced
// current state back onto the undo stack.
func (h *History) Redo(current models.SessionState) (models.SessionState, bool) {
	if len(h.redo) == 0 {
		return models.SessionState{}, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current.Clone())
	return next, true
}

// Reset discards both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
