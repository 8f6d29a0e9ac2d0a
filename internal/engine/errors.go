package engine

import "errors"

var (
	// ErrInvalidConfig is returned when a session cannot start or be
	// reconfigured: empty catalog, no participants, or wrong lifecycle state.
	ErrInvalidConfig = errors.New("invalid session configuration")

	// ErrDraftComplete is returned when a pick is attempted after the final
	// slot has been filled.
	ErrDraftComplete = errors.New("draft is complete")

	// ErrNothingToUndo is returned when the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned when the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)
