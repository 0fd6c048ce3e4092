package session

import "errors"

// All session errors are recoverable and meant for inline display; the
// controller never mutates state before reporting one.
var (
	// ErrNotUnlocked: chamber entry attempted below its required level.
	ErrNotUnlocked = errors.New("chamber not unlocked")

	// ErrChamberExhausted: every puzzle in the chamber is already solved.
	ErrChamberExhausted = errors.New("chamber already completed")

	// ErrPuzzleNotFound: the progress index doesn't match the catalog.
	ErrPuzzleNotFound = errors.New("puzzle not found")

	// ErrNoMoreHints: all hints for the current puzzle are revealed.
	ErrNoMoreHints = errors.New("no more hints")

	// ErrInvalidTransition: the operation isn't valid in the current state.
	ErrInvalidTransition = errors.New("invalid transition")
)
