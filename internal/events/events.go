// Package events defines the analytics event sink the session
// controller emits to after committed transitions.
package events

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/logiq/internal/store"
)

// Event names emitted by the session controller.
const (
	PuzzleStarted       = "puzzle_started"
	PuzzleCompleted     = "puzzle_completed"
	PuzzleAttemptFailed = "puzzle_attempt_failed"
	HintUsed            = "hint_used"
	LevelUp             = "level_up"
)

// Sink receives named events with flat key/value payloads. Delivery is
// fire-and-forget: implementations must never block or fail the
// operation that triggered the event.
type Sink interface {
	Emit(name string, fields map[string]any)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(string, map[string]any) {}

// StoreSink appends events to the store's event log, best-effort.
type StoreSink struct {
	Repo store.EventRepo
}

func (s StoreSink) Emit(name string, fields map[string]any) {
	if s.Repo == nil {
		return
	}
	// Log the event but never fail the caller's operation.
	if err := s.Repo.Append(context.Background(), name, fields); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record %s event: %v\n", name, err)
	}
}
