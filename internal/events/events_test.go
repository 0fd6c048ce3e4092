package events

import (
	"context"
	"testing"

	"github.com/abhisek/logiq/internal/store"
)

func TestStoreSinkAppends(t *testing.T) {
	s, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	repo := s.EventRepo()
	if err := repo.Purge(context.Background()); err != nil {
		t.Fatalf("purge: %v", err)
	}

	sink := StoreSink{Repo: repo}
	sink.Emit(PuzzleStarted, map[string]any{"puzzle_id": "sv-doubling"})
	sink.Emit(HintUsed, nil)

	got, err := repo.Recent(context.Background(), 0, "")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[1].Name != PuzzleStarted || got[1].Payload["puzzle_id"] != "sv-doubling" {
		t.Errorf("first event = %s %v", got[1].Name, got[1].Payload)
	}
}

func TestStoreSinkNilRepo(t *testing.T) {
	// Must not panic.
	StoreSink{}.Emit(PuzzleCompleted, nil)
}

func TestNopSink(t *testing.T) {
	NopSink{}.Emit(LevelUp, map[string]any{"level": 2})
}
