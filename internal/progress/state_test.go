package progress

import (
	"testing"

	"github.com/abhisek/logiq/internal/catalog"
)

func testDefs() []catalog.ChamberDef {
	return []catalog.ChamberDef{
		{ID: "alpha", Name: "Alpha", UnlockLevel: 1, PuzzleCount: 6},
		{ID: "beta", Name: "Beta", UnlockLevel: 3, PuzzleCount: 6},
		{ID: "gamma", Name: "Gamma", UnlockLevel: 5, PuzzleCount: 6},
	}
}

func TestNewStateDefaults(t *testing.T) {
	st := NewState(testDefs())

	if st.User.Level != 1 {
		t.Errorf("level = %d, want 1", st.User.Level)
	}
	if st.User.XP != 0 {
		t.Errorf("xp = %d, want 0", st.User.XP)
	}
	if st.User.XPToNextLevel != 100 {
		t.Errorf("xpToNextLevel = %d, want 100", st.User.XPToNextLevel)
	}
	if len(st.Chambers) != 3 {
		t.Fatalf("got %d chambers, want 3", len(st.Chambers))
	}
	if st.ChambersUnlocked != 1 {
		t.Errorf("chambers unlocked = %d, want 1", st.ChambersUnlocked)
	}
	if !st.Chambers[0].Unlocked || st.Chambers[1].Unlocked || st.Chambers[2].Unlocked {
		t.Error("only the level-1 chamber should start unlocked")
	}
}

func TestChamberLookup(t *testing.T) {
	st := NewState(testDefs())

	if ch := st.Chamber("beta"); ch == nil || ch.ID != "beta" {
		t.Errorf("Chamber(beta) = %v", ch)
	}
	if ch := st.Chamber("missing"); ch != nil {
		t.Errorf("Chamber(missing) = %v, want nil", ch)
	}
}

func TestRecomputeUnlocks(t *testing.T) {
	tests := []struct {
		level     int
		wantCount int
		wantBeta  bool
		wantGamma bool
	}{
		{1, 1, false, false},
		{2, 1, false, false},
		{3, 2, true, false},
		{4, 2, true, false},
		{5, 3, true, true},
		{9, 3, true, true},
	}

	for _, tt := range tests {
		st := NewState(testDefs())
		st.User.Level = tt.level
		RecomputeUnlocks(st)

		if st.ChambersUnlocked != tt.wantCount {
			t.Errorf("level %d: unlocked count = %d, want %d", tt.level, st.ChambersUnlocked, tt.wantCount)
		}
		if st.Chamber("beta").Unlocked != tt.wantBeta {
			t.Errorf("level %d: beta unlocked = %v, want %v", tt.level, st.Chamber("beta").Unlocked, tt.wantBeta)
		}
		if st.Chamber("gamma").Unlocked != tt.wantGamma {
			t.Errorf("level %d: gamma unlocked = %v, want %v", tt.level, st.Chamber("gamma").Unlocked, tt.wantGamma)
		}
	}
}

func TestRecomputeUnlocksIdempotent(t *testing.T) {
	st := NewState(testDefs())
	st.User.Level = 3

	RecomputeUnlocks(st)
	first := st.ChambersUnlocked
	RecomputeUnlocks(st)

	if st.ChambersUnlocked != first {
		t.Errorf("second recompute changed count: %d -> %d", first, st.ChambersUnlocked)
	}
}

func TestRecordSolve(t *testing.T) {
	var cp ChamberProgress

	cp.RecordSolve(1, 0)
	if cp.Completed != 1 || cp.AttemptsTotal != 1 || cp.AccuracyPercent != 100 {
		t.Errorf("after clean solve: %+v", cp)
	}

	cp.RecordSolve(3, 2)
	if cp.Completed != 2 {
		t.Errorf("completed = %d, want 2", cp.Completed)
	}
	if cp.AttemptsTotal != 4 {
		t.Errorf("attemptsTotal = %d, want 4", cp.AttemptsTotal)
	}
	if cp.HintsUsedTotal != 2 {
		t.Errorf("hintsUsedTotal = %d, want 2", cp.HintsUsedTotal)
	}
	// 2 solved over 4 attempts, rounded.
	if cp.AccuracyPercent != 50 {
		t.Errorf("accuracyPercent = %d, want 50", cp.AccuracyPercent)
	}
}

func TestAccuracyPercent(t *testing.T) {
	tests := []struct {
		completed int
		attempts  int
		want      int
	}{
		{0, 0, 0},
		{1, 1, 100},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{5, 7, 71},
		{3, 1, 100}, // capped
	}

	for _, tt := range tests {
		got := accuracyPercent(tt.completed, tt.attempts)
		if got != tt.want {
			t.Errorf("accuracyPercent(%d, %d) = %d, want %d", tt.completed, tt.attempts, got, tt.want)
		}
	}
}
