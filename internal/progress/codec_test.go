package progress

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSerializeLoadRoundTrip(t *testing.T) {
	st := NewState(testDefs())
	st.User.Level = 3
	st.User.XP = 40
	st.User.XPToNextLevel = 121
	st.User.TotalSolved = 9
	st.User.CurrentStreak = 4
	st.Chamber("alpha").Progress = ChamberProgress{
		Completed:       6,
		AttemptsTotal:   8,
		HintsUsedTotal:  3,
		AccuracyPercent: 75,
	}
	st.Chamber("beta").Progress = ChamberProgress{
		Completed:       3,
		AttemptsTotal:   5,
		HintsUsedTotal:  1,
		AccuracyPercent: 60,
	}
	RecomputeUnlocks(st)
	st.LastSaved = time.UnixMilli(1_700_000_000_000)

	blob, err := Serialize(st)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	got := Load(blob, testDefs())

	if got.User != st.User {
		t.Errorf("user = %+v, want %+v", got.User, st.User)
	}
	if got.Chamber("alpha").Progress != st.Chamber("alpha").Progress {
		t.Errorf("alpha progress = %+v, want %+v", got.Chamber("alpha").Progress, st.Chamber("alpha").Progress)
	}
	if got.Chamber("beta").Progress != st.Chamber("beta").Progress {
		t.Errorf("beta progress = %+v, want %+v", got.Chamber("beta").Progress, st.Chamber("beta").Progress)
	}
	if !got.LastSaved.Equal(st.LastSaved) {
		t.Errorf("lastSaved = %v, want %v", got.LastSaved, st.LastSaved)
	}
	// Unlocks are derived, never trusted from the blob.
	if got.ChambersUnlocked != 2 {
		t.Errorf("chambers unlocked = %d, want 2", got.ChambersUnlocked)
	}
}

func TestSerializeChamberOrderAndShape(t *testing.T) {
	st := NewState(testDefs())
	blob, err := Serialize(st)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	var doc struct {
		Chambers []json.RawMessage `json:"chambers"`
	}
	if err := json.Unmarshal(blob, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Chambers) != 3 {
		t.Fatalf("got %d chamber entries, want 3", len(doc.Chambers))
	}

	wantIDs := []string{"alpha", "beta", "gamma"}
	for i, raw := range doc.Chambers {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil {
			t.Fatalf("entry %d is not an array: %v", i, err)
		}
		if len(pair) != 2 {
			t.Fatalf("entry %d has %d elements, want 2", i, len(pair))
		}
		var id string
		if err := json.Unmarshal(pair[0], &id); err != nil {
			t.Fatalf("entry %d id: %v", i, err)
		}
		if id != wantIDs[i] {
			t.Errorf("entry %d id = %q, want %q", i, id, wantIDs[i])
		}
	}
}

func TestLoadEmptyBlob(t *testing.T) {
	st := Load(nil, testDefs())

	if st.User.Level != 1 || st.User.XP != 0 || st.User.XPToNextLevel != 100 {
		t.Errorf("user = %+v, want fresh defaults", st.User)
	}
	if len(st.Chambers) != 3 {
		t.Errorf("got %d chambers, want 3", len(st.Chambers))
	}
}

func TestLoadCorruptBlob(t *testing.T) {
	st := Load([]byte("{not json"), testDefs())

	if st.User.Level != 1 || st.User.XP != 0 {
		t.Errorf("user = %+v, want fresh defaults", st.User)
	}
	if st.ChambersUnlocked != 1 {
		t.Errorf("chambers unlocked = %d, want 1", st.ChambersUnlocked)
	}
}

func TestLoadPartialUserOverlay(t *testing.T) {
	blob := []byte(`{"user":{"level":4,"totalSolved":12}}`)
	st := Load(blob, testDefs())

	if st.User.Level != 4 {
		t.Errorf("level = %d, want 4", st.User.Level)
	}
	if st.User.TotalSolved != 12 {
		t.Errorf("totalSolved = %d, want 12", st.User.TotalSolved)
	}
	// Missing fields keep defaults.
	if st.User.XP != 0 || st.User.XPToNextLevel != 100 {
		t.Errorf("xp/threshold = %d/%d, want 0/100", st.User.XP, st.User.XPToNextLevel)
	}
	// Unlocks follow the restored level.
	if st.ChambersUnlocked != 2 {
		t.Errorf("chambers unlocked = %d, want 2", st.ChambersUnlocked)
	}
}

func TestLoadRestoresXPInvariant(t *testing.T) {
	blob := []byte(`{"user":{"level":2,"xp":500,"xpToNextLevel":110}}`)
	st := Load(blob, testDefs())

	if st.User.XP != 109 {
		t.Errorf("xp = %d, want clamped to 109", st.User.XP)
	}
}

func TestLoadRejectsNegativeUserFields(t *testing.T) {
	blob := []byte(`{"user":{"level":-2,"xp":-5,"currentStreak":-1}}`)
	st := Load(blob, testDefs())

	if st.User.Level != 1 || st.User.XP != 0 || st.User.CurrentStreak != 0 {
		t.Errorf("user = %+v, want defaults for negative fields", st.User)
	}
}

func TestLoadSkipsUnknownAndCorruptChambers(t *testing.T) {
	blob := []byte(`{
		"user": {"level": 1},
		"chambers": [
			["vanished", {"progress": {"completed": 4}}],
			"not-a-pair",
			["alpha"],
			["alpha", {"progress": {"completed": 2, "attemptsTotal": 3, "hintsUsedTotal": 1, "accuracyPercent": 67}}]
		]
	}`)
	st := Load(blob, testDefs())

	if len(st.Chambers) != 3 {
		t.Fatalf("got %d chambers, want catalog's 3", len(st.Chambers))
	}
	got := st.Chamber("alpha").Progress
	want := ChamberProgress{Completed: 2, AttemptsTotal: 3, HintsUsedTotal: 1, AccuracyPercent: 67}
	if got != want {
		t.Errorf("alpha progress = %+v, want %+v", got, want)
	}
}

func TestLoadClampsChamberProgress(t *testing.T) {
	blob := []byte(`{
		"chambers": [
			["alpha", {"progress": {"completed": 99, "attemptsTotal": 2, "hintsUsedTotal": -4, "accuracyPercent": 250}}]
		]
	}`)
	st := Load(blob, testDefs())

	got := st.Chamber("alpha").Progress
	if got.Completed != 6 {
		t.Errorf("completed = %d, want clamped to puzzle count 6", got.Completed)
	}
	if got.AttemptsTotal != 6 {
		t.Errorf("attemptsTotal = %d, want raised to completed", got.AttemptsTotal)
	}
	if got.HintsUsedTotal != 0 {
		t.Errorf("hintsUsedTotal = %d, want 0", got.HintsUsedTotal)
	}
	if got.AccuracyPercent != 100 {
		t.Errorf("accuracyPercent = %d, want recomputed 100", got.AccuracyPercent)
	}
}

func TestLoadCatalogShapeWins(t *testing.T) {
	// The blob claims different unlock levels; the catalog decides.
	blob := []byte(`{
		"chambers": [
			["gamma", {"progress": {"completed": 1, "attemptsTotal": 1}, "unlockLevel": 1, "puzzleCount": 99}]
		]
	}`)
	st := Load(blob, testDefs())

	ch := st.Chamber("gamma")
	if ch.UnlockLevel != 5 {
		t.Errorf("unlockLevel = %d, want catalog's 5", ch.UnlockLevel)
	}
	if ch.PuzzleCount != 6 {
		t.Errorf("puzzleCount = %d, want catalog's 6", ch.PuzzleCount)
	}
	if ch.Unlocked {
		t.Error("gamma must stay locked at level 1")
	}
}
