package progress

import (
	"time"

	"github.com/abhisek/logiq/internal/catalog"
)

// defaultXPToNextLevel is the threshold for a fresh level-1 profile.
const defaultXPToNextLevel = 100

// Profile is the persistent per-player progression record.
// The XP invariant: XP < XPToNextLevel after every progression update.
type Profile struct {
	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPToNextLevel int `json:"xpToNextLevel"`
	TotalSolved   int `json:"totalSolved"`
	CurrentStreak int `json:"currentStreak"`
}

// ChamberProgress is the persistent per-chamber progress record.
// AttemptsTotal counts every submitted answer in the chamber so
// AccuracyPercent can be recomputed incrementally.
type ChamberProgress struct {
	Completed       int `json:"completed"`
	AttemptsTotal   int `json:"attemptsTotal"`
	HintsUsedTotal  int `json:"hintsUsedTotal"`
	AccuracyPercent int `json:"accuracyPercent"`
}

// ChamberState pairs a chamber definition with its progress.
// Unlocked is derived from UnlockLevel vs the profile level and is
// recomputed, never persisted.
type ChamberState struct {
	ID          string
	UnlockLevel int
	PuzzleCount int
	Unlocked    bool
	Progress    ChamberProgress
}

// State is the canonical progress value: one profile plus the chamber
// states in catalog order. ChambersUnlocked is derived.
type State struct {
	User             Profile
	Chambers         []*ChamberState
	ChambersUnlocked int
	LastSaved        time.Time
}

// NewState builds a fresh default state for the given chamber catalog.
func NewState(defs []catalog.ChamberDef) *State {
	st := &State{
		User: Profile{
			Level:         1,
			XPToNextLevel: defaultXPToNextLevel,
		},
	}
	for _, d := range defs {
		st.Chambers = append(st.Chambers, &ChamberState{
			ID:          d.ID,
			UnlockLevel: d.UnlockLevel,
			PuzzleCount: d.PuzzleCount,
		})
	}
	RecomputeUnlocks(st)
	return st
}

// Chamber returns the state for the given chamber id, or nil.
func (st *State) Chamber(id string) *ChamberState {
	for _, ch := range st.Chambers {
		if ch.ID == id {
			return ch
		}
	}
	return nil
}

// RecomputeUnlocks refreshes each chamber's Unlocked flag and the
// unlocked count from the profile level. Idempotent.
func RecomputeUnlocks(st *State) {
	count := 0
	for _, ch := range st.Chambers {
		ch.Unlocked = ch.UnlockLevel <= st.User.Level
		if ch.Unlocked {
			count++
		}
	}
	st.ChambersUnlocked = count
}

// RecordSolve folds one solved puzzle into the chamber progress.
func (cp *ChamberProgress) RecordSolve(attemptsMade, hintsRevealed int) {
	cp.Completed++
	cp.AttemptsTotal += attemptsMade
	cp.HintsUsedTotal += hintsRevealed
	cp.AccuracyPercent = accuracyPercent(cp.Completed, cp.AttemptsTotal)
}

func accuracyPercent(completed, attempts int) int {
	if attempts <= 0 {
		return 0
	}
	pct := (completed*100 + attempts/2) / attempts
	if pct > 100 {
		pct = 100
	}
	return pct
}
