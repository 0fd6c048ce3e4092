package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/logiq/internal/catalog"
)

// Serialized format:
//
//	{
//	  "user": {"level", "xp", "xpToNextLevel", "totalSolved", "currentStreak"},
//	  "chambers": [["<id>", {"progress": {...}, "unlockLevel", "puzzleCount"}], ...],
//	  "lastSaved": <unix millis>
//	}
//
// Chambers are a list of [id, body] pairs rather than a keyed object so
// insertion order survives the round trip.
type stateDoc struct {
	User      Profile           `json:"user"`
	Chambers  []json.RawMessage `json:"chambers"`
	LastSaved int64             `json:"lastSaved"`
}

type chamberBody struct {
	Progress    ChamberProgress `json:"progress"`
	UnlockLevel int             `json:"unlockLevel"`
	PuzzleCount int             `json:"puzzleCount"`
}

// Serialize produces the deterministic persisted form of st. Chambers
// are written in state order, which is catalog order.
func Serialize(st *State) ([]byte, error) {
	doc := stateDoc{
		User:      st.User,
		LastSaved: st.LastSaved.UnixMilli(),
	}
	for _, ch := range st.Chambers {
		pair, err := json.Marshal([2]any{ch.ID, chamberBody{
			Progress:    ch.Progress,
			UnlockLevel: ch.UnlockLevel,
			PuzzleCount: ch.PuzzleCount,
		}})
		if err != nil {
			return nil, fmt.Errorf("marshal chamber %s: %w", ch.ID, err)
		}
		doc.Chambers = append(doc.Chambers, pair)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal progress state: %w", err)
	}
	return b, nil
}

// Load restores a State from a persisted blob. It never fails: a
// missing, corrupt or partial blob degrades field by field to the
// defaults for the given catalog. Chamber shape (unlock level, puzzle
// count) always comes from the catalog; only progress is overlaid.
func Load(blob []byte, defs []catalog.ChamberDef) *State {
	st := NewState(defs)
	if len(blob) == 0 {
		return st
	}

	var doc struct {
		User *struct {
			Level         *int `json:"level"`
			XP            *int `json:"xp"`
			XPToNextLevel *int `json:"xpToNextLevel"`
			TotalSolved   *int `json:"totalSolved"`
			CurrentStreak *int `json:"currentStreak"`
		} `json:"user"`
		Chambers  []json.RawMessage `json:"chambers"`
		LastSaved *int64            `json:"lastSaved"`
	}
	if err := json.Unmarshal(blob, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "warning: corrupt progress data, starting fresh: %v\n", err)
		return st
	}

	if u := doc.User; u != nil {
		setIfAtLeast(&st.User.Level, u.Level, 1)
		setIfAtLeast(&st.User.XP, u.XP, 0)
		setIfAtLeast(&st.User.XPToNextLevel, u.XPToNextLevel, 1)
		setIfAtLeast(&st.User.TotalSolved, u.TotalSolved, 0)
		setIfAtLeast(&st.User.CurrentStreak, u.CurrentStreak, 0)
	}
	// Restore the XP invariant if the blob violated it.
	if st.User.XP >= st.User.XPToNextLevel {
		st.User.XP = st.User.XPToNextLevel - 1
	}

	for _, raw := range doc.Chambers {
		id, body, err := parseChamberPair(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping corrupt chamber entry: %v\n", err)
			continue
		}
		ch := st.Chamber(id)
		if ch == nil {
			// Chamber no longer exists in the catalog.
			continue
		}
		ch.Progress = sanitizeProgress(body.Progress, ch.PuzzleCount)
	}

	if doc.LastSaved != nil && *doc.LastSaved > 0 {
		st.LastSaved = time.UnixMilli(*doc.LastSaved)
	}

	RecomputeUnlocks(st)
	return st
}

func parseChamberPair(raw json.RawMessage) (string, chamberBody, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return "", chamberBody{}, err
	}
	if len(pair) != 2 {
		return "", chamberBody{}, fmt.Errorf("want [id, body] pair, got %d elements", len(pair))
	}
	var id string
	if err := json.Unmarshal(pair[0], &id); err != nil {
		return "", chamberBody{}, fmt.Errorf("chamber id: %w", err)
	}
	var body chamberBody
	if err := json.Unmarshal(pair[1], &body); err != nil {
		return "", chamberBody{}, fmt.Errorf("chamber %s body: %w", id, err)
	}
	return id, body, nil
}

func sanitizeProgress(p ChamberProgress, puzzleCount int) ChamberProgress {
	if p.Completed < 0 {
		p.Completed = 0
	}
	if p.Completed > puzzleCount {
		p.Completed = puzzleCount
	}
	if p.AttemptsTotal < p.Completed {
		p.AttemptsTotal = p.Completed
	}
	if p.HintsUsedTotal < 0 {
		p.HintsUsedTotal = 0
	}
	if p.AccuracyPercent < 0 || p.AccuracyPercent > 100 {
		p.AccuracyPercent = accuracyPercent(p.Completed, p.AttemptsTotal)
	}
	return p
}

// setIfAtLeast applies *src to *dst when src is present and >= min.
func setIfAtLeast(dst *int, src *int, min int) {
	if src != nil && *src >= min {
		*dst = *src
	}
}
