// Package progression drives XP accumulation, level-ups and the chamber
// unlocks derived from them.
package progression

import (
	"math"

	"github.com/abhisek/logiq/internal/progress"
)

const (
	baseLevelXP = 100
	levelGrowth = 1.1
)

// XPForLevel returns the XP needed to clear the given level:
// floor(100 * 1.1^(level-1)).
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(baseLevelXP * math.Pow(levelGrowth, float64(level-1))))
}

// LevelUp records a single level gained during an XP award.
type LevelUp struct {
	NewLevel int
	// UnlockedChambers lists chamber ids that became available at this level.
	UnlockedChambers []string
}

// AwardXP adds amount to the profile and resolves level-ups. A single
// large award can produce several level-ups; the loop runs until the XP
// invariant (xp < xpToNextLevel) holds again, recomputing chamber
// unlocks at each new level. Deterministic for identical inputs.
func AwardXP(st *progress.State, amount int) []LevelUp {
	if amount < 0 {
		amount = 0
	}
	u := &st.User
	u.XP += amount

	var ups []LevelUp
	for u.XP >= u.XPToNextLevel {
		u.XP -= u.XPToNextLevel
		u.Level++
		u.XPToNextLevel = XPForLevel(u.Level)

		before := make(map[string]bool, len(st.Chambers))
		for _, ch := range st.Chambers {
			before[ch.ID] = ch.Unlocked
		}
		progress.RecomputeUnlocks(st)

		up := LevelUp{NewLevel: u.Level}
		for _, ch := range st.Chambers {
			if ch.Unlocked && !before[ch.ID] {
				up.UnlockedChambers = append(up.UnlockedChambers, ch.ID)
			}
		}
		ups = append(ups, up)
	}
	return ups
}
