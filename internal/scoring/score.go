// Package scoring computes the points awarded for a solved puzzle.
package scoring

// Bonus and penalty tuning. These match the long-standing scoring
// behavior and change the observable point totals if touched.
const (
	FastSolveMs = 30_000
	SlowSolveMs = 60_000

	fastBonus = 5
	slowBonus = fastBonus / 2

	hintPenalty    = 2
	attemptPenalty = 1

	// MinPoints is the floor: a solve always awards at least this much.
	MinPoints = 1
)

// Points returns the score for a correct answer given the puzzle's base
// points, elapsed time and how much help was needed. Never below MinPoints.
func Points(basePoints int, elapsedMs int64, hintsRevealed, attemptsMade int) int {
	bonus := 0
	switch {
	case elapsedMs <= FastSolveMs:
		bonus = fastBonus
	case elapsedMs <= SlowSolveMs:
		bonus = slowBonus
	}

	extraAttempts := attemptsMade - 1
	if extraAttempts < 0 {
		extraAttempts = 0
	}

	pts := basePoints + bonus - hintPenalty*hintsRevealed - attemptPenalty*extraAttempts
	if pts < MinPoints {
		return MinPoints
	}
	return pts
}
