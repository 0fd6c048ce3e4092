// Package session drives a single puzzle attempt from entry to
// resolution and applies the progression effects of a solve.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/logiq/internal/catalog"
	"github.com/abhisek/logiq/internal/events"
	"github.com/abhisek/logiq/internal/progress"
	"github.com/abhisek/logiq/internal/progression"
	"github.com/abhisek/logiq/internal/scoring"
)

// failedAttemptsStreakReset is the attempt count at which repeated
// failure on one puzzle resets the player's streak. The player may keep
// retrying past it.
const failedAttemptsStreakReset = 3

// Status is the controller's state machine position.
type Status int

const (
	// StatusIdle: no attempt in progress.
	StatusIdle Status = iota
	// StatusActive: a puzzle is live and accepting answers.
	StatusActive
	// StatusCorrect: the puzzle was solved; waiting for Advance.
	StatusCorrect
	// StatusChamberComplete: the chamber's last puzzle was solved and
	// advanced past. Terminal until another chamber is entered.
	StatusChamberComplete
)

// Attempt is the ephemeral state of the live puzzle attempt. Exactly
// one attempt is live at any time; it is never persisted.
type Attempt struct {
	ChamberID     string
	PuzzleIndex   int
	Puzzle        catalog.Puzzle
	StartedAt     time.Time
	AttemptsMade  int
	HintsRevealed int
}

// Result reports the outcome of a SubmitAnswer call.
type Result struct {
	Correct     bool
	Points      int
	StreakReset bool
	LevelUps    []progression.LevelUp
	Explanation string
	// ChamberDone is true when this solve completed the chamber's last
	// puzzle. Advance still drives the transition to ChamberComplete.
	ChamberDone bool
}

// Controller is the session state machine. It owns the live attempt,
// mutates the progress state on committed transitions, and emits
// analytics events afterwards. It never persists anything itself.
type Controller struct {
	catalog   catalog.Provider
	state     *progress.State
	sink      events.Sink
	sessionID string

	status  Status
	attempt *Attempt
	chamber *progress.ChamberState
	puzzles []catalog.Puzzle

	now func() time.Time
}

// New creates an idle controller over the given catalog and state.
func New(cat catalog.Provider, st *progress.State, sink events.Sink) *Controller {
	if sink == nil {
		sink = events.NopSink{}
	}
	return &Controller{
		catalog:   cat,
		state:     st,
		sink:      sink,
		sessionID: uuid.NewString(),
		status:    StatusIdle,
		now:       time.Now,
	}
}

// Status returns the current state machine position.
func (c *Controller) Status() Status {
	return c.status
}

// State returns the progress state the controller operates on.
func (c *Controller) State() *progress.State {
	return c.state
}

// Attempt returns the live attempt, or nil outside StatusActive.
func (c *Controller) Attempt() *Attempt {
	return c.attempt
}

// Chamber returns the active chamber's state, or nil when idle.
func (c *Controller) Chamber() *progress.ChamberState {
	return c.chamber
}

// EnterChamber starts an attempt on the chamber's next unsolved puzzle.
// It is accepted from any state: starting a new attempt discards a live
// one. Nothing is mutated when an error is returned.
func (c *Controller) EnterChamber(chamberID string) error {
	ch := c.state.Chamber(chamberID)
	if ch == nil {
		return fmt.Errorf("%w: unknown chamber %q", ErrPuzzleNotFound, chamberID)
	}
	if ch.UnlockLevel > c.state.User.Level {
		return fmt.Errorf("%w: %s requires level %d", ErrNotUnlocked, chamberID, ch.UnlockLevel)
	}
	if ch.Progress.Completed >= ch.PuzzleCount {
		return fmt.Errorf("%w: %s", ErrChamberExhausted, chamberID)
	}

	puzzles, err := c.catalog.Puzzles(chamberID)
	if err != nil {
		return fmt.Errorf("load puzzles for %s: %w", chamberID, err)
	}
	index := ch.Progress.Completed
	if index >= len(puzzles) {
		return fmt.Errorf("%w: index %d of %d in %s", ErrPuzzleNotFound, index, len(puzzles), chamberID)
	}

	c.chamber = ch
	c.puzzles = puzzles
	c.startAttempt(index)
	return nil
}

// startAttempt makes the puzzle at index live and announces it.
func (c *Controller) startAttempt(index int) {
	p := c.puzzles[index]
	c.attempt = &Attempt{
		ChamberID:   c.chamber.ID,
		PuzzleIndex: index,
		Puzzle:      p,
		StartedAt:   c.now(),
	}
	c.status = StatusActive

	c.sink.Emit(events.PuzzleStarted, map[string]any{
		"session_id": c.sessionID,
		"chamber_id": c.chamber.ID,
		"puzzle_id":  p.ID,
		"difficulty": string(p.Difficulty),
		"index":      index,
	})
}

// SubmitAnswer checks an answer against the live puzzle. A wrong answer
// keeps the puzzle active (retries are unlimited); reaching three
// failed attempts resets the streak. A correct answer scores, applies
// progression effects atomically and moves to StatusCorrect.
func (c *Controller) SubmitAnswer(answer string) (*Result, error) {
	if c.status != StatusActive {
		return nil, fmt.Errorf("%w: submit requires an active puzzle", ErrInvalidTransition)
	}

	a := c.attempt
	a.AttemptsMade++

	if !answerMatches(&a.Puzzle, answer) {
		res := &Result{}
		if a.AttemptsMade >= failedAttemptsStreakReset && c.state.User.CurrentStreak > 0 {
			c.state.User.CurrentStreak = 0
			res.StreakReset = true
		}
		c.sink.Emit(events.PuzzleAttemptFailed, map[string]any{
			"session_id": c.sessionID,
			"chamber_id": a.ChamberID,
			"puzzle_id":  a.Puzzle.ID,
			"attempts":   a.AttemptsMade,
		})
		return res, nil
	}

	elapsedMs := c.now().Sub(a.StartedAt).Milliseconds()
	points := scoring.Points(a.Puzzle.BasePoints, elapsedMs, a.HintsRevealed, a.AttemptsMade)

	c.chamber.Progress.RecordSolve(a.AttemptsMade, a.HintsRevealed)
	c.state.User.TotalSolved++
	c.state.User.CurrentStreak++
	levelUps := progression.AwardXP(c.state, points)

	res := &Result{
		Correct:     true,
		Points:      points,
		LevelUps:    levelUps,
		Explanation: a.Puzzle.Explanation,
		ChamberDone: c.chamber.Progress.Completed >= c.chamber.PuzzleCount,
	}

	c.sink.Emit(events.PuzzleCompleted, map[string]any{
		"session_id": c.sessionID,
		"chamber_id": a.ChamberID,
		"puzzle_id":  a.Puzzle.ID,
		"points":     points,
		"attempts":   a.AttemptsMade,
		"hints":      a.HintsRevealed,
		"elapsed_ms": elapsedMs,
	})
	for _, up := range levelUps {
		c.sink.Emit(events.LevelUp, map[string]any{
			"session_id": c.sessionID,
			"level":      up.NewLevel,
			"unlocked":   len(up.UnlockedChambers),
		})
	}

	// The attempt is spent; the solved puzzle stays visible through
	// the chamber/index accessors until Advance.
	c.attempt = nil
	c.status = StatusCorrect
	return res, nil
}

// RevealHint returns the next unrevealed hint for the live puzzle.
func (c *Controller) RevealHint() (string, error) {
	if c.status != StatusActive {
		return "", fmt.Errorf("%w: hints require an active puzzle", ErrInvalidTransition)
	}

	a := c.attempt
	if a.HintsRevealed >= len(a.Puzzle.Hints) {
		return "", fmt.Errorf("%w: puzzle %s has %d", ErrNoMoreHints, a.Puzzle.ID, len(a.Puzzle.Hints))
	}

	hint := a.Puzzle.Hints[a.HintsRevealed]
	a.HintsRevealed++

	c.sink.Emit(events.HintUsed, map[string]any{
		"session_id": c.sessionID,
		"chamber_id": a.ChamberID,
		"puzzle_id":  a.Puzzle.ID,
		"hint_index": a.HintsRevealed - 1,
	})
	return hint, nil
}

// ResetAttempt restarts the live puzzle: counters zeroed, clock
// restarted, same puzzle. Streak and solve totals are untouched.
func (c *Controller) ResetAttempt() error {
	if c.status != StatusActive {
		return fmt.Errorf("%w: reset requires an active puzzle", ErrInvalidTransition)
	}
	c.attempt.AttemptsMade = 0
	c.attempt.HintsRevealed = 0
	c.attempt.StartedAt = c.now()
	return nil
}

// Advance moves past a solved puzzle: to the next one in the chamber,
// or to ChamberComplete when none remain.
func (c *Controller) Advance() error {
	if c.status != StatusCorrect {
		return fmt.Errorf("%w: advance requires a solved puzzle", ErrInvalidTransition)
	}

	next := c.chamber.Progress.Completed
	if next >= c.chamber.PuzzleCount {
		c.status = StatusChamberComplete
		return nil
	}
	if next >= len(c.puzzles) {
		return fmt.Errorf("%w: index %d of %d in %s", ErrPuzzleNotFound, next, len(c.puzzles), c.chamber.ID)
	}
	c.startAttempt(next)
	return nil
}

// Abandon discards any live attempt and returns to Idle.
func (c *Controller) Abandon() {
	c.attempt = nil
	c.chamber = nil
	c.puzzles = nil
	c.status = StatusIdle
}
