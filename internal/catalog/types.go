package catalog

// Difficulty is the author-assigned difficulty tag on a puzzle.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AnswerKind determines how a puzzle is answered.
type AnswerKind string

const (
	// AnswerSingleChoice puzzles are answered by picking a choice index.
	AnswerSingleChoice AnswerKind = "single-choice"
	// AnswerFreeText puzzles are answered by typing text, compared
	// trimmed and case-insensitively.
	AnswerFreeText AnswerKind = "free-text"
)

// Puzzle is a single authored question. Immutable once loaded; the
// rest of the application only ever reads it.
type Puzzle struct {
	ID          string     `json:"id"`
	Difficulty  Difficulty `json:"difficulty"`
	Prompt      string     `json:"prompt"`
	AnswerKind  AnswerKind `json:"answerKind"`
	Choices     []string   `json:"choices,omitempty"`
	// CorrectChoice is the index into Choices for single-choice puzzles.
	CorrectChoice int    `json:"correctChoice,omitempty"`
	// CorrectText is the expected answer for free-text puzzles.
	CorrectText string   `json:"correctText,omitempty"`
	Hints       []string `json:"hints,omitempty"`
	Explanation string   `json:"explanation"`
	BasePoints  int      `json:"basePoints"`
	// TimeLimitSec is advisory only; nothing in the core enforces it.
	TimeLimitSec int `json:"timeLimitSec,omitempty"`
}

// ChamberDef describes a chamber without its puzzles. All defs are
// known at startup; puzzle content is loaded on first entry.
type ChamberDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnlockLevel int    `json:"unlockLevel"`
	PuzzleCount int    `json:"puzzleCount"`
}

// Provider supplies chamber definitions and puzzle content.
// Puzzles must come back in a stable order: solving order is array order.
type Provider interface {
	Chambers() []ChamberDef
	Puzzles(chamberID string) ([]Puzzle, error)
}
