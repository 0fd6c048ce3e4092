package session

import (
	"strconv"
	"strings"

	"github.com/abhisek/logiq/internal/catalog"
)

// answerMatches compares a submitted answer against the puzzle's
// recorded one: numeric index equality for single-choice, trimmed
// case-insensitive equality for free text.
func answerMatches(p *catalog.Puzzle, answer string) bool {
	switch p.AnswerKind {
	case catalog.AnswerSingleChoice:
		idx, err := strconv.Atoi(strings.TrimSpace(answer))
		return err == nil && idx == p.CorrectChoice
	case catalog.AnswerFreeText:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(p.CorrectText))
	}
	return false
}
