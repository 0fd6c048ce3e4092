// Package puzzle renders the live puzzle screen: prompt, answer input,
// hint reveals, feedback after each submit and the chamber-complete
// summary.
package puzzle

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/logiq/internal/catalog"
	"github.com/abhisek/logiq/internal/router"
	"github.com/abhisek/logiq/internal/screen"
	"github.com/abhisek/logiq/internal/session"
	"github.com/abhisek/logiq/internal/ui/components"
	"github.com/abhisek/logiq/internal/ui/layout"
	"github.com/abhisek/logiq/internal/ui/theme"
)

// phase is the screen's display phase, distinct from the controller's
// state machine: wrong answers keep the controller Active but show a
// feedback overlay here.
type phase int

const (
	phaseAnswering phase = iota
	phaseWrong
	phaseCorrect
	phaseComplete
)

// PuzzleScreen drives one chamber run.
type PuzzleScreen struct {
	controller *session.Controller
	save       func() error

	phase   phase
	current catalog.Puzzle
	index   int
	total   int

	choice components.MultiChoice
	input  components.TextInput

	hints      []string
	lastResult *session.Result
	notice     string
}

var _ screen.Screen = (*PuzzleScreen)(nil)
var _ screen.EscHandler = (*PuzzleScreen)(nil)

// New creates the screen for the controller's live attempt.
func New(controller *session.Controller, save func() error) *PuzzleScreen {
	p := &PuzzleScreen{
		controller: controller,
		save:       save,
	}
	p.bindAttempt()
	return p
}

// bindAttempt syncs the display to the controller's live attempt.
func (p *PuzzleScreen) bindAttempt() {
	a := p.controller.Attempt()
	if a == nil {
		return
	}
	p.current = a.Puzzle
	p.index = a.PuzzleIndex
	p.total = p.controller.Chamber().PuzzleCount
	p.hints = nil
	p.notice = ""
	p.phase = phaseAnswering

	if p.current.AnswerKind == catalog.AnswerSingleChoice {
		p.choice = components.NewMultiChoice(p.current.Choices)
	} else {
		p.input = components.NewTextInput("type your answer")
	}
}

func (p *PuzzleScreen) Init() tea.Cmd {
	if p.current.AnswerKind == catalog.AnswerFreeText {
		return p.input.Init()
	}
	return nil
}

func (p *PuzzleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	switch p.phase {
	case phaseAnswering:
		if isKey {
			switch kmsg.String() {
			case "enter":
				return p, p.submit()
			case "ctrl+h":
				p.revealHint()
				return p, nil
			case "ctrl+r":
				p.resetAttempt()
				return p, nil
			}
		}
		var cmd tea.Cmd
		if p.current.AnswerKind == catalog.AnswerSingleChoice {
			p.choice, cmd = p.choice.Update(msg)
		} else {
			p.input, cmd = p.input.Update(msg)
		}
		return p, cmd

	case phaseWrong:
		if isKey && kmsg.String() == "enter" {
			p.phase = phaseAnswering
			p.notice = ""
			if p.current.AnswerKind == catalog.AnswerFreeText {
				p.input.Reset()
				p.input.Locked = false
			} else {
				p.choice.Locked = false
			}
		}
		return p, nil

	case phaseCorrect:
		if isKey && kmsg.String() == "enter" {
			return p, p.advance()
		}
		return p, nil

	case phaseComplete:
		if isKey && kmsg.String() == "enter" {
			p.controller.Abandon()
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return p, nil
	}

	return p, nil
}

func (p *PuzzleScreen) submit() tea.Cmd {
	var answer string
	if p.current.AnswerKind == catalog.AnswerSingleChoice {
		answer = strconv.Itoa(p.choice.Selected)
	} else {
		answer = p.input.Value()
		if answer == "" {
			return nil
		}
	}

	res, err := p.controller.SubmitAnswer(answer)
	if err != nil {
		p.notice = err.Error()
		return nil
	}

	p.lastResult = res
	if res.Correct {
		p.phase = phaseCorrect
		p.persist()
	} else {
		p.phase = phaseWrong
		if p.current.AnswerKind == catalog.AnswerFreeText {
			p.input.Locked = true
		} else {
			p.choice.Locked = true
		}
	}
	return nil
}

func (p *PuzzleScreen) advance() tea.Cmd {
	if err := p.controller.Advance(); err != nil {
		p.notice = err.Error()
		return nil
	}
	if p.controller.Status() == session.StatusChamberComplete {
		p.phase = phaseComplete
		return nil
	}
	p.bindAttempt()
	if p.current.AnswerKind == catalog.AnswerFreeText {
		return p.input.Init()
	}
	return nil
}

func (p *PuzzleScreen) revealHint() {
	hint, err := p.controller.RevealHint()
	if err != nil {
		p.notice = "No more hints for this one."
		return
	}
	p.hints = append(p.hints, hint)
	p.notice = ""
}

func (p *PuzzleScreen) resetAttempt() {
	if err := p.controller.ResetAttempt(); err != nil {
		return
	}
	p.hints = nil
	p.notice = ""
	if p.current.AnswerKind == catalog.AnswerFreeText {
		p.input.Reset()
	} else {
		p.choice.Selected = 0
	}
}

// persist saves committed progress; a failure is shown but never rolls
// back the in-memory transition.
func (p *PuzzleScreen) persist() {
	if p.save == nil {
		return
	}
	if err := p.save(); err != nil {
		p.notice = "Could not save progress: " + err.Error()
	}
}

// HandleEsc abandons the live attempt before the screen pops.
func (p *PuzzleScreen) HandleEsc() tea.Cmd {
	p.controller.Abandon()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (p *PuzzleScreen) View(width, height int) string {
	switch p.phase {
	case phaseComplete:
		return p.completeView(width)
	case phaseCorrect:
		return p.correctView(width)
	default:
		return p.answeringView(width)
	}
}

func (p *PuzzleScreen) answeringView(width int) string {
	s := "\n" + theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Puzzle %d of %d · %s · %d pts", p.index+1, p.total, p.current.Difficulty, p.current.BasePoints),
	) + "\n\n"

	s += theme.Card.Width(width-4).Render(p.current.Prompt) + "\n\n"

	if p.current.AnswerKind == catalog.AnswerSingleChoice {
		s += p.choice.View()
	} else {
		s += p.input.View() + "\n"
	}

	for i, h := range p.hints {
		s += "\n" + theme.Hint.Render(fmt.Sprintf("  Hint %d: %s", i+1, h))
	}
	if len(p.hints) > 0 {
		s += "\n"
	}

	if p.phase == phaseWrong {
		s += "\n" + theme.Wrong.Render("  Not quite.")
		if p.lastResult != nil && p.lastResult.StreakReset {
			s += theme.Hint.Render("  Your streak is gone.")
		}
		s += theme.Hint.Render("  Press Enter to try again.") + "\n"
	}

	if p.notice != "" {
		s += "\n" + theme.Hint.Render("  "+p.notice) + "\n"
	}
	return s
}

func (p *PuzzleScreen) correctView(width int) string {
	res := p.lastResult

	s := "\n" + theme.Correct.Render(fmt.Sprintf("  Solved!  +%d points", res.Points)) + "\n\n"
	s += theme.Card.Width(width-4).Render(res.Explanation) + "\n"

	for _, up := range res.LevelUps {
		s += "\n" + theme.Correct.Render(fmt.Sprintf("  Level up! You are now level %d.", up.NewLevel))
		for _, id := range up.UnlockedChambers {
			s += "\n" + theme.Hint.Render("  New chamber unlocked: "+id)
		}
	}
	if len(res.LevelUps) > 0 {
		s += "\n"
	}

	if res.ChamberDone {
		s += "\n" + theme.Hint.Render("  That was the last puzzle. Press Enter.") + "\n"
	} else {
		s += "\n" + theme.Hint.Render("  Press Enter for the next puzzle.") + "\n"
	}
	if p.notice != "" {
		s += "\n" + theme.Wrong.Render("  "+p.notice) + "\n"
	}
	return s
}

func (p *PuzzleScreen) completeView(width int) string {
	ch := p.controller.Chamber()

	s := "\n" + theme.Title.Width(width).Render("Chamber complete!") + "\n\n"
	if ch != nil {
		body := fmt.Sprintf(
			"Puzzles solved  %d\nAccuracy        %d%%\nHints used      %d",
			ch.Progress.Completed,
			ch.Progress.AccuracyPercent,
			ch.Progress.HintsUsedTotal,
		)
		s += theme.Card.Render(body) + "\n"
	}
	s += "\n" + theme.Hint.Render("  Press Enter to return to the chambers.") + "\n"
	return s
}

func (p *PuzzleScreen) Title() string {
	return "Puzzle"
}

// KeyHints implements screen.KeyHintProvider.
func (p *PuzzleScreen) KeyHints() []layout.KeyHint {
	switch p.phase {
	case phaseAnswering, phaseWrong:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+H", Description: "Hint"},
			{Key: "Ctrl+R", Description: "Restart puzzle"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}
