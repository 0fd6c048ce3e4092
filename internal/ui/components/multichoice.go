package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/logiq/internal/ui/theme"
)

// MultiChoice is a multiple-choice answer selector. It only tracks the
// selection; judging the answer is the caller's job.
type MultiChoice struct {
	Options  []string
	Selected int
	Locked   bool
}

// NewMultiChoice creates a selector over the given options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update handles keyboard navigation.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}

	return m, nil
}

// View renders the options with letter labels.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		label := fmt.Sprintf("%c", 'A'+i)
		line := fmt.Sprintf("%s) %s", label, opt)
		if i == m.Selected {
			s += lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("  ▸ "+line) + "\n"
		} else {
			s += lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("    "+line) + "\n"
		}
	}
	return s
}
