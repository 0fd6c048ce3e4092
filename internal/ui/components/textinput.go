package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/logiq/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with logiq styling for free-text
// answers.
type TextInput struct {
	Model  textinput.Model
	Locked bool
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 60
	ti.Focus()

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Locked {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Value returns the current input text.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
}

// View renders the text input.
func (t TextInput) View() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Render("  " + t.Model.View())
}
