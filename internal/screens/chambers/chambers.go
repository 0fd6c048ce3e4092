// Package chambers renders the chamber select screen with lock badges
// and per-chamber progress.
package chambers

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/logiq/internal/catalog"
	"github.com/abhisek/logiq/internal/progress"
	"github.com/abhisek/logiq/internal/router"
	"github.com/abhisek/logiq/internal/screen"
	"github.com/abhisek/logiq/internal/screens/puzzle"
	"github.com/abhisek/logiq/internal/session"
	"github.com/abhisek/logiq/internal/ui/components"
	"github.com/abhisek/logiq/internal/ui/layout"
	"github.com/abhisek/logiq/internal/ui/theme"
)

// ChambersScreen lists chambers and starts a session on selection.
type ChambersScreen struct {
	menu       components.Menu
	defs       []catalog.ChamberDef
	controller *session.Controller
	save       func() error
	notice     string
}

var _ screen.Screen = (*ChambersScreen)(nil)

// New creates the chamber select screen.
func New(controller *session.Controller, cat catalog.Provider, save func() error) *ChambersScreen {
	c := &ChambersScreen{
		defs:       cat.Chambers(),
		controller: controller,
		save:       save,
	}
	c.menu = components.NewMenu(c.buildItems())
	return c
}

func (c *ChambersScreen) buildItems() []components.MenuItem {
	st := c.controller.State()

	var items []components.MenuItem
	for _, def := range c.defs {
		def := def
		ch := st.Chamber(def.ID)
		if ch == nil {
			continue
		}
		items = append(items, components.MenuItem{
			Label:    def.Name,
			Detail:   chamberDetail(ch),
			Disabled: !ch.Unlocked,
			Action: func() tea.Cmd {
				return c.enter(def.ID)
			},
		})
	}
	return items
}

func chamberDetail(ch *progress.ChamberState) string {
	if !ch.Unlocked {
		return fmt.Sprintf("locked · unlocks at level %d", ch.UnlockLevel)
	}
	if ch.Progress.Completed >= ch.PuzzleCount {
		return fmt.Sprintf("complete · %d%% accuracy", ch.Progress.AccuracyPercent)
	}
	if ch.Progress.Completed == 0 {
		return fmt.Sprintf("%d puzzles", ch.PuzzleCount)
	}
	return fmt.Sprintf("%d/%d solved · %d%% accuracy",
		ch.Progress.Completed, ch.PuzzleCount, ch.Progress.AccuracyPercent)
}

func (c *ChambersScreen) enter(chamberID string) tea.Cmd {
	err := c.controller.EnterChamber(chamberID)
	switch {
	case err == nil:
		c.notice = ""
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: puzzle.New(c.controller, c.save)}
		}
	case errors.Is(err, session.ErrNotUnlocked):
		c.notice = "That chamber is still sealed. Level up first."
	case errors.Is(err, session.ErrChamberExhausted):
		c.notice = "Nothing left to solve in there."
	default:
		c.notice = err.Error()
	}
	return nil
}

func (c *ChambersScreen) Init() tea.Cmd {
	return nil
}

func (c *ChambersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Progress can change while a session screen sits above this one;
	// rebuild from state on every pass, keeping the cursor.
	selected := c.menu.Selected
	c.menu = components.Menu{Items: c.buildItems(), Selected: selected}

	var cmd tea.Cmd
	c.menu, cmd = c.menu.Update(msg)
	return c, cmd
}

func (c *ChambersScreen) View(width, height int) string {
	s := "\n" + theme.Title.Width(width).Render("Chambers") + "\n\n"
	s += c.menu.View()
	if c.notice != "" {
		s += "\n" + theme.Wrong.Render("  "+c.notice) + "\n"
	}
	return s
}

func (c *ChambersScreen) Title() string {
	return "Chambers"
}

// KeyHints implements screen.KeyHintProvider.
func (c *ChambersScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Enter chamber"},
		{Key: "Esc", Description: "Back"},
	}
}
