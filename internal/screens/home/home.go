package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/logiq/internal/catalog"
	"github.com/abhisek/logiq/internal/progress"
	"github.com/abhisek/logiq/internal/router"
	"github.com/abhisek/logiq/internal/screen"
	"github.com/abhisek/logiq/internal/screens/chambers"
	"github.com/abhisek/logiq/internal/session"
	"github.com/abhisek/logiq/internal/ui/components"
	"github.com/abhisek/logiq/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu       components.Menu
	controller *session.Controller
	save       func() error
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(controller *session.Controller, cat catalog.Provider, save func() error) *HomeScreen {
	h := &HomeScreen{
		controller: controller,
		save:       save,
	}

	items := []components.MenuItem{
		{Label: "ENTER CHAMBERS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: chambers.New(controller, cat, save)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	st := h.controller.State()

	s := "\n" + theme.Title.Width(width).Render("L O G I Q") + "\n"
	s += theme.Subtitle.Width(width).Render("chambers of logic, pattern and space") + "\n\n"

	s += h.profileCard(st, width) + "\n\n"
	s += h.menu.View()
	return s
}

func (h *HomeScreen) profileCard(st *progress.State, width int) string {
	xpBar := components.NewProgressBar(
		fmt.Sprintf("XP %d/%d", st.User.XP, st.User.XPToNextLevel),
		float64(st.User.XP)/float64(st.User.XPToNextLevel),
		false,
		40,
	)

	body := fmt.Sprintf(
		"Level %d   Solved %d   Streak %d   Chambers open %d/%d\n%s",
		st.User.Level,
		st.User.TotalSolved,
		st.User.CurrentStreak,
		st.ChambersUnlocked,
		len(st.Chambers),
		xpBar.View(),
	)
	return theme.Card.Render(body)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
