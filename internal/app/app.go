package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpreston/factdrill/internal/router"
	"github.com/mpreston/factdrill/internal/screen"
	"github.com/mpreston/factdrill/internal/screens/profiles"
	"github.com/mpreston/factdrill/internal/store"
	"github.com/mpreston/factdrill/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the player picker.
func newAppModel(st *store.Store) AppModel {
	picker := profiles.New(st.ProfileRepo(), st.AttemptRepo())
	return AppModel{
		router: router.New(picker),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens like the drill claim Esc for their own dialogs.
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.playerName(), m.playerStreak(), m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// PlayerInfoProvider lets screens surface the active player in the
// header.
type PlayerInfoProvider interface {
	PlayerName() string
	PlayerStreak() int
}

func (m AppModel) playerName() string {
	if p, ok := m.router.Active().(PlayerInfoProvider); ok {
		return p.PlayerName()
	}
	return ""
}

func (m AppModel) playerStreak() int {
	if p, ok := m.router.Active().(PlayerInfoProvider); ok {
		return p.PlayerStreak()
	}
	return 0
}

// Run starts the Bubble Tea program.
func Run(st *store.Store) error {
	p := tea.NewProgram(newAppModel(st))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
