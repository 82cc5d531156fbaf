// Package profiles implements the player picker, the entry screen of
// the app.
package profiles

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpreston/factdrill/internal/engine"
	"github.com/mpreston/factdrill/internal/profile"
	"github.com/mpreston/factdrill/internal/router"
	"github.com/mpreston/factdrill/internal/screen"
	"github.com/mpreston/factdrill/internal/screens/home"
	"github.com/mpreston/factdrill/internal/store"
	"github.com/mpreston/factdrill/internal/ui/components"
	"github.com/mpreston/factdrill/internal/ui/layout"
	"github.com/mpreston/factdrill/internal/ui/theme"
)

// maxNameLen bounds new player names.
const maxNameLen = 24

type profilesLoadedMsg struct {
	Infos []store.ProfileInfo
	Err   error
}

type profileReadyMsg struct {
	Profile *profile.Profile
	Err     error
}

// ProfilesScreen lists stored players and creates new ones.
type ProfilesScreen struct {
	repo     store.ProfileRepo
	attempts store.AttemptRepo

	infos  []store.ProfileInfo
	loaded bool
	menu   components.Menu

	naming  bool // new-player name entry active
	input   components.TextInput
	nameErr string

	errMsg string
}

var _ screen.Screen = (*ProfilesScreen)(nil)
var _ screen.KeyHintProvider = (*ProfilesScreen)(nil)

// New creates the picker backed by the given repositories.
func New(repo store.ProfileRepo, attempts store.AttemptRepo) *ProfilesScreen {
	return &ProfilesScreen{
		repo:     repo,
		attempts: attempts,
	}
}

func (p *ProfilesScreen) Init() tea.Cmd {
	return p.loadProfiles()
}

func (p *ProfilesScreen) Title() string {
	return "Who's playing?"
}

func (p *ProfilesScreen) KeyHints() []layout.KeyHint {
	if p.naming {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Create"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *ProfilesScreen) loadProfiles() tea.Cmd {
	return func() tea.Msg {
		infos, err := p.repo.ListProfiles(context.Background())
		return profilesLoadedMsg{Infos: infos, Err: err}
	}
}

// selectProfile loads the chosen profile off the UI loop.
func (p *ProfilesScreen) selectProfile(name string) tea.Cmd {
	return func() tea.Msg {
		prof, err := p.repo.LoadProfile(context.Background(), name)
		return profileReadyMsg{Profile: prof, Err: err}
	}
}

func (p *ProfilesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profilesLoadedMsg:
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
			return p, nil
		}
		p.infos = msg.Infos
		p.loaded = true
		p.buildMenu()
		return p, nil

	case profileReadyMsg:
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
			return p, nil
		}
		return p, p.enter(msg.Profile)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

// enter activates the profile's theme, builds its engine, and moves to
// the player's home screen.
func (p *ProfilesScreen) enter(prof *profile.Profile) tea.Cmd {
	theme.Apply(prof.Theme)
	eng := engine.New(prof, p.repo)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: home.New(eng, p.repo, p.attempts)}
	}
}

func (p *ProfilesScreen) buildMenu() {
	var items []components.MenuItem
	for _, info := range p.infos {
		name := info.Name
		items = append(items, components.MenuItem{
			Label:  name,
			Action: func() tea.Cmd { return p.selectProfile(name) },
		})
	}
	items = append(items, components.MenuItem{
		Label: "+ New player",
		Action: func() tea.Cmd {
			p.naming = true
			p.nameErr = ""
			p.input = components.NewTextInput("Your name...", false, maxNameLen)
			return p.input.Init()
		},
	})
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	p.menu = components.NewMenu(items)
}

func (p *ProfilesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if p.errMsg != "" {
		p.errMsg = ""
		return p, p.loadProfiles()
	}
	if !p.loaded {
		return p, nil
	}

	if p.naming {
		switch msg.String() {
		case "esc":
			p.naming = false
			return p, nil
		case "enter":
			return p.createProfile()
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *ProfilesScreen) createProfile() (screen.Screen, tea.Cmd) {
	name := strings.TrimSpace(p.input.Value())
	if name == "" {
		p.nameErr = "Type a name first!"
		return p, nil
	}
	for _, info := range p.infos {
		if strings.EqualFold(info.Name, name) {
			p.nameErr = fmt.Sprintf("%q is already taken", info.Name)
			return p, nil
		}
	}

	prof := profile.New(name)
	if err := p.repo.SaveProfile(context.Background(), prof); err != nil {
		p.nameErr = err.Error()
		return p, nil
	}
	p.naming = false
	return p, p.enter(prof)
}

func (p *ProfilesScreen) View(width, height int) string {
	if p.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to retry.", p.errMsg))
	}
	if !p.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Loading players...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("× Factdrill ×"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Multiplication practice, one fact at a time"))
	b.WriteString("\n\n")

	if p.naming {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render("What's your name?"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.input.View()))
		if p.nameErr != "" {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Render(p.nameErr))
		}
		return b.String()
	}

	if len(p.infos) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No players yet. Make one!"))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.menu.View()))
	return b.String()
}
