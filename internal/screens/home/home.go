// Package home is the per-player hub between drills.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpreston/factdrill/internal/engine"
	"github.com/mpreston/factdrill/internal/facts"
	"github.com/mpreston/factdrill/internal/router"
	"github.com/mpreston/factdrill/internal/screen"
	"github.com/mpreston/factdrill/internal/screens/drill"
	"github.com/mpreston/factdrill/internal/screens/records"
	"github.com/mpreston/factdrill/internal/store"
	"github.com/mpreston/factdrill/internal/ui/components"
	"github.com/mpreston/factdrill/internal/ui/theme"
)

// HomeScreen shows the player's progress and the main menu.
type HomeScreen struct {
	eng      *engine.Engine
	prof     store.ProfileRepo
	attempts store.AttemptRepo
	menu     components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen for the engine's profile.
func New(eng *engine.Engine, prof store.ProfileRepo, attempts store.AttemptRepo) *HomeScreen {
	h := &HomeScreen{
		eng:      eng,
		prof:     prof,
		attempts: attempts,
	}

	items := []components.MenuItem{
		{Label: "START DRILL", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: drill.New(eng, attempts)}
			}
		}},
		{Label: "RECORDS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: records.New(eng.Profile(), attempts)}
			}
		}},
		{Label: "SWITCH PLAYER", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
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

func (h *HomeScreen) Title() string {
	return "Home"
}

// PlayerName reports the active player for the header.
func (h *HomeScreen) PlayerName() string {
	return h.eng.Profile().Name
}

// PlayerStreak reports the running streak for the header.
func (h *HomeScreen) PlayerStreak() int {
	return h.eng.Profile().GlobalStreak
}

func (h *HomeScreen) View(width, height int) string {
	p := h.eng.Profile()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("Hi, %s!", p.Name)))
	b.WriteString("\n\n")

	mastered := 0
	for _, key := range facts.AllKeys() {
		if p.Mastered(key) {
			mastered++
		}
	}

	statParts := []string{
		fmt.Sprintf("Games: %d", p.GamesPlayed),
		fmt.Sprintf("Mastered: %d/%d", mastered, facts.Count),
		fmt.Sprintf("Streak: %d", p.GlobalStreak),
	}
	if len(p.Achievements) > 0 {
		top := p.Achievements[len(p.Achievements)-1]
		statParts = append(statParts, fmt.Sprintf("Level: %d", top))
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(strings.Join(statParts, "    ")))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", float64(mastered)/float64(facts.Count), true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))
	return b.String()
}
