// Package summary shows the end-of-drill results.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpreston/factdrill/internal/engine"
	"github.com/mpreston/factdrill/internal/facts"
	"github.com/mpreston/factdrill/internal/profile"
	"github.com/mpreston/factdrill/internal/router"
	"github.com/mpreston/factdrill/internal/screen"
	"github.com/mpreston/factdrill/internal/ui/layout"
	"github.com/mpreston/factdrill/internal/ui/theme"
)

// SummaryScreen displays the drill summary and records.
type SummaryScreen struct {
	summary *profile.Summary
	missed  []facts.Fact
	best    profile.BestRecords
	games   int
	name    string
	streak  int
	award   *engine.Award
	again   func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New captures the finished session's results from the engine. The
// again factory builds the next drill for the play-again action.
func New(eng *engine.Engine, again func() screen.Screen) *SummaryScreen {
	p := eng.Profile()
	return &SummaryScreen{
		summary: eng.Summary(),
		missed:  eng.MissedFacts(),
		best:    p.Best,
		games:   p.GamesPlayed,
		name:    p.Name,
		streak:  p.GlobalStreak,
		award:   eng.TakeAward(),
		again:   again,
	}
}

// PlayerName reports the active player for the header.
func (s *SummaryScreen) PlayerName() string {
	return s.name
}

// PlayerStreak reports the running streak for the header.
func (s *SummaryScreen) PlayerStreak() int {
	return s.streak
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Drill Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play again"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			if s.again != nil {
				next := s.again()
				return s, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: next}
				}
			}
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Drill complete!"))
	b.WriteString("\n\n")

	avgStr := "-"
	if sum.AvgTimeSec != nil {
		avgStr = fmt.Sprintf("%ds", *sum.AvgTimeSec)
	}
	statsLine := fmt.Sprintf("Score: %d%%        Best streak: %d        Avg time: %s",
		sum.Percent, sum.MaxStreak, avgStr)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if s.award != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("Achievement unlocked: Level %d!", s.award.Level)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(s.award.Message))
		b.WriteString("\n\n")
	}

	if len(s.missed) > 0 {
		b.WriteString(sectionDivider(width, "Ones to practice"))
		for _, f := range s.missed {
			line := fmt.Sprintf("%s = %d", f.String(), f.Answer())
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("No misses. Perfect round!"))
		b.WriteString("\n\n")
	}

	b.WriteString(sectionDivider(width, "Records"))
	bestAvg := "-"
	if s.best.BestAvgTimeSec != nil {
		bestAvg = fmt.Sprintf("%ds", *s.best.BestAvgTimeSec)
	}
	recordsLine := fmt.Sprintf("Best streak: %d    Best score: %d%%    Fastest avg: %s    Games: %d",
		s.best.BestStreak, s.best.BestPercent, bestAvg, s.games)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(recordsLine))

	return b.String()
}

func sectionDivider(width int, label string) string {
	dividerWidth := width - 8
	if dividerWidth > 60 {
		dividerWidth = 60
	}
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", dividerWidth))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)) +
		"\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n\n"
}
