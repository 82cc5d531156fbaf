// Package records shows a player's lifetime bests, achievements, and
// trouble spots.
package records

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mpreston/factdrill/internal/facts"
	"github.com/mpreston/factdrill/internal/profile"
	"github.com/mpreston/factdrill/internal/screen"
	"github.com/mpreston/factdrill/internal/store"
	"github.com/mpreston/factdrill/internal/ui/layout"
	"github.com/mpreston/factdrill/internal/ui/theme"
)

// hardestLimit caps the trouble-spot list.
const hardestLimit = 5

type historyLoadedMsg struct {
	Totals  store.AttemptTotals
	Hardest []store.FactTotals
	Err     error
}

// RecordsScreen displays the profile's records and attempt history.
type RecordsScreen struct {
	prof     *profile.Profile
	attempts store.AttemptRepo

	loaded  bool
	totals  store.AttemptTotals
	hardest []store.FactTotals
	loadErr error
}

var _ screen.Screen = (*RecordsScreen)(nil)
var _ screen.KeyHintProvider = (*RecordsScreen)(nil)

// New creates a RecordsScreen for the given profile.
func New(prof *profile.Profile, attempts store.AttemptRepo) *RecordsScreen {
	return &RecordsScreen{
		prof:     prof,
		attempts: attempts,
	}
}

func (r *RecordsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		totals, err := r.attempts.Totals(ctx, r.prof.Name)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		hardest, err := r.attempts.HardestFacts(ctx, r.prof.Name, hardestLimit)
		return historyLoadedMsg{Totals: totals, Hardest: hardest, Err: err}
	}
}

func (r *RecordsScreen) Title() string {
	return "Records"
}

// PlayerName reports the active player for the header.
func (r *RecordsScreen) PlayerName() string {
	return r.prof.Name
}

// PlayerStreak reports the running streak for the header.
func (r *RecordsScreen) PlayerStreak() int {
	return r.prof.GlobalStreak
}

func (r *RecordsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (r *RecordsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(historyLoadedMsg); ok {
		r.loaded = true
		r.totals = m.Totals
		r.hardest = m.Hardest
		r.loadErr = m.Err
	}
	return r, nil
}

func (r *RecordsScreen) View(width, height int) string {
	p := r.prof

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("%s's records", p.Name)))
	b.WriteString("\n\n")

	bestAvg := "-"
	if p.Best.BestAvgTimeSec != nil {
		bestAvg = fmt.Sprintf("%ds", *p.Best.BestAvgTimeSec)
	}
	lines := []string{
		fmt.Sprintf("Best streak     %d", p.Best.BestStreak),
		fmt.Sprintf("Best score      %d%%", p.Best.BestPercent),
		fmt.Sprintf("Fastest avg     %s", bestAvg),
		fmt.Sprintf("Games played    %d", p.GamesPlayed),
		fmt.Sprintf("Current streak  %d", p.GlobalStreak),
	}
	if p.Previous.Percent > 0 || p.Previous.AvgTimeSec != nil {
		lines = append(lines, fmt.Sprintf("Last drill      %d%%", p.Previous.Percent))
	}
	for _, line := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Body.Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Achievements")))
	b.WriteString("\n")
	if len(p.Achievements) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("None yet. Master every fact to earn Level 1!")))
		b.WriteString("\n")
	} else {
		var badges []string
		for _, level := range p.Achievements {
			badges = append(badges, fmt.Sprintf("Level %d", level))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render(strings.Join(badges, "  "))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if !r.loaded {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Loading history...")))
		return b.String()
	}
	if r.loadErr != nil {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("History unavailable: "+r.loadErr.Error())))
		return b.String()
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("All time: %d answers, %d correct", r.totals.Attempts, r.totals.Correct))))
	b.WriteString("\n\n")

	if len(r.hardest) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Trickiest facts")))
		b.WriteString("\n")
		for _, ft := range r.hardest {
			f, err := facts.ParseKey(ft.FactKey)
			if err != nil {
				continue
			}
			line := fmt.Sprintf("%s = %-4d %d/%d correct",
				f.String(), f.Answer(), ft.Correct, ft.Attempts)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
