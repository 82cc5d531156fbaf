package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mpreston/factdrill/internal/ui/components"
	"github.com/mpreston/factdrill/internal/ui/theme"
)

func (d *DrillScreen) View(width, height int) string {
	if d.quitConfirm {
		return renderQuitConfirm(width)
	}
	if d.feedback != nil {
		return d.renderFeedback(width)
	}
	return d.renderQuestion(width)
}

func (d *DrillScreen) renderQuestion(width int) string {
	q := d.eng.CurrentQuestion()
	if q == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  One moment...")
	}

	stats := d.eng.LiveStats()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", stats.Asked, stats.Length))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d%%  streak %d  avg %ds",
			stats.Percent, stats.Streak, stats.AvgTimeSec))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	barWidth := width - 8
	if barWidth > 50 {
		barWidth = 50
	}
	progress := float64(stats.Asked-1) / float64(stats.Length)
	bar := components.NewProgressBar("", progress, false, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.String() + " = ?"))
	b.WriteString("\n\n")

	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + d.input.View())
	b.WriteString(answerLine)
	b.WriteString("\n\n\n")

	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(d.tip))

	return b.String()
}

func (d *DrillScreen) renderFeedback(width int) string {
	res := d.feedback

	var b strings.Builder
	b.WriteString("\n\n")

	titleStyle := theme.Correct
	if !res.Correct {
		titleStyle = theme.Incorrect
	}
	b.WriteString(titleStyle.Width(width).Align(lipgloss.Center).Render(d.feedbackTitle))
	b.WriteString("\n\n")

	equation := fmt.Sprintf("%s = %d", res.Fact.String(), res.CorrectAnswer)
	if res.Correct {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(equation + ". High five!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("Oops, the answer is %s. You can do it next time!", equation)))
	}
	b.WriteString("\n\n")

	if res.Award != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("Achievement unlocked: Level %d!", res.Award.Level)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(res.Award.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End this drill early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your progress will be saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end drill"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}
