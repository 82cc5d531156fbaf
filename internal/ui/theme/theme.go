// Package theme holds the color palette and shared lipgloss styles.
// Profiles pick a palette by id; Apply swaps the active colors and
// rebuilds the styles.
package theme

import (
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
)

// Palette is a named set of colors.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

// DefaultName is the palette used when a profile has no theme set.
const DefaultName = "classic"

var palettes = map[string]Palette{
	// Kid-friendly, bright but not garish.
	"classic": {
		Primary:   lipgloss.Color("#8B5CF6"), // Vivid Purple
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F97316"), // Orange
		Success:   lipgloss.Color("#22C55E"), // Green
		Error:     lipgloss.Color("#F43F5E"), // Rose
		Text:      lipgloss.Color("#F8FAFC"), // White
		TextDim:   lipgloss.Color("#94A3B8"), // Slate
		BgDark:    lipgloss.Color("#0F172A"), // Deep Navy
		BgCard:    lipgloss.Color("#1E293B"), // Dark Slate
		Border:    lipgloss.Color("#334155"), // Slate
	},
	"ocean": {
		Primary:   lipgloss.Color("#38BDF8"), // Sky
		Secondary: lipgloss.Color("#2DD4BF"), // Teal
		Accent:    lipgloss.Color("#FACC15"), // Sand
		Success:   lipgloss.Color("#4ADE80"), // Green
		Error:     lipgloss.Color("#FB7185"), // Coral
		Text:      lipgloss.Color("#F0F9FF"), // Foam
		TextDim:   lipgloss.Color("#7DD3FC"), // Pale Sky
		BgDark:    lipgloss.Color("#082F49"), // Deep Sea
		BgCard:    lipgloss.Color("#0C4A6E"), // Sea
		Border:    lipgloss.Color("#155E75"), // Reef
	},
	"sunset": {
		Primary:   lipgloss.Color("#FB923C"), // Tangerine
		Secondary: lipgloss.Color("#F472B6"), // Pink
		Accent:    lipgloss.Color("#FBBF24"), // Gold
		Success:   lipgloss.Color("#A3E635"), // Lime
		Error:     lipgloss.Color("#EF4444"), // Red
		Text:      lipgloss.Color("#FFF7ED"), // Cream
		TextDim:   lipgloss.Color("#FDBA74"), // Peach
		BgDark:    lipgloss.Color("#1C1917"), // Charcoal
		BgCard:    lipgloss.Color("#3B2420"), // Umber
		Border:    lipgloss.Color("#78350F"), // Rust
	},
}

// Names returns the available palette ids, sorted.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether name is a known palette id.
func Valid(name string) bool {
	_, ok := palettes[name]
	return ok
}

// Apply activates the named palette; unknown names fall back to the
// default.
func Apply(name string) {
	p, ok := palettes[name]
	if !ok {
		p = palettes[DefaultName]
	}
	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	BgDark = p.BgDark
	BgCard = p.BgCard
	Border = p.Border
	rebuildStyles()
}

// Active palette colors.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

func rebuildStyles() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
}

func init() {
	Apply(DefaultName)
}
