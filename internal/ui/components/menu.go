package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mpreston/factdrill/internal/ui/theme"
)

// MenuItem is one selectable row of a Menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical pick list. Selection wraps at both ends so young
// players can lean on an arrow key without hitting a wall.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the selection or runs the selected item's action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = (m.Selected + len(m.Items) - 1) % len(m.Items)
	case "down", "j":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter":
		if action := m.Items[m.Selected].Action; action != nil {
			return m, action()
		}
	}
	return m, nil
}

// View renders the rows, marking the selected one.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
