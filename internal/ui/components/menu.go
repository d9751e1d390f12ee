package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/cleanfocus/cleanfocus/internal/ui/theme"
)

// MenuItem is one selectable row. Action fires on enter.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical pick list with a movable cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			if action := m.Items[m.Selected].Action; action != nil {
				return m, action()
			}
		}
	}

	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ "+item.Label) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("    "+item.Label) + "\n")
		}
	}
	return b.String()
}
