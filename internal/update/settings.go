package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "s", "q":
		m.Settings.Open = false
		return m, nil
	case "t", "enter", " ":
		next := m.Theme.Toggled()
		if err := m.Store.SaveTheme(context.Background(), next); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Theme = next
		m.Status = StatusBar{Text: "theme set to " + string(next)}
		return m, nil
	}
	return m, nil
}
