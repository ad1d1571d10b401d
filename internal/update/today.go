package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"doseup/internal/schedule"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	today := m.todayView()
	if len(today.Items) == 0 {
		return m, nil
	}
	m.Today.Cursor = clamp(m.Today.Cursor, 0, len(today.Items)-1)

	switch msg.String() {
	case "up", "k":
		m.Today.Cursor = clamp(m.Today.Cursor-1, 0, len(today.Items)-1)
		return m, nil
	case "down", "j":
		m.Today.Cursor = clamp(m.Today.Cursor+1, 0, len(today.Items)-1)
		return m, nil
	case "t", " ", "enter":
		return m.toggleSelectedTaken(today)
	case "d":
		item := today.Items[m.Today.Cursor]
		if err := m.Store.Remove(context.Background(), item.Index); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("deleted %s", item.Reminder.Name)}
		m.Today.Cursor = clamp(m.Today.Cursor, 0, len(today.Items)-2)
		m.rearmRefresh()
		return m, nil
	}
	return m, nil
}

// toggleSelectedTaken flips today's taken flag for the selected dose and
// fires the celebration when the flip completes the day.
func (m Model) toggleSelectedTaken(today schedule.TodayView) (tea.Model, tea.Cmd) {
	item := today.Items[m.Today.Cursor]
	date := m.now()
	wasAllDone := schedule.AllTakenOn(m.Store.Reminders(), date)

	if err := m.Store.ToggleTaken(context.Background(), item.Index, today.Label); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	nowAllDone := schedule.AllTakenOn(m.Store.Reminders(), date)
	m.rearmRefresh()

	if !wasAllDone && nowAllDone {
		m.Celebration.Active = true
		m.Status = StatusBar{Text: "all doses taken today"}
		return m, clearCelebrationCmd(time.Duration(m.Cfg.CelebrationSeconds) * time.Second)
	}
	return m, nil
}
