package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"doseup/internal/schedule"
)

// renderWeekTable lays the seven-day agenda out as a flat table, one row
// per scheduled dose.
func renderWeekTable(agenda []schedule.DayAgenda, todayLabel string) string {
	columns := []table.Column{
		{Title: "Day", Width: 10},
		{Title: "Date", Width: 8},
		{Title: "Time", Width: 6},
		{Title: "Pill", Width: 24},
	}
	rows := make([]table.Row, 0)
	for _, day := range agenda {
		label := day.Label
		if label == todayLabel {
			label = label + " ·"
		}
		if len(day.Items) == 0 {
			rows = append(rows, table.Row{label, day.Date.Format("Jan 2"), "", "—"})
			continue
		}
		for i, item := range day.Items {
			shown := label
			date := day.Date.Format("Jan 2")
			if i > 0 {
				shown, date = "", ""
			}
			t := item.Reminder.TimeOfDay
			if t == "" {
				t = "--:--"
			}
			rows = append(rows, table.Row{shown, date, t, item.Reminder.Name})
		}
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	return strings.TrimRight(tbl.View(), "\n")
}
