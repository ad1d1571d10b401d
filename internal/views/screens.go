package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"doseup/internal/model"
	"doseup/internal/schedule"
)

var dotColors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("1"),
	"yellow": lipgloss.Color("3"),
	"green":  lipgloss.Color("2"),
	"blue":   lipgloss.Color("4"),
}

func colorDot(name string) string {
	c, ok := dotColors[name]
	if !ok {
		c = lipgloss.Color("7")
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

// RenderTodayPanel lists today's doses with a cursor and taken markers.
func RenderTodayPanel(view schedule.TodayView, cursor int, progressBar string, dark bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Today — %s, %s\n", view.Label, view.Date.Format("Jan 2")))
	if len(view.Items) == 0 {
		b.WriteString("\nNo reminders for today.\n")
		return b.String()
	}
	for i, item := range view.Items {
		marker := "[ ]"
		if item.Taken {
			marker = "[x]"
		}
		pointer := "  "
		if i == cursor {
			pointer = "> "
		}
		t := item.Reminder.TimeOfDay
		if t == "" {
			t = "--:--"
		}
		b.WriteString(fmt.Sprintf("%s%d. %s %s %s  %s\n",
			pointer, item.Index+1, marker, colorDot(item.Reminder.Color), t, item.Reminder.Name))
	}
	b.WriteString(fmt.Sprintf("\n%d of %d taken (%d%%)\n%s\n",
		view.TakenCount, len(view.Items), view.Percent, progressBar))
	return b.String()
}

// RenderCountdown formats the next-dose banner shown above the panels.
func RenderCountdown(cd schedule.Countdown, ok bool) string {
	if !ok {
		return "Next dose: —"
	}
	return fmt.Sprintf("Next dose: %s in %dh %02dm", cd.Reminder.Name, cd.Hours, cd.Minutes)
}

// RenderFormPanel lays out the add-reminder form.
func RenderFormPanel(nameInput, timeInput, notesInput string, days []string, selected map[string]bool, dayCursor int, duration model.Duration, focusRow int, notesPreview string) string {
	var b strings.Builder
	b.WriteString("New reminder\n\n")
	b.WriteString(row(focusRow == 0, "Name ", nameInput))
	b.WriteString(row(focusRow == 1, "Time ", timeInput))
	b.WriteString(row(focusRow == 2, "Notes", notesInput))

	chips := make([]string, 0, len(days))
	for i, d := range days {
		chip := " " + d + " "
		if selected[d] {
			chip = "[" + d + "]"
		}
		if focusRow == 3 && i == dayCursor {
			chip = ">" + strings.TrimLeft(chip, " ")
		}
		chips = append(chips, chip)
	}
	b.WriteString(row(focusRow == 3, "Days ", strings.Join(chips, " ")))

	dur := "forever"
	if !duration.IsForever() {
		dur = string(duration) + " days"
	}
	b.WriteString(row(focusRow == 4, "For  ", dur))
	b.WriteString("\nenter save · esc cancel · space toggle day\n")
	if notesPreview != "" {
		b.WriteString("\n" + notesPreview + "\n")
	}
	return b.String()
}

func row(focused bool, label, value string) string {
	pointer := "  "
	if focused {
		pointer = "> "
	}
	return fmt.Sprintf("%s%s %s\n", pointer, label, value)
}

// RenderSettingsDrawer shows the theme selector.
func RenderSettingsDrawer(theme model.Theme) string {
	light, dark := "( ) light", "( ) dark"
	if theme == model.ThemeDark {
		dark = "(•) dark"
	} else {
		light = "(•) light"
	}
	return fmt.Sprintf("Settings\n\nTheme: %s  %s\n\nt toggle · esc close", light, dark)
}

// RenderCommandPalette shows the palette prompt above the footer. The
// input view carries its own "/" prompt.
func RenderCommandPalette(input string) string {
	return "Command\n" + input
}

// RenderCelebration fills the given width with the all-taken banner.
func RenderCelebration(width int) string {
	if width < 20 {
		width = 20
	}
	msg := "✦ All doses taken today! ✦"
	return lipgloss.NewStyle().Bold(true).Width(width).Align(lipgloss.Center).Render(msg)
}
