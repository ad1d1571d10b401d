package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"doseup/internal/commands"
	"doseup/internal/model"
	"doseup/internal/schedule"
	"doseup/internal/store"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(m.Palette.Input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	ctx := context.Background()
	var followUp tea.Cmd

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			days, err := canonicalDays(a.Days)
			if err != nil {
				return commands.Result{}, err
			}
			rem, err := m.Store.Add(ctx, store.Draft{
				Name:      a.Name,
				TimeOfDay: a.Time,
				Days:      days,
				ActiveFor: model.Duration(a.Duration),
			})
			if err != nil {
				return commands.Result{}, err
			}
			m.rearmRefresh()
			return commands.Result{Message: fmt.Sprintf("added %s", rem.Name)}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			if d.Index >= m.Store.Len() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no reminder %d", d.Index+1)}
			}
			name := m.Store.Reminders()[d.Index].Name
			if err := m.Store.Remove(ctx, d.Index); err != nil {
				return commands.Result{}, err
			}
			m.rearmRefresh()
			return commands.Result{Message: fmt.Sprintf("deleted %s", name)}, nil
		},
		Taken: func(t commands.TakenArgs) (commands.Result, error) {
			if t.Index >= m.Store.Len() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no reminder %d", t.Index+1)}
			}
			label := t.Day
			if label == "" {
				label = model.DayLabel(m.now())
			}
			if !model.IsDayLabel(label) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown day: %s", t.Day)}
			}
			date := m.now()
			wasAllDone := schedule.AllTakenOn(m.Store.Reminders(), date)
			if err := m.Store.ToggleTaken(ctx, t.Index, label); err != nil {
				return commands.Result{}, err
			}
			m.rearmRefresh()
			if label == model.DayLabel(date) {
				nowAllDone := schedule.AllTakenOn(m.Store.Reminders(), date)
				if !wasAllDone && nowAllDone {
					m.Celebration.Active = true
					followUp = clearCelebrationCmd(time.Duration(m.Cfg.CelebrationSeconds) * time.Second)
				}
			}
			return commands.Result{Message: fmt.Sprintf("toggled %s on %s", m.Store.Reminders()[t.Index].Name, label)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Subject {
			case "today":
				m.CurrentView = ViewToday
			case "week":
				m.CurrentView = ViewWeek
			case "settings":
				m.Settings.Open = true
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", s.Subject)}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			next := m.Theme
			switch t.Mode {
			case "dark":
				next = model.ThemeDark
			case "light":
				next = model.ThemeLight
			case "toggle":
				next = m.Theme.Toggled()
			}
			if err := m.Store.SaveTheme(ctx, next); err != nil {
				return commands.Result{}, err
			}
			m.Theme = next
			return commands.Result{Message: fmt.Sprintf("theme set to %s", next)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}

	m.closePalette()
	return m, followUp
}

// canonicalDays maps palette day tokens to the Mon..Sun labels, accepting
// any case.
func canonicalDays(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, d := range in {
		matched := ""
		for _, label := range model.AllDays {
			if len(d) >= 3 && strings.EqualFold(d[:3], label) {
				matched = label
				break
			}
		}
		if matched == "" {
			return nil, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown day: %s", d)}
		}
		out = append(out, matched)
	}
	return out, nil
}
