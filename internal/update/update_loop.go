package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"doseup/internal/model"
	"doseup/internal/refresh"
	"doseup/internal/schedule"
	"doseup/internal/views"
)

func (m Model) Init() tea.Cmd {
	m.rearmRefresh()
	if m.Refresh != nil {
		return waitForRefreshCmd(m.Refresh.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.helpModel.Width = typed.Width
		return m, nil

	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Settings.Open {
			return m.handleSettingsKey(typed)
		}
		if m.CurrentView == ViewAdd {
			return m.handleFormKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			return m, nil
		case "tab":
			if m.CurrentView == ViewToday {
				m.CurrentView = ViewWeek
			} else {
				m.CurrentView = ViewToday
			}
			return m, nil
		case "a":
			m.CurrentView = ViewAdd
			m.resetForm()
			m.nameInput.SetValue("")
			m.timeInput.SetValue("")
			m.notesInput.SetValue("")
			m.nameInput.Focus()
			return m, nil
		case "s":
			m.Settings.Open = true
			return m, nil
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewToday {
			return m.handleTodayKey(typed)
		}
		return m, nil

	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewAdd {
				m.resetForm()
				m.nameInput.Focus()
			}
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil

	case RefreshMsg:
		// Wall-clock wakeup: views re-derive on render, so rearming the
		// engine is all that's needed here.
		m.rearmRefresh()
		next := m
		var cmds []tea.Cmd
		if typed.Event.Reason == refresh.ReasonMidnight {
			next.Celebration = CelebrationState{}
		}
		if m.Refresh != nil {
			cmds = append(cmds, waitForRefreshCmd(m.Refresh.C()))
		}
		return next, tea.Batch(cmds...)

	case CelebrationClearMsg:
		m.Celebration.Active = false
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	today := m.todayView()
	cursor := clamp(m.Today.Cursor, 0, len(today.Items)-1)

	status := m.Status.Text
	if m.Status.IsError && status != "" {
		status = "error: " + status
	}

	cd, cdOK := m.nextDose()
	header := fmt.Sprintf("doseup · %s · %s", today.Date.Format("Mon Jan 2"), views.RenderCountdown(cd, cdOK))

	bar := m.todayProgress.ViewAs(float64(today.Percent) / 100)
	dark := m.Theme == model.ThemeDark

	var left, right string
	switch m.CurrentView {
	case ViewAdd:
		left = views.RenderFormPanel(
			m.nameInput.View(), m.timeInput.View(), m.notesInput.View(),
			model.AllDays, m.Form.SelectedDays, m.Form.DayCursor,
			durationChoices[m.Form.DurationIdx], m.Form.FocusRow,
			views.RenderMarkdown(m.notesInput.Value(), dark),
		)
		right = views.RenderTodayPanel(today, -1, bar, dark)
	case ViewWeek:
		left = "This week\n" + renderWeekTable(m.weekAgenda(), today.Label)
		right = m.renderDetailPane(today, cursor, dark)
	default:
		left = views.RenderTodayPanel(today, cursor, bar, dark)
		right = m.renderDetailPane(today, cursor, dark)
	}

	overlay := ""
	if m.Settings.Open {
		overlay = views.RenderSettingsDrawer(m.Theme)
	}
	if m.Palette.Active {
		overlay = strings.TrimSpace(overlay + "\n" + views.RenderCommandPalette(m.commandInput.View()))
	}
	if m.Celebration.Active {
		overlay = strings.TrimSpace(views.RenderCelebration(m.width) + "\n" + overlay)
	}

	return views.RenderApp(views.AppData{
		Header:     header,
		LeftPane:   left,
		RightPane:  right,
		StatusLine: status,
		Footer:     m.helpModel.View(m.Keys),
		Overlay:    overlay,
		Dark:       dark,
	})
}

func (m Model) renderDetailPane(today schedule.TodayView, cursor int, dark bool) string {
	if cursor < 0 || cursor >= len(today.Items) {
		return "Select a dose to see its notes."
	}
	rem := today.Items[cursor].Reminder
	body := views.RenderMarkdown(rem.Notes, dark)
	if body == "" {
		body = "No notes."
	}
	m.notesViewport.SetContent(body)
	return rem.Name + "\n\n" + m.notesViewport.View()
}

func waitForRefreshCmd(ch <-chan refresh.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return RefreshMsg{Event: ev}
	}
}

func clearCelebrationCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return CelebrationClearMsg{}
	})
}
