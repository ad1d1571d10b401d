package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"doseup/internal/model"
	"doseup/internal/store"
)

const (
	formRowName = iota
	formRowTime
	formRowNotes
	formRowDays
	formRowDuration
	formRowCount
)

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewToday
		m.Status = StatusBar{}
		return m, nil
	case "enter":
		return m.submitForm()
	case "tab", "down":
		m.setFormFocus((m.Form.FocusRow + 1) % formRowCount)
		return m, nil
	case "shift+tab", "up":
		m.setFormFocus((m.Form.FocusRow - 1 + formRowCount) % formRowCount)
		return m, nil
	}

	switch m.Form.FocusRow {
	case formRowDays:
		switch msg.String() {
		case "left", "h":
			m.Form.DayCursor = clamp(m.Form.DayCursor-1, 0, len(model.AllDays)-1)
		case "right", "l":
			m.Form.DayCursor = clamp(m.Form.DayCursor+1, 0, len(model.AllDays)-1)
		case " ":
			label := model.AllDays[m.Form.DayCursor]
			m.Form.SelectedDays[label] = !m.Form.SelectedDays[label]
		}
		return m, nil
	case formRowDuration:
		switch msg.String() {
		case "left", "h":
			m.Form.DurationIdx = (m.Form.DurationIdx - 1 + len(durationChoices)) % len(durationChoices)
		case "right", "l", " ":
			m.Form.DurationIdx = (m.Form.DurationIdx + 1) % len(durationChoices)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.Form.FocusRow {
	case formRowName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case formRowTime:
		m.timeInput, cmd = m.timeInput.Update(msg)
	case formRowNotes:
		m.notesInput, cmd = m.notesInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFormFocus(row int) {
	m.Form.FocusRow = row
	m.nameInput.Blur()
	m.timeInput.Blur()
	m.notesInput.Blur()
	switch row {
	case formRowName:
		m.nameInput.Focus()
	case formRowTime:
		m.timeInput.Focus()
	case formRowNotes:
		m.notesInput.Focus()
	}
}

// submitForm hands the draft to the store. A rejected draft keeps the form
// open with an error status so the entry isn't lost.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	days := make([]string, 0, len(model.AllDays))
	for _, d := range model.AllDays {
		if m.Form.SelectedDays[d] {
			days = append(days, d)
		}
	}
	draft := store.Draft{
		Name:      m.nameInput.Value(),
		TimeOfDay: m.timeInput.Value(),
		Notes:     m.notesInput.Value(),
		Days:      days,
		ActiveFor: durationChoices[m.Form.DurationIdx],
	}
	rem, err := m.Store.Add(context.Background(), draft)
	if err != nil {
		text := err.Error()
		if errors.Is(err, model.ErrValidationFailed) || errors.Is(err, model.ErrInvalidTime) {
			text = friendlyValidation(err)
		}
		m.Status = StatusBar{Text: text, IsError: true}
		return m, nil
	}
	m.CurrentView = ViewToday
	m.Status = StatusBar{Text: fmt.Sprintf("added %s", rem.Name)}
	m.rearmRefresh()
	return m, nil
}

func friendlyValidation(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidTime):
		return "time must look like 08:30"
	default:
		return err.Error()
	}
}
