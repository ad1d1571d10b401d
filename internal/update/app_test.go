package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"doseup/internal/model"
	"doseup/internal/refresh"
	"doseup/internal/storage"
	"doseup/internal/store"
)

func refreshMidnightEvent() refresh.Event {
	return refresh.Event{Reason: refresh.ReasonMidnight, At: testNow}
}

type memKV struct {
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memKV) Close() error { return nil }

// Monday.
var testNow = time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func newTestModel(t *testing.T, drafts ...store.Draft) (Model, *store.Store) {
	t.Helper()
	st := store.New(newMemKV(),
		store.WithClock(fixedNow),
		store.WithRand(func(int) int { return 0 }),
	)
	for _, d := range drafts {
		if _, err := st.Add(context.Background(), d); err != nil {
			t.Fatalf("seed reminder: %v", err)
		}
	}
	m := NewModel(st, nil, DefaultRuntimeConfig()).WithClock(fixedNow)
	return m, st
}

func dailyDraft(name, at string) store.Draft {
	return store.Draft{Name: name, TimeOfDay: at, Days: append([]string(nil), model.AllDays...)}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.CurrentView != ViewToday {
		t.Fatalf("expected default view %q, got %q", ViewToday, m.CurrentView)
	}
	if m.Theme != model.ThemeLight {
		t.Fatalf("expected light theme, got %q", m.Theme)
	}
}

func TestTabSwitchesBetweenTodayAndWeek(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	next := updated.(Model)
	if next.CurrentView != ViewWeek {
		t.Fatalf("expected week view, got %q", next.CurrentView)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	next = updated.(Model)
	if next.CurrentView != ViewToday {
		t.Fatalf("expected today view, got %q", next.CurrentView)
	}
}

func TestSwitchViewMsgIgnoresUnknown(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(SwitchViewMsg{View: ViewWeek})
	next := updated.(Model)
	if next.CurrentView != ViewWeek {
		t.Fatalf("expected week view, got %q", next.CurrentView)
	}
	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewWeek {
		t.Fatalf("expected view unchanged, got %q", next.CurrentView)
	}
}

func TestStatusAndErrorMessages(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error state: %+v %v", next.Status, next.LastError)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got %+v", next.Status)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(keyRunes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestToggleTakenPersistsAndCelebrates(t *testing.T) {
	m, st := newTestModel(t, dailyDraft("Aspirin", "08:00"))
	updated, cmd := m.Update(keyRunes("t"))
	next := updated.(Model)

	if !st.Reminders()[0].TakenOn("Mon") {
		t.Fatal("expected Monday marked taken")
	}
	if !next.Celebration.Active {
		t.Fatal("expected celebration after last dose taken")
	}
	if cmd == nil {
		t.Fatal("expected celebration clear command")
	}

	updated, _ = next.Update(CelebrationClearMsg{})
	next = updated.(Model)
	if next.Celebration.Active {
		t.Fatal("expected celebration cleared")
	}
}

func TestToggleTakenNoCelebrationWhileDosesRemain(t *testing.T) {
	m, _ := newTestModel(t, dailyDraft("Aspirin", "08:00"), dailyDraft("Iron", "20:00"))
	updated, _ := m.Update(keyRunes("t"))
	next := updated.(Model)
	if next.Celebration.Active {
		t.Fatal("expected no celebration with a dose still due")
	}
}

func TestUntoggleDoesNotCelebrate(t *testing.T) {
	m, _ := newTestModel(t, dailyDraft("Aspirin", "08:00"))
	updated, _ := m.Update(keyRunes("t"))
	next := updated.(Model)
	next.Celebration.Active = false

	updated, cmd := next.Update(keyRunes("t"))
	next = updated.(Model)
	if next.Celebration.Active {
		t.Fatal("expected no celebration when unmarking")
	}
	if cmd != nil {
		t.Fatal("expected no clear command when unmarking")
	}
}

func TestDeleteKeyRemovesSelected(t *testing.T) {
	m, st := newTestModel(t, dailyDraft("Aspirin", "08:00"), dailyDraft("Iron", "20:00"))
	updated, _ := m.Update(keyRunes("d"))
	next := updated.(Model)
	if st.Len() != 1 {
		t.Fatalf("expected 1 reminder left, got %d", st.Len())
	}
	if st.Reminders()[0].Name != "Iron" {
		t.Fatalf("expected Iron to remain, got %q", st.Reminders()[0].Name)
	}
	if !strings.Contains(next.Status.Text, "Aspirin") {
		t.Fatalf("expected delete status to name Aspirin, got %q", next.Status.Text)
	}
}

func TestAddFormFlow(t *testing.T) {
	m, st := newTestModel(t)
	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	if next.CurrentView != ViewAdd {
		t.Fatalf("expected add view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(keyRunes("Vitamin D"))
	next = updated.(Model)

	// To the days row, select Monday.
	for i := 0; i < 3; i++ {
		updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
		next = updated.(Model)
	}
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace})
	next = updated.(Model)

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if st.Len() != 1 {
		t.Fatalf("expected 1 reminder, got %d", st.Len())
	}
	rem := st.Reminders()[0]
	if rem.Name != "Vitamin D" {
		t.Fatalf("unexpected name %q", rem.Name)
	}
	if len(rem.Days) != 1 || rem.Days[0] != "Mon" {
		t.Fatalf("unexpected days %v", rem.Days)
	}
	if next.CurrentView != ViewToday {
		t.Fatalf("expected return to today view, got %q", next.CurrentView)
	}
}

func TestAddFormRejectsEmptyName(t *testing.T) {
	m, st := newTestModel(t)
	updated, _ := m.Update(keyRunes("a"))
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if st.Len() != 0 {
		t.Fatalf("expected no reminder, got %d", st.Len())
	}
	if next.CurrentView != ViewAdd {
		t.Fatal("expected to stay on the form")
	}
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestSettingsToggleTheme(t *testing.T) {
	m, st := newTestModel(t)
	updated, _ := m.Update(keyRunes("s"))
	next := updated.(Model)
	if !next.Settings.Open {
		t.Fatal("expected settings drawer open")
	}

	updated, _ = next.Update(keyRunes("t"))
	next = updated.(Model)
	if next.Theme != model.ThemeDark {
		t.Fatalf("expected dark theme, got %q", next.Theme)
	}
	if got := st.LoadTheme(context.Background(), model.ThemeLight); got != model.ThemeDark {
		t.Fatalf("expected persisted dark theme, got %q", got)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next = updated.(Model)
	if next.Settings.Open {
		t.Fatal("expected settings drawer closed")
	}
}

func TestPaletteThemeCommand(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette active")
	}

	updated, _ = next.Update(keyRunes("theme dark"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Palette.Active {
		t.Fatal("expected palette closed after execute")
	}
	if next.Theme != model.ThemeDark {
		t.Fatalf("expected dark theme, got %q", next.Theme)
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m, st := newTestModel(t)
	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyRunes("add Aspirin at:08:00 on:mon,wed"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if st.Len() != 1 {
		t.Fatalf("expected 1 reminder, got %d", st.Len())
	}
	rem := st.Reminders()[0]
	if rem.TimeOfDay != "08:00" {
		t.Fatalf("unexpected time %q", rem.TimeOfDay)
	}
	if len(rem.Days) != 2 || rem.Days[0] != "Mon" || rem.Days[1] != "Wed" {
		t.Fatalf("unexpected days %v", rem.Days)
	}
	if next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}
}

func TestPaletteDeleteOutOfRange(t *testing.T) {
	m, _ := newTestModel(t, dailyDraft("Aspirin", "08:00"))
	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyRunes("delete 5"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestPaletteTakenDefaultsToToday(t *testing.T) {
	m, st := newTestModel(t, dailyDraft("Aspirin", "08:00"))
	updated, _ := m.Update(keyRunes("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyRunes("taken 1"))
	next = updated.(Model)
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if !st.Reminders()[0].TakenOn("Mon") {
		t.Fatal("expected Monday marked taken")
	}
	if !next.Celebration.Active {
		t.Fatal("expected celebration after last dose taken")
	}
	if cmd == nil {
		t.Fatal("expected celebration clear command")
	}
}

func TestViewShowsRemindersAndStatus(t *testing.T) {
	m, _ := newTestModel(t, dailyDraft("Aspirin", "08:00"))
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "Aspirin") {
		t.Fatalf("expected reminder name in output: %q", out)
	}
	if !strings.Contains(out, "all good") {
		t.Fatalf("expected status in output: %q", out)
	}
	if !strings.Contains(out, "Next dose") {
		t.Fatalf("expected countdown banner in output: %q", out)
	}
}

func TestMidnightRefreshResetsCelebrationState(t *testing.T) {
	m, _ := newTestModel(t, dailyDraft("Aspirin", "08:00"))
	updated, _ := m.Update(keyRunes("t"))
	next := updated.(Model)

	updated, _ = next.Update(RefreshMsg{Event: refreshMidnightEvent()})
	next = updated.(Model)
	if next.Celebration.Active {
		t.Fatalf("expected celebration state reset, got %+v", next.Celebration)
	}
}
