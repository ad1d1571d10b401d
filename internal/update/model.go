package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"doseup/internal/model"
	"doseup/internal/refresh"
	"doseup/internal/store"
)

type View string

const (
	ViewToday View = "Today"
	ViewWeek  View = "Week"
	ViewAdd   View = "Add"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type TodayState struct {
	Cursor int
}

type FormState struct {
	FocusRow     int
	DayCursor    int
	SelectedDays map[string]bool
	DurationIdx  int
}

// durationChoices cycles through the treatment-length presets.
var durationChoices = []model.Duration{
	model.DurationForever,
	model.Duration("7"),
	model.Duration("14"),
	model.Duration("21"),
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type SettingsState struct {
	Open bool
}

type CelebrationState struct {
	Active bool
}

type GlobalKeyMap struct {
	SwitchView key.Binding
	Add        key.Binding
	Taken      key.Binding
	Delete     key.Binding
	Settings   key.Binding
	Palette    key.Binding
	Quit       key.Binding
}

func (k GlobalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchView, k.Add, k.Taken, k.Delete, k.Settings, k.Palette, k.Quit}
}

func (k GlobalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SwitchView, k.Add, k.Taken},
		{k.Delete, k.Settings, k.Palette, k.Quit},
	}
}

func defaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		SwitchView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Taken:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "taken")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Palette:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type Model struct {
	CurrentView View
	Store       *store.Store
	Refresh     *refresh.Engine
	Cfg         RuntimeConfig
	Theme       model.Theme
	Status      StatusBar
	Today       TodayState
	Form        FormState
	Palette     CommandPaletteState
	Settings    SettingsState
	Celebration CelebrationState
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	now    func() time.Time
	width  int
	height int

	// Bubble components used for rich TUI controls
	nameInput     textinput.Model
	timeInput     textinput.Model
	notesInput    textinput.Model
	commandInput  textinput.Model
	todayProgress progress.Model
	helpModel     help.Model
	notesViewport viewport.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type RefreshMsg struct {
	Event refresh.Event
}

type CelebrationClearMsg struct{}

func NewModel(st *store.Store, engine *refresh.Engine, cfg RuntimeConfig) Model {
	m := Model{
		CurrentView: ViewToday,
		Store:       st,
		Refresh:     engine,
		Cfg:         cfg,
		Theme:       model.Theme(cfg.DefaultTheme),
		Keys:        defaultKeyMap(),
		now:         func() time.Time { return time.Now() },
		width:       120,
		height:      40,
	}
	m.resetForm()
	m.initBubbleComponents()
	return m
}

// WithClock fixes the model's notion of now. Tests use this.
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}

func (m *Model) initBubbleComponents() {
	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "e.g. Vitamin D"
	m.nameInput.CharLimit = 80

	m.timeInput = textinput.New()
	m.timeInput.Placeholder = "HH:MM"
	m.timeInput.CharLimit = 5

	m.notesInput = textinput.New()
	m.notesInput.Placeholder = "with food, etc."
	m.notesInput.CharLimit = 160

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"

	m.todayProgress = progress.New(progress.WithDefaultGradient())
	m.helpModel = help.New()
	m.notesViewport = viewport.New(56, 6)
}

func (m *Model) resetForm() {
	m.Form = FormState{
		SelectedDays: make(map[string]bool),
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewWeek, ViewAdd:
		return true
	default:
		return false
	}
}
