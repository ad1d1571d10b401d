// Package store owns the reminder collection for the lifetime of the
// session. It is the only mutator; the key-value collaborator is a passive
// mirror, consulted once at load and rewritten whole after every mutation.
package store

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"doseup/internal/model"
	"doseup/internal/storage"
)

// Draft carries the user-entered fields of a new reminder.
type Draft struct {
	Name      string
	TimeOfDay string
	Notes     string
	Days      []string
	ActiveFor model.Duration
}

type Store struct {
	kv          storage.KeyValue
	now         func() time.Time
	intn        func(int) int
	requireDays bool
	reminders   []model.Reminder
}

type Option func(*Store)

// WithClock injects the wall-clock source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRand injects the random source used for color assignment.
func WithRand(intn func(int) int) Option {
	return func(s *Store) { s.intn = intn }
}

// WithRequireDays controls whether Add rejects drafts with no recurrence
// day selected.
func WithRequireDays(required bool) Option {
	return func(s *Store) { s.requireDays = required }
}

func New(kv storage.KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:          kv,
		now:         func() time.Time { return time.Now() },
		intn:        rand.Intn,
		requireDays: true,
		reminders:   make([]model.Reminder, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reminders returns a copy of the collection; callers never mutate the
// store's slice directly.
func (s *Store) Reminders() []model.Reminder {
	out := make([]model.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

func (s *Store) Len() int {
	return len(s.reminders)
}

// Add validates the draft, stamps it, appends it and persists the
// collection. A rejected draft leaves the collection untouched.
func (s *Store) Add(ctx context.Context, d Draft) (model.Reminder, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return model.Reminder{}, fmt.Errorf("%w: name is required", model.ErrValidationFailed)
	}
	if s.requireDays && len(d.Days) == 0 {
		return model.Reminder{}, fmt.Errorf("%w: pick at least one day", model.ErrValidationFailed)
	}
	r := model.Reminder{
		ID:        uuid.NewString(),
		Name:      name,
		TimeOfDay: strings.TrimSpace(d.TimeOfDay),
		Notes:     strings.TrimSpace(d.Notes),
		Days:      append([]string(nil), d.Days...),
		Color:     model.PickColor(s.intn),
		CreatedAt: s.now(),
		ActiveFor: d.ActiveFor,
	}
	if r.ActiveFor == "" {
		r.ActiveFor = model.DurationForever
	}
	r.Normalize()
	if err := r.Validate(); err != nil {
		return model.Reminder{}, err
	}
	s.reminders = append(s.reminders, r)
	if err := s.Save(ctx); err != nil {
		return r, err
	}
	return r, nil
}

// Remove deletes the reminder at the given position. Out-of-range indexes
// are a no-op.
func (s *Store) Remove(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.reminders) {
		return nil
	}
	s.reminders = append(s.reminders[:index], s.reminders[index+1:]...)
	return s.Save(ctx)
}

// ToggleTaken flips the taken flag for one weekday label. Out-of-range
// indexes and unknown labels are a no-op.
func (s *Store) ToggleTaken(ctx context.Context, index int, label string) error {
	if index < 0 || index >= len(s.reminders) {
		return nil
	}
	if !model.IsDayLabel(label) {
		return nil
	}
	s.reminders[index].TakenByDay[label] = !s.reminders[index].TakenByDay[label]
	return s.Save(ctx)
}

// Load restores the collection from the doseup-reminders key. A missing
// key or malformed payload fails open to an empty collection.
func (s *Store) Load(ctx context.Context) {
	raw, err := s.kv.Get(ctx, storage.KeyReminders)
	if err != nil {
		s.reminders = make([]model.Reminder, 0)
		return
	}
	reminders, err := decodeCollection([]byte(raw))
	if err != nil {
		s.reminders = make([]model.Reminder, 0)
		return
	}
	s.reminders = reminders
}

// Save writes the whole serialized collection in one Set.
func (s *Store) Save(ctx context.Context) error {
	payload, err := encodeCollection(s.reminders)
	if err != nil {
		return fmt.Errorf("encode reminders: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyReminders, string(payload)); err != nil {
		return fmt.Errorf("persist reminders: %w", err)
	}
	return nil
}

// LoadTheme reads the persisted theme preference. A missing key or an
// unrecognized stored value yields the fallback; an invalid fallback
// degrades to light.
func (s *Store) LoadTheme(ctx context.Context, fallback model.Theme) model.Theme {
	if !fallback.IsValid() {
		fallback = model.ThemeLight
	}
	raw, err := s.kv.Get(ctx, storage.KeyTheme)
	if err != nil {
		return fallback
	}
	theme := model.Theme(raw)
	if !theme.IsValid() {
		return fallback
	}
	return theme
}

func (s *Store) SaveTheme(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		theme = model.ThemeLight
	}
	if err := s.kv.Set(ctx, storage.KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}
