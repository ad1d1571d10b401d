package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrValidationFailed = errors.New("model: validation failed")
	ErrInvalidDuration  = errors.New("model: invalid duration")
	ErrInvalidWeekday   = errors.New("model: invalid weekday label")
	ErrInvalidTime      = errors.New("model: invalid time of day")
)

// AllDays lists the weekday labels in agenda order.
var AllDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayLabel returns the short English weekday label for a date,
// independent of locale.
func DayLabel(t time.Time) string {
	return t.Format("Mon")
}

func IsDayLabel(label string) bool {
	for _, d := range AllDays {
		if d == label {
			return true
		}
	}
	return false
}

// Duration is a reminder's active lifetime: "forever" or a whole number
// of days counted from creation. The string form matches the persisted
// record shape.
type Duration string

const DurationForever Duration = "forever"

func (d Duration) IsForever() bool {
	return d == "" || d == DurationForever
}

// DayCount returns the day span for finite durations.
func (d Duration) DayCount() (int, error) {
	if d.IsForever() {
		return 0, fmt.Errorf("%w: %q has no day count", ErrInvalidDuration, d)
	}
	n, err := strconv.Atoi(string(d))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, d)
	}
	return n, nil
}

func (d Duration) Validate() error {
	if d.IsForever() {
		return nil
	}
	_, err := d.DayCount()
	return err
}

// Palette holds the color tags assigned to new reminders.
var Palette = []string{"red", "yellow", "green", "blue"}

// PickColor selects a palette color with the supplied random source.
func PickColor(intn func(int) int) string {
	if intn == nil {
		return Palette[0]
	}
	return Palette[intn(len(Palette))%len(Palette)]
}

// Reminder is one scheduled medication entry. JSON field names follow the
// historical doseup-reminders record shape so stored data round-trips.
type Reminder struct {
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"pillName"`
	TimeOfDay  string          `json:"time"`
	Notes      string          `json:"description,omitempty"`
	Days       []string        `json:"days"`
	Color      string          `json:"color"`
	TakenByDay map[string]bool `json:"takenPerDay"`
	CreatedAt  time.Time       `json:"created"`
	ActiveFor  Duration        `json:"duration"`
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if r.TimeOfDay != "" {
		if _, err := time.Parse("15:04", r.TimeOfDay); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTime, r.TimeOfDay)
		}
	}
	seen := make(map[string]bool, len(r.Days))
	for _, d := range r.Days {
		if !IsDayLabel(d) {
			return fmt.Errorf("%w: %q", ErrInvalidWeekday, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate day %q", ErrInvalidWeekday, d)
		}
		seen[d] = true
	}
	if err := r.ActiveFor.Validate(); err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		return errors.New("model: reminder created_at is required")
	}
	return nil
}

// Normalize backfills the per-day taken map so every weekday label has an
// entry, and deduplicates the recurrence day set.
func (r *Reminder) Normalize() {
	if r.TakenByDay == nil {
		r.TakenByDay = make(map[string]bool, len(AllDays))
	}
	for _, d := range AllDays {
		if _, ok := r.TakenByDay[d]; !ok {
			r.TakenByDay[d] = false
		}
	}
	if len(r.Days) > 1 {
		seen := make(map[string]bool, len(r.Days))
		out := r.Days[:0]
		for _, d := range r.Days {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
		r.Days = out
	}
}

// ActiveOn reports whether the reminder is within its active duration
// window on the given calendar date. The window is inclusive on both ends
// at day granularity. Malformed durations degrade to forever.
func (r Reminder) ActiveOn(date time.Time) bool {
	if r.ActiveFor.IsForever() {
		return true
	}
	n, err := r.ActiveFor.DayCount()
	if err != nil {
		return true
	}
	start := dateOnly(r.CreatedAt)
	end := start.AddDate(0, 0, n)
	day := dateOnly(date)
	return !day.Before(start) && !day.After(end)
}

// AppliesOn reports whether the reminder is scheduled for the given date:
// the date's weekday label is in the recurrence set (an empty set means
// every day) and the reminder is still active.
func (r Reminder) AppliesOn(date time.Time) bool {
	if !r.ActiveOn(date) {
		return false
	}
	if len(r.Days) == 0 {
		return true
	}
	label := DayLabel(date)
	for _, d := range r.Days {
		if d == label {
			return true
		}
	}
	return false
}

// TakenOn reports the taken flag for a weekday label.
func (r Reminder) TakenOn(label string) bool {
	return r.TakenByDay[label]
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
