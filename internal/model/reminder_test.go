package model

import (
	"errors"
	"testing"
	"time"
)

func TestReminderValidateSuccess(t *testing.T) {
	r := Reminder{
		Name:      "Aspirin",
		TimeOfDay: "08:00",
		Days:      []string{"Mon", "Wed"},
		ActiveFor: DurationForever,
		CreatedAt: time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC),
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid reminder, got error: %v", err)
	}
}

func TestReminderValidateEmptyName(t *testing.T) {
	r := Reminder{
		Name:      "   ",
		CreatedAt: time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC),
	}
	if err := r.Validate(); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got: %v", err)
	}
}

func TestReminderValidateBadFields(t *testing.T) {
	created := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)

	r := Reminder{Name: "Aspirin", TimeOfDay: "25:99", CreatedAt: created}
	if err := r.Validate(); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got: %v", err)
	}

	r = Reminder{Name: "Aspirin", Days: []string{"Monday"}, CreatedAt: created}
	if err := r.Validate(); !errors.Is(err, ErrInvalidWeekday) {
		t.Fatalf("expected ErrInvalidWeekday, got: %v", err)
	}

	r = Reminder{Name: "Aspirin", Days: []string{"Mon", "Mon"}, CreatedAt: created}
	if err := r.Validate(); !errors.Is(err, ErrInvalidWeekday) {
		t.Fatalf("expected duplicate day error, got: %v", err)
	}

	r = Reminder{Name: "Aspirin", ActiveFor: Duration("soon"), CreatedAt: created}
	if err := r.Validate(); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got: %v", err)
	}
}

func TestDurationDayCount(t *testing.T) {
	if !DurationForever.IsForever() || !Duration("").IsForever() {
		t.Fatal("expected forever for empty and forever durations")
	}
	n, err := Duration("14").DayCount()
	if err != nil || n != 14 {
		t.Fatalf("expected 14 days, got %d (%v)", n, err)
	}
	if _, err := Duration("-3").DayCount(); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration for negative, got: %v", err)
	}
}

func TestDayLabel(t *testing.T) {
	monday := time.Date(2026, 4, 6, 12, 0, 0, 0, time.UTC)
	for i, want := range AllDays {
		got := DayLabel(monday.AddDate(0, 0, i))
		if got != want {
			t.Fatalf("day %d: got label %q want %q", i, got, want)
		}
	}
}

func TestActiveOnFiniteWindow(t *testing.T) {
	created := time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC)
	r := Reminder{Name: "Amoxicillin", ActiveFor: Duration("7"), CreatedAt: created}

	cases := []struct {
		date time.Time
		want bool
	}{
		{created, true},
		{created.AddDate(0, 0, 6), true},
		{created.AddDate(0, 0, 7), true}, // inclusive end
		{created.AddDate(0, 0, 8), false},
		{created.AddDate(0, 0, -1), false},
	}
	for _, tc := range cases {
		if got := r.ActiveOn(tc.date); got != tc.want {
			t.Fatalf("ActiveOn(%s) got %v want %v", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestActiveOnForever(t *testing.T) {
	created := time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC)
	r := Reminder{Name: "Vitamin D", ActiveFor: DurationForever, CreatedAt: created}
	if !r.ActiveOn(created.AddDate(10, 0, 0)) {
		t.Fatal("forever reminder should stay active")
	}
}

func TestAppliesOnRecurrence(t *testing.T) {
	created := time.Date(2026, 4, 6, 8, 0, 0, 0, time.UTC) // Monday
	r := Reminder{Name: "Aspirin", Days: []string{"Mon", "Wed"}, ActiveFor: DurationForever, CreatedAt: created}

	monday := time.Date(2026, 4, 13, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	if !r.AppliesOn(monday) {
		t.Fatal("expected reminder to apply on Monday")
	}
	if r.AppliesOn(tuesday) {
		t.Fatal("expected reminder not to apply on Tuesday")
	}
}

func TestAppliesOnEmptyDaysMeansDaily(t *testing.T) {
	created := time.Date(2026, 4, 6, 8, 0, 0, 0, time.UTC)
	r := Reminder{Name: "Iron", ActiveFor: DurationForever, CreatedAt: created}
	for i := 0; i < 7; i++ {
		if !r.AppliesOn(created.AddDate(0, 0, i)) {
			t.Fatalf("daily reminder should apply on day offset %d", i)
		}
	}
}

func TestAppliesOnExpired(t *testing.T) {
	created := time.Date(2026, 4, 6, 8, 0, 0, 0, time.UTC) // Monday
	r := Reminder{Name: "Aspirin", Days: []string{"Mon"}, ActiveFor: Duration("7"), CreatedAt: created}
	nextNextMonday := created.AddDate(0, 0, 14)
	if r.AppliesOn(nextNextMonday) {
		t.Fatal("expired reminder must not apply even on a matching weekday")
	}
}

func TestNormalizeBackfillsTakenMap(t *testing.T) {
	r := Reminder{Name: "Aspirin", Days: []string{"Mon", "Mon", "Wed"}}
	r.Normalize()
	if len(r.TakenByDay) != 7 {
		t.Fatalf("expected 7 taken entries, got %d", len(r.TakenByDay))
	}
	for _, d := range AllDays {
		if r.TakenByDay[d] {
			t.Fatalf("expected %s to default to not taken", d)
		}
	}
	if len(r.Days) != 2 {
		t.Fatalf("expected deduplicated days, got %v", r.Days)
	}
}

func TestPickColorStaysInPalette(t *testing.T) {
	for i := 0; i < 10; i++ {
		i := i
		color := PickColor(func(n int) int { return i })
		found := false
		for _, c := range Palette {
			if c == color {
				found = true
			}
		}
		if !found {
			t.Fatalf("color %q not in palette", color)
		}
	}
	if PickColor(nil) != Palette[0] {
		t.Fatal("nil source should fall back to first palette color")
	}
}

func TestThemeToggled(t *testing.T) {
	if ThemeLight.Toggled() != ThemeDark || ThemeDark.Toggled() != ThemeLight {
		t.Fatal("theme toggle should flip between light and dark")
	}
	if Theme("sepia").IsValid() {
		t.Fatal("unexpected valid theme")
	}
}
