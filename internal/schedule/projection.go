// Package schedule derives the read-only views over the reminder
// collection: today's doses, the weekly agenda, the next-dose countdown
// and progress. Every function recomputes from scratch against the
// supplied reference time so the views stay correct as the clock moves.
package schedule

import (
	"math"
	"sort"
	"time"

	"doseup/internal/model"
)

// TodayItem is one applicable reminder annotated with its taken-today
// status. Index refers back to the reminder's position in the store.
type TodayItem struct {
	Index    int
	Reminder model.Reminder
	Taken    bool
}

type TodayView struct {
	Date       time.Time
	Label      string
	Items      []TodayItem
	TakenCount int
	Percent    int
}

// Today projects the reminders that apply on the reference date.
func Today(reminders []model.Reminder, now time.Time) TodayView {
	label := model.DayLabel(now)
	view := TodayView{Date: now, Label: label, Items: make([]TodayItem, 0)}
	for i, r := range reminders {
		if !r.AppliesOn(now) {
			continue
		}
		taken := r.TakenOn(label)
		if taken {
			view.TakenCount++
		}
		view.Items = append(view.Items, TodayItem{Index: i, Reminder: r, Taken: taken})
	}
	view.Percent = Percent(view.TakenCount, len(view.Items))
	return view
}

// Percent is the rounded completion percentage; 0 when nothing is due.
func Percent(taken, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(taken) / float64(total) * 100))
}

type AgendaItem struct {
	Index    int
	Reminder model.Reminder
}

// DayAgenda is one weekday's slice of the weekly agenda, stamped with the
// upcoming calendar date for that weekday (today counts as today).
type DayAgenda struct {
	Label string
	Date  time.Time
	Items []AgendaItem
}

// Week projects the seven-day agenda in Mon..Sun order. Each day's items
// are the reminders applying on that day's upcoming date, sorted ascending
// by time of day; reminders without a time sort first.
func Week(reminders []model.Reminder, now time.Time) []DayAgenda {
	out := make([]DayAgenda, 0, len(model.AllDays))
	for _, label := range model.AllDays {
		date := upcoming(now, label)
		day := DayAgenda{Label: label, Date: date, Items: make([]AgendaItem, 0)}
		for i, r := range reminders {
			if r.AppliesOn(date) {
				day.Items = append(day.Items, AgendaItem{Index: i, Reminder: r})
			}
		}
		sort.SliceStable(day.Items, func(i, j int) bool {
			return day.Items[i].Reminder.TimeOfDay < day.Items[j].Reminder.TimeOfDay
		})
		out = append(out, day)
	}
	return out
}

// upcoming returns the next calendar date (today inclusive) whose weekday
// matches the label.
func upcoming(now time.Time, label string) time.Time {
	for i := 0; i < len(model.AllDays); i++ {
		candidate := now.AddDate(0, 0, i)
		if model.DayLabel(candidate) == label {
			return candidate
		}
	}
	return now
}

// Countdown is the time remaining until the soonest upcoming dose.
type Countdown struct {
	Index    int
	Reminder model.Reminder
	At       time.Time
	Hours    int
	Minutes  int
}

// NextDose finds the soonest dose time across the collection, rolling a
// time that already passed today over to tomorrow. When followSchedule is
// false every timed reminder counts regardless of its recurrence days,
// matching the historical behavior; when true the candidate rolls forward
// day by day to the reminder's next applicable occurrence. The second
// return is false when no reminder carries a time of day.
func NextDose(reminders []model.Reminder, now time.Time, followSchedule bool) (Countdown, bool) {
	best := Countdown{}
	found := false
	for i, r := range reminders {
		if r.TimeOfDay == "" {
			continue
		}
		clock, err := time.Parse("15:04", r.TimeOfDay)
		if err != nil {
			continue
		}
		y, m, d := now.Date()
		candidate := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		if followSchedule {
			// A week of candidates covers every recurrence label; a
			// reminder whose window closes before its next scheduled day
			// never applies again.
			applies := false
			for step := 0; step < len(model.AllDays); step++ {
				if r.AppliesOn(candidate) {
					applies = true
					break
				}
				candidate = candidate.AddDate(0, 0, 1)
			}
			if !applies {
				continue
			}
		}
		if !found || candidate.Before(best.At) {
			remaining := candidate.Sub(now)
			best = Countdown{
				Index:    i,
				Reminder: r,
				At:       candidate,
				Hours:    int(remaining / time.Hour),
				Minutes:  int(remaining % time.Hour / time.Minute),
			}
			found = true
		}
	}
	return best, found
}

// AllTakenOn reports whether every reminder applying on the given date is
// marked taken for that date's weekday label. An empty applicable set is
// never all-taken.
func AllTakenOn(reminders []model.Reminder, date time.Time) bool {
	label := model.DayLabel(date)
	applicable := 0
	for _, r := range reminders {
		if !r.AppliesOn(date) {
			continue
		}
		applicable++
		if !r.TakenOn(label) {
			return false
		}
	}
	return applicable > 0
}
