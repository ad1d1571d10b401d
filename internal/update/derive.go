package update

import (
	"doseup/internal/refresh"
	"doseup/internal/schedule"
)

func (m Model) todayView() schedule.TodayView {
	return schedule.Today(m.Store.Reminders(), m.now())
}

func (m Model) weekAgenda() []schedule.DayAgenda {
	return schedule.Week(m.Store.Reminders(), m.now())
}

func (m Model) nextDose() (schedule.Countdown, bool) {
	return schedule.NextDose(m.Store.Reminders(), m.now(), m.Cfg.CountdownFollowsSchedule)
}

// rearmRefresh requeues the engine wakeups after any mutation: one at the
// next scheduled dose, one at midnight so day-scoped views roll over.
func (m Model) rearmRefresh() {
	if m.Refresh == nil {
		return
	}
	now := m.now()
	events := []refresh.Event{
		{Reason: refresh.ReasonMidnight, At: refresh.NextMidnight(now)},
	}
	if cd, ok := m.nextDose(); ok {
		events = append(events, refresh.Event{Reason: refresh.ReasonNextDose, At: cd.At})
	}
	_ = m.Refresh.Rearm(events)
}
