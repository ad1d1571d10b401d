package store

import (
	"encoding/json"

	"github.com/google/uuid"

	"doseup/internal/model"
)

// record tolerates the historical payload variants: early records carried
// a single `taken` flag instead of the per-day map, and no id.
type record struct {
	model.Reminder
	Taken *bool `json:"taken,omitempty"`
}

func decodeCollection(raw []byte) ([]model.Reminder, error) {
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	out := make([]model.Reminder, 0, len(records))
	for _, rec := range records {
		r := rec.Reminder
		r.Normalize()
		if rec.Taken != nil && *rec.Taken {
			// Single-flag records had no per-day distinction; carry the
			// flag over to every day.
			for _, d := range model.AllDays {
				r.TakenByDay[d] = true
			}
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		out = append(out, r)
	}
	return out, nil
}

func encodeCollection(reminders []model.Reminder) ([]byte, error) {
	if reminders == nil {
		reminders = make([]model.Reminder, 0)
	}
	return json.Marshal(reminders)
}
