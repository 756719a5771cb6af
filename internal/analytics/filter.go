package analytics

import (
	"time"

	"gamehub-admin/internal/model"
)

// FilterWindow returns the events whose timestamp falls within the trailing
// window [now-windowDays, now]. Events with a pending (nil) timestamp are
// always excluded. Input order is preserved; the input slice is not modified.
func FilterWindow(events []model.ClickEvent, windowDays int, now time.Time) []model.ClickEvent {
	cutoff := now.AddDate(0, 0, -windowDays)

	var out []model.ClickEvent
	for _, e := range events {
		if e.Timestamp == nil {
			continue
		}
		if e.Timestamp.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}
