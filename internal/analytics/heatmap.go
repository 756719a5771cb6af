package analytics

import "gamehub-admin/internal/model"

// Heatmap is a day-of-week by hour-of-day activity grid.
// Day index 0 is Sunday, matching time.Weekday.
type Heatmap struct {
	Grid [7][24]int `json:"grid"`
	Max  int        `json:"max"` // never below 1, so consumers can normalize intensity
}

// BuildHeatmap counts the filtered events into a 7x24 grid using the local
// day-of-week and hour-of-day of each timestamp. Events with a pending
// timestamp are skipped.
func BuildHeatmap(events []model.ClickEvent) Heatmap {
	h := Heatmap{Max: 1}
	for _, e := range events {
		if e.Timestamp == nil {
			continue
		}
		local := e.Timestamp.Local()
		day := int(local.Weekday())
		hour := local.Hour()
		h.Grid[day][hour]++
		if h.Grid[day][hour] > h.Max {
			h.Max = h.Grid[day][hour]
		}
	}
	return h
}
