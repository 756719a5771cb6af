package analytics

import (
	"sort"
	"time"

	"gamehub-admin/internal/model"
)

// Category assigned to events with a missing or empty category label.
const FallbackCategory = "Other"

// Title assigned to events with a missing game title.
const FallbackTitle = "Unknown"

// TimelineBucket is one calendar-day click count.
type TimelineBucket struct {
	Date   time.Time `json:"date"` // local midnight of the bucket day
	Clicks int       `json:"clicks"`
}

// NameCount is a generic labelled count (category, game title, country).
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GameCount is a per-game click count keyed by catalogue id.
type GameCount struct {
	GameID int    `json:"gameId"`
	Title  string `json:"title"`
	Count  int    `json:"count"`
}

// Timeline groups the filtered events by local calendar day and returns the
// buckets in chronological ascending order. Every event with a timestamp
// lands in exactly one bucket.
func Timeline(events []model.ClickEvent) []TimelineBucket {
	counts := make(map[time.Time]int)
	for _, e := range events {
		if e.Timestamp == nil {
			continue
		}
		y, m, d := e.Timestamp.Local().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		counts[day]++
	}

	out := make([]TimelineBucket, 0, len(counts))
	for day, n := range counts {
		out = append(out, TimelineBucket{Date: day, Clicks: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Categories groups the filtered events by category label, defaulting the
// empty label to FallbackCategory. Output preserves first-seen order.
func Categories(events []model.ClickEvent) []NameCount {
	return countByName(events, func(e *model.ClickEvent) string {
		if e.Category == "" {
			return FallbackCategory
		}
		return e.Category
	})
}

// TopGames counts the filtered events per game title and returns the five
// most-clicked. Sorting is stable: titles with tied counts keep the order in
// which they first appeared in the input.
func TopGames(events []model.ClickEvent) []NameCount {
	out := countByName(events, func(e *model.ClickEvent) string {
		if e.GameTitle == "" {
			return FallbackTitle
		}
		return e.GameTitle
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// countByName tallies events under keyFn, preserving first-seen key order.
func countByName(events []model.ClickEvent, keyFn func(*model.ClickEvent) string) []NameCount {
	counts := make(map[string]int)
	var order []string
	for i := range events {
		key := keyFn(&events[i])
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	out := make([]NameCount, 0, len(order))
	for _, key := range order {
		out = append(out, NameCount{Name: key, Count: counts[key]})
	}
	return out
}

// OrganicWindowed ranks every known game by its click count within the
// filtered window. Events without a game id are excluded from this view;
// games with zero clicks are dropped. Ties keep catalogue order.
func OrganicWindowed(events []model.ClickEvent) []GameCount {
	counts := make(map[int]int)
	for _, e := range events {
		if e.GameID == nil {
			continue
		}
		counts[*e.GameID]++
	}
	return rankKnownGames(func(id int) int { return counts[id] })
}

// OrganicAllTime ranks every known game by its all-time running click total
// from the stats collection. This is the alternative organic-chart mode.
func OrganicAllTime(stats map[int]int) []GameCount {
	return rankKnownGames(func(id int) int { return stats[id] })
}

// rankKnownGames maps the catalogue through countFn, drops zero-count
// entries, and sorts descending. Stable sort keeps catalogue order on ties.
func rankKnownGames(countFn func(id int) int) []GameCount {
	var out []GameCount
	for _, g := range model.KnownGames {
		if n := countFn(g.ID); n > 0 {
			out = append(out, GameCount{GameID: g.ID, Title: g.Title, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Summary holds the dashboard's headline numbers for the selected window.
type Summary struct {
	TotalInteractions int `json:"totalInteractions"`
	UniquePlayers     int `json:"uniquePlayers"`
	MobileSharePct    int `json:"mobileSharePct"`
}

// Summarize computes the headline numbers over the filtered events.
// A zero-length input yields a zero summary, never a division by zero.
func Summarize(events []model.ClickEvent) Summary {
	s := Summary{TotalInteractions: len(events)}

	users := make(map[string]struct{})
	mobile := 0
	for i := range events {
		users[events[i].UserID] = struct{}{}
		if events[i].IsMobile() {
			mobile++
		}
	}
	s.UniquePlayers = len(users)
	if len(events) > 0 {
		s.MobileSharePct = int(float64(mobile)/float64(len(events))*100 + 0.5)
	}
	return s
}

// CountryCounts tallies the filtered events by country for the traffic map.
// Events without geo data count under "Unknown". First-seen order.
func CountryCounts(events []model.ClickEvent) []NameCount {
	return countByName(events, func(e *model.ClickEvent) string {
		if e.Country == "" {
			return "Unknown"
		}
		return e.Country
	})
}

// TopRegions returns the n most active countries, sorted descending with
// first-seen order on ties.
func TopRegions(events []model.ClickEvent, n int) []NameCount {
	out := CountryCounts(events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
