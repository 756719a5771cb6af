// Property-based tests for the analytics pipeline.
package analytics

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"gamehub-admin/internal/model"
)

// genEvents draws a random event list. Roughly one in five events has a
// pending (nil) timestamp, and timestamps spread up to 400 days back so
// every window bucket gets exercised.
func genEvents(t *rapid.T, now time.Time) []model.ClickEvent {
	n := rapid.IntRange(0, 200).Draw(t, "n")
	events := make([]model.ClickEvent, n)
	for i := range events {
		e := model.ClickEvent{
			ID:       rapid.StringMatching(`[a-f0-9]{8}`).Draw(t, "id"),
			Category: rapid.SampledFrom([]string{"", "Puzzle", "Action", "Arcade"}).Draw(t, "category"),
			UserID:   rapid.SampledFrom([]string{"unknown", "u1", "u2", "u3"}).Draw(t, "userID"),
		}
		if rapid.IntRange(0, 4).Draw(t, "hasTS") > 0 {
			back := rapid.Int64Range(0, int64(400*24*time.Hour)).Draw(t, "back")
			when := now.Add(-time.Duration(back))
			e.Timestamp = &when
		}
		if rapid.Bool().Draw(t, "hasGame") {
			id := rapid.SampledFrom([]int{1, 2, 5, 7, 999}).Draw(t, "gameID")
			e.GameID = &id
			e.GameTitle = rapid.SampledFrom([]string{"X", "Y", "Z"}).Draw(t, "title")
		}
		events[i] = e
	}
	return events
}

// TestFilterWindowProperty checks filter membership and idempotence.
// *For any* event list and window, the filtered subset contains exactly the
// events with a present timestamp inside [now-window, now], and filtering
// the result again changes nothing.
func TestFilterWindowProperty(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rapid.Check(t, func(t *rapid.T) {
		events := genEvents(t, now)
		days := rapid.SampledFrom(Windows).Draw(t, "window")
		cutoff := now.AddDate(0, 0, -days)

		filtered := FilterWindow(events, days, now)

		for _, e := range filtered {
			if e.Timestamp == nil {
				t.Fatalf("filtered output contains a pending-timestamp event")
			}
			if e.Timestamp.Before(cutoff) {
				t.Fatalf("filtered output contains %v, before cutoff %v", e.Timestamp, cutoff)
			}
		}

		expected := 0
		for _, e := range events {
			if e.Timestamp != nil && !e.Timestamp.Before(cutoff) {
				expected++
			}
		}
		if len(filtered) != expected {
			t.Fatalf("filtered %d events, want %d", len(filtered), expected)
		}

		again := FilterWindow(filtered, days, now)
		if len(again) != len(filtered) {
			t.Fatalf("filter not idempotent: %d then %d", len(filtered), len(again))
		}
	})
}

// TestBucketConservationProperty checks that every filtered event lands in
// exactly one timeline bucket and exactly one category bucket:
// sum(timeline) == sum(categories) == len(filtered).
func TestBucketConservationProperty(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rapid.Check(t, func(t *rapid.T) {
		events := genEvents(t, now)
		filtered := FilterWindow(events, rapid.SampledFrom(Windows).Draw(t, "window"), now)

		timelineSum := 0
		for _, b := range Timeline(filtered) {
			timelineSum += b.Clicks
		}
		if timelineSum != len(filtered) {
			t.Fatalf("sum(timeline) = %d, want %d", timelineSum, len(filtered))
		}

		categorySum := 0
		for _, c := range Categories(filtered) {
			categorySum += c.Count
		}
		if categorySum != len(filtered) {
			t.Fatalf("sum(categories) = %d, want %d", categorySum, len(filtered))
		}
	})
}

// TestTopGamesProperty checks the ranking bounds: at most five entries,
// counts non-increasing, and every count positive.
func TestTopGamesProperty(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rapid.Check(t, func(t *rapid.T) {
		events := genEvents(t, now)
		top := TopGames(events)

		if len(top) > 5 {
			t.Fatalf("TopGames returned %d entries, want at most 5", len(top))
		}
		for i, entry := range top {
			if entry.Count <= 0 {
				t.Fatalf("topGames[%d] has non-positive count %d", i, entry.Count)
			}
			if i > 0 && entry.Count > top[i-1].Count {
				t.Fatalf("topGames not sorted descending at %d: %+v", i, top)
			}
		}
	})
}

// TestHeatmapProperty checks cell conservation and the max floor:
// sum(cells) equals the count of events with a present timestamp, and the
// reported max is at least 1 and at least every cell.
func TestHeatmapProperty(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rapid.Check(t, func(t *rapid.T) {
		events := genEvents(t, now)
		h := BuildHeatmap(events)

		withTS := 0
		for _, e := range events {
			if e.Timestamp != nil {
				withTS++
			}
		}

		sum := 0
		for day := 0; day < 7; day++ {
			for hour := 0; hour < 24; hour++ {
				cell := h.Grid[day][hour]
				sum += cell
				if cell > h.Max {
					t.Fatalf("cell [%d][%d]=%d exceeds reported max %d", day, hour, cell, h.Max)
				}
			}
		}
		if sum != withTS {
			t.Fatalf("cell sum = %d, want %d", sum, withTS)
		}
		if h.Max < 1 {
			t.Fatalf("max = %d, want at least 1", h.Max)
		}
	})
}

// TestSnapshotIdempotenceProperty checks that re-running the aggregation
// over the same inputs yields identical outputs (no hidden state).
func TestSnapshotIdempotenceProperty(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rapid.Check(t, func(t *rapid.T) {
		events := genEvents(t, now)
		days := rapid.SampledFrom(Windows).Draw(t, "window")

		filtered := FilterWindow(events, days, now)

		first := Timeline(filtered)
		second := Timeline(filtered)
		if len(first) != len(second) {
			t.Fatalf("timeline changed across runs: %d vs %d buckets", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("timeline bucket %d changed across runs: %+v vs %+v", i, first[i], second[i])
			}
		}

		firstTop := TopGames(filtered)
		secondTop := TopGames(filtered)
		for i := range firstTop {
			if firstTop[i] != secondTop[i] {
				t.Fatalf("topGames entry %d changed across runs", i)
			}
		}
	})
}
