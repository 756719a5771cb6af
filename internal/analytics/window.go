// Package analytics implements the dashboard's derived-analytics pipeline:
// trailing-window filtering, time-bucketed aggregation, game rankings, and
// the day/hour activity heatmap. All functions are pure and synchronous;
// callers supply the clock and the full event snapshot on every run.
package analytics

// Windows is the enumerated set of selectable trailing windows, in days.
var Windows = []int{1, 7, 30, 90, 180, 270, 365}

// DefaultWindowDays is the window selected on initial load.
const DefaultWindowDays = 7

// RequiredEventCount returns how many recent events must be fetched so the
// charts have enough data to cover the given window. This is a fetch-size
// policy, not a correctness bound; out-of-set window values still bucket
// monotonically through the same thresholds.
func RequiredEventCount(windowDays int) int {
	switch {
	case windowDays <= 1:
		return 500
	case windowDays <= 30:
		return 2000
	case windowDays <= 100:
		return 5000
	default:
		return 8000
	}
}
