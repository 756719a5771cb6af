// Package analytics tests for the window selector and time filter.
package analytics

import (
	"testing"
	"time"

	"gamehub-admin/internal/model"
)

func ts(t time.Time) *time.Time { return &t }

func TestRequiredEventCount(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected int
	}{
		{"24 hours", 1, 500},
		{"7 days", 7, 2000},
		{"30 days boundary", 30, 2000},
		{"3 months", 90, 5000},
		{"100 days boundary", 100, 5000},
		{"6 months", 180, 8000},
		{"1 year", 365, 8000},
		{"out of set small", 3, 2000},
		{"out of set large", 1000, 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RequiredEventCount(tt.days)
			if result != tt.expected {
				t.Errorf("RequiredEventCount(%d) = %d, want %d", tt.days, result, tt.expected)
			}
		})
	}
}

func TestFilterWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	events := []model.ClickEvent{
		{ID: "a", Timestamp: ts(now.Add(-1 * time.Hour))},
		{ID: "b", Timestamp: nil}, // pending write
		{ID: "c", Timestamp: ts(now.AddDate(0, 0, -3))},
		{ID: "d", Timestamp: ts(now.AddDate(0, 0, -10))},
		{ID: "e", Timestamp: ts(now.AddDate(0, 0, -7))}, // exactly at cutoff
	}

	got := FilterWindow(events, 7, now)

	want := []string{"a", "c", "e"}
	if len(got) != len(want) {
		t.Fatalf("FilterWindow returned %d events, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("filtered[%d].ID = %q, want %q (input order must be preserved)", i, got[i].ID, id)
		}
	}
}

func TestFilterWindowIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	events := []model.ClickEvent{
		{ID: "a", Timestamp: ts(now.Add(-2 * time.Hour))},
		{ID: "b", Timestamp: ts(now.AddDate(0, 0, -40))},
	}

	once := FilterWindow(events, 30, now)
	twice := FilterWindow(once, 30, now)

	if len(once) != 1 || len(twice) != 1 || once[0].ID != twice[0].ID {
		t.Errorf("filtering twice changed the result: once=%v twice=%v", once, twice)
	}
}

func TestFilterWindowEmpty(t *testing.T) {
	now := time.Now()
	if got := FilterWindow(nil, 7, now); len(got) != 0 {
		t.Errorf("FilterWindow(nil) = %v, want empty", got)
	}
	if got := FilterWindow([]model.ClickEvent{{ID: "x"}}, 7, now); len(got) != 0 {
		t.Errorf("events without timestamps must all be excluded, got %v", got)
	}
}
