// Package service provides business logic implementations.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gamehub-admin/internal/analytics"
	"gamehub-admin/internal/config"
	"gamehub-admin/internal/model"
)

// recentFeedSize bounds the activity feed included in each snapshot.
const recentFeedSize = 50

// EventSource supplies the most recent click events, newest first.
type EventSource interface {
	ListRecent(ctx context.Context, limit int) ([]model.ClickEvent, error)
}

// StatsSource supplies the all-time per-game click totals.
type StatsSource interface {
	All(ctx context.Context) (map[int]int, error)
}

// Snapshot is one fully derived view of the dashboard. Every field is
// recomputed from the current inputs on each call; snapshots never carry
// state between runs.
type Snapshot struct {
	WindowDays int                        `json:"windowDays"`
	Summary    analytics.Summary          `json:"summary"`
	Timeline   []analytics.TimelineBucket `json:"timeline"`
	Categories []analytics.NameCount      `json:"categories"`
	TopGames   []analytics.NameCount      `json:"topGames"`
	Organic    []analytics.GameCount      `json:"organic"`
	Heatmap    analytics.Heatmap          `json:"heatmap"`
	Countries  []analytics.NameCount      `json:"countries"`
	TopRegions []analytics.NameCount      `json:"topRegions"`
	Recent     []model.ClickEvent         `json:"recent"`
}

// DashboardService drives the derived-analytics pipeline. It holds the raw
// event buffer, the all-time totals, and the selected window; external push
// updates replace whole collections, and every read derives a complete
// snapshot from scratch.
type DashboardService struct {
	events      EventSource
	stats       StatsSource
	organicMode string

	mu         sync.RWMutex
	buffer     []model.ClickEvent
	totals     map[int]int
	windowDays int

	now func() time.Time
}

// NewDashboardService creates the pipeline with the configured organic-chart
// mode and initial window.
func NewDashboardService(events EventSource, stats StatsSource, organicMode string, windowDays int) *DashboardService {
	if windowDays <= 0 {
		windowDays = analytics.DefaultWindowDays
	}
	return &DashboardService{
		events:      events,
		stats:       stats,
		organicMode: organicMode,
		totals:      map[int]int{},
		windowDays:  windowDays,
		now:         time.Now,
	}
}

// Refresh refetches both collections wholesale. Used on initial load.
func (s *DashboardService) Refresh(ctx context.Context) error {
	if err := s.RefreshEvents(ctx); err != nil {
		return err
	}
	return s.RefreshStats(ctx)
}

// RefreshEvents replaces the event buffer with a fresh fetch sized for the
// selected window.
func (s *DashboardService) RefreshEvents(ctx context.Context) error {
	s.mu.RLock()
	limit := analytics.RequiredEventCount(s.windowDays)
	s.mu.RUnlock()

	events, err := s.events.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to refresh event buffer: %w", err)
	}

	s.mu.Lock()
	s.buffer = events
	s.mu.Unlock()
	return nil
}

// RefreshStats replaces the all-time totals.
func (s *DashboardService) RefreshStats(ctx context.Context) error {
	totals, err := s.stats.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh game stats: %w", err)
	}

	s.mu.Lock()
	s.totals = totals
	s.mu.Unlock()
	return nil
}

// SelectWindow changes the trailing window and refetches the event buffer,
// since the required retained-event count depends on the window size.
// Values outside the enumerated set are accepted as-is.
func (s *DashboardService) SelectWindow(ctx context.Context, days int) error {
	if days <= 0 {
		days = analytics.DefaultWindowDays
	}
	s.mu.Lock()
	s.windowDays = days
	s.mu.Unlock()
	return s.RefreshEvents(ctx)
}

// WindowDays returns the currently selected window.
func (s *DashboardService) WindowDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.windowDays
}

// Snapshot derives all dashboard views from the current inputs. The
// computation is pure and idempotent: identical inputs produce identical
// snapshots.
func (s *DashboardService) Snapshot() Snapshot {
	s.mu.RLock()
	buffer := s.buffer
	totals := s.totals
	days := s.windowDays
	s.mu.RUnlock()

	filtered := analytics.FilterWindow(buffer, days, s.now())

	var organic []analytics.GameCount
	if s.organicMode == config.OrganicModeAllTime {
		organic = analytics.OrganicAllTime(totals)
	} else {
		organic = analytics.OrganicWindowed(filtered)
	}

	recent := buffer
	if len(recent) > recentFeedSize {
		recent = recent[:recentFeedSize]
	}

	return Snapshot{
		WindowDays: days,
		Summary:    analytics.Summarize(filtered),
		Timeline:   analytics.Timeline(filtered),
		Categories: analytics.Categories(filtered),
		TopGames:   analytics.TopGames(filtered),
		Organic:    organic,
		Heatmap:    analytics.BuildHeatmap(filtered),
		Countries:  analytics.CountryCounts(filtered),
		TopRegions: analytics.TopRegions(filtered, 3),
		Recent:     recent,
	}
}

// ExportCSV renders the raw, unfiltered event buffer for download.
func (s *DashboardService) ExportCSV() ([]byte, error) {
	s.mu.RLock()
	buffer := s.buffer
	s.mu.RUnlock()
	return analytics.ExportCSV(buffer)
}
