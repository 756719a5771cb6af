package service

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"
	"github.com/rs/zerolog/log"

	"gamehub-admin/internal/geoip"
	"gamehub-admin/internal/model"
)

// EventSink appends click events to the log.
type EventSink interface {
	Insert(ctx context.Context, e *model.ClickEvent) error
}

// StatsSink maintains the all-time per-game totals.
type StatsSink interface {
	IncrementClicks(ctx context.Context, gameID int) error
}

// ClickInput is the raw payload the hub site sends for one interaction.
type ClickInput struct {
	GameID    *int   `json:"gameId,omitempty"`
	GameTitle string `json:"gameTitle"`
	Category  string `json:"category"`
	UserID    string `json:"userId"`
}

// IngestService is the producer side of the analytics pipeline: it stamps
// server time, enriches the raw click with device and geo attribution, and
// writes it plus the running total.
type IngestService struct {
	events EventSink
	stats  StatsSink
	geo    *geoip.Lookup
	now    func() time.Time
}

// NewIngestService creates the ingest service. geo may be a disabled lookup.
func NewIngestService(events EventSink, stats StatsSink, geo *geoip.Lookup) *IngestService {
	return &IngestService{events: events, stats: stats, geo: geo, now: time.Now}
}

// Record enriches and persists one click. The returned event carries the
// assigned id and timestamp.
func (s *IngestService) Record(ctx context.Context, in ClickInput, userAgent string, ip net.IP) (*model.ClickEvent, error) {
	now := s.now()
	e := &model.ClickEvent{
		ID:        uuid.NewString(),
		Timestamp: &now,
		GameID:    in.GameID,
		GameTitle: in.GameTitle,
		Category:  in.Category,
		UserID:    in.UserID,
		Device:    userAgent,
	}

	if e.UserID == "" {
		e.UserID = model.GuestUserID
	}
	if e.GameTitle == "" && e.GameID != nil {
		e.GameTitle = model.GameTitle(*e.GameID)
	}

	if userAgent != "" {
		ua := useragent.Parse(userAgent)
		e.Browser = ua.Name
		e.OS = ua.OS
		switch {
		case ua.Mobile:
			e.DeviceType = "Mobile"
		case ua.Tablet:
			e.DeviceType = "Tablet"
		case ua.Bot:
			e.DeviceType = "Bot"
		default:
			e.DeviceType = "Desktop"
		}
	}

	loc := s.geo.Locate(ip)
	e.Country = loc.Country
	e.City = loc.City

	if err := s.events.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to record click: %w", err)
	}

	if e.GameID != nil {
		if err := s.stats.IncrementClicks(ctx, *e.GameID); err != nil {
			// The event itself is logged; a missed total self-corrects on the
			// next click, so don't fail the ingest.
			log.Warn().Err(err).Int("game_id", *e.GameID).Msg("Failed to bump click total")
		}
	}

	return e, nil
}
