// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gamehub-admin/internal/model"
)

// Common errors for repository operations.
var (
	ErrSettingsNotFound = errors.New("settings document not found")
)

// EventRepository handles click event persistence.
// The event log is append-only; rows are never updated or deleted here.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository instance.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Insert appends one click event to the log.
func (r *EventRepository) Insert(ctx context.Context, e *model.ClickEvent) error {
	const query = `
		INSERT INTO click_events
			(id, timestamp, game_id, game_title, category, user_id,
			 country, city, os, device_type, browser, device)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Timestamp, e.GameID, e.GameTitle, e.Category, e.UserID,
		e.Country, e.City, e.OS, e.DeviceType, e.Browser, e.Device,
	)
	if err != nil {
		return fmt.Errorf("failed to insert click event: %w", err)
	}
	return nil
}

// ListRecent retrieves the most recent events, newest first. Events whose
// timestamp is still pending sort before everything else so the live feed
// sees them immediately.
func (r *EventRepository) ListRecent(ctx context.Context, limit int) ([]model.ClickEvent, error) {
	const query = `
		SELECT id, timestamp, game_id, game_title, category, user_id,
		       country, city, os, device_type, browser, device
		FROM click_events
		ORDER BY timestamp DESC NULLS FIRST
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list click events: %w", err)
	}
	defer rows.Close()

	var events []model.ClickEvent
	for rows.Next() {
		var e model.ClickEvent
		err := rows.Scan(
			&e.ID, &e.Timestamp, &e.GameID, &e.GameTitle, &e.Category, &e.UserID,
			&e.Country, &e.City, &e.OS, &e.DeviceType, &e.Browser, &e.Device,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan click event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating click events: %w", err)
	}

	return events, nil
}
