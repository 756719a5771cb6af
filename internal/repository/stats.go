package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository handles the all-time per-game click totals.
// The totals are a running aggregate maintained by the ingest path and
// only ever read by the dashboard.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository instance.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// IncrementClicks adds one click to a game's running total, creating the
// row on first click.
func (r *StatsRepository) IncrementClicks(ctx context.Context, gameID int) error {
	const query = `
		INSERT INTO game_stats (game_id, clicks, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (game_id)
		DO UPDATE SET clicks = game_stats.clicks + 1, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, gameID); err != nil {
		return fmt.Errorf("failed to increment clicks for game %d: %w", gameID, err)
	}
	return nil
}

// All retrieves every game's running total as a game-id keyed map.
// An empty table yields an empty map, not an error.
func (r *StatsRepository) All(ctx context.Context) (map[int]int, error) {
	const query = `SELECT game_id, clicks FROM game_stats`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query game stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]int)
	for rows.Next() {
		var gameID, clicks int
		if err := rows.Scan(&gameID, &clicks); err != nil {
			return nil, fmt.Errorf("failed to scan game stat: %w", err)
		}
		stats[gameID] = clicks
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game stats: %w", err)
	}

	return stats, nil
}
