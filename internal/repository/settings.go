package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository handles the single shared configuration document.
// The document is written wholesale on every save; there are no partial
// updates, so the last writer wins at the store layer.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository instance.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// LoadDocument retrieves the raw settings document.
// Returns ErrSettingsNotFound when no document has been saved yet.
func (r *SettingsRepository) LoadDocument(ctx context.Context) ([]byte, error) {
	const query = `SELECT document FROM hub_settings WHERE id = 1`

	var raw []byte
	err := r.pool.QueryRow(ctx, query).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to load settings document: %w", err)
	}
	return raw, nil
}

// SaveDocument replaces the settings document atomically.
func (r *SettingsRepository) SaveDocument(ctx context.Context, raw []byte) error {
	const query = `
		INSERT INTO hub_settings (id, document, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id)
		DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, raw); err != nil {
		return fmt.Errorf("failed to save settings document: %w", err)
	}
	return nil
}
