package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gamehub-admin/internal/model"
)

// AuditRepository handles the append-only admin audit trail.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository instance.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Append records one admin action. The timestamp is assigned by the store.
func (r *AuditRepository) Append(ctx context.Context, adminEmail, action, details string) error {
	const query = `
		INSERT INTO admin_audit_log (timestamp, admin_email, action, details)
		VALUES (NOW(), $1, $2, $3)
	`

	if _, err := r.pool.Exec(ctx, query, adminEmail, action, details); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListRecent retrieves the most recent audit entries, newest first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	const query = `
		SELECT id, timestamp, admin_email, action, details
		FROM admin_audit_log
		ORDER BY timestamp DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.AdminEmail, &e.Action, &e.Details); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}

	return entries, nil
}
