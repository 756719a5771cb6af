// Package repository provides data access layer implementations.
// Tests use testcontainers-go to spin up a PostgreSQL container.
package repository

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"gamehub-admin/internal/model"
)

// checkDockerAvailable checks if Docker is available and running
func checkDockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	err := cmd.Run()
	return err == nil
}

// setupTestDB creates a PostgreSQL container and returns a connection pool
// Skips the test if Docker is not available
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	err = runTestMigrations(ctx, pool)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// runTestMigrations applies the same schema the server creates at startup.
func runTestMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS click_events (
			id UUID PRIMARY KEY,
			timestamp TIMESTAMPTZ,
			game_id INT,
			game_title TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL DEFAULT 'unknown',
			country TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			os TEXT NOT NULL DEFAULT '',
			device_type TEXT NOT NULL DEFAULT '',
			browser TEXT NOT NULL DEFAULT '',
			device TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_click_events_time ON click_events(timestamp DESC NULLS FIRST)
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_stats (
			game_id INT PRIMARY KEY,
			clicks BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS hub_settings (
			id INT PRIMARY KEY CHECK (id = 1),
			document JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS admin_audit_log (
			id BIGSERIAL PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			admin_email TEXT NOT NULL,
			action TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

func insertEvent(t *testing.T, repo *EventRepository, when *time.Time, gameID int, title string) model.ClickEvent {
	t.Helper()
	e := model.ClickEvent{
		ID:        uuid.NewString(),
		Timestamp: when,
		GameID:    &gameID,
		GameTitle: title,
		Category:  "Puzzle",
		UserID:    "u1",
	}
	require.NoError(t, repo.Insert(context.Background(), &e))
	return e
}

// ============================================================================
// EventRepository Tests
// ============================================================================

func TestEventRepository_InsertAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewEventRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	older := now.Add(-time.Hour)
	e1 := insertEvent(t, repo, &older, 1, "Conspiracy")
	e2 := insertEvent(t, repo, &now, 5, "Pirates")

	events, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, e2.ID, events[0].ID)
	assert.Equal(t, e1.ID, events[1].ID)
	assert.Equal(t, "Pirates", events[0].GameTitle)
	require.NotNil(t, events[0].GameID)
	assert.Equal(t, 5, *events[0].GameID)
}

func TestEventRepository_PendingTimestampSortsFirst(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewEventRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC()
	insertEvent(t, repo, &now, 1, "Conspiracy")
	pending := insertEvent(t, repo, nil, 2, "Investigation")

	events, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// A NULL timestamp sorts before every concrete one.
	assert.Equal(t, pending.ID, events[0].ID)
	assert.Nil(t, events[0].Timestamp)
}

func TestEventRepository_ListRespectsLimit(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewEventRepository(pool)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		when := base.Add(-time.Duration(i) * time.Minute)
		insertEvent(t, repo, &when, 1, "Conspiracy")
	}

	events, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestEventRepository_ListEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewEventRepository(pool)

	events, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

// ============================================================================
// StatsRepository Tests
// ============================================================================

func TestStatsRepository_IncrementAndAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewStatsRepository(pool)
	ctx := context.Background()

	// First click creates the row, later clicks bump it.
	require.NoError(t, repo.IncrementClicks(ctx, 1))
	require.NoError(t, repo.IncrementClicks(ctx, 1))
	require.NoError(t, repo.IncrementClicks(ctx, 5))

	totals, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 2, 5: 1}, totals)
}

func TestStatsRepository_AllEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewStatsRepository(pool)

	totals, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, totals)
	assert.Empty(t, totals)
}

// ============================================================================
// SettingsRepository Tests
// ============================================================================

func TestSettingsRepository_LoadMissing(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSettingsRepository(pool)

	_, err := repo.LoadDocument(context.Background())
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestSettingsRepository_SaveAndLoad(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSettingsRepository(pool)
	ctx := context.Background()

	doc := []byte(`{"maintenanceMode": true, "systemMessage": "hi", "1": {"visible": false}}`)
	require.NoError(t, repo.SaveDocument(ctx, doc))

	loaded, err := repo.LoadDocument(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(loaded))

	// A second save replaces the document wholesale.
	doc2 := []byte(`{"maintenanceMode": false, "systemMessage": ""}`)
	require.NoError(t, repo.SaveDocument(ctx, doc2))

	loaded, err = repo.LoadDocument(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(doc2), string(loaded))
}

// ============================================================================
// AuditRepository Tests
// ============================================================================

func TestAuditRepository_AppendAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewAuditRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "admin@example.com", model.AuditActionConfigUpdate, "Maintenance mode ON"))
	require.NoError(t, repo.Append(ctx, "admin@example.com", model.AuditActionConfigUpdate, "Conspiracy: isHot ON"))

	entries, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first; ties on timestamp fall back to id order.
	assert.Equal(t, "Conspiracy: isHot ON", entries[0].Details)
	assert.Equal(t, "Maintenance mode ON", entries[1].Details)
	assert.Equal(t, "admin@example.com", entries[0].AdminEmail)
	assert.Equal(t, model.AuditActionConfigUpdate, entries[0].Action)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestAuditRepository_ListRespectsLimit(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewAuditRepository(pool)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, "admin@example.com", model.AuditActionConfigUpdate, "change"))
	}

	entries, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
