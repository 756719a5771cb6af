package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Notification channels raised by the store triggers.
const (
	ChannelEvents = "click_events_changed"
	ChannelStats  = "game_stats_changed"
)

// Watcher delivers live-update signals from the store. Each signal means
// "this collection changed, refetch the whole snapshot" - deltas are never
// pushed, so consumers can't observe partial intermediate states.
type Watcher struct {
	pool     *pgxpool.Pool
	interval time.Duration
}

// NewWatcher creates a watcher. interval is the poll fallback: when no
// notification arrives within it, every channel fires once so consumers
// converge even if a NOTIFY was lost across a reconnect.
func NewWatcher(pool *pgxpool.Pool, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{pool: pool, interval: interval}
}

// Run listens on the given channels and invokes onChange with the channel
// name for each signal. It blocks until ctx is done, reconnecting with a
// short delay if the listening connection drops.
func (w *Watcher) Run(ctx context.Context, channels []string, onChange func(channel string)) error {
	for {
		err := w.listen(ctx, channels, onChange)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Msg("Store watcher disconnected, reconnecting")
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// listen holds one dedicated connection outside the pool for the LISTEN
// session and dispatches notifications until the connection or ctx fails.
func (w *Watcher) listen(ctx context.Context, channels []string, onChange func(channel string)) error {
	poolConn, err := w.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire watcher connection: %w", err)
	}
	// Hijack so the LISTEN state never leaks back into the pool.
	conn := poolConn.Hijack()
	defer conn.Close(context.Background())

	for _, ch := range channels {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			return fmt.Errorf("failed to listen on %s: %w", ch, err)
		}
	}

	for {
		waitCtx, cancel := context.WithTimeout(ctx, w.interval)
		n, err := conn.WaitForNotification(waitCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				// Quiet period: poll everything once.
				for _, ch := range channels {
					onChange(ch)
				}
				continue
			}
			return err
		}
		onChange(n.Channel)
	}
}
