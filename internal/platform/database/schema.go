package database

import (
	"context"
	"fmt"
	"log/slog"
)

const schema = `
CREATE TABLE IF NOT EXISTS votes (
    id SERIAL PRIMARY KEY,
    choice TEXT NOT NULL
);
`

// EnsureSchema creates the votes table if it does not exist yet.
// Safe to call multiple times. An unreachable database is not an error:
// the service starts degraded and requests connect on their own.
func EnsureSchema(ctx context.Context, db Acquirer, log *slog.Logger) error {
	conn, err := db.Acquire(ctx)
	if err != nil {
		log.Warn("skipping schema setup, database unavailable", "error", err)
		return nil
	}
	defer Release(conn)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	log.Info("table votes checked/created")
	return nil
}
