package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Column types are limited to those Postgres and SQLite both accept.
var schemaStatements = []string{
	`
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		destination TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		day_count INTEGER NOT NULL,
		accommodation_address TEXT NOT NULL,
		accommodation_lat DOUBLE PRECISION NOT NULL,
		accommodation_lng DOUBLE PRECISION NOT NULL,
		owner_token TEXT NOT NULL,
		join_code TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS participants (
		trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		payload TEXT NOT NULL,
		PRIMARY KEY (trip_id, position)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS itineraries (
		trip_id TEXT PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
		payload TEXT NOT NULL,
		generated_at TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS draft_plans (
		trip_id TEXT PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
		payload TEXT NOT NULL,
		selection_count INTEGER NOT NULL,
		share_token TEXT,
		shared_count INTEGER NOT NULL DEFAULT 0,
		saved_at TEXT NOT NULL
	);
	`,
	`
	CREATE UNIQUE INDEX IF NOT EXISTS idx_draft_plans_share_token
	ON draft_plans(share_token);
	`,
	`
	CREATE TABLE IF NOT EXISTS planning_settings (
		trip_id TEXT PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`,
}

// InitSchema creates every table the service needs. It is idempotent.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
