// Package db opens the Postgres connection used by the optional postgres
// persistence backend and applies its schema.
package db

import (
	"database/sql"
	"fmt"
	"time"

	// Register the pgx stdlib driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open opens a Postgres connection pool for the given DSN.
func Open(dsn string) (*sql.DB, error) {
	database, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	database.SetMaxOpenConns(10)
	database.SetMaxIdleConns(5)
	database.SetConnMaxLifetime(30 * time.Minute)

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return database, nil
}

// MigrateUp applies the schema. Statements are idempotent so the migration
// can run on every startup.
func MigrateUp(database *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
    uid           TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    profile       JSONB NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS chat_records (
    user_id    TEXT NOT NULL,
    key        TEXT NOT NULL,
    question   TEXT NOT NULL,
    response   TEXT NOT NULL,
    title      TEXT NOT NULL,
    ts         TEXT NOT NULL,
    PRIMARY KEY (user_id, key)
);`

	if _, err := database.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
