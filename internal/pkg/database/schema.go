package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// schema is idempotent; Migrate may run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(80) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id            BIGSERIAL PRIMARY KEY,
		customer_name VARCHAR(120) NOT NULL,
		contact       VARCHAR(120) NOT NULL,
		service       VARCHAR(120) NOT NULL,
		date          DATE NOT NULL,
		time          TIME NOT NULL,
		status        VARCHAR(16) NOT NULL DEFAULT 'Pending'
			CHECK (status IN ('Pending', 'Approved', 'Cancelled')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_schedule ON bookings (date, time)`,
}

// Migrate creates the admins and bookings tables.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	log.Info().Int("statements", len(schema)).Msg("Schema is up to date")
	return nil
}
