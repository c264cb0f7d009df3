package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/tickerscan/pkg/logger"
)

// migration is one versioned schema step. Versions are applied in order
// and recorded in schema_migrations, so reruns are no-ops.
type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create_scans",
		sql: `
			CREATE TABLE IF NOT EXISTS scans (
				id BIGSERIAL PRIMARY KEY,
				text_hash TEXT NOT NULL,
				text_len INT NOT NULL,
				portfolios JSONB NOT NULL,
				candidates JSONB NOT NULL,
				approximate BOOLEAN NOT NULL DEFAULT FALSE,
				deadline_hit BOOLEAN NOT NULL DEFAULT FALSE,
				elapsed_ms BIGINT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		version: 2,
		name:    "index_scans_created_at",
		sql:     `CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans (created_at DESC)`,
	},
	{
		version: 3,
		name:    "index_scans_text_hash",
		sql:     `CREATE INDEX IF NOT EXISTS idx_scans_text_hash ON scans (text_hash)`,
	},
}

// Migrate applies pending schema migrations. Safe to run at every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	err = pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.version, m.name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}

		log.WithFields(map[string]interface{}{
			"version": m.version,
			"name":    m.name,
		}).Info("Applied migration")
	}

	return nil
}
