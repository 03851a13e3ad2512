package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id            TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL,
		phone         TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		items         JSONB NOT NULL DEFAULT '[]',
		taxes         DOUBLE PRECISION NOT NULL DEFAULT 0,
		discount      DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_amount  DOUBLE PRECISION NOT NULL DEFAULT 0,
		status        JSONB NOT NULL DEFAULT '{}',
		timeline      JSONB NOT NULL DEFAULT '[]',
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS company (
		id  TEXT PRIMARY KEY,
		doc JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id                    UUID PRIMARY KEY,
		email                 TEXT NOT NULL UNIQUE,
		name                  TEXT NOT NULL DEFAULT '',
		password_hash         TEXT NOT NULL,
		is_active             BOOLEAN NOT NULL DEFAULT TRUE,
		last_login_at         TIMESTAMPTZ,
		failed_login_attempts INT NOT NULL DEFAULT 0,
		locked_until          TIMESTAMPTZ,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id             UUID PRIMARY KEY,
		user_id        UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		token_hash     TEXT NOT NULL UNIQUE,
		expires_at     TIMESTAMPTZ NOT NULL,
		revoked_at     TIMESTAMPTZ,
		revoked_reason TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS app_sequences (
		key         TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id                 UUID PRIMARY KEY,
		entity_type        TEXT NOT NULL,
		entity_id          TEXT NOT NULL,
		action             TEXT NOT NULL,
		user_id            TEXT NOT NULL DEFAULT '',
		changes            JSONB,
		changes_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log (entity_type, entity_id)`,
}

// EnsureSchema creates the tables on startup. Statements are idempotent,
// so repeated boots are safe.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
