package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations for the dialect. Every statement is
// idempotent, so Migrate is safe to run on each start.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	for i, stmt := range migrations(dialect) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// migrations renders the shared schema for the dialect. Only the identity
// column differs between backends.
func migrations(dialect Dialect) []string {
	identity := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == DialectPostgres {
		identity = "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	}
	out := make([]string, len(schema))
	for i, stmt := range schema {
		out[i] = strings.ReplaceAll(stmt, "{{identity}}", identity)
	}
	return out
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id             {{identity}},
		agency_name    TEXT NOT NULL,
		contact_person TEXT NOT NULL,
		email          TEXT NOT NULL,
		phone          TEXT NOT NULL DEFAULT '',
		address        TEXT NOT NULL DEFAULT '',
		website        TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_clients_agency_name ON clients(agency_name)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id         {{identity}},
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		CONSTRAINT categories_name_key UNIQUE (name)
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id         {{identity}},
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS requirements (
		id             {{identity}},
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		priority       TEXT NOT NULL DEFAULT 'Medium'
		               CHECK(priority IN ('Low','Medium','High')),
		status         TEXT NOT NULL DEFAULT 'To Do'
		               CHECK(status IN ('To Do','In Progress','Done')),
		due_date       TEXT,
		client_id      BIGINT NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		category_id    BIGINT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
		team_member_id BIGINT REFERENCES team_members(id) ON DELETE RESTRICT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_requirements_client ON requirements(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requirements_category ON requirements(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requirements_team_member ON requirements(team_member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requirements_created ON requirements(created_at)`,
}
