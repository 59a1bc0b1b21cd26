package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// sqlitePragmas are applied by the driver on every new connection, so
// foreign keys stay enforced across the whole pool.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database on a single connection.
// File databases use WAL mode. Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	return Open(context.Background(), DialectSQLite, path)
}

// Open connects to the database described by dialect and dsn and runs
// migrations. For SQLite, dsn is a file path or ":memory:"; for Postgres it
// is a connection URL understood by pgx.
func Open(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	var source string
	switch dialect {
	case DialectSQLite:
		if dsn == MemoryPath {
			source = MemoryPath + "?" + sqlitePragmas
		} else {
			dir := filepath.Dir(dsn)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating db directory: %w", err)
			}
			source = dsn + "?" + sqlitePragmas + "&_pragma=journal_mode(WAL)"
		}
	case DialectPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("postgres requires a connection URL")
		}
		source = dsn
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	db, err := sql.Open(dialect.driverName(), source)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each connection to ":memory:" is a separate database.
	if dialect == DialectSQLite && dsn == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(ctx, db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
