package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ConstraintKind classifies a store-level constraint failure.
type ConstraintKind string

const (
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintNotNull    ConstraintKind = "not_null"
	ConstraintCheck      ConstraintKind = "check"
)

// Constraint describes which constraint rejected a statement. Name is the
// backend's description of the constraint: the constraint name on Postgres,
// "table.column" on SQLite where available.
type Constraint struct {
	Kind ConstraintKind
	Name string
}

// ClassifyConstraint reports whether err is a constraint violation raised
// by SQLite or Postgres.
func ClassifyConstraint(err error) (Constraint, bool) {
	if err == nil {
		return Constraint{}, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind, ok := pgConstraintKinds[pgErr.Code]
		if !ok {
			return Constraint{}, false
		}
		name := pgErr.ConstraintName
		if name == "" {
			name = pgErr.ColumnName
		}
		return Constraint{Kind: kind, Name: name}, true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		kind, ok := sqliteConstraintKinds[liteErr.Code()]
		if !ok && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			kind, ok = sqliteKindFromMessage(liteErr.Error())
		}
		if !ok {
			return Constraint{}, false
		}
		return Constraint{Kind: kind, Name: sqliteConstraintName(liteErr.Error())}, true
	}

	return Constraint{}, false
}

var pgConstraintKinds = map[string]ConstraintKind{
	"23505": ConstraintUnique,
	"23503": ConstraintForeignKey,
	"23502": ConstraintNotNull,
	"23514": ConstraintCheck,
}

var sqliteConstraintKinds = map[int]ConstraintKind{
	sqlite3.SQLITE_CONSTRAINT_UNIQUE:     ConstraintUnique,
	sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY: ConstraintUnique,
	sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY: ConstraintForeignKey,
	sqlite3.SQLITE_CONSTRAINT_NOTNULL:    ConstraintNotNull,
	sqlite3.SQLITE_CONSTRAINT_CHECK:      ConstraintCheck,
}

// sqliteConstraintName extracts "categories.name" from messages such as
// "constraint failed: UNIQUE constraint failed: categories.name (2067)".
func sqliteConstraintName(msg string) string {
	i := strings.LastIndex(msg, "failed: ")
	if i < 0 {
		return ""
	}
	name := msg[i+len("failed: "):]
	if j := strings.LastIndex(name, " ("); j >= 0 {
		name = name[:j]
	}
	// Foreign key failures carry no column: "FOREIGN KEY constraint failed".
	if strings.HasSuffix(name, "constraint failed") {
		return ""
	}
	return strings.TrimSpace(name)
}

// sqliteKindFromMessage classifies a primary SQLITE_CONSTRAINT code when the
// connection did not report an extended code.
func sqliteKindFromMessage(msg string) (ConstraintKind, bool) {
	switch {
	case strings.Contains(msg, "UNIQUE constraint"), strings.Contains(msg, "PRIMARY KEY"):
		return ConstraintUnique, true
	case strings.Contains(msg, "FOREIGN KEY constraint"):
		return ConstraintForeignKey, true
	case strings.Contains(msg, "NOT NULL constraint"):
		return ConstraintNotNull, true
	case strings.Contains(msg, "CHECK constraint"):
		return ConstraintCheck, true
	}
	return "", false
}
