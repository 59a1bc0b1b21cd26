package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

// timestampLayout is fixed-width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(field, s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		// Rows written by other tools may carry plain RFC3339.
		if t2, err2 := time.Parse(time.RFC3339Nano, s); err2 == nil {
			return t2.UTC(), nil
		}
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t.UTC(), nil
}

// parseNullableDate parses a sql.NullString into a *time.Time date.
// Returns nil if the value is NULL or empty.
func parseNullableDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing due_date: %w", err)
	}
	return &t, nil
}

// nullableDateToString converts a *time.Time to a value suitable for storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableDateToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateLayout)
}

// nullableIDToValue converts a *int64 to a value suitable for storage.
func nullableIDToValue(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt64ToPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

// writeErr turns constraint failures into *domain.ConstraintError and wraps
// everything else with the operation name.
func writeErr(op string, err error) error {
	if c, ok := db.ClassifyConstraint(err); ok {
		name := c.Name
		if name == "" {
			name = string(c.Kind)
		}
		return &domain.ConstraintError{Constraint: name, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFound maps sql.ErrNoRows to a *domain.NotFoundError.
func notFound(err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}

// notFoundByName is notFound for natural-key lookups.
func notFoundByName(err error, entity, name string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Entity: entity, Key: name}
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}

// execAffectingOne runs a statement expected to touch exactly one row.
func execAffectingOne(r sql.Result, entity string, id int64) error {
	n, err := r.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}
