package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/reqtrack/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth ExecContext
// call within a transaction. This enables rollback tests by simulating
// failures at precise points in multi-write operations.
//
// ExecContext calls are counted starting at 1. QueryContext and QueryRowContext
// are not counted (reads pass through normally), so inserts that use
// RETURNING are never failed by this wrapper; see FailOnNthWriteUoW.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// FailOnNthWriteUoW fails the Nth INSERT issued through QueryRowContext.
// The failure surfaces from Scan, matching how a rejected INSERT ... RETURNING
// reports its error.
type FailOnNthWriteUoW struct {
	DB     *sql.DB
	FailOn int32
}

func (u *FailOnNthWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthInsert{DBTX: tx, failOn: u.FailOn}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthInsert struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
}

func (f *failOnNthInsert) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if isInsert(query) && f.count.Add(1) == f.failOn {
		// A statement against a missing table yields a *sql.Row whose
		// Scan returns the prepare error.
		return f.DBTX.QueryRowContext(ctx, "SELECT id FROM injected_failure")
	}
	return f.DBTX.QueryRowContext(ctx, query, args...)
}

func isInsert(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "INSERT")
}
