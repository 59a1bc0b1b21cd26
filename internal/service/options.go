package service

import (
	"context"
	"time"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/repository"
)

// Option configures a service at construction.
type Option func(*base)

// WithClock replaces the wall clock used for timestamps and overdue checks.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

// WithObserver receives one UseCaseEvent per operation.
func WithObserver(o UseCaseObserver) Option {
	return func(b *base) {
		if o != nil {
			b.observer = o
		}
	}
}

// base holds the collaborators every lifecycle service shares.
type base struct {
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func newBase(uow db.UnitOfWork, opts []Option) base {
	b := base{uow: uow, now: time.Now, observer: NoopUseCaseObserver{}}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// run executes fn in one transaction with repositories bound to it and
// reports the outcome to the observer.
func (b *base) run(ctx context.Context, name string, fields map[string]any, fn func(ctx context.Context, repos repository.Repos) error) (err error) {
	startedAt := time.Now()
	defer func() {
		b.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, repository.NewRepos(tx))
	})
}

// timestamp is the current time in UTC as recorded on new rows.
func (b *base) timestamp() time.Time {
	return b.now().UTC()
}
