package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/repository"
)

// deletable is the slice of a repository guardedDelete needs.
type deletable interface {
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// guardedDelete removes a record only when no requirement references it
// through field. A foreign-key rejection from the store is also reported as
// blocked; the transaction is rolled back in that case.
func (b *base) guardedDelete(
	ctx context.Context,
	name string,
	id int64,
	field string,
	repo func(repository.Repos) deletable,
) (domain.DeleteResult, error) {
	var res domain.DeleteResult
	fields := map[string]any{"id": id}
	err := b.run(ctx, name, fields, func(ctx context.Context, repos repository.Repos) error {
		defer func() { fields["outcome"] = res.Outcome.String() }()
		target := repo(repos)
		ok, err := target.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			res = domain.DeleteResult{Outcome: domain.DeleteNotFound}
			return nil
		}
		n, err := repos.Requirements.CountReferencing(ctx, field, id)
		if err != nil {
			return err
		}
		if n > 0 {
			res = domain.DeleteResult{Outcome: domain.DeleteBlocked, References: n}
			return nil
		}
		if err := target.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrConstraintViolation) {
				res = domain.DeleteResult{Outcome: domain.DeleteBlocked}
			}
			return err
		}
		res = domain.DeleteResult{Outcome: domain.DeleteOK}
		return nil
	})
	if err != nil && res.Outcome == domain.DeleteBlocked {
		return res, nil
	}
	if err != nil {
		return domain.DeleteResult{}, err
	}
	return res, nil
}
