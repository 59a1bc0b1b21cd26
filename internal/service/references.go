package service

import (
	"context"

	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/repository"
)

// ReferenceValidator confirms that the foreign keys of a requirement write
// resolve. It reads through the repositories it is given, so constructed
// inside a transaction it sees the same snapshot as the write that follows.
type ReferenceValidator struct {
	repos repository.Repos
}

func NewReferenceValidator(repos repository.Repos) *ReferenceValidator {
	return &ReferenceValidator{repos: repos}
}

// Validate checks client, category and team member in that order and
// returns a *domain.ReferenceError for the first that does not exist.
func (v *ReferenceValidator) Validate(ctx context.Context, refs domain.References) error {
	checks := []struct {
		field  string
		id     *int64
		exists func(context.Context, int64) (bool, error)
	}{
		{domain.FieldClientID, refs.Client, v.repos.Clients.Exists},
		{domain.FieldCategoryID, refs.Category, v.repos.Categories.Exists},
		{domain.FieldTeamMemberID, refs.TeamMember, v.repos.TeamMembers.Exists},
	}
	for _, c := range checks {
		if c.id == nil {
			continue
		}
		ok, err := c.exists(ctx, *c.id)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferenceError{Field: c.field, ID: *c.id}
		}
	}
	return nil
}
