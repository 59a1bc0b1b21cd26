package service

import (
	"context"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/repository"
)

type requirementService struct {
	base
}

func NewRequirementService(uow db.UnitOfWork, opts ...Option) RequirementService {
	return &requirementService{base: newBase(uow, opts)}
}

func (s *requirementService) List(ctx context.Context, include domain.Include) ([]*domain.RequirementView, error) {
	return s.list(ctx, "list-requirements", nil, repository.RequirementFilter{}, include)
}

func (s *requirementService) GetByID(ctx context.Context, id int64, include domain.Include) (v *domain.RequirementView, err error) {
	err = s.run(ctx, "get-requirement", map[string]any{"id": id}, func(ctx context.Context, repos repository.Repos) error {
		v, err = repos.Requirements.GetByID(ctx, id, include)
		return err
	})
	return v, err
}

// Create validates the input, then its references, and only then writes.
func (s *requirementService) Create(ctx context.Context, in domain.RequirementInput) (*domain.RequirementView, error) {
	var view *domain.RequirementView
	fields := map[string]any{"client_id": in.ClientID, "category_id": in.CategoryID}
	err := s.run(ctx, "create-requirement", fields, func(ctx context.Context, repos repository.Repos) error {
		if err := in.Validate(); err != nil {
			return err
		}
		if err := NewReferenceValidator(repos).Validate(ctx, in.References()); err != nil {
			return err
		}
		r := domain.NewRequirement(in, s.timestamp())
		if err := repos.Requirements.Create(ctx, r); err != nil {
			return err
		}
		fields["id"] = r.ID

		var err error
		view, err = repos.Requirements.GetByID(ctx, r.ID, domain.IncludeRelations)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Update applies only the supplied patch fields. Changed references are
// revalidated; any failure leaves the stored record untouched.
func (s *requirementService) Update(ctx context.Context, id int64, p domain.RequirementPatch) (*domain.RequirementView, error) {
	var view *domain.RequirementView
	err := s.run(ctx, "update-requirement", map[string]any{"id": id}, func(ctx context.Context, repos repository.Repos) error {
		current, err := repos.Requirements.GetByID(ctx, id, domain.IncludeNone)
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := NewReferenceValidator(repos).Validate(ctx, p.References()); err != nil {
			return err
		}

		r := current.Requirement
		r.Apply(p)
		r.Touch(s.timestamp())
		if err := repos.Requirements.Update(ctx, &r); err != nil {
			return err
		}

		view, err = repos.Requirements.GetByID(ctx, id, domain.IncludeRelations)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Delete has no reference guard; nothing points at a requirement.
func (s *requirementService) Delete(ctx context.Context, id int64) (domain.DeleteResult, error) {
	res := domain.DeleteResult{Outcome: domain.DeleteOK}
	fields := map[string]any{"id": id}
	err := s.run(ctx, "delete-requirement", fields, func(ctx context.Context, repos repository.Repos) error {
		err := repos.Requirements.Delete(ctx, id)
		if isNotFound(err) {
			res.Outcome = domain.DeleteNotFound
			err = nil
		}
		fields["outcome"] = res.Outcome.String()
		return err
	})
	if err != nil {
		return domain.DeleteResult{}, err
	}
	return res, nil
}

// ListByClient returns the client's requirements newest first, or
// *domain.NotFoundError when the client does not exist.
func (s *requirementService) ListByClient(ctx context.Context, clientID int64) ([]*domain.RequirementView, error) {
	return s.list(ctx, "list-requirements-by-client", func(ctx context.Context, repos repository.Repos) error {
		_, err := repos.Clients.GetByID(ctx, clientID)
		return err
	}, repository.RequirementFilter{ClientID: &clientID}, domain.IncludeRelations)
}

// ListByCategory is ListByClient for the category.
func (s *requirementService) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.RequirementView, error) {
	return s.list(ctx, "list-requirements-by-category", func(ctx context.Context, repos repository.Repos) error {
		_, err := repos.Categories.GetByID(ctx, categoryID)
		return err
	}, repository.RequirementFilter{CategoryID: &categoryID}, domain.IncludeRelations)
}

// ListByTeamMember is ListByClient for the assigned team member.
func (s *requirementService) ListByTeamMember(ctx context.Context, memberID int64) ([]*domain.RequirementView, error) {
	return s.list(ctx, "list-requirements-by-team-member", func(ctx context.Context, repos repository.Repos) error {
		_, err := repos.TeamMembers.GetByID(ctx, memberID)
		return err
	}, repository.RequirementFilter{TeamMemberID: &memberID}, domain.IncludeRelations)
}

func (s *requirementService) list(
	ctx context.Context,
	name string,
	precheck func(context.Context, repository.Repos) error,
	filter repository.RequirementFilter,
	include domain.Include,
) (views []*domain.RequirementView, err error) {
	fields := map[string]any{}
	err = s.run(ctx, name, fields, func(ctx context.Context, repos repository.Repos) error {
		if precheck != nil {
			if err := precheck(ctx, repos); err != nil {
				return err
			}
		}
		views, err = repos.Requirements.List(ctx, filter, include)
		fields["count"] = len(views)
		return err
	})
	return views, err
}
