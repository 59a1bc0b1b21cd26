package service

import (
	"context"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/repository"
)

type teamMemberService struct {
	base
}

func NewTeamMemberService(uow db.UnitOfWork, opts ...Option) TeamMemberService {
	return &teamMemberService{base: newBase(uow, opts)}
}

func (s *teamMemberService) List(ctx context.Context) (members []*domain.TeamMember, err error) {
	err = s.run(ctx, "list-team-members", nil, func(ctx context.Context, repos repository.Repos) error {
		members, err = repos.TeamMembers.List(ctx)
		return err
	})
	return members, err
}

func (s *teamMemberService) GetByID(ctx context.Context, id int64) (m *domain.TeamMember, err error) {
	err = s.run(ctx, "get-team-member", map[string]any{"id": id}, func(ctx context.Context, repos repository.Repos) error {
		m, err = repos.TeamMembers.GetByID(ctx, id)
		return err
	})
	return m, err
}

func (s *teamMemberService) Create(ctx context.Context, in domain.TeamMemberInput) (*domain.TeamMember, error) {
	var m *domain.TeamMember
	fields := map[string]any{"name": in.Name}
	err := s.run(ctx, "create-team-member", fields, func(ctx context.Context, repos repository.Repos) error {
		if err := in.Validate(); err != nil {
			return err
		}
		m = &domain.TeamMember{Name: in.Name, CreatedAt: s.timestamp()}
		if err := repos.TeamMembers.Create(ctx, m); err != nil {
			return err
		}
		fields["id"] = m.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *teamMemberService) Update(ctx context.Context, id int64, p domain.TeamMemberPatch) (*domain.TeamMember, error) {
	var m *domain.TeamMember
	err := s.run(ctx, "update-team-member", map[string]any{"id": id}, func(ctx context.Context, repos repository.Repos) error {
		var err error
		if m, err = repos.TeamMembers.GetByID(ctx, id); err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		m.Apply(p)
		return repos.TeamMembers.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *teamMemberService) Delete(ctx context.Context, id int64) (domain.DeleteResult, error) {
	return s.guardedDelete(ctx, "delete-team-member", id, domain.FieldTeamMemberID, func(r repository.Repos) deletable {
		return r.TeamMembers
	})
}

func (s *teamMemberService) ListWithRequirementCounts(ctx context.Context) (out []domain.Counted[*domain.TeamMember], err error) {
	err = s.run(ctx, "list-team-members-with-counts", nil, func(ctx context.Context, repos repository.Repos) error {
		out, err = repos.TeamMembers.ListWithRequirementCounts(ctx)
		return err
	})
	return out, err
}
