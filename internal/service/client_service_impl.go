package service

import (
	"context"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/repository"
)

type clientService struct {
	base
}

func NewClientService(uow db.UnitOfWork, opts ...Option) ClientService {
	return &clientService{base: newBase(uow, opts)}
}

func (s *clientService) List(ctx context.Context) (clients []*domain.Client, err error) {
	err = s.run(ctx, "list-clients", nil, func(ctx context.Context, repos repository.Repos) error {
		clients, err = repos.Clients.List(ctx)
		return err
	})
	return clients, err
}

func (s *clientService) GetByID(ctx context.Context, id int64) (c *domain.Client, err error) {
	err = s.run(ctx, "get-client", map[string]any{"id": id}, func(ctx context.Context, repos repository.Repos) error {
		c, err = repos.Clients.GetByID(ctx, id)
		return err
	})
	return c, err
}

func (s *clientService) Create(ctx context.Context, in domain.ClientInput) (*domain.Client, error) {
	var c *domain.Client
	fields := map[string]any{"agency_name": in.AgencyName}
	err := s.run(ctx, "create-client", fields, func(ctx context.Context, repos repository.Repos) error {
		if err := in.Validate(); err != nil {
			return err
		}
		c = domain.NewClient(in, s.timestamp())
		if err := repos.Clients.Create(ctx, c); err != nil {
			return err
		}
		fields["id"] = c.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) Update(ctx context.Context, id int64, p domain.ClientPatch) (*domain.Client, error) {
	var c *domain.Client
	err := s.run(ctx, "update-client", map[string]any{"id": id}, func(ctx context.Context, repos repository.Repos) error {
		var err error
		if c, err = repos.Clients.GetByID(ctx, id); err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		c.Apply(p)
		return repos.Clients.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) Delete(ctx context.Context, id int64) (domain.DeleteResult, error) {
	return s.guardedDelete(ctx, "delete-client", id, domain.FieldClientID, func(r repository.Repos) deletable {
		return r.Clients
	})
}

func (s *clientService) ListWithRequirementCounts(ctx context.Context) (out []domain.Counted[*domain.Client], err error) {
	err = s.run(ctx, "list-clients-with-counts", nil, func(ctx context.Context, repos repository.Repos) error {
		out, err = repos.Clients.ListWithRequirementCounts(ctx)
		return err
	})
	return out, err
}
