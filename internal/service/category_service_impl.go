package service

import (
	"context"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/repository"
)

type categoryService struct {
	base
}

func NewCategoryService(uow db.UnitOfWork, opts ...Option) CategoryService {
	return &categoryService{base: newBase(uow, opts)}
}

func (s *categoryService) List(ctx context.Context) (categories []*domain.Category, err error) {
	err = s.run(ctx, "list-categories", nil, func(ctx context.Context, repos repository.Repos) error {
		categories, err = repos.Categories.List(ctx)
		return err
	})
	return categories, err
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (c *domain.Category, err error) {
	err = s.run(ctx, "get-category", map[string]any{"id": id}, func(ctx context.Context, repos repository.Repos) error {
		c, err = repos.Categories.GetByID(ctx, id)
		return err
	})
	return c, err
}

func (s *categoryService) Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	var c *domain.Category
	fields := map[string]any{"name": in.Name}
	err := s.run(ctx, "create-category", fields, func(ctx context.Context, repos repository.Repos) error {
		if err := in.Validate(); err != nil {
			return err
		}
		c = &domain.Category{Name: in.Name, CreatedAt: s.timestamp()}
		if err := repos.Categories.Create(ctx, c); err != nil {
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

func (s *categoryService) Update(ctx context.Context, id int64, p domain.CategoryPatch) (*domain.Category, error) {
	var c *domain.Category
	err := s.run(ctx, "update-category", map[string]any{"id": id}, func(ctx context.Context, repos repository.Repos) error {
		var err error
		if c, err = repos.Categories.GetByID(ctx, id); err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		c.Apply(p)
		return repos.Categories.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) (domain.DeleteResult, error) {
	return s.guardedDelete(ctx, "delete-category", id, domain.FieldCategoryID, func(r repository.Repos) deletable {
		return r.Categories
	})
}

func (s *categoryService) ListWithRequirementCounts(ctx context.Context) (out []domain.Counted[*domain.Category], err error) {
	err = s.run(ctx, "list-categories-with-counts", nil, func(ctx context.Context, repos repository.Repos) error {
		out, err = repos.Categories.ListWithRequirementCounts(ctx)
		return err
	})
	return out, err
}
