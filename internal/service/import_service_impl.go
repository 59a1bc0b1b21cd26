package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/importer"
	"github.com/alexanderramin/reqtrack/internal/repository"
)

type importService struct {
	base
}

func NewImportService(uow db.UnitOfWork, opts ...Option) ImportService {
	return &importService{base: newBase(uow, opts)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	schema, err := importer.LoadSeedSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema writes the whole seed in one transaction. Categories, team
// members and clients that already exist under the same name are reused,
// not duplicated.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.SeedSchema) (*ImportResult, error) {
	if errs := importer.ValidateSeedSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	plan, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	var result ImportResult
	fields := map[string]any{"requirements": len(plan.Requirements)}
	err = s.run(ctx, "import", fields, func(ctx context.Context, repos repository.Repos) error {
		result = ImportResult{}
		now := s.timestamp()
		r := &resolver{
			repos:      repos,
			categories: map[string]int64{},
			members:    map[string]int64{},
			clients:    map[string]int64{},
		}

		for _, in := range plan.Categories {
			if reused, err := r.ensureCategory(ctx, in, now); err != nil {
				return fmt.Errorf("creating category %q: %w", in.Name, err)
			} else if reused {
				result.Reused++
			} else {
				result.Categories++
			}
		}
		for _, in := range plan.TeamMembers {
			if reused, err := r.ensureMember(ctx, in, now); err != nil {
				return fmt.Errorf("creating team member %q: %w", in.Name, err)
			} else if reused {
				result.Reused++
			} else {
				result.TeamMembers++
			}
		}
		for _, in := range plan.Clients {
			if reused, err := r.ensureClient(ctx, in, now); err != nil {
				return fmt.Errorf("creating client %q: %w", in.AgencyName, err)
			} else if reused {
				result.Reused++
			} else {
				result.Clients++
			}
		}

		for i, draft := range plan.Requirements {
			in, err := r.resolve(ctx, draft)
			if err != nil {
				return fmt.Errorf("requirements[%d]: %w", i, err)
			}
			if err := in.Validate(); err != nil {
				return fmt.Errorf("requirements[%d]: %w", i, err)
			}
			req := domain.NewRequirement(in, now)
			if err := repos.Requirements.Create(ctx, req); err != nil {
				return fmt.Errorf("creating requirement %q: %w", in.Title, err)
			}
			result.Requirements++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// resolver maps names to ids, preferring records created earlier in the
// same import and falling back to the store.
type resolver struct {
	repos      repository.Repos
	categories map[string]int64
	members    map[string]int64
	clients    map[string]int64
}

func (r *resolver) ensureCategory(ctx context.Context, in domain.CategoryInput, now time.Time) (bool, error) {
	if existing, err := r.repos.Categories.GetByName(ctx, in.Name); err == nil {
		r.categories[in.Name] = existing.ID
		return true, nil
	} else if !isNotFound(err) {
		return false, err
	}
	c := &domain.Category{Name: in.Name, CreatedAt: now}
	if err := r.repos.Categories.Create(ctx, c); err != nil {
		return false, err
	}
	r.categories[in.Name] = c.ID
	return false, nil
}

func (r *resolver) ensureMember(ctx context.Context, in domain.TeamMemberInput, now time.Time) (bool, error) {
	if existing, err := r.repos.TeamMembers.GetByName(ctx, in.Name); err == nil {
		r.members[in.Name] = existing.ID
		return true, nil
	} else if !isNotFound(err) {
		return false, err
	}
	m := &domain.TeamMember{Name: in.Name, CreatedAt: now}
	if err := r.repos.TeamMembers.Create(ctx, m); err != nil {
		return false, err
	}
	r.members[in.Name] = m.ID
	return false, nil
}

func (r *resolver) ensureClient(ctx context.Context, in domain.ClientInput, now time.Time) (bool, error) {
	if existing, err := r.repos.Clients.GetByAgencyName(ctx, in.AgencyName); err == nil {
		r.clients[in.AgencyName] = existing.ID
		return true, nil
	} else if !isNotFound(err) {
		return false, err
	}
	c := domain.NewClient(in, now)
	if err := r.repos.Clients.Create(ctx, c); err != nil {
		return false, err
	}
	r.clients[in.AgencyName] = c.ID
	return false, nil
}

// resolve fills in the ids of a draft. Unknown names yield a
// *domain.ReferenceError naming the field and the missing name.
func (r *resolver) resolve(ctx context.Context, d importer.RequirementDraft) (domain.RequirementInput, error) {
	in := d.Input

	id, err := lookup(ctx, r.clients, d.Client, domain.FieldClientID, func(ctx context.Context, name string) (int64, error) {
		c, err := r.repos.Clients.GetByAgencyName(ctx, name)
		if err != nil {
			return 0, err
		}
		return c.ID, nil
	})
	if err != nil {
		return in, err
	}
	in.ClientID = id

	if id, err = lookup(ctx, r.categories, d.Category, domain.FieldCategoryID, func(ctx context.Context, name string) (int64, error) {
		c, err := r.repos.Categories.GetByName(ctx, name)
		if err != nil {
			return 0, err
		}
		return c.ID, nil
	}); err != nil {
		return in, err
	}
	in.CategoryID = id

	if d.TeamMember != "" {
		if id, err = lookup(ctx, r.members, d.TeamMember, domain.FieldTeamMemberID, func(ctx context.Context, name string) (int64, error) {
			m, err := r.repos.TeamMembers.GetByName(ctx, name)
			if err != nil {
				return 0, err
			}
			return m.ID, nil
		}); err != nil {
			return in, err
		}
		in.TeamMemberID = &id
	}
	return in, nil
}

func lookup(ctx context.Context, cache map[string]int64, name, field string, fetch func(context.Context, string) (int64, error)) (int64, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}
	id, err := fetch(ctx, name)
	if isNotFound(err) {
		return 0, &domain.ReferenceError{Field: field, Name: name}
	}
	if err != nil {
		return 0, err
	}
	cache[name] = id
	return id, nil
}

func formatValidationErrors(errs []error) error {
	msg := ""
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("import %w (%d errors):%s", domain.ErrValidation, len(errs), msg)
}
