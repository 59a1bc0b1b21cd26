package service

import (
	"context"

	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/importer"
)

// Lifecycle services. Every operation runs in its own transaction. Writes
// return *domain.ValidationError, *domain.ReferenceError or
// *domain.ConstraintError; lookups of unknown ids return *domain.NotFoundError.
// Delete reports refusals through domain.DeleteResult rather than an error.

type ClientService interface {
	List(ctx context.Context) ([]*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, in domain.ClientInput) (*domain.Client, error)
	Update(ctx context.Context, id int64, p domain.ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, id int64) (domain.DeleteResult, error)
	ListWithRequirementCounts(ctx context.Context) ([]domain.Counted[*domain.Client], error)
}

type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id int64, p domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id int64) (domain.DeleteResult, error)
	ListWithRequirementCounts(ctx context.Context) ([]domain.Counted[*domain.Category], error)
}

type TeamMemberService interface {
	List(ctx context.Context) ([]*domain.TeamMember, error)
	GetByID(ctx context.Context, id int64) (*domain.TeamMember, error)
	Create(ctx context.Context, in domain.TeamMemberInput) (*domain.TeamMember, error)
	Update(ctx context.Context, id int64, p domain.TeamMemberPatch) (*domain.TeamMember, error)
	Delete(ctx context.Context, id int64) (domain.DeleteResult, error)
	ListWithRequirementCounts(ctx context.Context) ([]domain.Counted[*domain.TeamMember], error)
}

type RequirementService interface {
	List(ctx context.Context, include domain.Include) ([]*domain.RequirementView, error)
	GetByID(ctx context.Context, id int64, include domain.Include) (*domain.RequirementView, error)
	// Create and Update always return the record with related names joined.
	Create(ctx context.Context, in domain.RequirementInput) (*domain.RequirementView, error)
	Update(ctx context.Context, id int64, p domain.RequirementPatch) (*domain.RequirementView, error)
	Delete(ctx context.Context, id int64) (domain.DeleteResult, error)
	ListByClient(ctx context.Context, clientID int64) ([]*domain.RequirementView, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.RequirementView, error)
	ListByTeamMember(ctx context.Context, memberID int64) ([]*domain.RequirementView, error)
}

type SummaryService interface {
	Summarize(ctx context.Context) (domain.Summary, error)
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}

// ImportResult counts what an import created and what it matched to
// existing records by name.
type ImportResult struct {
	Categories   int
	TeamMembers  int
	Clients      int
	Requirements int
	Reused       int
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.SeedSchema) (*ImportResult, error)
}
