package repository

import (
	"context"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

// GetByID methods return a *domain.NotFoundError for unknown ids. Writes
// that violate a schema constraint return a *domain.ConstraintError.

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByAgencyName(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	ListWithRequirementCounts(ctx context.Context) ([]domain.Counted[*domain.Client], error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	ListWithRequirementCounts(ctx context.Context) ([]domain.Counted[*domain.Category], error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

type TeamMemberRepo interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	GetByID(ctx context.Context, id int64) (*domain.TeamMember, error)
	GetByName(ctx context.Context, name string) (*domain.TeamMember, error)
	List(ctx context.Context) ([]*domain.TeamMember, error)
	ListWithRequirementCounts(ctx context.Context) ([]domain.Counted[*domain.TeamMember], error)
	Update(ctx context.Context, m *domain.TeamMember) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// RequirementFilter narrows a requirement listing. Nil fields match all.
type RequirementFilter struct {
	ClientID     *int64
	CategoryID   *int64
	TeamMemberID *int64
}

type RequirementRepo interface {
	Create(ctx context.Context, r *domain.Requirement) error
	GetByID(ctx context.Context, id int64, include domain.Include) (*domain.RequirementView, error)
	List(ctx context.Context, filter RequirementFilter, include domain.Include) ([]*domain.RequirementView, error)
	Update(ctx context.Context, r *domain.Requirement) error
	Delete(ctx context.Context, id int64) error
	// CountReferencing counts requirements whose field (one of the
	// domain.Field*ID names) equals id.
	CountReferencing(ctx context.Context, field string, id int64) (int, error)
}

// Repos bundles the repositories bound to one DBTX, typically a transaction.
type Repos struct {
	Clients      ClientRepo
	Categories   CategoryRepo
	TeamMembers  TeamMemberRepo
	Requirements RequirementRepo
}

// NewRepos binds every repository to tx.
func NewRepos(tx db.DBTX) Repos {
	return Repos{
		Clients:      NewSQLClientRepo(tx),
		Categories:   NewSQLCategoryRepo(tx),
		TeamMembers:  NewSQLTeamMemberRepo(tx),
		Requirements: NewSQLRequirementRepo(tx),
	}
}
