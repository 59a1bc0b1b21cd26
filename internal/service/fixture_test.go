package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/testutil"
	"github.com/stretchr/testify/require"
)

type services struct {
	db           *sql.DB
	uow          db.UnitOfWork
	clients      ClientService
	categories   CategoryService
	members      TeamMemberService
	requirements RequirementService
	summary      SummaryService
	imports      ImportService
}

func setupServices(t *testing.T, opts ...Option) *services {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	return &services{
		db:           database,
		uow:          uow,
		clients:      NewClientService(uow, opts...),
		categories:   NewCategoryService(uow, opts...),
		members:      NewTeamMemberService(uow, opts...),
		requirements: NewRequirementService(uow, opts...),
		summary:      NewSummaryService(uow, opts...),
		imports:      NewImportService(uow, opts...),
	}
}

func (s *services) client(t *testing.T, agency string) *domain.Client {
	t.Helper()
	c, err := s.clients.Create(context.Background(), domain.ClientInput{
		AgencyName:    agency,
		ContactPerson: "Jo Contact",
		Email:         "jo@example.com",
	})
	require.NoError(t, err)
	return c
}

func (s *services) category(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := s.categories.Create(context.Background(), domain.CategoryInput{Name: name})
	require.NoError(t, err)
	return c
}

func (s *services) member(t *testing.T, name string) *domain.TeamMember {
	t.Helper()
	m, err := s.members.Create(context.Background(), domain.TeamMemberInput{Name: name})
	require.NoError(t, err)
	return m
}

func (s *services) requirement(t *testing.T, in domain.RequirementInput) *domain.RequirementView {
	t.Helper()
	v, err := s.requirements.Create(context.Background(), in)
	require.NoError(t, err)
	return v
}

func (s *services) countRequirements(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM requirements`).Scan(&n))
	return n
}

// baseTime is a fixed local noon, far from any date boundary.
var baseTime = time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)
