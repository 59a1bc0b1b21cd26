package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedFile = `
categories:
  - name: Web Development
  - name: Branding
team_members:
  - name: Alice
clients:
  - agency_name: Acme
    contact_person: Jo
    email: jo@acme.io
requirements:
  - title: Landing page
    client: Acme
    category: Web Development
    team_member: Alice
    priority: High
    due_date: 2025-01-31
  - title: Logo refresh
    client: Acme
    category: Branding
    status: in_progress
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestImportFile_FullSeed(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	result, err := s.imports.ImportFile(ctx, writeSeed(t, seedFile))
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Categories: 2, TeamMembers: 1, Clients: 1, Requirements: 2}, result)

	reqs, err := s.requirements.List(ctx, domain.IncludeRelations)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	byTitle := map[string]*domain.RequirementView{}
	for _, r := range reqs {
		byTitle[r.Title] = r
	}
	landing := byTitle["Landing page"]
	require.NotNil(t, landing)
	assert.Equal(t, "Acme", landing.ClientName)
	assert.Equal(t, "Web Development", landing.CategoryName)
	assert.Equal(t, "Alice", landing.TeamMemberName)
	assert.Equal(t, domain.PriorityHigh, landing.Priority)
	assert.Equal(t, domain.StatusTodo, landing.Status)
	require.NotNil(t, landing.DueDate)
	assert.Equal(t, "2025-01-31", landing.DueDate.Format(domain.DateLayout))

	logo := byTitle["Logo refresh"]
	require.NotNil(t, logo)
	assert.Equal(t, domain.StatusInProgress, logo.Status)
	assert.Equal(t, domain.PriorityMedium, logo.Priority)
	assert.Nil(t, logo.TeamMemberID)
}

func TestImport_ReusesExistingRecordsByName(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	existing := s.category(t, "Web Development")
	s.client(t, "Acme")

	result, err := s.imports.ImportFile(ctx, writeSeed(t, seedFile))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Reused)
	assert.Equal(t, 1, result.Categories)
	assert.Equal(t, 0, result.Clients)

	cats, err := s.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	reqs, err := s.requirements.ListByClient(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reqs, 2)
	for _, r := range reqs {
		if r.Title == "Landing page" {
			assert.Equal(t, existing.ID, r.CategoryID)
		}
	}

	_, err = s.imports.ImportFile(ctx, writeSeed(t, seedFile))
	require.NoError(t, err, "re-importing the same seed reuses every named record")
	assert.Equal(t, 4, s.countRequirements(t))
}

func TestImport_UnknownReferenceFailsWholeImport(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	schema := &importer.SeedSchema{
		Categories: []importer.CategoryImport{{Name: "Web"}},
		Requirements: []importer.RequirementImport{
			{Title: "Orphan", Client: "Nobody", Category: "Web"},
		},
	}
	_, err := s.imports.ImportSchema(ctx, schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

	var re *domain.ReferenceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, domain.FieldClientID, re.Field)
	assert.Equal(t, "Nobody", re.Name)

	cats, err := s.categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats, "the category created before the failure is rolled back")
}

func TestImport_ValidationErrorsReportedTogether(t *testing.T) {
	s := setupServices(t)

	schema := &importer.SeedSchema{
		Clients: []importer.ClientImport{{AgencyName: "", ContactPerson: "Jo", Email: "bad"}},
		Requirements: []importer.RequirementImport{
			{Title: "x", Client: "A", Category: "B", Priority: "Urgent"},
		},
	}
	_, err := s.imports.ImportSchema(context.Background(), schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "clients[0].agency_name")
	assert.Contains(t, err.Error(), "clients[0].email")
	assert.Contains(t, err.Error(), "requirements[0].priority")
}

func TestImportFile_MissingFile(t *testing.T) {
	s := setupServices(t)

	_, err := s.imports.ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}

func TestImport_PaddedNamesResolve(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	schema := &importer.SeedSchema{
		Categories:  []importer.CategoryImport{{Name: "Web "}},
		TeamMembers: []importer.TeamMemberImport{{Name: " Alice"}},
		Clients:     []importer.ClientImport{{AgencyName: " Acme ", ContactPerson: "Jo", Email: "jo@acme.io"}},
		Requirements: []importer.RequirementImport{
			{Title: "Landing page", Client: " Acme ", Category: "Web ", TeamMember: " Alice"},
		},
	}
	result, err := s.imports.ImportSchema(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Categories: 1, TeamMembers: 1, Clients: 1, Requirements: 1}, result)

	reqs, err := s.requirements.List(ctx, domain.IncludeRelations)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Acme", reqs[0].ClientName)
	assert.Equal(t, "Web", reqs[0].CategoryName)
	assert.Equal(t, "Alice", reqs[0].TeamMemberName)
}

func TestImport_DuplicateNamesInSeedRejected(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	schema := &importer.SeedSchema{
		TeamMembers: []importer.TeamMemberImport{{Name: "Alice"}, {Name: "Alice "}},
		Clients: []importer.ClientImport{
			{AgencyName: "Acme", ContactPerson: "Jo", Email: "jo@acme.io"},
			{AgencyName: "Acme", ContactPerson: "Sam", Email: "sam@acme.io"},
		},
	}
	_, err := s.imports.ImportSchema(ctx, schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `clients[1]: duplicate agency name "Acme"`)
	assert.Contains(t, err.Error(), `team_members[1]: duplicate team member name "Alice"`)

	clients, err := s.clients.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}
