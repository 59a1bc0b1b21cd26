package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/service"
	"github.com/alexanderramin/reqtrack/internal/testutil"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	clock := service.WithClock(func() time.Time { return fixedNow })

	return &App{
		Clients:      service.NewClientService(uow, clock),
		Categories:   service.NewCategoryService(uow, clock),
		Members:      service.NewTeamMemberService(uow, clock),
		Requirements: service.NewRequirementService(uow, clock),
		Summary:      service.NewSummaryService(uow, clock),
		Import:       service.NewImportService(uow, clock),
		Now:          func() time.Time { return fixedNow },
		// Serve left nil; IsInteractive nil so no prompts run.
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

type seeded struct {
	client   *domain.Client
	category *domain.Category
	member   *domain.TeamMember
}

func seedRefs(t *testing.T, app *App) seeded {
	t.Helper()
	ctx := context.Background()
	c, err := app.Clients.Create(ctx, domain.ClientInput{AgencyName: "Acme Agency", ContactPerson: "Jo", Email: "jo@acme.test"})
	require.NoError(t, err)
	cat, err := app.Categories.Create(ctx, domain.CategoryInput{Name: "Design"})
	require.NoError(t, err)
	m, err := app.Members.Create(ctx, domain.TeamMemberInput{Name: "Sam"})
	require.NoError(t, err)
	return seeded{client: c, category: cat, member: m}
}

func seedRequirement(t *testing.T, app *App, s seeded, title string, opts func(*domain.RequirementInput)) *domain.RequirementView {
	t.Helper()
	in := domain.RequirementInput{Title: title, ClientID: s.client.ID, CategoryID: s.category.ID}
	if opts != nil {
		opts(&in)
	}
	v, err := app.Requirements.Create(context.Background(), in)
	require.NoError(t, err)
	return v
}

// --- Clients ---

func TestClientAddAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "client", "add", "--agency", "Acme Agency", "--contact", "Jo", "--email", "jo@acme.test")
	require.NoError(t, err)
	assert.Contains(t, out, "Created client")
	assert.Contains(t, out, "Acme Agency")

	out, err = executeCmd(t, app, "clients", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Agency")
	assert.Contains(t, out, "jo@acme.test")
}

func TestClientList_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "client", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No clients found.")
}

func TestClientAdd_MissingFieldsWithoutPrompt(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "client", "add", "--agency", "Acme")
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "contact_person")
	assert.Contains(t, fields, "email")
}

func TestClientShow_ByNameCaseInsensitive(t *testing.T) {
	app := testApp(t)
	seedRefs(t, app)

	out, err := executeCmd(t, app, "client", "show", "acme agency")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 ACME AGENCY")
	assert.Contains(t, out, "jo@acme.test")
}

func TestClientShow_UnknownName(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "client", "show", "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client not found")
}

func TestClientUpdate_OnlyChangedFlags(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)

	out, err := executeCmd(t, app, "client", "update", "1", "--phone", "555-0100")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated client")

	c, err := app.Clients.GetByID(context.Background(), s.client.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", c.Phone)
	assert.Equal(t, "Jo", c.ContactPerson)
	assert.Equal(t, "jo@acme.test", c.Email)
}

func TestClientRemove(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)

	out, err := executeCmd(t, app, "client", "remove", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted client #1")

	_, err = app.Clients.GetByID(context.Background(), s.client.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientRemove_BlockedByRequirement(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	seedRequirement(t, app, s, "Logo refresh", nil)

	_, err := executeCmd(t, app, "client", "remove", "1", "-y")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeletionBlocked)
	assert.Contains(t, err.Error(), "1 requirement(s)")

	_, err = app.Clients.GetByID(context.Background(), s.client.ID)
	assert.NoError(t, err)
}

func TestClientRemove_NotFound(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "client", "remove", "99", "--yes")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientRemove_InvalidID(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "client", "remove", "abc", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid client id "abc"`)
}

func TestClientRequirements(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	seedRequirement(t, app, s, "Logo refresh", nil)

	out, err := executeCmd(t, app, "client", "requirements", "Acme Agency")
	require.NoError(t, err)
	assert.Contains(t, out, "Logo refresh")
	assert.Contains(t, out, "Design")
}

// --- Categories and team members ---

func TestCategoryLifecycle(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "category", "add", "Design")
	require.NoError(t, err)
	assert.Contains(t, out, "Created category")

	out, err = executeCmd(t, app, "category", "update", "1", "--name", "Branding")
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed category #1 to")

	out, err = executeCmd(t, app, "categories", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Branding")
	assert.NotContains(t, out, "Design")

	out, err = executeCmd(t, app, "category", "remove", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted category #1")
}

func TestCategoryAdd_Duplicate(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "category", "add", "Design")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "category", "add", "Design")
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestCategoryUpdate_RequiresName(t *testing.T) {
	app := testApp(t)
	seedRefs(t, app)

	_, err := executeCmd(t, app, "category", "update", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name")
}

func TestCategoryRequirements(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	other, err := app.Categories.Create(context.Background(), domain.CategoryInput{Name: "Copy"})
	require.NoError(t, err)
	seedRequirement(t, app, s, "Logo refresh", nil)
	seedRequirement(t, app, s, "Tagline", func(in *domain.RequirementInput) { in.CategoryID = other.ID })

	out, err := executeCmd(t, app, "category", "requirements", "design")
	require.NoError(t, err)
	assert.Contains(t, out, "Logo refresh")
	assert.NotContains(t, out, "Tagline")
}

func TestCategoryRequirements_UnknownID(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "category", "requirements", "42")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryShow_CountsRequirements(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	seedRequirement(t, app, s, "Logo refresh", nil)
	seedRequirement(t, app, s, "Icons", nil)

	out, err := executeCmd(t, app, "category", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "2")
}

func TestMemberLifecycle(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	seedRequirement(t, app, s, "Logo refresh", func(in *domain.RequirementInput) { in.TeamMemberID = &s.member.ID })

	out, err := executeCmd(t, app, "member", "requirements", "sam")
	require.NoError(t, err)
	assert.Contains(t, out, "Logo refresh")

	_, err = executeCmd(t, app, "member", "remove", "1", "--yes")
	assert.ErrorIs(t, err, domain.ErrDeletionBlocked)

	out, err = executeCmd(t, app, "team", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sam")
}

func TestMemberList_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "member", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No team member records found.")
}

// --- Requirements ---

func TestRequirementAdd_ByNames(t *testing.T) {
	app := testApp(t)
	seedRefs(t, app)

	out, err := executeCmd(t, app, "requirement", "add",
		"--title", "Logo refresh",
		"--client", "acme agency",
		"--category", "Design",
		"--member", "Sam",
		"--priority", "high",
		"--status", "in-progress",
		"--due", "2026-06-20",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created requirement")
	assert.Contains(t, out, "for Acme Agency")

	v, err := app.Requirements.GetByID(context.Background(), 1, domain.IncludeRelations)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, v.Priority)
	assert.Equal(t, domain.StatusInProgress, v.Status)
	require.NotNil(t, v.DueDate)
	assert.Equal(t, "2026-06-20", v.DueDate.Format(domain.DateLayout))
	assert.Equal(t, "Sam", v.TeamMemberName)
}

func TestRequirementAdd_Defaults(t *testing.T) {
	app := testApp(t)
	seedRefs(t, app)

	_, err := executeCmd(t, app, "req", "add", "--title", "Logo", "--client", "1", "--category", "1")
	require.NoError(t, err)

	v, err := app.Requirements.GetByID(context.Background(), 1, domain.IncludeNone)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, v.Priority)
	assert.Equal(t, domain.StatusTodo, v.Status)
	assert.Nil(t, v.TeamMemberID)
	assert.Nil(t, v.DueDate)
}

func TestRequirementAdd_UnknownClientID(t *testing.T) {
	app := testApp(t)
	seedRefs(t, app)

	_, err := executeCmd(t, app, "requirement", "add", "--title", "Logo", "--client", "99", "--category", "1")
	require.Error(t, err)

	var rerr *domain.ReferenceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, domain.FieldClientID, rerr.Field)
}

func TestRequirementAdd_MissingClient(t *testing.T) {
	app := testApp(t)
	seedRefs(t, app)

	_, err := executeCmd(t, app, "requirement", "add", "--title", "Logo", "--category", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client is required")
}

func TestRequirementAdd_BadFlagValues(t *testing.T) {
	app := testApp(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"priority", []string{"--priority", "urgent"}, "invalid priority"},
		{"status", []string{"--status", "blocked"}, "invalid status"},
		{"due", []string{"--due", "15/06/2026"}, "YYYY-MM-DD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, app, append([]string{"requirement", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRequirementList_Filters(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	past := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seedRequirement(t, app, s, "Overdue banner", func(in *domain.RequirementInput) { in.DueDate = &past })
	seedRequirement(t, app, s, "Assigned icons", func(in *domain.RequirementInput) {
		in.TeamMemberID = &s.member.ID
		in.Status = domain.StatusDone
	})

	out, err := executeCmd(t, app, "requirement", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Overdue banner")
	assert.Contains(t, out, "Assigned icons")

	out, err = executeCmd(t, app, "requirement", "list", "--overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "Overdue banner")
	assert.NotContains(t, out, "Assigned icons")

	out, err = executeCmd(t, app, "requirement", "list", "--member", "Sam")
	require.NoError(t, err)
	assert.Contains(t, out, "Assigned icons")
	assert.NotContains(t, out, "Overdue banner")

	out, err = executeCmd(t, app, "requirement", "list", "--client", "Acme Agency", "--status", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "Assigned icons")
	assert.NotContains(t, out, "Overdue banner")

	out, err = executeCmd(t, app, "requirement", "list", "--bare")
	require.NoError(t, err)
	assert.Contains(t, out, "Overdue banner")
	assert.NotContains(t, out, "Acme Agency")
}

func TestRequirementList_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "requirement", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No requirements found.")
}

func TestRequirementShow(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	seedRequirement(t, app, s, "Logo refresh", func(in *domain.RequirementInput) { in.Description = "Three variants" })

	out, err := executeCmd(t, app, "requirement", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 LOGO REFRESH")
	assert.Contains(t, out, "Acme Agency")
	assert.Contains(t, out, "unassigned")
	assert.Contains(t, out, "Three variants")
}

func TestRequirementUpdate(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	seedRequirement(t, app, s, "Logo refresh", func(in *domain.RequirementInput) {
		in.DueDate = &due
		in.TeamMemberID = &s.member.ID
	})

	out, err := executeCmd(t, app, "requirement", "update", "1", "--status", "done", "--clear-due", "--clear-member")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated requirement")

	v, err := app.Requirements.GetByID(context.Background(), 1, domain.IncludeNone)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, v.Status)
	assert.Equal(t, "Logo refresh", v.Title)
	assert.Nil(t, v.DueDate)
	assert.Nil(t, v.TeamMemberID)
}

func TestRequirementUpdate_ConflictingFlags(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	seedRequirement(t, app, s, "Logo refresh", nil)

	_, err := executeCmd(t, app, "requirement", "update", "1", "--due", "2026-07-01", "--clear-due")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRequirementUpdate_NotFound(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "requirement", "update", "5", "--title", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequirementRemove(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	seedRequirement(t, app, s, "Logo refresh", nil)

	out, err := executeCmd(t, app, "requirement", "remove", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted requirement #1")

	_, err = executeCmd(t, app, "requirement", "remove", "1", "--yes")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- Dashboard, import, serve ---

func TestDashboardCmd(t *testing.T) {
	app := testApp(t)
	s := seedRefs(t, app)
	past := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seedRequirement(t, app, s, "Overdue banner", func(in *domain.RequirementInput) { in.DueDate = &past })

	out, err := executeCmd(t, app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "1 overdue")
	assert.Contains(t, out, "RECENT")
	assert.Contains(t, out, "Overdue banner")
}

func TestDashboardCmd_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "No requirements yet.")
}

func TestDashboardCmd_InvalidInterval(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "dashboard", "--watch", "--interval", "0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--interval")
}

const seedYAML = `categories:
  - name: Design
team_members:
  - name: Sam
clients:
  - agency_name: Acme Agency
    contact_person: Jo
    email: jo@acme.test
requirements:
  - title: Logo refresh
    client: Acme Agency
    category: Design
    team_member: Sam
    priority: High
`

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Regexp(t, `requirements\s+1`, out)
	assert.NotContains(t, out, "reused")

	out, err = executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 existing record(s) reused by name")

	views, err := app.Requirements.List(context.Background(), domain.IncludeNone)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestImportCmd_MissingFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "import", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestServeCmd_OmittedWithoutServe(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestServeCmd_PassesAddr(t *testing.T) {
	app := testApp(t)
	app.Addr = ":8080"
	var got string
	app.Serve = func(ctx context.Context, addr string) error {
		got = addr
		return nil
	}

	_, err := executeCmd(t, app, "serve")
	require.NoError(t, err)
	assert.Equal(t, ":8080", got)

	_, err = executeCmd(t, app, "serve", "--addr", "127.0.0.1:9000")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", got)
}
