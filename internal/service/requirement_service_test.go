package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementService_CreateHydratesAndDefaults(t *testing.T) {
	s := setupServices(t)
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")
	m := s.member(t, "Dana")

	v := s.requirement(t, domain.RequirementInput{
		Title: "Landing page", ClientID: client.ID, CategoryID: cat.ID, TeamMemberID: &m.ID,
	})
	assert.Positive(t, v.ID)
	assert.Equal(t, domain.PriorityMedium, v.Priority)
	assert.Equal(t, domain.StatusTodo, v.Status)
	assert.Equal(t, "Acme", v.ClientName)
	assert.Equal(t, "Web", v.CategoryName)
	assert.Equal(t, "Dana", v.TeamMemberName)
	assert.True(t, v.UpdatedAt.Equal(v.CreatedAt))
}

func TestRequirementService_CreateRejectsMissingReferences(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")
	missing := int64(404)

	tests := []struct {
		name  string
		in    domain.RequirementInput
		field string
	}{
		{"client", domain.RequirementInput{Title: "t", ClientID: missing, CategoryID: cat.ID}, domain.FieldClientID},
		{"category", domain.RequirementInput{Title: "t", ClientID: client.ID, CategoryID: missing}, domain.FieldCategoryID},
		{"team member", domain.RequirementInput{Title: "t", ClientID: client.ID, CategoryID: cat.ID, TeamMemberID: &missing}, domain.FieldTeamMemberID},
		{"client checked first", domain.RequirementInput{Title: "t", ClientID: missing, CategoryID: missing}, domain.FieldClientID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.requirements.Create(ctx, tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

			var re *domain.ReferenceError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.field, re.Field)
			assert.Equal(t, missing, re.ID)

			assert.Equal(t, 0, s.countRequirements(t))
		})
	}
}

func TestRequirementService_CreateValidation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")

	_, err := s.requirements.Create(ctx, domain.RequirementInput{Title: "", ClientID: client.ID, CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.requirements.Create(ctx, domain.RequirementInput{
		Title: "t", ClientID: client.ID, CategoryID: cat.ID, Status: domain.Status("Blocked"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.requirements.Create(ctx, domain.RequirementInput{Title: "t", CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, s.countRequirements(t))
}

func TestRequirementService_ListNewestFirst(t *testing.T) {
	s := setupServices(t, WithClock(testutil.StepClock(baseTime, time.Minute)))
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")

	for _, title := range []string{"first", "second", "third"} {
		s.requirement(t, domain.RequirementInput{Title: title, ClientID: client.ID, CategoryID: cat.ID})
	}

	list, err := s.requirements.List(ctx, domain.IncludeRelations)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, "first", list[2].Title)
	assert.Equal(t, "Acme", list[0].ClientName)

	plain, err := s.requirements.List(ctx, domain.IncludeNone)
	require.NoError(t, err)
	assert.Empty(t, plain[0].ClientName)
}

func TestRequirementService_PartialUpdateChangesOnlyTitle(t *testing.T) {
	s := setupServices(t, WithClock(testutil.StepClock(baseTime, time.Second)))
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")
	m := s.member(t, "Dana")
	due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	before := s.requirement(t, domain.RequirementInput{
		Title: "Old", Description: "desc", Priority: domain.PriorityHigh, Status: domain.StatusInProgress,
		DueDate: &due, ClientID: client.ID, CategoryID: cat.ID, TeamMemberID: &m.ID,
	})

	after, err := s.requirements.Update(ctx, before.ID, domain.RequirementPatch{Title: domain.Ptr("T")})
	require.NoError(t, err)

	assert.Equal(t, "T", after.Title)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.Priority, after.Priority)
	assert.Equal(t, before.Status, after.Status)
	require.NotNil(t, after.DueDate)
	assert.True(t, before.DueDate.Equal(*after.DueDate))
	assert.Equal(t, before.ClientID, after.ClientID)
	assert.Equal(t, before.CategoryID, after.CategoryID)
	assert.Equal(t, *before.TeamMemberID, *after.TeamMemberID)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestRequirementService_UpdateTimestampAdvancesUnderFrozenClock(t *testing.T) {
	s := setupServices(t, WithClock(testutil.FixedClock(baseTime)))
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")

	v := s.requirement(t, domain.RequirementInput{Title: "t", ClientID: client.ID, CategoryID: cat.ID})
	prev := v.UpdatedAt
	for i := 0; i < 3; i++ {
		next, err := s.requirements.Update(ctx, v.ID, domain.RequirementPatch{Status: domain.Ptr(domain.StatusInProgress)})
		require.NoError(t, err)
		assert.True(t, next.UpdatedAt.After(prev), "update %d must move updated_at forward", i)
		assert.False(t, next.UpdatedAt.Before(next.CreatedAt))
		prev = next.UpdatedAt
	}
}

func TestRequirementService_UpdateClearsOptionalFields(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")
	m := s.member(t, "Dana")
	due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	v := s.requirement(t, domain.RequirementInput{
		Title: "t", DueDate: &due, ClientID: client.ID, CategoryID: cat.ID, TeamMemberID: &m.ID,
	})
	cleared, err := s.requirements.Update(ctx, v.ID, domain.RequirementPatch{ClearDueDate: true, ClearTeamMember: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
	assert.Nil(t, cleared.TeamMemberID)
	assert.Empty(t, cleared.TeamMemberName)
}

func TestRequirementService_UpdateWithBadReferenceAbortsEverything(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")

	v := s.requirement(t, domain.RequirementInput{Title: "Keep", ClientID: client.ID, CategoryID: cat.ID})
	_, err := s.requirements.Update(ctx, v.ID, domain.RequirementPatch{
		Title:      domain.Ptr("Changed"),
		CategoryID: domain.Ptr(int64(999)),
	})
	var re *domain.ReferenceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, domain.FieldCategoryID, re.Field)

	stored, err := s.requirements.GetByID(ctx, v.ID, domain.IncludeNone)
	require.NoError(t, err)
	assert.Equal(t, "Keep", stored.Title)
	assert.True(t, stored.UpdatedAt.Equal(v.UpdatedAt))
}

func TestRequirementService_UpdateMovesReferences(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	a := s.client(t, "A")
	b := s.client(t, "B")
	cat := s.category(t, "Web")

	v := s.requirement(t, domain.RequirementInput{Title: "t", ClientID: a.ID, CategoryID: cat.ID})
	moved, err := s.requirements.Update(ctx, v.ID, domain.RequirementPatch{ClientID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.ClientID)
	assert.Equal(t, "B", moved.ClientName)
}

func TestRequirementService_UpdateNotFoundAndConflictingPatch(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")

	_, err := s.requirements.Update(ctx, 12345, domain.RequirementPatch{Title: domain.Ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	v := s.requirement(t, domain.RequirementInput{Title: "t", ClientID: client.ID, CategoryID: cat.ID})
	due := time.Now()
	_, err = s.requirements.Update(ctx, v.ID, domain.RequirementPatch{DueDate: &due, ClearDueDate: true})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRequirementService_Delete(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")
	v := s.requirement(t, domain.RequirementInput{Title: "t", ClientID: client.ID, CategoryID: cat.ID})

	res, err := s.requirements.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, res.Ok())

	res, err = s.requirements.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeleteNotFound, res.Outcome)

	_, err = s.requirements.GetByID(ctx, v.ID, domain.IncludeNone)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequirementService_ListByClientAndMember(t *testing.T) {
	s := setupServices(t, WithClock(testutil.StepClock(baseTime, time.Minute)))
	ctx := context.Background()
	a := s.client(t, "A")
	b := s.client(t, "B")
	cat := s.category(t, "Web")
	m := s.member(t, "Dana")

	s.requirement(t, domain.RequirementInput{Title: "a1", ClientID: a.ID, CategoryID: cat.ID, TeamMemberID: &m.ID})
	s.requirement(t, domain.RequirementInput{Title: "b1", ClientID: b.ID, CategoryID: cat.ID})
	s.requirement(t, domain.RequirementInput{Title: "a2", ClientID: a.ID, CategoryID: cat.ID})

	byA, err := s.requirements.ListByClient(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, byA, 2)
	assert.Equal(t, "a2", byA[0].Title)
	assert.Equal(t, "a1", byA[1].Title)

	byM, err := s.requirements.ListByTeamMember(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, byM, 1)
	assert.Equal(t, "a1", byM[0].Title)

	_, err = s.requirements.ListByClient(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.requirements.ListByTeamMember(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequirementService_ListByCategory(t *testing.T) {
	s := setupServices(t, WithClock(testutil.StepClock(baseTime, time.Minute)))
	ctx := context.Background()
	c := s.client(t, "A")
	web := s.category(t, "Web")
	copywriting := s.category(t, "Copy")

	s.requirement(t, domain.RequirementInput{Title: "w1", ClientID: c.ID, CategoryID: web.ID})
	s.requirement(t, domain.RequirementInput{Title: "c1", ClientID: c.ID, CategoryID: copywriting.ID})
	s.requirement(t, domain.RequirementInput{Title: "w2", ClientID: c.ID, CategoryID: web.ID})

	byWeb, err := s.requirements.ListByCategory(ctx, web.ID)
	require.NoError(t, err)
	require.Len(t, byWeb, 2)
	assert.Equal(t, "w2", byWeb[0].Title)
	assert.Equal(t, "Web", byWeb[0].CategoryName)
	assert.Equal(t, "w1", byWeb[1].Title)

	empty, err := s.requirements.ListByCategory(ctx, s.category(t, "SEO").ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = s.requirements.ListByCategory(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
