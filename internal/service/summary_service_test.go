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

func TestSummaryService_EmptyStore(t *testing.T) {
	s := setupServices(t)

	sum, err := s.summary.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Total)
	assert.Empty(t, sum.ByStatus)
	assert.Empty(t, sum.ByPriority)
	assert.Equal(t, 0, sum.Overdue)
}

func TestSummaryService_Aggregation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")

	pairs := []struct {
		status   domain.Status
		priority domain.Priority
	}{
		{domain.StatusTodo, domain.PriorityHigh},
		{domain.StatusInProgress, domain.PriorityMedium},
		{domain.StatusDone, domain.PriorityLow},
	}
	for _, p := range pairs {
		s.requirement(t, domain.RequirementInput{
			Title: "r", ClientID: client.ID, CategoryID: cat.ID, Status: p.status, Priority: p.priority,
		})
	}

	sum, err := s.summary.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, map[domain.Status]int{
		domain.StatusTodo: 1, domain.StatusInProgress: 1, domain.StatusDone: 1,
	}, sum.ByStatus)
	assert.Equal(t, map[domain.Priority]int{
		domain.PriorityHigh: 1, domain.PriorityMedium: 1, domain.PriorityLow: 1,
	}, sum.ByPriority)
}

func TestSummaryService_ZeroCountsOmitted(t *testing.T) {
	s := setupServices(t)
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")
	s.requirement(t, domain.RequirementInput{Title: "r", ClientID: client.ID, CategoryID: cat.ID})

	sum, err := s.summary.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[domain.Status]int{domain.StatusTodo: 1}, sum.ByStatus)
	_, hasDone := sum.ByStatus[domain.StatusDone]
	assert.False(t, hasDone)
}

func TestSummaryService_Overdue(t *testing.T) {
	now := baseTime
	s := setupServices(t, WithClock(testutil.FixedClock(now)))
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")

	yesterday := now.AddDate(0, 0, -1)
	today := now
	in := func(status domain.Status, due time.Time) domain.RequirementInput {
		return domain.RequirementInput{Title: "r", ClientID: client.ID, CategoryID: cat.ID, Status: status, DueDate: &due}
	}
	s.requirement(t, in(domain.StatusTodo, yesterday))
	s.requirement(t, in(domain.StatusDone, yesterday))
	s.requirement(t, in(domain.StatusInProgress, today))
	s.requirement(t, domain.RequirementInput{Title: "no due", ClientID: client.ID, CategoryID: cat.ID})

	sum, err := s.summary.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 1, sum.Overdue)
}

func TestSummaryService_OverdueEvaluatedAtCallTime(t *testing.T) {
	current := baseTime
	s := setupServices(t, WithClock(func() time.Time { return current }))
	client := s.client(t, "Acme")
	cat := s.category(t, "Web")
	due := baseTime
	s.requirement(t, domain.RequirementInput{Title: "r", ClientID: client.ID, CategoryID: cat.ID, DueDate: &due})

	sum, err := s.summary.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Overdue, "due today is not overdue")

	current = baseTime.AddDate(0, 0, 1)
	sum, err = s.summary.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Overdue)
}

func TestSummaryService_Dashboard(t *testing.T) {
	s := setupServices(t, WithClock(testutil.StepClock(baseTime, time.Minute)))
	client := s.client(t, "Acme")
	s.client(t, "Globex")
	cat := s.category(t, "Web")
	s.member(t, "Dana")

	for i := 0; i < 7; i++ {
		s.requirement(t, domain.RequirementInput{Title: string(rune('a' + i)), ClientID: client.ID, CategoryID: cat.ID})
	}

	d, err := s.summary.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, d.Summary.Total)
	assert.Equal(t, 2, d.ClientCount)
	assert.Equal(t, 1, d.CategoryCount)
	assert.Equal(t, 1, d.MemberCount)
	require.Len(t, d.Recent, recentLimit)
	assert.Equal(t, "g", d.Recent[0].Title)
	assert.Equal(t, "Acme", d.Recent[0].ClientName)
}

func TestSummarize_Pure(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	past := domain.CalendarDate(now.AddDate(0, 0, -3))
	view := func(s domain.Status, p domain.Priority, due *time.Time) *domain.RequirementView {
		return &domain.RequirementView{Requirement: domain.Requirement{Status: s, Priority: p, DueDate: due}}
	}

	sum := summarize([]*domain.RequirementView{
		view(domain.StatusTodo, domain.PriorityHigh, &past),
		view(domain.StatusTodo, domain.PriorityHigh, nil),
		view(domain.StatusDone, domain.PriorityLow, &past),
	}, now)

	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.ByStatus[domain.StatusTodo])
	assert.Equal(t, 2, sum.ByPriority[domain.PriorityHigh])
	assert.Equal(t, 1, sum.Overdue)
}
