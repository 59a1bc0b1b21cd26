package service

import (
	"context"
	"time"

	"github.com/alexanderramin/reqtrack/internal/db"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/repository"
)

// recentLimit is the number of requirements shown on the dashboard.
const recentLimit = 5

type summaryService struct {
	base
}

func NewSummaryService(uow db.UnitOfWork, opts ...Option) SummaryService {
	return &summaryService{base: newBase(uow, opts)}
}

// Summarize recomputes the aggregate on every call; the clock is read once
// per call.
func (s *summaryService) Summarize(ctx context.Context) (sum domain.Summary, err error) {
	err = s.run(ctx, "summarize", nil, func(ctx context.Context, repos repository.Repos) error {
		reqs, err := repos.Requirements.List(ctx, repository.RequirementFilter{}, domain.IncludeNone)
		if err != nil {
			return err
		}
		sum = summarize(reqs, s.now())
		return nil
	})
	return sum, err
}

func (s *summaryService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var d domain.Dashboard
	err := s.run(ctx, "dashboard", nil, func(ctx context.Context, repos repository.Repos) error {
		reqs, err := repos.Requirements.List(ctx, repository.RequirementFilter{}, domain.IncludeRelations)
		if err != nil {
			return err
		}
		d.Summary = summarize(reqs, s.now())
		// The listing is already newest first.
		d.Recent = reqs[:min(recentLimit, len(reqs))]

		if d.ClientCount, err = repos.Clients.Count(ctx); err != nil {
			return err
		}
		if d.CategoryCount, err = repos.Categories.Count(ctx); err != nil {
			return err
		}
		d.MemberCount, err = repos.TeamMembers.Count(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// summarize counts requirements by status and priority in one pass.
// Zero-count keys are left out of the maps.
func summarize(reqs []*domain.RequirementView, now time.Time) domain.Summary {
	sum := domain.Summary{
		Total:      len(reqs),
		ByStatus:   make(map[domain.Status]int),
		ByPriority: make(map[domain.Priority]int),
	}
	for _, r := range reqs {
		sum.ByStatus[r.Status]++
		sum.ByPriority[r.Priority]++
		if r.IsOverdue(now) {
			sum.Overdue++
		}
	}
	return sum
}
