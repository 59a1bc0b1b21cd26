package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

var testNameCounter atomic.Int64

func nextSuffix() int64 {
	return testNameCounter.Add(1)
}

// Client options
type ClientOption func(*domain.Client)

func WithEmail(email string) ClientOption {
	return func(c *domain.Client) {
		c.Email = email
	}
}

func WithPhone(phone string) ClientOption {
	return func(c *domain.Client) {
		c.Phone = phone
	}
}

func WithClientCreatedAt(t time.Time) ClientOption {
	return func(c *domain.Client) {
		c.CreatedAt = t
	}
}

// NewTestClient returns an unsaved client with valid defaults.
func NewTestClient(agency string, opts ...ClientOption) *domain.Client {
	c := &domain.Client{
		AgencyName:    agency,
		ContactPerson: "Pat Contact",
		Email:         fmt.Sprintf("contact%d@example.com", nextSuffix()),
		CreatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTestCategory returns an unsaved category. An empty name gets a unique one.
func NewTestCategory(name string) *domain.Category {
	if name == "" {
		name = fmt.Sprintf("Category %d", nextSuffix())
	}
	return &domain.Category{Name: name, CreatedAt: time.Now().UTC()}
}

func NewTestTeamMember(name string) *domain.TeamMember {
	return &domain.TeamMember{Name: name, CreatedAt: time.Now().UTC()}
}

// Requirement options
type RequirementOption func(*domain.Requirement)

func WithPriority(p domain.Priority) RequirementOption {
	return func(r *domain.Requirement) {
		r.Priority = p
	}
}

func WithDueDate(d time.Time) RequirementOption {
	return func(r *domain.Requirement) {
		cd := domain.CalendarDate(d)
		r.DueDate = &cd
	}
}

func WithTeamMember(id int64) RequirementOption {
	return func(r *domain.Requirement) {
		r.TeamMemberID = &id
	}
}

func WithDescription(d string) RequirementOption {
	return func(r *domain.Requirement) {
		r.Description = d
	}
}

// WithCreatedAt sets both timestamps.
func WithCreatedAt(t time.Time) RequirementOption {
	return func(r *domain.Requirement) {
		r.CreatedAt = t
		r.UpdatedAt = t
	}
}

// NewTestRequirement returns an unsaved requirement with Medium / To Do defaults.
func NewTestRequirement(clientID, categoryID int64, title string, opts ...RequirementOption) *domain.Requirement {
	now := time.Now().UTC()
	r := &domain.Requirement{
		Title:      title,
		Priority:   domain.PriorityMedium,
		Status:     domain.StatusTodo,
		ClientID:   clientID,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FixedClock returns a clock function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// StepClock returns a clock that starts at start and advances by step on
// every call.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	var n atomic.Int64
	return func() time.Time {
		i := n.Add(1) - 1
		return start.Add(time.Duration(i) * step)
	}
}
