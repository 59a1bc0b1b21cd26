package handler

import (
	"time"

	"github.com/alexanderramin/reqtrack/internal/domain"
)

const timeLayout = time.RFC3339

type clientResponse struct {
	ID               int64  `json:"id"`
	AgencyName       string `json:"agency_name"`
	ContactPerson    string `json:"contact_person"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	Website          string `json:"website"`
	CreatedAt        string `json:"created_at"`
	RequirementCount *int   `json:"requirement_count,omitempty"`
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:            c.ID,
		AgencyName:    c.AgencyName,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		Website:       c.Website,
		CreatedAt:     c.CreatedAt.UTC().Format(timeLayout),
	}
}

// namedResponse serves both categories and team members.
type namedResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	CreatedAt        string `json:"created_at"`
	RequirementCount *int   `json:"requirement_count,omitempty"`
}

func toCategoryResponse(c *domain.Category) namedResponse {
	return namedResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt.UTC().Format(timeLayout)}
}

func toTeamMemberResponse(m *domain.TeamMember) namedResponse {
	return namedResponse{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt.UTC().Format(timeLayout)}
}

// withCounts converts counted records, attaching the requirement count.
func withCounts[T any, R any](items []domain.Counted[T], conv func(T) R, set func(*R, *int)) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		resp := conv(it.Item)
		n := it.RequirementCount
		set(&resp, &n)
		out = append(out, resp)
	}
	return out
}

type requirementResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	Status         string  `json:"status"`
	DueDate        *string `json:"due_date"`
	ClientID       int64   `json:"client_id"`
	CategoryID     int64   `json:"category_id"`
	TeamMemberID   *int64  `json:"team_member_id"`
	ClientName     string  `json:"client_name,omitempty"`
	CategoryName   string  `json:"category_name,omitempty"`
	TeamMemberName string  `json:"team_member_name,omitempty"`
	Overdue        bool    `json:"overdue"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func toRequirementResponse(v *domain.RequirementView, now time.Time) requirementResponse {
	resp := requirementResponse{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		Priority:       string(v.Priority),
		Status:         string(v.Status),
		ClientID:       v.ClientID,
		CategoryID:     v.CategoryID,
		TeamMemberID:   v.TeamMemberID,
		ClientName:     v.ClientName,
		CategoryName:   v.CategoryName,
		TeamMemberName: v.TeamMemberName,
		Overdue:        v.IsOverdue(now),
		CreatedAt:      v.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      v.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if v.DueDate != nil {
		d := v.DueDate.Format(domain.DateLayout)
		resp.DueDate = &d
	}
	return resp
}

func toRequirementResponses(views []*domain.RequirementView, now time.Time) []requirementResponse {
	out := make([]requirementResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toRequirementResponse(v, now))
	}
	return out
}

type summaryResponse struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
	Overdue    int            `json:"overdue"`
}

func toSummaryResponse(s domain.Summary) summaryResponse {
	resp := summaryResponse{
		Total:      s.Total,
		ByStatus:   make(map[string]int, len(s.ByStatus)),
		ByPriority: make(map[string]int, len(s.ByPriority)),
		Overdue:    s.Overdue,
	}
	for k, n := range s.ByStatus {
		resp.ByStatus[string(k)] = n
	}
	for k, n := range s.ByPriority {
		resp.ByPriority[string(k)] = n
	}
	return resp
}

type dashboardResponse struct {
	Summary summaryResponse       `json:"summary"`
	Counts  dashboardCounts       `json:"counts"`
	Recent  []requirementResponse `json:"recent"`
}

type dashboardCounts struct {
	Clients     int `json:"clients"`
	Categories  int `json:"categories"`
	TeamMembers int `json:"team_members"`
}
