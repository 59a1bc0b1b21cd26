package handler

import (
	"net/http"
	"time"

	"github.com/alexanderramin/reqtrack/internal/api/middleware"
	"github.com/alexanderramin/reqtrack/internal/api/response"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/service"
)

// TeamMemberHandler handles the /team-members endpoints.
type TeamMemberHandler struct {
	members      service.TeamMemberService
	requirements service.RequirementService
	now          func() time.Time
}

// NewTeamMemberHandler creates a new TeamMemberHandler.
func NewTeamMemberHandler(members service.TeamMemberService, requirements service.RequirementService, now func() time.Time) *TeamMemberHandler {
	return &TeamMemberHandler{members: members, requirements: requirements, now: now}
}

// List handles GET /team-members.
func (h *TeamMemberHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.members.ListWithRequirementCounts(r.Context())
	if err != nil {
		writeServiceError(w, r, "list team members", err)
		return
	}
	out := withCounts(items, toTeamMemberResponse, func(m *namedResponse, n *int) { m.RequirementCount = n })
	response.SuccessList(w, out, len(out), middleware.GetRequestID(r.Context()))
}

// Create handles POST /team-members.
func (h *TeamMemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := h.members.Create(r.Context(), domain.TeamMemberInput{Name: req.Name})
	if err != nil {
		writeServiceError(w, r, "create team member", err)
		return
	}
	response.Success(w, http.StatusCreated, toTeamMemberResponse(m), middleware.GetRequestID(r.Context()))
}

// GetByID handles GET /team-members/{id}.
func (h *TeamMemberHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	m, err := h.members.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get team member", err)
		return
	}
	response.Success(w, http.StatusOK, toTeamMemberResponse(m), middleware.GetRequestID(r.Context()))
}

// Update handles PATCH /team-members/{id}.
func (h *TeamMemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req namePatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := h.members.Update(r.Context(), id, domain.TeamMemberPatch{Name: req.Name})
	if err != nil {
		writeServiceError(w, r, "update team member", err)
		return
	}
	response.Success(w, http.StatusOK, toTeamMemberResponse(m), middleware.GetRequestID(r.Context()))
}

// Delete handles DELETE /team-members/{id}.
func (h *TeamMemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	res, err := h.members.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "delete team member", err)
		return
	}
	writeDeleteResult(w, r, "team member", id, res)
}

// Requirements handles GET /team-members/{id}/requirements.
func (h *TeamMemberHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	views, err := h.requirements.ListByTeamMember(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "list team member requirements", err)
		return
	}
	out := toRequirementResponses(views, h.now())
	response.SuccessList(w, out, len(out), middleware.GetRequestID(r.Context()))
}
