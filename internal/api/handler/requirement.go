package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/reqtrack/internal/api/middleware"
	"github.com/alexanderramin/reqtrack/internal/api/response"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/service"
)

type requirementRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Priority     string  `json:"priority"`
	Status       string  `json:"status"`
	DueDate      *string `json:"due_date"`
	ClientID     int64   `json:"client_id"`
	CategoryID   int64   `json:"category_id"`
	TeamMemberID *int64  `json:"team_member_id"`
}

// requirementPatchRequest treats an explicit null on due_date or
// team_member_id as a request to clear it.
type requirementPatchRequest struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Priority     *string          `json:"priority"`
	Status       *string          `json:"status"`
	DueDate      optional[string] `json:"due_date"`
	ClientID     *int64           `json:"client_id"`
	CategoryID   *int64           `json:"category_id"`
	TeamMemberID optional[int64]  `json:"team_member_id"`
}

// RequirementHandler handles the /requirements endpoints.
type RequirementHandler struct {
	requirements service.RequirementService
	now          func() time.Time
}

// NewRequirementHandler creates a new RequirementHandler.
func NewRequirementHandler(requirements service.RequirementService, now func() time.Time) *RequirementHandler {
	return &RequirementHandler{requirements: requirements, now: now}
}

// List handles GET /requirements. The client_id, category_id or
// team_member_id query parameter narrows the list; include=none skips the
// related names.
func (h *RequirementHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	q := r.URL.Query()

	var views []*domain.RequirementView
	var err error
	switch {
	case q.Get("client_id") != "":
		id, perr := strconv.ParseInt(q.Get("client_id"), 10, 64)
		if perr != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_ID", "client_id must be an integer", requestID)
			return
		}
		views, err = h.requirements.ListByClient(r.Context(), id)
	case q.Get("category_id") != "":
		id, perr := strconv.ParseInt(q.Get("category_id"), 10, 64)
		if perr != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_ID", "category_id must be an integer", requestID)
			return
		}
		views, err = h.requirements.ListByCategory(r.Context(), id)
	case q.Get("team_member_id") != "":
		id, perr := strconv.ParseInt(q.Get("team_member_id"), 10, 64)
		if perr != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_ID", "team_member_id must be an integer", requestID)
			return
		}
		views, err = h.requirements.ListByTeamMember(r.Context(), id)
	default:
		include := domain.IncludeRelations
		if q.Get("include") == "none" {
			include = domain.IncludeNone
		}
		views, err = h.requirements.List(r.Context(), include)
	}
	if err != nil {
		writeServiceError(w, r, "list requirements", err)
		return
	}
	out := toRequirementResponses(views, h.now())
	response.SuccessList(w, out, len(out), requestID)
}

// Create handles POST /requirements.
func (h *RequirementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req requirementRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := domain.RequirementInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     priorityOf(req.Priority),
		Status:       statusOf(req.Status),
		ClientID:     req.ClientID,
		CategoryID:   req.CategoryID,
		TeamMemberID: req.TeamMemberID,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		d, err := domain.ParseDate(*req.DueDate)
		if err != nil {
			writeServiceError(w, r, "create requirement", dueDateError(err))
			return
		}
		in.DueDate = &d
	}

	v, err := h.requirements.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, "create requirement", err)
		return
	}
	response.Success(w, http.StatusCreated, toRequirementResponse(v, h.now()), middleware.GetRequestID(r.Context()))
}

// GetByID handles GET /requirements/{id}.
func (h *RequirementHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	v, err := h.requirements.GetByID(r.Context(), id, domain.IncludeRelations)
	if err != nil {
		writeServiceError(w, r, "get requirement", err)
		return
	}
	response.Success(w, http.StatusOK, toRequirementResponse(v, h.now()), middleware.GetRequestID(r.Context()))
}

// Update handles PATCH /requirements/{id}.
func (h *RequirementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req requirementPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p := domain.RequirementPatch{
		Title:           req.Title,
		Description:     req.Description,
		ClientID:        req.ClientID,
		CategoryID:      req.CategoryID,
		TeamMemberID:    req.TeamMemberID.ptr(),
		ClearTeamMember: req.TeamMemberID.Null,
		ClearDueDate:    req.DueDate.Null || (req.DueDate.Set && req.DueDate.Value == ""),
	}
	if req.Priority != nil {
		p.Priority = domain.Ptr(priorityOf(*req.Priority))
	}
	if req.Status != nil {
		p.Status = domain.Ptr(statusOf(*req.Status))
	}
	if s := req.DueDate.ptr(); s != nil && *s != "" {
		d, err := domain.ParseDate(*s)
		if err != nil {
			writeServiceError(w, r, "update requirement", dueDateError(err))
			return
		}
		p.DueDate = &d
	}

	v, err := h.requirements.Update(r.Context(), id, p)
	if err != nil {
		writeServiceError(w, r, "update requirement", err)
		return
	}
	response.Success(w, http.StatusOK, toRequirementResponse(v, h.now()), middleware.GetRequestID(r.Context()))
}

// Delete handles DELETE /requirements/{id}.
func (h *RequirementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	res, err := h.requirements.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "delete requirement", err)
		return
	}
	writeDeleteResult(w, r, "requirement", id, res)
}

// priorityOf normalizes letter case; unknown values pass through so
// validation reports them.
func priorityOf(s string) domain.Priority {
	if s == "" {
		return ""
	}
	if p, err := domain.ParsePriority(s); err == nil {
		return p
	}
	return domain.Priority(s)
}

func statusOf(s string) domain.Status {
	if s == "" {
		return ""
	}
	if st, err := domain.ParseStatus(s); err == nil {
		return st
	}
	return domain.Status(s)
}

func dueDateError(err error) error {
	return &domain.ValidationError{Fields: []domain.FieldError{{Field: "due_date", Message: err.Error()}}}
}
