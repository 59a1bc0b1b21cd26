package handler

import (
	"net/http"
	"time"

	"github.com/alexanderramin/reqtrack/internal/api/middleware"
	"github.com/alexanderramin/reqtrack/internal/api/response"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/service"
)

type nameRequest struct {
	Name string `json:"name"`
}

type namePatchRequest struct {
	Name *string `json:"name"`
}

// CategoryHandler handles the /categories endpoints.
type CategoryHandler struct {
	categories   service.CategoryService
	requirements service.RequirementService
	now          func() time.Time
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories service.CategoryService, requirements service.RequirementService, now func() time.Time) *CategoryHandler {
	return &CategoryHandler{categories: categories, requirements: requirements, now: now}
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.ListWithRequirementCounts(r.Context())
	if err != nil {
		writeServiceError(w, r, "list categories", err)
		return
	}
	out := withCounts(items, toCategoryResponse, func(c *namedResponse, n *int) { c.RequirementCount = n })
	response.SuccessList(w, out, len(out), middleware.GetRequestID(r.Context()))
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.categories.Create(r.Context(), domain.CategoryInput{Name: req.Name})
	if err != nil {
		writeServiceError(w, r, "create category", err)
		return
	}
	response.Success(w, http.StatusCreated, toCategoryResponse(c), middleware.GetRequestID(r.Context()))
}

// GetByID handles GET /categories/{id}.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	c, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get category", err)
		return
	}
	response.Success(w, http.StatusOK, toCategoryResponse(c), middleware.GetRequestID(r.Context()))
}

// Update handles PATCH /categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req namePatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.categories.Update(r.Context(), id, domain.CategoryPatch{Name: req.Name})
	if err != nil {
		writeServiceError(w, r, "update category", err)
		return
	}
	response.Success(w, http.StatusOK, toCategoryResponse(c), middleware.GetRequestID(r.Context()))
}

// Delete handles DELETE /categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	res, err := h.categories.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "delete category", err)
		return
	}
	writeDeleteResult(w, r, "category", id, res)
}

// Requirements handles GET /categories/{id}/requirements.
func (h *CategoryHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	views, err := h.requirements.ListByCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "list category requirements", err)
		return
	}
	out := toRequirementResponses(views, h.now())
	response.SuccessList(w, out, len(out), middleware.GetRequestID(r.Context()))
}
