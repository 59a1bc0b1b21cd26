package handler

import (
	"net/http"
	"time"

	"github.com/alexanderramin/reqtrack/internal/api/middleware"
	"github.com/alexanderramin/reqtrack/internal/api/response"
	"github.com/alexanderramin/reqtrack/internal/domain"
	"github.com/alexanderramin/reqtrack/internal/service"
)

type clientRequest struct {
	AgencyName    string `json:"agency_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Website       string `json:"website"`
}

type clientPatchRequest struct {
	AgencyName    *string `json:"agency_name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Website       *string `json:"website"`
}

// ClientHandler handles the /clients endpoints.
type ClientHandler struct {
	clients      service.ClientService
	requirements service.RequirementService
	now          func() time.Time
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clients service.ClientService, requirements service.RequirementService, now func() time.Time) *ClientHandler {
	return &ClientHandler{clients: clients, requirements: requirements, now: now}
}

// List handles GET /clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.clients.ListWithRequirementCounts(r.Context())
	if err != nil {
		writeServiceError(w, r, "list clients", err)
		return
	}
	out := withCounts(items, toClientResponse, func(c *clientResponse, n *int) { c.RequirementCount = n })
	response.SuccessList(w, out, len(out), middleware.GetRequestID(r.Context()))
}

// Create handles POST /clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.clients.Create(r.Context(), domain.ClientInput(req))
	if err != nil {
		writeServiceError(w, r, "create client", err)
		return
	}
	response.Success(w, http.StatusCreated, toClientResponse(c), middleware.GetRequestID(r.Context()))
}

// GetByID handles GET /clients/{id}.
func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	c, err := h.clients.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get client", err)
		return
	}
	response.Success(w, http.StatusOK, toClientResponse(c), middleware.GetRequestID(r.Context()))
}

// Update handles PATCH /clients/{id}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req clientPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.clients.Update(r.Context(), id, domain.ClientPatch(req))
	if err != nil {
		writeServiceError(w, r, "update client", err)
		return
	}
	response.Success(w, http.StatusOK, toClientResponse(c), middleware.GetRequestID(r.Context()))
}

// Delete handles DELETE /clients/{id}.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	res, err := h.clients.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "delete client", err)
		return
	}
	writeDeleteResult(w, r, "client", id, res)
}

// Requirements handles GET /clients/{id}/requirements.
func (h *ClientHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	views, err := h.requirements.ListByClient(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "list client requirements", err)
		return
	}
	out := toRequirementResponses(views, h.now())
	response.SuccessList(w, out, len(out), middleware.GetRequestID(r.Context()))
}
