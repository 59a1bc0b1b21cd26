package handler

import (
	"net/http"
	"time"

	"github.com/alexanderramin/reqtrack/internal/api/middleware"
	"github.com/alexanderramin/reqtrack/internal/api/response"
	"github.com/alexanderramin/reqtrack/internal/service"
)

// SummaryHandler serves the aggregate views.
type SummaryHandler struct {
	summary service.SummaryService
	now     func() time.Time
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summary service.SummaryService, now func() time.Time) *SummaryHandler {
	return &SummaryHandler{summary: summary, now: now}
}

// Summary handles GET /summary.
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.summary.Summarize(r.Context())
	if err != nil {
		writeServiceError(w, r, "summarize requirements", err)
		return
	}
	response.Success(w, http.StatusOK, toSummaryResponse(s), middleware.GetRequestID(r.Context()))
}

// Dashboard handles GET /dashboard.
func (h *SummaryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.summary.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, "build dashboard", err)
		return
	}
	response.Success(w, http.StatusOK, dashboardResponse{
		Summary: toSummaryResponse(d.Summary),
		Counts: dashboardCounts{
			Clients:     d.ClientCount,
			Categories:  d.CategoryCount,
			TeamMembers: d.MemberCount,
		},
		Recent: toRequirementResponses(d.Recent, h.now()),
	}, middleware.GetRequestID(r.Context()))
}
