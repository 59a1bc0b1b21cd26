package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/reqtrack/internal/api/handler"
	"github.com/alexanderramin/reqtrack/internal/api/middleware"
	"github.com/alexanderramin/reqtrack/internal/service"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger     handler.DBPinger
	Version      string
	Clients      service.ClientService
	Categories   service.CategoryService
	TeamMembers  service.TeamMemberService
	Requirements service.RequirementService
	Summary      service.SummaryService
	// Gatherer backs /metrics; the route is omitted when nil.
	Gatherer prometheus.Gatherer
	// Now drives the overdue flag in responses. Defaults to time.Now.
	Now func() time.Time
	// DisableRequestLog drops chi's request logger, for tests.
	DisableRequestLog bool
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	if !deps.DisableRequestLog {
		r.Use(chimiddleware.Logger)
	}

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	clients := handler.NewClientHandler(deps.Clients, deps.Requirements, now)
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", clients.List)
		r.Post("/", clients.Create)
		r.Get("/{id}", clients.GetByID)
		r.Patch("/{id}", clients.Update)
		r.Delete("/{id}", clients.Delete)
		r.Get("/{id}/requirements", clients.Requirements)
	})

	categories := handler.NewCategoryHandler(deps.Categories, deps.Requirements, now)
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categories.List)
		r.Post("/", categories.Create)
		r.Get("/{id}", categories.GetByID)
		r.Patch("/{id}", categories.Update)
		r.Delete("/{id}", categories.Delete)
		r.Get("/{id}/requirements", categories.Requirements)
	})

	members := handler.NewTeamMemberHandler(deps.TeamMembers, deps.Requirements, now)
	r.Route("/team-members", func(r chi.Router) {
		r.Get("/", members.List)
		r.Post("/", members.Create)
		r.Get("/{id}", members.GetByID)
		r.Patch("/{id}", members.Update)
		r.Delete("/{id}", members.Delete)
		r.Get("/{id}/requirements", members.Requirements)
	})

	requirements := handler.NewRequirementHandler(deps.Requirements, now)
	r.Route("/requirements", func(r chi.Router) {
		r.Get("/", requirements.List)
		r.Post("/", requirements.Create)
		r.Get("/{id}", requirements.GetByID)
		r.Patch("/{id}", requirements.Update)
		r.Delete("/{id}", requirements.Delete)
	})

	summary := handler.NewSummaryHandler(deps.Summary, now)
	r.Get("/summary", summary.Summary)
	r.Get("/dashboard", summary.Dashboard)

	return r
}
