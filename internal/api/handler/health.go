package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/reqtrack/internal/api/middleware"
	"github.com/alexanderramin/reqtrack/internal/api/response"
)

// DBPinger is satisfied by *sql.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      DBPinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type healthData struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// ServeHTTP reports degraded, still with 200, when the database is unreachable.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := healthData{Status: "healthy", Version: h.version, Database: "connected"}
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			slog.Warn("health check: database unreachable", "error", err)
			data.Status = "degraded"
			data.Database = "unreachable"
		}
	}
	response.Success(w, http.StatusOK, data, middleware.GetRequestID(r.Context()))
}
