package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/reqtrack/internal/api/middleware"
	"github.com/alexanderramin/reqtrack/internal/api/response"
	"github.com/alexanderramin/reqtrack/internal/domain"
)

// writeServiceError maps a service error to its HTTP status and code.
// Unclassified errors are logged and reported as INTERNAL_ERROR.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	requestID := middleware.GetRequestID(r.Context())

	var ve *domain.ValidationError
	var re *domain.ReferenceError
	var ce *domain.ConstraintError
	switch {
	case errors.As(err, &ve):
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", ve.Fields, requestID)
	case errors.As(err, &re):
		response.ErrWithDetails(w, http.StatusUnprocessableEntity, "REFERENCE_NOT_FOUND", re.Error(),
			map[string]string{"field": re.Field}, requestID)
	case errors.Is(err, domain.ErrNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", err.Error(), requestID)
	case errors.As(err, &ce):
		response.ErrWithDetails(w, http.StatusConflict, "CONSTRAINT_VIOLATION", "The change conflicts with stored data",
			map[string]string{"constraint": ce.Constraint}, requestID)
	default:
		slog.Error("request failed", "op", op, "error", err, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+op, requestID)
	}
}

// writeDeleteResult answers a delete: 204 on success, 404 for an unknown
// id, 409 IN_USE with the blocking reference count otherwise.
func writeDeleteResult(w http.ResponseWriter, r *http.Request, entity string, id int64, res domain.DeleteResult) {
	requestID := middleware.GetRequestID(r.Context())
	switch res.Outcome {
	case domain.DeleteOK:
		response.NoContent(w)
	case domain.DeleteNotFound:
		response.Err(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s %d not found", entity, id), requestID)
	case domain.DeleteBlocked:
		msg := fmt.Sprintf("%s %d is referenced by requirements", entity, id)
		response.ErrWithDetails(w, http.StatusConflict, "IN_USE", msg, map[string]int{"references": res.References}, requestID)
	default:
		slog.Error("unexpected delete outcome", "entity", entity, "id", id, "outcome", res.Outcome.String())
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete "+entity, requestID)
	}
}
