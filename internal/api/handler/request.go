package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/reqtrack/internal/api/middleware"
	"github.com/alexanderramin/reqtrack/internal/api/response"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. Unknown fields are rejected.
// On failure it writes INVALID_JSON and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON: "+err.Error(),
			middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

// parseID reads the {id} path parameter. On failure it writes INVALID_ID
// and returns false.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer",
			middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}

// optional distinguishes an absent JSON key from an explicit null.
// Set is true whenever the key was present; Null when its value was null.
type optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// ptr returns a pointer to the value when the key was set to non-null.
func (o optional[T]) ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
