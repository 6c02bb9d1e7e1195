// Package handlers implements the HTTP handlers of the metadata control
// plane's façade (§6).
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

// Problem is an RFC 7807 "problem details" response body.
type Problem struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

const contentTypeProblemJSON = "application/problem+json"

// WriteProblem writes an RFC 7807 problem response.
func WriteProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", contentTypeProblemJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&Problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func BadRequest(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusBadRequest, "Bad Request", detail)
}

func NotFound(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusNotFound, "Not Found", detail)
}

func MethodNotAllowed(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusMethodNotAllowed, "Method Not Allowed", detail)
}

func Conflict(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusConflict, "Conflict", detail)
}

func InternalServerError(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", detail)
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteJSONOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSONBody decodes a JSON request body, writing a 400 problem response
// and returning false on failure.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// HandleServiceError maps one of the package's sentinel errors (§7) to an
// HTTP problem response. Unrecognized errors are treated as transient store
// failures.
func HandleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrVersioningNotEnabled):
		WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, models.ErrLengthMismatch):
		WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, models.ErrNotFound):
		WriteProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, models.ErrDeleteMarker):
		WriteProblem(w, http.StatusMethodNotAllowed, "Method Not Allowed", err.Error())
	case errors.Is(err, models.ErrConflict):
		WriteProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, models.ErrConfigurationError):
		WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	case errors.Is(err, models.ErrTransientStore):
		WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	default:
		WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
	}
}
