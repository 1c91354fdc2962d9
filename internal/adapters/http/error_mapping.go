package httpadapter

import (
	"net/http"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrChemicalNotFound),
		domain.IsKind(err, domain.ErrClassificationNotFound),
		domain.IsKind(err, domain.ErrSDSNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrSourceUnavailable):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Hint    string `json:"hint,omitempty"`
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	resp := errorResponse{Error: err.Error()}
	switch status {
	case http.StatusInternalServerError:
		rt.logger.Error("request_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		resp.Error = "internal error"
	case http.StatusUnprocessableEntity:
		resp.Hint = "upload a readable SDS PDF and retry"
	case http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", "1")
	}
	writeJSON(w, status, resp)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
