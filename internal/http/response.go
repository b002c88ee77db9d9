package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"expensetracker/internal/log"
	"expensetracker/internal/persistence"
	"expensetracker/internal/store"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: requestIDFrom(r.Context())})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrValidation), errors.Is(err, errInvalidField):
		return http.StatusUnprocessableEntity
	case errors.Is(err, persistence.ErrInvalidData), errors.Is(err, errMalformedBody):
		return http.StatusBadRequest
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// writeErr logs server-side failures and answers with the mapped status.
// Internal error text is not sent to the client.
func writeErr(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	logger := log.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.LogError(r.Context(), logger, "Request failed", err, op, nil)
		writeError(w, r, status, http.StatusText(status))
		return
	}
	logger.DebugContext(r.Context(), "Request rejected", log.FieldOperation, op, log.FieldError, err, "status", status)
	writeError(w, r, status, err.Error())
}
