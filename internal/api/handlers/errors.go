package handlers

import (
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"errors"
	"log"
	"net/http"
	"strings"
)

// writeServiceError maps service errors to status codes. Storage failures are
// logged in full and reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, detail(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, r, http.StatusForbidden, detail(err, domain.ErrForbidden))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, r, http.StatusConflict, detail(err, domain.ErrConflict))
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// detail returns the text wrapped after sentinel, e.g. "missing customer fields: cust_zip".
func detail(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return sentinel.Error()
}
