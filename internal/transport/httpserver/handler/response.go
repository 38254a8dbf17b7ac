package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	checklistdomain "checklist-app-go/internal/domain/checklist"
	"checklist-app-go/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSON is deliberately lenient about unknown fields: day records are
// last-write-wins documents and clients attach extra presentation fields.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeDomainError maps service errors onto the API taxonomy: validation
// failures are 400, a missing store configuration is a 500 that says so,
// everything else is an opaque 500.
func writeDomainError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, checklistdomain.ErrInvalidInput):
		log.BusinessError(op+": rejected", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, checklistdomain.ErrNotConfigured):
		log.InternalError(op+": store not configured", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		log.InternalError(op+": failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
