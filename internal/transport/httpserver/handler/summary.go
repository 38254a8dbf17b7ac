package handler

import (
	"net/http"

	summarydomain "checklist-app-go/internal/domain/summary"
)

type lastCompletionsResponse struct {
	LastCompletions summarydomain.CompletionIndex `json:"lastCompletions"`
}

func (h *Handlers) LastCompletions(w http.ResponseWriter, r *http.Request) {
	idx, err := h.Summary.LastCompletions(r.Context())
	if err != nil {
		writeDomainError(w, h.log, "summary.last_completions", err)
		return
	}
	writeJSON(w, http.StatusOK, lastCompletionsResponse{LastCompletions: idx})
}

func (h *Handlers) CalendarSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, err := parseDateRequired("start_date", query.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseDateRequired("end_date", query.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Summary.Calendar(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, h.log, "summary.calendar", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
