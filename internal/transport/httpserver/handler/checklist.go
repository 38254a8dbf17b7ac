package handler

import (
	"net/http"
	"time"

	checklistdomain "checklist-app-go/internal/domain/checklist"
)

type checklistResponse struct {
	Date        string                     `json:"date"`
	Items       []checklistdomain.Task     `json:"items"`
	Checked     checklistdomain.CheckedMap `json:"checked"`
	LastUpdated *time.Time                 `json:"lastUpdated,omitempty"`
}

type saveChecklistRequest struct {
	Date    string                     `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Items   []checklistdomain.Task     `json:"items"`
	Checked checklistdomain.CheckedMap `json:"checked"`
}

type toggleRequest struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ItemID string `json:"item_id" validate:"required"`
	User   string `json:"user"`
	Note   string `json:"note"`
}

type toggleResponse struct {
	Success bool                       `json:"success"`
	Checked checklistdomain.CheckedMap `json:"checked"`
}

type itemsResponse struct {
	Items       []checklistdomain.Task `json:"items"`
	LastUpdated *time.Time             `json:"lastUpdated,omitempty"`
}

type replaceItemsRequest struct {
	Items []checklistdomain.Task `json:"items"`
}

func (h *Handlers) GetChecklist(w http.ResponseWriter, r *http.Request) {
	day, date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.Checklist.Day(r.Context(), date)
	if err != nil {
		writeDomainError(w, h.log, "checklist.get", err)
		return
	}

	if rec != nil {
		response := checklistResponse{
			Date:    rec.Date,
			Items:   rec.Items,
			Checked: rec.Checked,
		}
		if !rec.LastUpdated.IsZero() {
			updated := rec.LastUpdated
			response.LastUpdated = &updated
		}
		writeJSON(w, http.StatusOK, response)
		return
	}

	// Nothing written for this date yet: synthesize the due-filtered view
	// of the master list.
	due, err := h.Summary.DueItems(r.Context(), day)
	if err != nil {
		writeDomainError(w, h.log, "checklist.get", err)
		return
	}
	writeJSON(w, http.StatusOK, checklistResponse{
		Date:    date,
		Items:   due,
		Checked: checklistdomain.CheckedMap{},
	})
}

func (h *Handlers) SaveChecklist(w http.ResponseWriter, r *http.Request) {
	var req saveChecklistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, date, err := parseDateParam(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := checklistdomain.DailyRecord{
		Date:    date,
		Items:   req.Items,
		Checked: req.Checked,
	}
	if err := h.Checklist.SaveDay(r.Context(), rec); err != nil {
		writeDomainError(w, h.log, "checklist.save", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handlers) ToggleCheck(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, date, err := parseDateParam(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	checked, err := h.Checklist.Toggle(r.Context(), checklistdomain.ToggleInput{
		Date:   date,
		TaskID: req.ItemID,
		User:   req.User,
		Note:   req.Note,
	})
	if err != nil {
		writeDomainError(w, h.log, "checklist.toggle", err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Success: true, Checked: checked})
}

func (h *Handlers) GetItems(w http.ResponseWriter, r *http.Request) {
	list, err := h.Checklist.Items(r.Context())
	if err != nil {
		writeDomainError(w, h.log, "checklist.items", err)
		return
	}

	response := itemsResponse{Items: list.Items}
	if !list.LastUpdated.IsZero() {
		updated := list.LastUpdated
		response.LastUpdated = &updated
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	var req replaceItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if _, err := h.Checklist.ReplaceItems(r.Context(), req.Items); err != nil {
		writeDomainError(w, h.log, "checklist.replace_items", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
