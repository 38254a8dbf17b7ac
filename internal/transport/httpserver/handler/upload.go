package handler

import (
	"io"
	"net/http"
	"strings"

	checklistdomain "checklist-app-go/internal/domain/checklist"

	"github.com/go-chi/chi/v5"
)

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// UploadPhoto handles POST /api/upload/{item_id}: multipart form with a
// "file" part plus optional "date" and "user" fields.
func (h *Handlers) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	h.attachPhoto(w, r, chi.URLParam(r, "item_id"))
}

// AttachPhoto handles POST /api/checklist/photo, the variant that carries
// item_id as a form field instead of a path segment.
func (h *Handlers) AttachPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.upload.MaxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	h.attachPhoto(w, r, r.FormValue("item_id"))
}

func (h *Handlers) attachPhoto(w http.ResponseWriter, r *http.Request, itemID string) {
	if strings.TrimSpace(itemID) == "" {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}
	if err := r.ParseMultipartForm(h.upload.MaxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	_, date, err := parseDateParam(r.FormValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.upload.MaxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}
	if int64(len(data)) > h.upload.MaxBytes {
		writeError(w, http.StatusBadRequest, "file is too large")
		return
	}

	url, err := h.Checklist.AttachPhoto(r.Context(), checklistdomain.PhotoInput{
		Date:        date,
		TaskID:      itemID,
		User:        r.FormValue("user"),
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeDomainError(w, h.log, "checklist.attach_photo", err)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Success: true, URL: url})
}
