// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/candidesk/candidesk/internal/adapters/repository"
)

// RecordsHandler handles record collection and per-record requests.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleRecords handles GET /records requests.
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Records(r.Context()))
}

// HandleRecord handles per-record requests:
//
//	DELETE /records/{id}       remove a record
//	POST   /records/{id}/edit  load a record into the draft for editing
//	POST   /records/{id}/clone pre-fill the draft from a record
func (h *RecordsHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	const op = "api.record"

	rest := strings.TrimPrefix(r.URL.Path, "/records/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch {
	case r.Method == http.MethodDelete && action == "":
		removed, err := h.deps.Delete(r.Context(), id)
		if err != nil {
			h.writeStoreError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, removed)
	case r.Method == http.MethodPost && action == "edit":
		if err := h.deps.EditRecord(r.Context(), id); err != nil {
			h.writeStoreError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, h.deps.Draft())
	case r.Method == http.MethodPost && action == "clone":
		if err := h.deps.CloneRecord(r.Context(), id); err != nil {
			h.writeStoreError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, h.deps.Draft())
	default:
		http.NotFound(w, r)
	}
}

func (h *RecordsHandler) writeStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
