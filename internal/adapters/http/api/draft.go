// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/candidesk/candidesk/internal/app"
	"github.com/candidesk/candidesk/internal/domain/field"
	"github.com/candidesk/candidesk/internal/domain/model"
)

// DraftHandler handles draft lifecycle requests.
type DraftHandler struct {
	deps Dependencies
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(deps Dependencies) *DraftHandler {
	return &DraftHandler{deps: deps}
}

// draftResponse is the read shape shared by all draft endpoints.
type draftResponse struct {
	Draft  model.Draft       `json:"draft"`
	Errors map[string]string `json:"errors"`
}

func (h *DraftHandler) currentDraft() draftResponse {
	return draftResponse{Draft: h.deps.Draft(), Errors: h.deps.DraftErrors()}
}

// HandleGetDraft handles GET /draft requests.
func (h *DraftHandler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.currentDraft())
}

type setFieldRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HandleSetField handles POST /draft/field requests. The response carries
// the draft after derivation plus the field's validation message, empty
// when the value passed.
func (h *DraftHandler) HandleSetField(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_field"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req setFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	msg, err := h.deps.SetField(r.Context(), req.Name, req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, struct {
		draftResponse
		FieldError string `json:"fieldError"`
	}{h.currentDraft(), msg})
}

type switchTaskTypeRequest struct {
	TaskType model.TaskType `json:"taskType"`
}

// HandleSwitchTaskType handles POST /draft/tasktype requests.
func (h *DraftHandler) HandleSwitchTaskType(w http.ResponseWriter, r *http.Request) {
	const op = "api.switch_tasktype"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req switchTaskTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.SwitchTaskType(r.Context(), req.TaskType); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.currentDraft())
}

type screeningRequest struct {
	Done bool `json:"done"`
}

// HandleScreening handles POST /draft/screening requests.
func (h *DraftHandler) HandleScreening(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_screening"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req screeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	h.deps.SetScreeningDone(r.Context(), req.Done)
	writeJSON(w, http.StatusOK, h.currentDraft())
}

type deadlineRequest struct {
	Category field.DeadlineCategory `json:"category"`
}

// HandleDeadline handles POST /draft/deadline requests, deriving the
// assessment deadline when the client did not state one.
func (h *DraftHandler) HandleDeadline(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_deadline"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req deadlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	switch req.Category {
	case field.DeadlineScreeningDone, field.DeadlineNonTechnical, field.DeadlineTechnical, field.DeadlineUnknown:
	default:
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	h.deps.MarkDeadlineNotMentioned(r.Context(), req.Category)
	writeJSON(w, http.StatusOK, h.currentDraft())
}

// HandleSubmit handles POST /draft/submit requests. A draft that fails
// validation answers 422 with the per-field messages and leaves the
// draft untouched.
func (h *DraftHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	saved, result, err := h.deps.Submit(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, struct {
				Code   string            `json:"code"`
				Errors map[string]string `json:"errors"`
			}{"validation_failed", result.FieldErrors})
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// HandleCancel handles POST /draft/cancel requests.
func (h *DraftHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.ResetDraft()
	writeJSON(w, http.StatusOK, h.currentDraft())
}
