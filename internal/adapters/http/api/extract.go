// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"io"
	"net/http"

	"github.com/candidesk/candidesk/internal/adapters/bus"
	"github.com/candidesk/candidesk/internal/domain/model"
)

// maxImageBytes bounds screenshot uploads.
const maxImageBytes = 10 << 20

// ExtractHandler accepts a screenshot, runs extraction, and queues the
// resulting patch as an autofill push message. A failed extraction is
// reported to subscribers as an advisory and never touches the draft.
type ExtractHandler struct {
	deps      Dependencies
	extractor Extractor
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(deps Dependencies, extractor Extractor) *ExtractHandler {
	return &ExtractHandler{deps: deps, extractor: extractor}
}

// HandlePostExtract handles POST /extract requests. The body is the raw
// image; Content-Type travels through to the extraction service.
func (h *ExtractHandler) HandlePostExtract(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_extract"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if h.extractor == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", NewKind(op, ErrUnavailable))
		return
	}

	image, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes))
	if err != nil || len(image) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	patch, err := h.extractor.Extract(r.Context(), image, r.Header.Get("Content-Type"))
	if err != nil {
		h.deps.Advise(r.Context(), "screenshot extraction failed: "+err.Error(), bus.SeverityWarning)
		writeError(w, http.StatusBadGateway, "extraction_failed", Wrap(op, err))
		return
	}
	if patch.Empty() {
		h.deps.Advise(r.Context(), "screenshot extraction found no fields", bus.SeverityInfo)
		writeJSON(w, http.StatusOK, ackResponse{Status: "empty"})
		return
	}

	msg := model.PushMessage{Kind: model.PushAutofill, Autofill: &patch}
	if ok := h.deps.EnqueuePush(r.Context(), msg); !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}
