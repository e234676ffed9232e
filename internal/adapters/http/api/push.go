// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/candidesk/candidesk/internal/domain/model"
)

// PushHandler ingests push messages from the external notification feed.
type PushHandler struct {
	deps Dependencies
}

// NewPushHandler creates a new push handler.
func NewPushHandler(deps Dependencies) *PushHandler {
	return &PushHandler{deps: deps}
}

type ackResponse struct {
	Status string `json:"status"`
}

// HandlePostPush handles POST /push requests. Accepted messages are
// queued for the reconciliation worker; the caller gets a 202 before the
// message is applied.
func (h *PushHandler) HandlePostPush(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_push"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var msg model.PushMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validatePush(msg); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if ok := h.deps.EnqueuePush(r.Context(), msg); !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}

func validatePush(msg model.PushMessage) error {
	switch msg.Kind {
	case model.PushAutofill:
		if msg.Autofill == nil {
			return errors.New("missing autofill payload")
		}
	case model.PushStatus:
		if msg.Status == nil {
			return errors.New("missing status payload")
		}
		if msg.Status.Subject == "" {
			return errors.New("missing subject")
		}
	default:
		return errors.New("unknown push kind")
	}
	return nil
}
