// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/internal/domain/timeline"
)

// TimelineHandler handles timeline projection requests.
type TimelineHandler struct {
	deps Dependencies
}

// NewTimelineHandler creates a new timeline handler.
func NewTimelineHandler(deps Dependencies) *TimelineHandler {
	return &TimelineHandler{deps: deps}
}

// HandleGetTimeline handles GET /timeline?search=&types=&order= requests.
// types is a comma-separated task-type list; order is asc or desc and
// defaults to asc.
func (h *TimelineHandler) HandleGetTimeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_timeline"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := timeline.Query{
		Search:    r.URL.Query().Get("search"),
		SortOrder: timeline.Ascending,
	}

	switch order := r.URL.Query().Get("order"); order {
	case "", string(timeline.Ascending):
	case string(timeline.Descending):
		q.SortOrder = timeline.Descending
	default:
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if raw := r.URL.Query().Get("types"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			t := model.TaskType(strings.TrimSpace(part))
			if !t.Valid() {
				writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
				return
			}
			q.Types = append(q.Types, t)
		}
	}

	writeJSON(w, http.StatusOK, h.deps.Timeline(r.Context(), q))
}
