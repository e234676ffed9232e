// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// CorpusHandler handles autocomplete corpus requests.
type CorpusHandler struct {
	deps Dependencies
}

// NewCorpusHandler creates a new corpus handler.
func NewCorpusHandler(deps Dependencies) *CorpusHandler {
	return &CorpusHandler{deps: deps}
}

// HandleGetCorpus handles GET /corpus requests.
func (h *CorpusHandler) HandleGetCorpus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Corpus(r.Context()))
}
