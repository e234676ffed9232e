// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/candidesk/candidesk/internal/adapters/bus"
	"github.com/candidesk/candidesk/internal/adapters/mq/queue"
	"github.com/candidesk/candidesk/internal/domain/corpus"
	"github.com/candidesk/candidesk/internal/domain/field"
	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/internal/domain/timeline"
	"github.com/candidesk/candidesk/internal/domain/validate"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Record reads and mutations.
	Records(ctx context.Context) []model.Candidate
	Delete(ctx context.Context, id string) (model.Candidate, error)
	EditRecord(ctx context.Context, id string) error
	CloneRecord(ctx context.Context, id string) error

	// Read projections.
	Timeline(ctx context.Context, q timeline.Query) []timeline.Group
	Corpus(ctx context.Context) corpus.Corpus

	// Draft lifecycle.
	Draft() model.Draft
	DraftErrors() map[string]string
	SetField(ctx context.Context, name, value string) (string, error)
	SwitchTaskType(ctx context.Context, t model.TaskType) error
	SetScreeningDone(ctx context.Context, done bool)
	MarkDeadlineNotMentioned(ctx context.Context, category field.DeadlineCategory)
	Submit(ctx context.Context) (model.Candidate, validate.Result, error)
	ResetDraft()

	// Push ingestion. Returns false on backpressure.
	EnqueuePush(ctx context.Context, m queue.Message) bool

	// Advise publishes an operational notice to subscribers.
	Advise(ctx context.Context, message string, severity bus.Severity)
}

// Extractor turns screenshot bytes into a draft field patch.
type Extractor interface {
	Extract(ctx context.Context, image []byte, contentType string) (model.AutofillPatch, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	recordsHandler  *RecordsHandler
	timelineHandler *TimelineHandler
	corpusHandler   *CorpusHandler
	draftHandler    *DraftHandler
	pushHandler     *PushHandler
	extractHandler  *ExtractHandler
}

// NewServer creates a new API server with all handlers. The extractor may
// be nil when no extraction endpoint is configured; the extract route
// then answers 503.
func NewServer(deps Dependencies, statsProvider StatsProvider, extractor Extractor) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		recordsHandler:  NewRecordsHandler(deps),
		timelineHandler: NewTimelineHandler(deps),
		corpusHandler:   NewCorpusHandler(deps),
		draftHandler:    NewDraftHandler(deps),
		pushHandler:     NewPushHandler(deps),
		extractHandler:  NewExtractHandler(deps, extractor),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleRecords, "records"))
	mux.HandleFunc("/records/", MetricsMiddleware(s.recordsHandler.HandleRecord, "record"))
	mux.HandleFunc("/timeline", MetricsMiddleware(s.timelineHandler.HandleGetTimeline, "timeline"))
	mux.HandleFunc("/corpus", MetricsMiddleware(s.corpusHandler.HandleGetCorpus, "corpus"))
	mux.HandleFunc("/draft", MetricsMiddleware(s.draftHandler.HandleGetDraft, "draft"))
	mux.HandleFunc("/draft/field", MetricsMiddleware(s.draftHandler.HandleSetField, "draft_field"))
	mux.HandleFunc("/draft/tasktype", MetricsMiddleware(s.draftHandler.HandleSwitchTaskType, "draft_tasktype"))
	mux.HandleFunc("/draft/screening", MetricsMiddleware(s.draftHandler.HandleScreening, "draft_screening"))
	mux.HandleFunc("/draft/deadline", MetricsMiddleware(s.draftHandler.HandleDeadline, "draft_deadline"))
	mux.HandleFunc("/draft/submit", MetricsMiddleware(s.draftHandler.HandleSubmit, "draft_submit"))
	mux.HandleFunc("/draft/cancel", MetricsMiddleware(s.draftHandler.HandleCancel, "draft_cancel"))
	mux.HandleFunc("/push", MetricsMiddleware(s.pushHandler.HandlePostPush, "push"))
	mux.HandleFunc("/extract", MetricsMiddleware(s.extractHandler.HandlePostExtract, "extract"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
