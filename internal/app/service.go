// Package service provides the core business service that implements
// the dependencies required by the HTTP API: the record store, the draft
// under edit, the push-channel reconciler and the reminder scheduler.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/candidesk/candidesk/internal/adapters/bus"
	"github.com/candidesk/candidesk/internal/adapters/mq/queue"
	"github.com/candidesk/candidesk/internal/adapters/mq/worker"
	"github.com/candidesk/candidesk/internal/adapters/repository"
	"github.com/candidesk/candidesk/internal/domain/corpus"
	"github.com/candidesk/candidesk/internal/domain/field"
	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/internal/domain/notify"
	"github.com/candidesk/candidesk/internal/domain/suggest"
	"github.com/candidesk/candidesk/internal/domain/timeline"
	"github.com/candidesk/candidesk/pkg/logger"
)

// Service owns all mutable engine state. One mutex serializes the two
// writers the system has: user-driven calls arriving over the API and the
// single reconciliation worker. That is the Go rendition of the
// original's single event loop.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	pushQueue queue.Queue
	worker    *worker.Worker
	bus       *bus.Bus
	reminders notify.Tracker
	suggest   *suggest.Dispatcher

	// Draft state
	draft       model.Draft
	draftErrors map[string]string
	editingID   string

	// Derived state
	corpus corpus.Corpus

	// Configuration
	snapshotPath     string
	queueSize        int
	busCapacity      int
	openHour         int
	closeHour        int
	reminderInterval time.Duration
	suggestQuiet     time.Duration
	now              func() time.Time

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithSnapshotPath sets the durable snapshot location. Empty disables
// persistence (memory-only store).
func WithSnapshotPath(path string) Option {
	return func(s *Service) {
		s.snapshotPath = path
	}
}

// WithStore injects a pre-built store, bypassing snapshot wiring.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithQueueSize bounds the push-channel queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithBusCapacity sets the per-subscriber notification buffer.
func WithBusCapacity(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.busCapacity = size
		}
	}
}

// WithBusinessHours sets the advisory scheduling window.
func WithBusinessHours(open, close int) Option {
	return func(s *Service) {
		if open >= 0 && close > open {
			s.openHour = open
			s.closeHour = close
		}
	}
}

// WithReminderInterval sets how often upcoming interviews are checked.
func WithReminderInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.reminderInterval = interval
		}
	}
}

// WithSuggestDebounce sets the quiet period before an autocomplete
// lookup fires.
func WithSuggestDebounce(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.suggestQuiet = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		draft:            model.NewDraft(),
		draftErrors:      map[string]string{},
		queueSize:        1024,
		busCapacity:      64,
		openHour:         field.BusinessOpenHour,
		closeHour:        field.BusinessCloseHour,
		reminderInterval: time.Minute,
		suggestQuiet:     suggest.DefaultQuietPeriod,
		now:              time.Now,
		stopCh:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes components and launches the reconciliation worker and
// the reminder scheduler.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting candidate record engine...")

	if s.store == nil {
		storeOpts := []repository.Option{
			repository.WithLogger(s.logger.Named("store")),
			repository.WithClock(s.now),
		}
		if s.snapshotPath != "" {
			storeOpts = append(storeOpts, repository.WithSnapshot(repository.NewFileSnapshot(s.snapshotPath)))
		}
		s.store = repository.NewMemStore(ctx, storeOpts...)
	}
	s.pushQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.bus = bus.New(
		bus.WithSubscriberCapacity(s.busCapacity),
		bus.WithLogger(s.logger.Named("bus")),
	)
	s.reminders = notify.NewTracker()
	s.corpus = corpus.Build(s.store.List(ctx))
	s.suggest = suggest.New(s.lookupSuggestions, s.applySuggestions,
		suggest.WithQuietPeriod(s.suggestQuiet),
		suggest.WithLogger(s.logger.Named("suggest")),
	)

	s.worker = worker.New(s.pushQueue, s, worker.WithLogger(s.logger.Named("reconcile")))
	go s.worker.Run(ctx)
	go s.runReminders(ctx)

	s.started = true
	s.logger.Info(ctx, "candidate record engine started",
		logger.Int("records", s.store.Count(ctx)),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop gracefully shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping candidate record engine...")

	if s.pushQueue != nil {
		_ = s.pushQueue.Close()
	}
	if s.worker != nil {
		_ = s.worker.Shutdown(ctx)
	}
	if s.suggest != nil {
		s.suggest.Close()
	}
	if s.bus != nil {
		s.bus.Close()
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "candidate record engine stopped")
}

// Subscribe attaches a listener to the outbound notification bus.
func (s *Service) Subscribe(kinds ...bus.Kind) bus.Subscription {
	return s.bus.Subscribe(kinds...)
}

// Records returns all persisted records in store order.
func (s *Service) Records(ctx context.Context) []model.Candidate {
	s.mu.RLock()
	st := s.store
	s.mu.RUnlock()
	if st == nil {
		return nil
	}
	return st.List(ctx)
}

// Timeline projects the store through the given view query.
func (s *Service) Timeline(ctx context.Context, q timeline.Query) []timeline.Group {
	return timeline.Project(s.Records(ctx), q)
}

// Corpus returns the current autocomplete suggestion sets.
func (s *Service) Corpus(ctx context.Context) corpus.Corpus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus
}

// EnqueuePush hands an external push message to the reconciliation
// worker. Returns false on backpressure; push messages are advisory, so
// refusal is not an error.
func (s *Service) EnqueuePush(ctx context.Context, m queue.Message) bool {
	s.mu.RLock()
	q := s.pushQueue
	s.mu.RUnlock()
	if q == nil {
		return false
	}
	return q.Enqueue(ctx, m)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":   s.started,
		"queueSize": s.queueSize,
		"editing":   s.editingID != "",
		"draftType": string(s.draft.TaskType),
	}
	if s.started {
		stats["records"] = s.store.Count(ctx)
		stats["queueLength"] = s.pushQueue.Len(ctx)
		stats["remindersTracked"] = s.reminders.Size()
	}
	return stats
}

// afterMutation runs the post-mutation chain shared by submit, delete and
// status reconciliation: the store has already persisted, so rebuild the
// autocomplete corpus and signal the timeline to recompute. Callers hold
// s.mu.
func (s *Service) afterMutation(ctx context.Context, recordID string) {
	s.corpus = corpus.Build(s.store.List(ctx))
	s.bus.Publish(ctx, bus.Notification{
		Kind:     bus.RecordListChanged,
		RecordID: recordID,
	})
}

// lookupSuggestions resolves an autocomplete query against the derived
// corpus. Runs on the dispatcher's timer goroutine.
func (s *Service) lookupSuggestions(_ context.Context, fieldName, query string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus.Suggest(fieldName, query), nil
}

// applySuggestions publishes an accepted lookup result to subscribers.
func (s *Service) applySuggestions(fieldName string, suggestions []string) {
	s.bus.Publish(context.Background(), bus.Notification{
		Kind:   bus.Suggestion,
		Fields: []string{fieldName},
		Values: suggestions,
	})
}

// Advise publishes a free-form advisory to subscribers. Used for
// operational notices that do not belong to any one record, such as a
// failed screenshot extraction.
func (s *Service) Advise(ctx context.Context, message string, severity bus.Severity) {
	s.bus.Publish(ctx, bus.Notification{
		Kind:     bus.Advisory,
		Message:  message,
		Severity: severity,
	})
}
