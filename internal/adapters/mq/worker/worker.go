// Package worker drains the push-channel queue and applies each message
// through the reconciliation reducer. Exactly one worker runs: the push
// handler must stay serialized with respect to itself so status updates
// and autofill patches land in arrival order.
package worker

import (
	"context"
	"time"

	"github.com/candidesk/candidesk/internal/adapters/mq/queue"
	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/pkg/logger"
	"github.com/candidesk/candidesk/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// Reducer applies externally pushed data to local state. Autofill patches
// touch only the draft; status updates touch only the store.
type Reducer interface {
	ApplyAutofill(ctx context.Context, p model.AutofillPatch) error
	ApplyStatus(ctx context.Context, u model.StatusUpdate) error
}

// Source is how the worker receives messages.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Message
}

// Worker is the reconciliation loop.
type Worker struct {
	source  Source
	reducer Reducer
	logger  logger.Logger

	shutdown chan struct{}
	done     chan struct{}
}

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithLogger sets a custom logger for the worker.
func WithLogger(log logger.Logger) Option {
	return func(w *Worker) {
		if log != nil {
			w.logger = log
		}
	}
}

// New creates a worker.
func New(source Source, reducer Reducer, opts ...Option) *Worker {
	w := &Worker{
		source:   source,
		reducer:  reducer,
		logger:   logger.Get().Named("reconcile"),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run consumes messages until the context is canceled, the queue closes,
// or Shutdown is called. It is meant to run on its own goroutine.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	messages := w.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case m, ok := <-messages:
			if !ok {
				return
			}
			w.process(ctx, m)
		}
	}
}

// process dispatches one message. Malformed messages are silent no-ops:
// the push channel must never corrupt local state.
func (w *Worker) process(ctx context.Context, m queue.Message) {
	start := time.Now()
	switch m.Kind {
	case model.PushAutofill:
		if m.Autofill == nil || m.Autofill.Empty() {
			metrics.RecordPushDropped("empty_autofill")
			return
		}
		if err := w.reducer.ApplyAutofill(ctx, *m.Autofill); err != nil {
			w.logger.Warn(ctx, "autofill patch not applied", logger.Error(err))
		}
	case model.PushStatus:
		if m.Status == nil || m.Status.Subject == "" {
			metrics.RecordPushDropped("empty_status")
			return
		}
		if err := w.reducer.ApplyStatus(ctx, *m.Status); err != nil {
			w.logger.Warn(ctx, "status update not applied", logger.Error(err))
		}
	default:
		metrics.RecordPushDropped("unknown_kind")
		return
	}
	metrics.RecordPushProcessed(string(m.Kind), float64(time.Since(start).Milliseconds()))
}

// Shutdown stops the worker and waits for the in-flight message to
// finish, bounded by a timeout.
func (w *Worker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
		// Already shutting down.
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-time.After(shutdownTimeout):
		return ErrShutdownTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
