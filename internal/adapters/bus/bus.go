// Package bus is the process-local notification channel between the
// engine and the presentation layer. It replaces global window-level
// pub/sub with an explicit, typed bus owned by the application root and
// injected where needed; nothing outside the process ever sees it.
package bus

import (
	"context"
	"sync"
	"time"

	"github.com/candidesk/candidesk/pkg/logger"
	"github.com/candidesk/candidesk/pkg/metrics"
)

// Kind names an outbound notification topic.
type Kind string

const (
	// RecordListChanged fires after every store mutation, signalling the
	// timeline to recompute.
	RecordListChanged Kind = "record_list_changed"
	// DraftPatched fires when external autofill writes into the draft.
	DraftPatched Kind = "draft_patched"
	// ValidationWarning carries non-blocking advisories such as the
	// business-hours check.
	ValidationWarning Kind = "validation_warning"
	// Reminder carries upcoming-interview alerts.
	Reminder Kind = "reminder"
	// Advisory carries transient external-service failures.
	Advisory Kind = "advisory"
	// Suggestion carries debounced autocomplete results for one field.
	Suggestion Kind = "suggestion"
)

// Severity grades a notification for display purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is one bus message.
type Notification struct {
	Kind     Kind      `json:"kind"`
	Message  string    `json:"message,omitempty"`
	Severity Severity  `json:"severity,omitempty"`
	Fields   []string  `json:"fields,omitempty"`
	Values   []string  `json:"values,omitempty"`
	RecordID string    `json:"recordId,omitempty"`
	At       time.Time `json:"at"`
}

// Subscription is an active listener. Close it when done; the channel is
// closed by either side.
type Subscription struct {
	C      <-chan Notification
	cancel func()
}

// Close terminates the subscription.
func (s Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

const defaultSubscriberCapacity = 64

// Option applies a configuration option to the Bus.
type Option func(*Bus)

// WithSubscriberCapacity overrides the buffered channel size per
// subscriber.
func WithSubscriberCapacity(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.channelSize = n
		}
	}
}

// WithLogger sets a custom logger for drop diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(b *Bus) {
		if log != nil {
			b.logger = log
		}
	}
}

type subscriber struct {
	kinds map[Kind]struct{} // empty means all kinds
	ch    chan Notification
}

func (s *subscriber) wants(k Kind) bool {
	if len(s.kinds) == 0 {
		return true
	}
	_, ok := s.kinds[k]
	return ok
}

// Bus fans notifications out to subscribers with bounded buffering.
// Publishing never blocks: a full subscriber drops the message.
type Bus struct {
	mu          sync.RWMutex
	subs        map[*subscriber]struct{}
	channelSize int
	closed      bool
	logger      logger.Logger
}

// New constructs a bus with default capacity.
func New(opts ...Option) *Bus {
	b := &Bus{
		subs:        make(map[*subscriber]struct{}),
		channelSize: defaultSubscriberCapacity,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a listener for the given kinds; no kinds means
// everything.
func (b *Bus) Subscribe(kinds ...Kind) Subscription {
	sub := &subscriber{
		kinds: make(map[Kind]struct{}, len(kinds)),
		ch:    make(chan Notification, b.channelSize),
	}
	for _, k := range kinds {
		sub.kinds[k] = struct{}{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(sub.ch)
		return Subscription{C: sub.ch}
	}
	b.subs[sub] = struct{}{}

	return Subscription{
		C: sub.ch,
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[sub]; ok {
				delete(b.subs, sub)
				close(sub.ch)
			}
		},
	}
}

// Publish delivers n to every interested subscriber. A zero At is stamped
// with the current time.
func (b *Bus) Publish(ctx context.Context, n Notification) {
	if n.At.IsZero() {
		n.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	for sub := range b.subs {
		if !sub.wants(n.Kind) {
			continue
		}
		select {
		case sub.ch <- n:
			metrics.RecordBusPublished(string(n.Kind))
		default:
			metrics.RecordBusDropped(string(n.Kind))
			if b.logger != nil {
				b.logger.Warn(ctx, "dropping notification for slow subscriber",
					logger.String("kind", string(n.Kind)),
				)
			}
		}
	}
}

// Close shuts the bus down and closes every subscriber channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub.ch)
	}
	b.subs = map[*subscriber]struct{}{}
}
