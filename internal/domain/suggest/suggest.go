// Package suggest dispatches debounced search-as-you-type lookups against
// an external suggestion service. Each input field gets a quiet period
// before a request is issued, and every issued request carries a monotonic
// sequence number: a response is applied only while its sequence is still
// the latest issued for that field, so a slow response can never clobber
// the result of a newer query.
package suggest

import (
	"context"
	"sync"
	"time"

	"github.com/candidesk/candidesk/pkg/logger"
)

// DefaultQuietPeriod bounds request volume to one in-flight lookup per
// field per quiet window.
const DefaultQuietPeriod = 150 * time.Millisecond

// Lookup queries the external suggestion service for one field.
type Lookup func(ctx context.Context, field, query string) ([]string, error)

// Apply consumes an accepted (non-superseded) response.
type Apply func(field string, suggestions []string)

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithQuietPeriod overrides the debounce window.
func WithQuietPeriod(d time.Duration) Option {
	return func(s *Dispatcher) {
		if d > 0 {
			s.quiet = d
		}
	}
}

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(log logger.Logger) Option {
	return func(s *Dispatcher) {
		if log != nil {
			s.logger = log
		}
	}
}

// Dispatcher owns the per-field timers and sequence counters.
type Dispatcher struct {
	mu     sync.Mutex
	quiet  time.Duration
	lookup Lookup
	apply  Apply
	seq    map[string]uint64
	timers map[string]*time.Timer
	closed bool
	logger logger.Logger
}

// New creates a dispatcher. lookup and apply must be non-nil.
func New(lookup Lookup, apply Apply, opts ...Option) *Dispatcher {
	s := &Dispatcher{
		quiet:  DefaultQuietPeriod,
		lookup: lookup,
		apply:  apply,
		seq:    make(map[string]uint64),
		timers: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query schedules a lookup for field after the quiet period, replacing any
// lookup already pending for the same field.
func (s *Dispatcher) Query(ctx context.Context, fieldName, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if t, ok := s.timers[fieldName]; ok {
		t.Stop()
	}
	s.timers[fieldName] = time.AfterFunc(s.quiet, func() {
		s.issue(ctx, fieldName, query)
	})
}

// issue fires the request and applies the response unless superseded.
func (s *Dispatcher) issue(ctx context.Context, fieldName, query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq[fieldName]++
	seq := s.seq[fieldName]
	s.mu.Unlock()

	suggestions, err := s.lookup(ctx, fieldName, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.seq[fieldName] {
		// A newer request was issued while this one was in flight.
		return
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Debug(ctx, "suggestion lookup failed",
				logger.String("field", fieldName),
				logger.Error(err),
			)
		}
		return
	}
	s.apply(fieldName, suggestions)
}

// Close tears the dispatcher down. Pending timers are stopped and
// in-flight responses are discarded; teardown is the only cancellation
// boundary for issued requests.
func (s *Dispatcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = map[string]*time.Timer{}
}
