// Package notify tracks which reminders have already fired so each
// record/lead-time pair alerts at most once.
package notify

import (
	"context"
	"sync"
)

// Tracker records reminder keys to keep alerts one-shot.
type Tracker interface {
	// SeenAndRecord atomically checks whether key was seen and records it
	// if not. Returns true when the key was already present.
	SeenAndRecord(ctx context.Context, key string) bool

	// Forget drops a key, re-arming its reminder. Used when a record's
	// schedule changes.
	Forget(ctx context.Context, key string)

	Size() int
}

// Option applies a configuration option to the in-memory tracker.
type Option func(*memoryTracker)

// WithMaxSize bounds the tracker; oldest keys are evicted first. Zero or
// negative means unbounded.
func WithMaxSize(n int) Option {
	return func(t *memoryTracker) {
		t.maxSize = n
	}
}

const defaultMaxSize = 10_000

// memoryTracker is a bounded FIFO seen-set.
type memoryTracker struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int
}

// NewTracker creates an in-memory tracker.
func NewTracker(opts ...Option) Tracker {
	t := &memoryTracker{
		seen:    make(map[string]struct{}),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *memoryTracker) SeenAndRecord(_ context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[key]; ok {
		return true
	}
	if t.maxSize > 0 {
		for len(t.seen) >= t.maxSize && len(t.order) > 0 {
			oldest := t.order[0]
			t.order = t.order[1:]
			delete(t.seen, oldest)
		}
	}
	t.seen[key] = struct{}{}
	t.order = append(t.order, key)
	return false
}

func (t *memoryTracker) Forget(_ context.Context, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[key]; !ok {
		return
	}
	delete(t.seen, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *memoryTracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
