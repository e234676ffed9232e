// Package queue buffers push-channel messages between the transport and
// the reconciliation worker. The external channel delivers out of band
// from user input; the queue absorbs bursts and hands messages to exactly
// one consumer so application order is preserved.
package queue

import (
	"context"
	"sync"

	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/pkg/metrics"
)

// Message is the payload flowing through the queue.
type Message = model.PushMessage

const defaultCapacity = 1024

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds a message. Returns false when the queue is full or
	// closed; push messages are fire-and-forget, so a refused message is
	// simply dropped by the caller.
	Enqueue(ctx context.Context, m Message) bool

	// Dequeue returns the consumption channel. It is closed when the
	// queue closes.
	Dequeue(ctx context.Context) <-chan Message

	// Len returns the current number of buffered messages.
	Len(ctx context.Context) int

	// Close stops intake and closes the dequeue channel once drained.
	Close() error
}

// InMemoryQueue implements Queue over a buffered channel.
type InMemoryQueue struct {
	messages chan Message
	capacity int

	mu     sync.RWMutex
	closed bool
}

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity bounds the queue.
func WithCapacity(n int) Option {
	return func(q *InMemoryQueue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// NewInMemoryQueue creates a queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.messages = make(chan Message, q.capacity)
	return q
}

// Enqueue adds a message to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, m Message) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordPushDropped("queue_closed")
		return false
	}

	select {
	case q.messages <- m:
		metrics.UpdatePushQueueSize(len(q.messages))
		return true
	case <-ctx.Done():
		metrics.RecordPushDropped("context_cancelled")
		return false
	default:
		metrics.RecordPushDropped("queue_full")
		return false
	}
}

// Dequeue returns the consumption channel.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Message {
	out := make(chan Message)
	go func() {
		defer close(out)
		for m := range q.messages {
			select {
			case out <- m:
				metrics.UpdatePushQueueSize(len(q.messages))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of buffered messages.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	return len(q.messages)
}

// Close stops intake; buffered messages remain consumable until drained.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.messages)
	q.closed = true
	return nil
}
