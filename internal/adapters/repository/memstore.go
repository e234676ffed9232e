package repository

import (
	"context"
	"sync"
	"time"

	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/pkg/logger"
	"github.com/candidesk/candidesk/pkg/metrics"
)

// MemStore keeps the record list in memory and writes the whole list
// through the snapshot on every mutation. With one logical writer the
// snapshot on disk is never more than one mutation behind.
type MemStore struct {
	mu       sync.RWMutex
	records  []model.Candidate
	snapshot Snapshot
	now      func() time.Time
	logger   logger.Logger
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSnapshot sets the durable storage backend. Without one the store is
// memory-only, which the tests rely on.
func WithSnapshot(s Snapshot) Option {
	return func(m *MemStore) {
		m.snapshot = s
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *MemStore) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(m *MemStore) {
		if log != nil {
			m.logger = log
		}
	}
}

// NewMemStore creates a store and loads the snapshot if one is
// configured. Load failure is not fatal: the store starts empty.
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	m := &MemStore{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.Reload(ctx); err != nil {
		// Reload already degraded to an empty list.
		m.warn(ctx, "snapshot load failed; starting empty", err)
	}
	return m
}

func (m *MemStore) warn(ctx context.Context, msg string, err error) {
	if m.logger != nil {
		m.logger.Warn(ctx, msg, logger.Error(err))
	}
}

// List returns a copy of all records in store order.
func (m *MemStore) List(ctx context.Context) []model.Candidate {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Candidate, len(m.records))
	copy(out, m.records)
	return out
}

// Get returns the record with the given id.
func (m *MemStore) Get(ctx context.Context, id string) (model.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.records {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Candidate{}, ErrNotFound
}

// Upsert replaces in place by id, or appends. Timestamps are owned by the
// store: UpdatedAt on every call, CreatedAt only on first insert.
func (m *MemStore) Upsert(ctx context.Context, c model.Candidate) (model.Candidate, error) {
	if c.ID == "" {
		return model.Candidate{}, ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	c.UpdatedAt = now

	replaced := false
	for i := range m.records {
		if m.records[i].ID == c.ID {
			c.CreatedAt = m.records[i].CreatedAt
			m.records[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		c.CreatedAt = now
		m.records = append(m.records, c)
	}

	m.persist(ctx)
	metrics.UpdateRecordsTotal(len(m.records))
	return c, nil
}

// Remove deletes by id and returns the removed record.
func (m *MemStore) Remove(ctx context.Context, id string) (model.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID == id {
			removed := m.records[i]
			m.records = append(m.records[:i], m.records[i+1:]...)
			m.persist(ctx)
			metrics.UpdateRecordsTotal(len(m.records))
			return removed, nil
		}
	}
	return model.Candidate{}, ErrNotFound
}

// Count returns the number of records tracked.
func (m *MemStore) Count(ctx context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Reload replaces the in-memory list with the snapshot contents. Corrupt
// or missing snapshots degrade to an empty list; the application keeps
// running either way.
func (m *MemStore) Reload(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snapshot == nil {
		m.records = nil
		return nil
	}
	records, err := m.snapshot.Load(ctx)
	if err != nil {
		m.records = nil
		metrics.UpdateRecordsTotal(0)
		return err
	}
	m.records = records
	metrics.UpdateRecordsTotal(len(m.records))
	return nil
}

// persist writes the full list through the snapshot. Callers hold m.mu.
// A failed write is logged and counted but does not undo the in-memory
// mutation; the next successful mutation rewrites the whole list anyway.
func (m *MemStore) persist(ctx context.Context) {
	if m.snapshot == nil {
		return
	}
	start := time.Now()
	if err := m.snapshot.Save(ctx, m.records); err != nil {
		metrics.RecordSnapshotError()
		m.warn(ctx, "snapshot save failed", err)
		return
	}
	metrics.RecordSnapshotSave(float64(time.Since(start).Milliseconds()))
}
