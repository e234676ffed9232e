// Package repository defines the record store interface and errors.
package repository

import (
	"context"

	"github.com/candidesk/candidesk/internal/domain/model"
)

// Store provides read/write access to the authoritative candidate list.
// Implementations preserve insertion order: timeline tie-breaks and the
// "replace in place" upsert contract both depend on it.
type Store interface {
	// List returns a copy of all records in store order.
	List(ctx context.Context) []model.Candidate

	// Get returns the record with the given id.
	// Returns ErrNotFound when the id is unknown.
	Get(ctx context.Context, id string) (model.Candidate, error)

	// Upsert replaces the record matching c.ID in place, or appends when
	// the id is new. UpdatedAt is set on every call; CreatedAt only on
	// first insert. The stored copy is returned.
	Upsert(ctx context.Context, c model.Candidate) (model.Candidate, error)

	// Remove deletes the record with the given id and returns it for UI
	// feedback. Returns ErrNotFound when the id is absent.
	Remove(ctx context.Context, id string) (model.Candidate, error)

	// Count returns the number of records tracked.
	Count(ctx context.Context) int

	// Reload replaces the in-memory list with the durable snapshot.
	// A missing or corrupt snapshot degrades to an empty list.
	Reload(ctx context.Context) error
}

// Snapshot round-trips the full record list to durable storage as a
// single serialized array.
type Snapshot interface {
	Load(ctx context.Context) ([]model.Candidate, error)
	Save(ctx context.Context, records []model.Candidate) error
}
