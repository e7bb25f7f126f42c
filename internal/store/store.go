// Package store provides keyed entity storage with sequential ID assignment.
//
// Two implementations exist: an in-process map (the default) and a Redis
// backed variant. Both assign ascending int64 identifiers starting at 1 and
// never reuse an identifier within the lifetime of the counter, even after
// deletes.
package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("store: entity not found")

// Store is the storage contract shared by all entity types. Implementations
// must be safe for concurrent use; cross-entity atomicity (such as the
// ledger's item-mutate-plus-append sequence) is the caller's responsibility.
type Store[T any] interface {
	// Create assigns the next identifier, invokes build with it and stores
	// the result.
	Create(ctx context.Context, build func(id int64) T) (T, error)
	// Get returns the entity with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (T, error)
	// List returns all stored entities in insertion order.
	List(ctx context.Context) ([]T, error)
	// Update applies fn to the stored entity under the store lock and
	// persists the result. Returns ErrNotFound when id is absent; when fn
	// fails the stored entity is left untouched.
	Update(ctx context.Context, id int64, fn func(T) (T, error)) (T, error)
	// Delete removes the entity permanently. The id is never handed out
	// again. Returns ErrNotFound when id is absent.
	Delete(ctx context.Context, id int64) error
}
