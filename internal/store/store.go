package store

import (
	"context"
	"fmt"
)

// Source reports which tier served an operation. Exposed so callers
// (and tests) can observe fallback behavior; most callers ignore it.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
)

// Filter is an equality filter over remote-shape field names,
// e.g. Filter{"host_id": "u1"}. An empty filter matches everything.
type Filter map[string]interface{}

// Store performs the logical persistence operations for one entity type.
type Store[T any] interface {
	Create(ctx context.Context, entity T) (T, Source, error)
	Get(ctx context.Context, id string) (T, Source, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (T, Source, error)
	Delete(ctx context.Context, id string) (Source, error)
	Find(ctx context.Context, filter Filter) ([]T, Source, error)
}

// Codec is the bidirectional mapping between an entity's in-memory
// shape and its remote record shape. It is the single source of truth
// for field renaming and default filling; the cache tier derives its
// filter matching and patch application from it.
type Codec[T any] struct {
	// Table is the remote collection name.
	Table string
	// CacheKey is the fixed snapshot key for the whole collection.
	CacheKey string
	// ID extracts the entity id.
	ID func(T) string
	// ToRecord converts the in-memory shape to remote field names.
	// The returned map includes "id".
	ToRecord func(T) map[string]interface{}
	// FromRecord converts a remote record back, filling defaults for
	// absent optional fields.
	FromRecord func(map[string]interface{}) T
}

// Matches reports whether the entity satisfies every field in the
// filter, compared in the record shape.
func (c Codec[T]) Matches(entity T, filter Filter) bool {
	if len(filter) == 0 {
		return true
	}
	rec := c.ToRecord(entity)
	for k, want := range filter {
		if fmt.Sprint(rec[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// ApplyPatch merges a record-shape patch into the entity by round-
// tripping through the codec.
func (c Codec[T]) ApplyPatch(entity T, patch map[string]interface{}) T {
	rec := c.ToRecord(entity)
	for k, v := range patch {
		rec[k] = v
	}
	return c.FromRecord(rec)
}
