package store

import (
	"context"
	"errors"

	"github.com/gatherly/potluck/internal/cache"
	"github.com/gatherly/potluck/internal/database"
)

// Cached is the local-cache tier for one entity type. The whole
// collection lives under one snapshot key as a JSON blob; every
// mutation rewrites the blob.
type Cached[T any] struct {
	snaps *cache.Cache
	codec Codec[T]
}

// NewCached creates a cache store over snaps for the codec's snapshot key.
func NewCached[T any](snaps *cache.Cache, codec Codec[T]) *Cached[T] {
	return &Cached[T]{snaps: snaps, codec: codec}
}

func (c *Cached[T]) load(ctx context.Context) ([]T, error) {
	var list []T
	err := c.snaps.Get(ctx, c.codec.CacheKey, &list)
	if errors.Is(err, cache.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Cached[T]) save(ctx context.Context, list []T) error {
	return c.snaps.Put(ctx, c.codec.CacheKey, list)
}

// Create adds (or, when the id already exists, replaces) the entity.
// Upsert semantics keep mirroring from the remote tier idempotent.
func (c *Cached[T]) Create(ctx context.Context, entity T) (T, Source, error) {
	var zero T
	if err := c.upsert(ctx, entity); err != nil {
		return zero, SourceCache, err
	}
	return entity, SourceCache, nil
}

// Get returns the entity with the given id, or database.ErrNotFound.
func (c *Cached[T]) Get(ctx context.Context, id string) (T, Source, error) {
	var zero T
	list, err := c.load(ctx)
	if err != nil {
		return zero, SourceCache, err
	}
	for _, e := range list {
		if c.codec.ID(e) == id {
			return e, SourceCache, nil
		}
	}
	return zero, SourceCache, database.ErrNotFound
}

// Update merges a record-shape patch into the stored entity.
func (c *Cached[T]) Update(ctx context.Context, id string, patch map[string]interface{}) (T, Source, error) {
	var zero T
	list, err := c.load(ctx)
	if err != nil {
		return zero, SourceCache, err
	}
	for i, e := range list {
		if c.codec.ID(e) != id {
			continue
		}
		updated := c.codec.ApplyPatch(e, patch)
		list[i] = updated
		if err := c.save(ctx, list); err != nil {
			return zero, SourceCache, err
		}
		return updated, SourceCache, nil
	}
	return zero, SourceCache, database.ErrNotFound
}

// Delete removes the entity with the given id. Deleting a missing id
// is not an error.
func (c *Cached[T]) Delete(ctx context.Context, id string) (Source, error) {
	return SourceCache, c.remove(ctx, id)
}

// Find returns every stored entity matching the filter.
func (c *Cached[T]) Find(ctx context.Context, filter Filter) ([]T, Source, error) {
	list, err := c.load(ctx)
	if err != nil {
		return nil, SourceCache, err
	}
	out := make([]T, 0, len(list))
	for _, e := range list {
		if c.codec.Matches(e, filter) {
			out = append(out, e)
		}
	}
	return out, SourceCache, nil
}

// upsert inserts or replaces by id. Used both by Create and by the
// fallback tier to mirror remote results.
func (c *Cached[T]) upsert(ctx context.Context, entity T) error {
	list, err := c.load(ctx)
	if err != nil {
		return err
	}
	id := c.codec.ID(entity)
	for i, e := range list {
		if c.codec.ID(e) == id {
			list[i] = entity
			return c.save(ctx, list)
		}
	}
	return c.save(ctx, append(list, entity))
}

// remove deletes by id, saving only when something changed.
func (c *Cached[T]) remove(ctx context.Context, id string) error {
	list, err := c.load(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	changed := false
	for _, e := range list {
		if c.codec.ID(e) == id {
			changed = true
			continue
		}
		kept = append(kept, e)
	}
	if !changed {
		return nil
	}
	return c.save(ctx, kept)
}
