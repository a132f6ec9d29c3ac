package store

import (
	"context"
	"log/slog"
	"strings"
)

// LocalPrefix marks ephemeral entities that must never touch the
// remote store (mock/demo/local-only ids).
const LocalPrefix = "local-"

// IsLocal reports whether an id carries the ephemeral marker.
func IsLocal(id string) bool {
	return strings.HasPrefix(id, LocalPrefix)
}

// Fallback composes the remote and cache tiers for one entity type:
// remote-first, cache on any remote error, write-through mirroring of
// every successful remote result. Entities with a LocalPrefix id, and
// entity types with no remote table (nil remote), stay cache-only.
type Fallback[T any] struct {
	remote Store[T] // nil when the entity has no remote table
	cache  *Cached[T]
	codec  Codec[T]
	log    *slog.Logger
}

// NewFallback composes remote over cache. Pass a nil remote for
// cache-only entity types.
func NewFallback[T any](remote Store[T], cached *Cached[T], codec Codec[T], log *slog.Logger) *Fallback[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Fallback[T]{remote: remote, cache: cached, codec: codec, log: log}
}

func (f *Fallback[T]) cacheOnly(id string) bool {
	return f.remote == nil || IsLocal(id)
}

// Create persists the entity remote-first and mirrors the result into
// the cache.
func (f *Fallback[T]) Create(ctx context.Context, entity T) (T, Source, error) {
	if f.cacheOnly(f.codec.ID(entity)) {
		return f.cache.Create(ctx, entity)
	}
	created, _, err := f.remote.Create(ctx, entity)
	if err != nil {
		f.logFallback("create", f.codec.ID(entity), err)
		return f.cache.Create(ctx, entity)
	}
	f.mirror(ctx, created)
	return created, SourceRemote, nil
}

// Get reads remote-first, serving the cached entity on any remote error.
func (f *Fallback[T]) Get(ctx context.Context, id string) (T, Source, error) {
	if f.cacheOnly(id) {
		return f.cache.Get(ctx, id)
	}
	entity, _, err := f.remote.Get(ctx, id)
	if err != nil {
		f.logFallback("get", id, err)
		return f.cache.Get(ctx, id)
	}
	f.mirror(ctx, entity)
	return entity, SourceRemote, nil
}

// Update applies the patch remote-first and mirrors the result.
func (f *Fallback[T]) Update(ctx context.Context, id string, patch map[string]interface{}) (T, Source, error) {
	if f.cacheOnly(id) {
		return f.cache.Update(ctx, id, patch)
	}
	updated, _, err := f.remote.Update(ctx, id, patch)
	if err != nil {
		f.logFallback("update", id, err)
		return f.cache.Update(ctx, id, patch)
	}
	f.mirror(ctx, updated)
	return updated, SourceRemote, nil
}

// Delete removes the entity from both tiers.
func (f *Fallback[T]) Delete(ctx context.Context, id string) (Source, error) {
	if f.cacheOnly(id) {
		return f.cache.Delete(ctx, id)
	}
	_, err := f.remote.Delete(ctx, id)
	if err != nil {
		f.logFallback("delete", id, err)
		return f.cache.Delete(ctx, id)
	}
	// Keep the cache from resurrecting deleted entities
	if rmErr := f.cache.remove(ctx, id); rmErr != nil {
		f.log.Warn("cache delete mirror failed",
			slog.String("table", f.codec.Table),
			slog.String("id", id),
			slog.String("error", rmErr.Error()))
	}
	return SourceRemote, nil
}

// Find queries remote-first, falling back to the cached collection.
func (f *Fallback[T]) Find(ctx context.Context, filter Filter) ([]T, Source, error) {
	if f.remote == nil {
		return f.cache.Find(ctx, filter)
	}
	found, _, err := f.remote.Find(ctx, filter)
	if err != nil {
		f.logFallback("find", "", err)
		return f.cache.Find(ctx, filter)
	}
	for _, e := range found {
		f.mirror(ctx, e)
	}
	// Local-only entities never reach the remote; merge them in so a
	// healthy remote does not hide them.
	locals, _, cacheErr := f.cache.Find(ctx, filter)
	if cacheErr == nil {
		for _, e := range locals {
			if IsLocal(f.codec.ID(e)) {
				found = append(found, e)
			}
		}
	}
	return found, SourceRemote, nil
}

// mirror writes a remote result through to the cache, keeping it warm
// for future fallback. Mirror failures are logged, never surfaced.
func (f *Fallback[T]) mirror(ctx context.Context, entity T) {
	if err := f.cache.upsert(ctx, entity); err != nil {
		f.log.Warn("cache mirror failed",
			slog.String("table", f.codec.Table),
			slog.String("id", f.codec.ID(entity)),
			slog.String("error", err.Error()))
	}
}

func (f *Fallback[T]) logFallback(op, id string, err error) {
	f.log.Warn("remote store unavailable, serving from cache",
		slog.String("table", f.codec.Table),
		slog.String("op", op),
		slog.String("id", id),
		slog.String("error", err.Error()))
}
