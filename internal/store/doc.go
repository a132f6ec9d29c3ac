// Package store implements the dual-tier persistence layer.
//
// Each entity type gets one Store composed of up to two tiers:
//
//   - Remote: SurrealDB records, reached through the database package
//   - Cached: whole-collection JSON snapshots in the local cache
//
// The Fallback decorator composes them remote-first: remote errors are
// logged and answered from the cache, and every successful remote
// result is written through to the cache so the snapshot stays warm.
// Every operation reports a Source (remote or cache) so callers and
// tests can observe which tier served it.
//
// Entities whose id carries the "local-" prefix are ephemeral and
// never touch the remote store. Entity types with no remote table at
// all (items) are wired with a nil remote and run cache-only.
//
// # Codecs
//
// A Codec is the explicit bidirectional mapping between an entity's
// in-memory shape and its remote record shape (field renaming plus
// default filling for absent optional fields). Filter matching and
// patch application in the cache tier are derived from the codec, so
// the mapping is defined exactly once per entity.
package store
