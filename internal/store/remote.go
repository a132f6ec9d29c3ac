package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/gatherly/potluck/internal/database"
)

// Remote is the remote-store tier for one entity type. All operations
// round-trip to SurrealDB; records are translated through the codec.
type Remote[T any] struct {
	db    database.Database
	codec Codec[T]
}

// NewRemote creates a remote store over db for the codec's table.
func NewRemote[T any](db database.Database, codec Codec[T]) *Remote[T] {
	return &Remote[T]{db: db, codec: codec}
}

// Create persists a new record keyed by the entity's id.
func (r *Remote[T]) Create(ctx context.Context, entity T) (T, Source, error) {
	var zero T
	data := r.codec.ToRecord(entity)
	delete(data, "id")

	result, err := r.db.QueryOne(ctx,
		"CREATE ONLY type::thing($tb, $id) CONTENT $data RETURN AFTER",
		map[string]interface{}{"tb": r.codec.Table, "id": r.codec.ID(entity), "data": data})
	if err != nil {
		return zero, SourceRemote, err
	}
	rec, ok := result.(map[string]interface{})
	if !ok {
		return zero, SourceRemote, fmt.Errorf("%w: unexpected create result %T", database.ErrQuery, result)
	}
	return r.codec.FromRecord(rec), SourceRemote, nil
}

// Get reads one record by id.
func (r *Remote[T]) Get(ctx context.Context, id string) (T, Source, error) {
	var zero T
	result, err := r.db.QueryOne(ctx,
		"SELECT * FROM type::thing($tb, $id)",
		map[string]interface{}{"tb": r.codec.Table, "id": id})
	if err != nil {
		return zero, SourceRemote, err
	}
	rec, ok := result.(map[string]interface{})
	if !ok {
		return zero, SourceRemote, fmt.Errorf("%w: unexpected get result %T", database.ErrQuery, result)
	}
	return r.codec.FromRecord(rec), SourceRemote, nil
}

// Update merges a record-shape patch into one record.
func (r *Remote[T]) Update(ctx context.Context, id string, patch map[string]interface{}) (T, Source, error) {
	var zero T
	result, err := r.db.QueryOne(ctx,
		"UPDATE ONLY type::thing($tb, $id) MERGE $patch RETURN AFTER",
		map[string]interface{}{"tb": r.codec.Table, "id": id, "patch": patch})
	if err != nil {
		return zero, SourceRemote, err
	}
	rec, ok := result.(map[string]interface{})
	if !ok {
		return zero, SourceRemote, fmt.Errorf("%w: unexpected update result %T", database.ErrQuery, result)
	}
	return r.codec.FromRecord(rec), SourceRemote, nil
}

// Delete removes one record by id.
func (r *Remote[T]) Delete(ctx context.Context, id string) (Source, error) {
	err := r.db.Execute(ctx,
		"DELETE type::thing($tb, $id)",
		map[string]interface{}{"tb": r.codec.Table, "id": id})
	return SourceRemote, err
}

// Find runs an equality-filtered SELECT over the table.
func (r *Remote[T]) Find(ctx context.Context, filter Filter) ([]T, Source, error) {
	query := "SELECT * FROM type::table($tb)"
	vars := map[string]interface{}{"tb": r.codec.Table}

	// Deterministic clause order keeps queries stable for logs and tests
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		if i == 0 {
			query += " WHERE "
		} else {
			query += " AND "
		}
		param := fmt.Sprintf("f%d", i)
		query += fmt.Sprintf("%s = $%s", k, param)
		vars[param] = filter[k]
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, SourceRemote, err
	}

	rows := extractQueryResults(results)
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, r.codec.FromRecord(rec))
	}
	return out, SourceRemote, nil
}
