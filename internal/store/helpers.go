package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// recordID extracts a plain entity id from a SurrealDB record id,
// which may arrive as a string ("event:⟨uuid⟩"), a models.RecordID,
// or a {"tb": ..., "id": ...} map.
func recordID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return stripRecordID(id)
	case models.RecordID:
		return stripRecordID(id.String())
	case *models.RecordID:
		if id != nil {
			return stripRecordID(id.String())
		}
	case map[string]interface{}:
		if inner, ok := id["id"].(string); ok {
			return stripRecordID(inner)
		}
	}

	// Try JSON marshaling as fallback
	if data, err := json.Marshal(v); err == nil {
		var rid models.RecordID
		if err := json.Unmarshal(data, &rid); err == nil {
			return stripRecordID(rid.String())
		}
	}

	return ""
}

// stripRecordID removes the table prefix and angle-bracket escaping
// SurrealDB adds around ids containing dashes.
func stripRecordID(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		id = id[i+1:]
	}
	id = strings.TrimPrefix(id, "⟨")
	id = strings.TrimSuffix(id, "⟩")
	return id
}

// parseTime parses time from the formats SurrealDB and JSON hand back
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// getString extracts a string value from a record
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getBool extracts a bool value from a record
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// getInt extracts an int value from a record
func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}

// getMap extracts a nested record
func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

// extractQueryResults unwraps the {status, result} response rows the
// database layer returns for Query
func extractQueryResults(results []interface{}) []interface{} {
	out := make([]interface{}, 0, len(results))
	for _, r := range results {
		resp, ok := r.(map[string]interface{})
		if !ok {
			out = append(out, r)
			continue
		}
		if rows, ok := resp["result"].([]interface{}); ok {
			out = append(out, rows...)
			continue
		}
		if inner, ok := resp["result"]; ok && inner != nil {
			out = append(out, inner)
		}
	}
	return out
}
