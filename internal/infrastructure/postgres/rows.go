package postgres

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// rowsToMaps materializes a result set as ordered column->value maps, the
// shape list endpoints return when the caller projects arbitrary fields.
func rowsToMaps(rows pgx.Rows) ([]map[string]any, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := make([]map[string]any, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		m := make(map[string]any, len(fields))
		for i, f := range fields {
			m[f.Name] = normalizeValue(vals[i])
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// normalizeValue rewrites driver-native values into JSON-friendly ones.
// UUIDs come back from pgx as raw 16-byte arrays.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case [16]byte:
		return uuid.UUID(t).String()
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	default:
		return v
	}
}
