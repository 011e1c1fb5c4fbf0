package repository

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is a resource in its wire representation, keyed by wire field names.
type Record map[string]any

// Field maps one wire field to its storage column. Marshal converts the wire
// value to what gets written, Unmarshal the stored value back; both are
// optional and nil for plain scalars.
type Field struct {
	Wire      string
	Column    string
	Marshal   func(any) (any, error)
	Unmarshal func(any) (any, error)
}

// structured reports whether the field carries a serializer pair, i.e. is a
// structured field that must always materialize (empty, not absent).
func (f Field) structured() bool {
	return f.Marshal != nil && f.Unmarshal != nil
}

// Mapping configures the generic repository for one entity type.
type Mapping struct {
	Table    string
	Fields   []Field
	Required []string

	// ScopedFilters maps recognized filter keys to columns for exact-match
	// filtering (e.g. tripId on enquiries). Unrecognized keys are ignored.
	ScopedFilters map[string]string

	// CreateStatus is assigned when a create payload carries no status.
	CreateStatus string

	// VisibleStatus is the status listings default to unless the caller asks
	// for drafts or filters explicitly. Empty disables the default.
	VisibleStatus string

	// HasCreatedBy is false for entities without an authoring identity
	// (visitor-submitted enquiries).
	HasCreatedBy bool
}

func (m Mapping) field(wire string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Wire == wire {
			return f, true
		}
	}
	return Field{}, false
}

// columnWires maps every storage column back to its field, including the
// columns the repository manages itself.
func (m Mapping) columnWires() map[string]Field {
	out := make(map[string]Field, len(m.Fields)+4)
	for _, f := range m.Fields {
		out[f.Column] = f
	}
	out["id"] = Field{Wire: "id", Column: "id"}
	out["created_at"] = Field{Wire: "createdAt", Column: "created_at"}
	out["updated_at"] = Field{Wire: "updatedAt", Column: "updated_at"}
	if m.HasCreatedBy {
		out["created_by"] = Field{Wire: "createdBy", Column: "created_by"}
	}
	return out
}

// JSONField builds a Field for a structured (JSONB) column. Absent values
// marshal to an empty array so consumers can always iterate, and unmarshal
// tolerates values that are already native (pgx decodes JSONB itself) as
// well as encoded text.
func JSONField(wire, column string) Field {
	return Field{
		Wire:      wire,
		Column:    column,
		Marshal:   marshalJSON,
		Unmarshal: unmarshalJSON,
	}
}

// LowerField builds a Field whose value is lowercased before storage.
func LowerField(wire, column string) Field {
	return Field{
		Wire:   wire,
		Column: column,
		Marshal: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", v)
			}
			return strings.ToLower(s), nil
		},
	}
}

func marshalJSON(v any) (any, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func unmarshalJSON(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return []any{}, nil
	case []byte:
		return decodeJSON(val)
	case string:
		return decodeJSON([]byte(val))
	case json.RawMessage:
		return decodeJSON(val)
	default:
		// Already in native structured form.
		return val, nil
	}
}

func decodeJSON(data []byte) (any, error) {
	if len(data) == 0 {
		return []any{}, nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return []any{}, nil
	}
	return out, nil
}
