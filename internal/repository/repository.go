// Package repository implements the data-access layer shared by every
// content entity. One generic implementation is instantiated per entity with
// a Mapping describing its table, wire fields and visibility defaults.
package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/milena/wayfare-api/internal/database"
)

type Repository struct {
	db *database.DB
	m  Mapping
}

func New(db *database.DB, m Mapping) *Repository {
	return &Repository{db: db, m: m}
}

// Filter configures FindAll. All options compose independently; pagination
// is stateless limit/offset.
type Filter struct {
	Status       string
	IncludeDraft bool
	Scoped       map[string]any
	Limit        int
	Offset       int
}

func (r *Repository) Create(ctx context.Context, payload Record, createdBy *uuid.UUID) (Record, error) {
	var missing []string
	for _, wire := range r.m.Required {
		v, ok := payload[wire]
		if !ok || v == nil || v == "" {
			missing = append(missing, wire)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	var (
		columns      []string
		placeholders []string
		args         []any
	)
	n := 1
	for _, f := range r.m.Fields {
		v, ok := payload[f.Wire]
		if !ok && f.Wire == "status" && r.m.CreateStatus != "" {
			v, ok = r.m.CreateStatus, true
		}
		if !ok && !f.structured() {
			continue
		}
		if f.Marshal != nil {
			mv, err := f.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Wire, err)
			}
			v = mv
		}
		columns = append(columns, f.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", n))
		args = append(args, v)
		n++
	}
	if r.m.HasCreatedBy && createdBy != nil {
		columns = append(columns, "created_by")
		placeholders = append(placeholders, fmt.Sprintf("$%d", n))
		args = append(args, *createdBy)
		n++
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		r.m.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)
	return r.queryOne(ctx, query, args...)
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (Record, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", r.m.Table)
	return r.queryOne(ctx, query, id)
}

// FindOneBy fetches a single record by an exact match on one wire field,
// e.g. a trip by slug. With visibleOnly set, only records in the entity's
// publicly visible status match.
func (r *Repository) FindOneBy(ctx context.Context, wire string, value any, visibleOnly bool) (Record, error) {
	f, ok := r.m.field(wire)
	if !ok {
		return nil, fmt.Errorf("unknown field %q on %s", wire, r.m.Table)
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", r.m.Table, f.Column)
	args := []any{value}
	if visibleOnly && r.m.VisibleStatus != "" {
		query += " AND status = $2"
		args = append(args, r.m.VisibleStatus)
	}
	return r.queryOne(ctx, query, args...)
}

func (r *Repository) FindAll(ctx context.Context, f Filter) ([]Record, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE 1=1", r.m.Table)
	var args []any
	n := 1

	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, f.Status)
		n++
	} else if !f.IncludeDraft && r.m.VisibleStatus != "" {
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, r.m.VisibleStatus)
		n++
	}

	scopedKeys := make([]string, 0, len(f.Scoped))
	for key := range f.Scoped {
		scopedKeys = append(scopedKeys, key)
	}
	sort.Strings(scopedKeys)
	for _, key := range scopedKeys {
		column, ok := r.m.ScopedFilters[key]
		if !ok {
			continue
		}
		query += fmt.Sprintf(" AND %s = $%d", column, n)
		args = append(args, f.Scoped[key])
		n++
	}

	query += " ORDER BY created_at DESC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, f.Limit)
		n++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, f.Offset)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Update writes only the recognized fields present in payload. A structured
// field present as an empty sequence clears the column; an absent field is
// left untouched. With nothing recognized the current record is returned
// without a write.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, payload Record) (Record, error) {
	var (
		sets []string
		args []any
	)
	n := 1
	for _, f := range r.m.Fields {
		v, ok := payload[f.Wire]
		if !ok {
			continue
		}
		if f.Marshal != nil {
			mv, err := f.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Wire, err)
			}
			v = mv
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", f.Column, n))
		args = append(args, v)
		n++
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d RETURNING *",
		r.m.Table, strings.Join(sets, ", "), n,
	)
	return r.queryOne(ctx, query, args...)
}

// Delete removes the row and returns the just-deleted record so the caller
// can still inspect its asset references for cleanup.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (Record, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 RETURNING *", r.m.Table)
	return r.queryOne(ctx, query, id)
}

func (r *Repository) queryOne(ctx context.Context, query string, args ...any) (Record, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	rec, err := r.scanRecord(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repository) scanRecord(rows pgx.Rows) (Record, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}

	byColumn := r.m.columnWires()
	rec := make(Record, len(values))
	for i, fd := range rows.FieldDescriptions() {
		f, ok := byColumn[fd.Name]
		if !ok {
			continue
		}
		v := values[i]
		if f.Unmarshal != nil {
			uv, err := f.Unmarshal(v)
			if err != nil {
				return nil, &IntegrityError{Table: r.m.Table, Field: f.Wire, Err: err}
			}
			v = uv
		} else {
			v = normalize(v)
		}
		rec[f.Wire] = v
	}
	return rec, nil
}

// normalize converts driver-level scalar types to their wire form. pgx hands
// back uuid columns as raw byte arrays unless a codec is registered.
func normalize(v any) any {
	switch val := v.(type) {
	case [16]byte:
		return uuid.UUID(val).String()
	case uuid.UUID:
		return val.String()
	default:
		return v
	}
}
