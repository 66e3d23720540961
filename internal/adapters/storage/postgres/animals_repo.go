package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shelter-dashboard/internal/domain/animals"

	"github.com/google/uuid"
)

type AnimalsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db, now: time.Now}
}

func (r *AnimalsRepo) Create(ctx context.Context, rec animals.Record) (string, error) {
	doc, err := json.Marshal(rec.WithoutID())
	if err != nil {
		return "", fmt.Errorf("%w: %v", animals.ErrInvalidInput, err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO animals (id, doc, created_at) VALUES ($1, $2::jsonb, $3)
	`, id, string(doc), r.now().UTC())
	if err != nil {
		return "", wrapConnErr(err)
	}
	return id, nil
}

func (r *AnimalsRepo) Read(ctx context.Context, q animals.Query) ([]animals.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	where, args := buildWhere(q)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, doc
		FROM animals
		WHERE `+where+`
		ORDER BY created_at ASC, id ASC
	`, args...)
	if err != nil {
		return nil, wrapConnErr(err)
	}
	defer rows.Close()

	out := make([]animals.Record, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var rec animals.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode doc %s: %w", id, err)
		}
		if rec == nil {
			rec = animals.Record{}
		}
		rec[animals.FieldID] = id
		out = append(out, rec)
	}
	return out, rows.Err()
}

// buildWhere traduce la query a JSONB. El nombre del campo siempre va como
// parámetro (doc->>$n), nunca concatenado.
func buildWhere(q animals.Query) (string, []any) {
	if q.IsEmpty() {
		return "TRUE", nil
	}

	var (
		parts []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	// ::text evita la ambigüedad jsonb->int vs jsonb->text
	field := func(name string) string { return arg(name) + "::text" }
	numeric := func(name, cmp string, bound float64) string {
		f := field(name)
		return fmt.Sprintf("(CASE WHEN jsonb_typeof(doc->%s) = 'number' THEN (doc->>%s)::numeric %s %s ELSE false END)",
			f, f, cmp, arg(bound))
	}

	for _, c := range q.Conditions {
		switch c.Op {
		case animals.OpEq:
			parts = append(parts, fmt.Sprintf("doc->>%s = %s", field(c.Field), arg(animals.FormatValue(c.Value))))
		case animals.OpLt:
			parts = append(parts, numeric(c.Field, "<", c.Bound))
		case animals.OpGte:
			parts = append(parts, numeric(c.Field, ">=", c.Bound))
		case animals.OpLte:
			parts = append(parts, numeric(c.Field, "<=", c.Bound))
		case animals.OpRange:
			parts = append(parts, numeric(c.Field, ">=", c.Min), numeric(c.Field, "<=", c.Max))
		case animals.OpIn:
			f := field(c.Field)
			ph := make([]string, 0, len(c.Values))
			for _, v := range c.Values {
				ph = append(ph, arg(v))
			}
			parts = append(parts, fmt.Sprintf("doc->>%s IN (%s)", f, strings.Join(ph, ", ")))
		case animals.OpRegex:
			parts = append(parts, fmt.Sprintf("doc->>%s ~ %s", field(c.Field), arg(c.Pattern)))
		}
	}
	return strings.Join(parts, " AND "), args
}

func wrapConnErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", animals.ErrStoreUnavailable, err)
}
