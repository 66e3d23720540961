// Package sqlite guarda los documentos como JSON en una tabla SQLite (driver pure Go).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shelter-dashboard/internal/domain/animals"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Open abre (o crea) la base y la tabla de documentos.
// ":memory:" queda limitado a una conexión para que todas vean la misma base.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = "shelter.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", animals.ErrStoreUnavailable, err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS animals (
		id  TEXT PRIMARY KEY,
		doc TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create animals table: %w", err)
	}
	return db, nil
}

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, rec animals.Record) (string, error) {
	doc, err := json.Marshal(rec.WithoutID())
	if err != nil {
		return "", fmt.Errorf("%w: %v", animals.ErrInvalidInput, err)
	}

	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, `INSERT INTO animals (id, doc) VALUES (?, ?)`, id, string(doc)); err != nil {
		return "", fmt.Errorf("%w: %v", animals.ErrStoreUnavailable, err)
	}
	return id, nil
}

// Read traduce a SQL todo menos regex (SQLite no trae REGEXP);
// esas condiciones se aplican en Go sobre lo escaneado.
func (r *AnimalsRepo) Read(ctx context.Context, q animals.Query) ([]animals.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	patterns, sqlPart := q.Split(func(c animals.Condition) bool { return c.Op == animals.OpRegex })
	where, args, err := buildWhere(sqlPart)
	if err != nil {
		return nil, err
	}
	post, err := patterns.Matcher()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, doc FROM animals WHERE `+where+` ORDER BY rowid ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", animals.ErrStoreUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]animals.Record, 0)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var rec animals.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode doc %s: %w", id, err)
		}
		if rec == nil {
			rec = animals.Record{}
		}
		if !post(rec) {
			continue
		}
		rec[animals.FieldID] = id
		out = append(out, rec)
	}
	return out, rows.Err()
}

func buildWhere(q animals.Query) (string, []any, error) {
	if q.IsEmpty() {
		return "1 = 1", nil, nil
	}

	var (
		parts []string
		args  []any
	)
	for _, c := range q.Conditions {
		path, err := jsonPath(c.Field)
		if err != nil {
			return "", nil, err
		}
		numeric := func(cmp string, bound float64) {
			parts = append(parts, "(json_type(doc, ?) IN ('integer', 'real') AND json_extract(doc, ?) "+cmp+" ?)")
			args = append(args, path, path, bound)
		}

		switch c.Op {
		case animals.OpEq:
			parts = append(parts, "CAST(json_extract(doc, ?) AS TEXT) = ?")
			args = append(args, path, animals.FormatValue(c.Value))
		case animals.OpLt:
			numeric("<", c.Bound)
		case animals.OpGte:
			numeric(">=", c.Bound)
		case animals.OpLte:
			numeric("<=", c.Bound)
		case animals.OpRange:
			numeric(">=", c.Min)
			numeric("<=", c.Max)
		case animals.OpIn:
			ph := strings.TrimSuffix(strings.Repeat("?, ", len(c.Values)), ", ")
			parts = append(parts, "CAST(json_extract(doc, ?) AS TEXT) IN ("+ph+")")
			args = append(args, path)
			for _, v := range c.Values {
				args = append(args, v)
			}
		default:
			return "", nil, fmt.Errorf("%w: operator %q not supported in sql", animals.ErrInvalidQuery, c.Op)
		}
	}
	return strings.Join(parts, " AND "), args, nil
}

// jsonPath arma $."campo". Comillas dobles en el nombre no se pueden escapar en SQLite.
func jsonPath(field string) (string, error) {
	if strings.ContainsAny(field, `"\`) {
		return "", fmt.Errorf("%w: field %q", animals.ErrInvalidQuery, field)
	}
	return `$."` + field + `"`, nil
}
