package animals

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	ErrInvalidQuery = errors.New("invalid query")
)

// Op es el operador de una condición sobre un campo del documento.
type Op string

const (
	OpEq    Op = "eq"
	OpLt    Op = "lt"
	OpGte   Op = "gte"
	OpLte   Op = "lte"
	OpRange Op = "range" // gte Min AND lte Max
	OpIn    Op = "in"
	OpRegex Op = "regex"
)

// Condition es una restricción sobre un campo.
// Solo se usan los campos que corresponden al Op.
type Condition struct {
	Field string
	Op    Op

	Value   any      // eq
	Bound   float64  // lt, gte, lte
	Min     float64  // range
	Max     float64  // range
	Values  []string // in
	Pattern string   // regex
}

func Eq(field string, v any) Condition { return Condition{Field: field, Op: OpEq, Value: v} }
func Lt(field string, n float64) Condition {
	return Condition{Field: field, Op: OpLt, Bound: n}
}
func Gte(field string, n float64) Condition {
	return Condition{Field: field, Op: OpGte, Bound: n}
}
func Lte(field string, n float64) Condition {
	return Condition{Field: field, Op: OpLte, Bound: n}
}
func Between(field string, min, max float64) Condition {
	return Condition{Field: field, Op: OpRange, Min: min, Max: max}
}
func In(field string, values ...string) Condition {
	return Condition{Field: field, Op: OpIn, Values: values}
}
func Regex(field, pattern string) Condition {
	return Condition{Field: field, Op: OpRegex, Pattern: pattern}
}

// Query es un AND de condiciones. Query vacía = todos los documentos.
type Query struct {
	Conditions []Condition
}

func NewQuery(conds ...Condition) Query {
	return Query{Conditions: conds}
}

// Where agrega condiciones sin mutar q.
func (q Query) Where(conds ...Condition) Query {
	out := make([]Condition, 0, len(q.Conditions)+len(conds))
	out = append(out, q.Conditions...)
	out = append(out, conds...)
	return Query{Conditions: out}
}

func (q Query) IsEmpty() bool { return len(q.Conditions) == 0 }

// Split separa las condiciones que cumplen keep del resto.
// Lo usan los adapters que no traducen todos los operadores a SQL.
func (q Query) Split(keep func(Condition) bool) (Query, Query) {
	var a, b Query
	for _, c := range q.Conditions {
		if keep(c) {
			a.Conditions = append(a.Conditions, c)
		} else {
			b.Conditions = append(b.Conditions, c)
		}
	}
	return a, b
}

// Validate rechaza queries mal formadas. Los adapters la llaman antes de tocar storage:
// un operador inválido nunca se ignora en silencio.
func (q Query) Validate() error {
	_, err := q.Matcher()
	return err
}

// Matcher compila la query a un predicado en memoria.
func (q Query) Matcher() (func(Record) bool, error) {
	preds := make([]func(Record) bool, 0, len(q.Conditions))
	for _, c := range q.Conditions {
		p, err := c.predicate()
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return func(r Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}, nil
}

// Filter aplica q sobre records y devuelve los que matchean.
func Filter(records []Record, q Query) ([]Record, error) {
	match, err := q.Matcher()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c Condition) predicate() (func(Record) bool, error) {
	field := strings.TrimSpace(c.Field)
	if field == "" {
		return nil, fmt.Errorf("%w: empty field", ErrInvalidQuery)
	}

	switch c.Op {
	case OpEq:
		want := c.Value
		return func(r Record) bool {
			got, ok := r[field]
			if !ok || got == nil {
				return false
			}
			return valuesEqual(got, want)
		}, nil

	case OpLt, OpGte, OpLte:
		if !isFinite(c.Bound) {
			return nil, fmt.Errorf("%w: %s bound for %q must be a finite number", ErrInvalidQuery, c.Op, field)
		}
		op, bound := c.Op, c.Bound
		return func(r Record) bool {
			n, ok := r.Float(field)
			if !ok {
				return false
			}
			switch op {
			case OpLt:
				return n < bound
			case OpGte:
				return n >= bound
			default:
				return n <= bound
			}
		}, nil

	case OpRange:
		if !isFinite(c.Min) || !isFinite(c.Max) {
			return nil, fmt.Errorf("%w: range bounds for %q must be finite numbers", ErrInvalidQuery, field)
		}
		if c.Min > c.Max {
			return nil, fmt.Errorf("%w: empty range for %q", ErrInvalidQuery, field)
		}
		min, max := c.Min, c.Max
		return func(r Record) bool {
			n, ok := r.Float(field)
			return ok && n >= min && n <= max
		}, nil

	case OpIn:
		if len(c.Values) == 0 {
			return nil, fmt.Errorf("%w: empty set for %q", ErrInvalidQuery, field)
		}
		set := make(map[string]struct{}, len(c.Values))
		for _, v := range c.Values {
			set[v] = struct{}{}
		}
		return func(r Record) bool {
			s, ok := rawText(r, field)
			if !ok {
				return false
			}
			_, hit := set[s]
			return hit
		}, nil

	case OpRegex:
		re, err := regexp.Compile(c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern for %q: %v", ErrInvalidQuery, field, err)
		}
		return func(r Record) bool {
			s, ok := rawText(r, field)
			return ok && re.MatchString(s)
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidQuery, c.Op)
	}
}

// rawText es el valor como texto sin recortar, igual que doc->> / json_extract.
func rawText(r Record, field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	return FormatValue(v), true
}

// valuesEqual compara numéricamente cuando ambos lados son números
// (o strings numéricos); si no, compara la representación de texto.
func valuesEqual(got, want any) bool {
	if a, ok := ToFloat(got); ok {
		if b, ok := ToFloat(want); ok {
			return a == b
		}
	}
	return FormatValue(got) == FormatValue(want)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
