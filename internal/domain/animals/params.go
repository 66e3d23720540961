package animals

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Parámetros de GET /api/animals:
//   - age_upon_outcome_in_weeks=N   => age < N (N entero)
//   - campo=valor                   => igualdad
//   - campo[op]=valor               => op explícito: eq, lt, gte, lte, regex, in (repetible)
//
// Un op desconocido o un número inválido es ErrInvalidQuery (400).
func ParseParams(values url.Values) (Query, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var q Query
	for _, key := range keys {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}

		field, op, bracketed, err := splitParamKey(key)
		if err != nil {
			return Query{}, err
		}
		if field == "" {
			continue
		}

		if !bracketed {
			if field == FieldAgeWeeks {
				n, err := strconv.Atoi(strings.TrimSpace(vals[0]))
				if err != nil {
					return Query{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidQuery, FieldAgeWeeks)
				}
				q.Conditions = append(q.Conditions, Lt(field, float64(n)))
				continue
			}
			q.Conditions = append(q.Conditions, Eq(field, vals[0]))
			continue
		}

		switch op {
		case OpEq:
			q.Conditions = append(q.Conditions, Eq(field, vals[0]))
		case OpIn:
			q.Conditions = append(q.Conditions, In(field, vals...))
		case OpRegex:
			for _, p := range vals {
				q.Conditions = append(q.Conditions, Regex(field, p))
			}
		case OpLt, OpGte, OpLte:
			for _, raw := range vals {
				n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
				if err != nil {
					return Query{}, fmt.Errorf("%w: %s[%s] must be a number", ErrInvalidQuery, field, op)
				}
				q.Conditions = append(q.Conditions, Condition{Field: field, Op: op, Bound: n})
			}
		default:
			return Query{}, fmt.Errorf("%w: unsupported operator %q for %s", ErrInvalidQuery, op, field)
		}
	}

	if err := q.Validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// EncodeParams es la inversa de ParseParams: siempre usa la forma con [op]
// salvo igualdad sobre campos que no tienen semántica especial.
func EncodeParams(q Query) url.Values {
	out := url.Values{}
	for _, c := range q.Conditions {
		switch c.Op {
		case OpEq:
			if c.Field == FieldAgeWeeks {
				out.Add(paramKey(c.Field, OpEq), FormatValue(c.Value))
			} else {
				out.Add(c.Field, FormatValue(c.Value))
			}
		case OpLt, OpGte, OpLte:
			out.Add(paramKey(c.Field, c.Op), formatFloat(c.Bound))
		case OpRange:
			out.Add(paramKey(c.Field, OpGte), formatFloat(c.Min))
			out.Add(paramKey(c.Field, OpLte), formatFloat(c.Max))
		case OpIn:
			for _, v := range c.Values {
				out.Add(paramKey(c.Field, OpIn), v)
			}
		case OpRegex:
			out.Add(paramKey(c.Field, OpRegex), c.Pattern)
		}
	}
	return out
}

func splitParamKey(key string) (field string, op Op, bracketed bool, err error) {
	key = strings.TrimSpace(key)
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, "", false, nil
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", false, fmt.Errorf("%w: malformed parameter %q", ErrInvalidQuery, key)
	}
	return key[:open], Op(strings.ToLower(key[open+1 : len(key)-1])), true, nil
}

func paramKey(field string, op Op) string {
	return field + "[" + string(op) + "]"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
