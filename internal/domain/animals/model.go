package animals

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Campos conocidos del dataset de outcomes del refugio.
const (
	FieldID             = "_id"
	FieldAnimalID       = "animal_id"
	FieldAnimalType     = "animal_type"
	FieldBreed          = "breed"
	FieldColor          = "color"
	FieldName           = "name"
	FieldSex            = "sex_upon_outcome"
	FieldAgeWeeks       = "age_upon_outcome_in_weeks"
	FieldAgeDescriptor  = "age_upon_outcome"
	FieldDateOfBirth    = "date_of_birth"
	FieldDateTime       = "datetime"
	FieldMonthYear      = "monthyear"
	FieldOutcomeType    = "outcome_type"
	FieldOutcomeSubtype = "outcome_subtype"
	FieldLatitude       = "latitude"
	FieldLongitude      = "longitude"
	FieldLocationLat    = "location_lat"
	FieldLocationLong   = "location_long"
)

// Record es un documento del refugio tal cual vive en el store.
// Los campos son libres; los helpers toleran ausencias y tipos mezclados.
type Record map[string]any

// ID devuelve el identificador asignado por el store (si viene).
func (r Record) ID() string {
	s, _ := r.String(FieldID)
	return s
}

// WithoutID devuelve una copia sin el identificador interno.
// Nunca muta el record original.
func (r Record) WithoutID() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if k == FieldID {
			continue
		}
		out[k] = v
	}
	return out
}

// Clone hace una copia superficial.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String devuelve el valor como texto no vacío.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	s := strings.TrimSpace(FormatValue(v))
	if s == "" {
		return "", false
	}
	return s, true
}

// Float devuelve el valor numérico (acepta números JSON y strings numéricos).
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	return ToFloat(v)
}

// StringOr devuelve el campo o def cuando falta.
func (r Record) StringOr(key, def string) string {
	if s, ok := r.String(key); ok {
		return s
	}
	return def
}

// ToFloat convierte un valor de documento a float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FormatValue da la representación de texto usada para igualdad y para la tabla.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
