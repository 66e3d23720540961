package rescue

import (
	"errors"
	"fmt"
	"strings"

	"shelter-dashboard/internal/domain/animals"
)

const (
	LabelAll      = "All"
	LabelWater    = "Water Rescue"
	LabelMountain = "Mountain or Wilderness Rescue"
	LabelDisaster = "Disaster or Individual Tracking"
)

// AllMaxAgeWeeks es la cota exclusiva del filtro "All".
const AllMaxAgeWeeks = 104

var ErrUnknownFilter = errors.New("unknown filter")

// UnknownFilterError es un error de configuración: el label no existe en el catálogo.
type UnknownFilterError struct {
	Label string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Label)
}

func (e *UnknownFilterError) Is(target error) bool { return target == ErrUnknownFilter }

// Descriptor es el predicado de un tipo de rescate.
// AgeMaxExclusive solo aplica a "All" (edad < 104).
type Descriptor struct {
	Label           string
	Breeds          []string
	SexPattern      string
	AgeMinWeeks     int
	AgeMaxWeeks     int
	AgeMaxExclusive bool
}

// catalog es una tabla plana; no hay lógica por tipo.
var catalog = map[string]Descriptor{
	LabelWater: {
		Label:       LabelWater,
		Breeds:      []string{"Labrador Retriever Mix", "Chesapeake Bay Retriever", "Newfoundland"},
		SexPattern:  "Intact Female",
		AgeMinWeeks: 26,
		AgeMaxWeeks: 156,
	},
	LabelMountain: {
		Label:       LabelMountain,
		Breeds:      []string{"German Shepherd", "Alaskan Malamute", "Old English Sheepdog", "Siberian Husky", "Rottweiler"},
		SexPattern:  "Intact Male",
		AgeMinWeeks: 26,
		AgeMaxWeeks: 156,
	},
	LabelDisaster: {
		Label:       LabelDisaster,
		Breeds:      []string{"Doberman Pinscher", "German Shepherd", "Golden Retriever", "Bloodhound", "Rottweiler"},
		SexPattern:  "Intact Male",
		AgeMinWeeks: 20,
		AgeMaxWeeks: 300,
	},
}

var allDescriptor = Descriptor{
	Label:           LabelAll,
	AgeMinWeeks:     0,
	AgeMaxWeeks:     AllMaxAgeWeeks,
	AgeMaxExclusive: true,
}

// Labels devuelve las opciones del dropdown en orden de pantalla.
func Labels() []string {
	return []string{LabelAll, LabelWater, LabelMountain, LabelDisaster}
}

// Resolve busca el descriptor. "All" acepta cualquier capitalización.
func Resolve(label string) (Descriptor, error) {
	label = strings.TrimSpace(label)
	if strings.EqualFold(label, LabelAll) {
		return allDescriptor, nil
	}
	d, ok := catalog[label]
	if !ok {
		return Descriptor{}, &UnknownFilterError{Label: label}
	}
	d.Breeds = append([]string(nil), d.Breeds...)
	return d, nil
}

// Query traduce el descriptor a la query del store:
// breed -> in, sexo -> regex, edad -> range (o lt para "All").
func (d Descriptor) Query() animals.Query {
	var q animals.Query
	if len(d.Breeds) > 0 {
		q = q.Where(animals.In(animals.FieldBreed, d.Breeds...))
	}
	if d.SexPattern != "" {
		q = q.Where(animals.Regex(animals.FieldSex, d.SexPattern))
	}
	if d.AgeMaxExclusive {
		q = q.Where(animals.Lt(animals.FieldAgeWeeks, float64(d.AgeMaxWeeks)))
		if d.AgeMinWeeks > 0 {
			q = q.Where(animals.Gte(animals.FieldAgeWeeks, float64(d.AgeMinWeeks)))
		}
		return q
	}
	return q.Where(animals.Between(animals.FieldAgeWeeks, float64(d.AgeMinWeeks), float64(d.AgeMaxWeeks)))
}

// Matches evalúa el descriptor sobre un record ya traído.
func (d Descriptor) Matches(r animals.Record) bool {
	match, err := d.Query().Matcher()
	if err != nil {
		return false
	}
	return match(r)
}
