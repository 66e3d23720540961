package dashboard

import (
	"math"
	"sort"

	"shelter-dashboard/internal/domain/animals"
)

const (
	// TopBreeds es el corte del histograma; el resto va a "Other".
	TopBreeds  = 10
	OtherLabel = "Other"

	Unknown = "Unknown"

	FallbackLat = 30.75
	FallbackLng = -97.48
)

// Slice es una porción del histograma de razas.
type Slice struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Histogram agrupa por raza, ordena por cantidad desc (empates: orden de aparición)
// y deja el top 10. "Other" suma TODAS las razas fuera del top 10, sin mirar porcentaje.
// Sin datos de raza devuelve nil.
func Histogram(records []animals.Record) []Slice {
	counts := map[string]int{}
	order := make([]string, 0)
	total := 0

	for _, r := range records {
		breed, ok := r.String(animals.FieldBreed)
		if !ok {
			continue
		}
		if _, seen := counts[breed]; !seen {
			order = append(order, breed)
		}
		counts[breed]++
		total++
	}
	if total == 0 {
		return nil
	}

	out := make([]Slice, 0, len(order))
	for _, b := range order {
		out = append(out, Slice{Label: b, Count: counts[b]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if len(out) > TopBreeds {
		other := 0
		for _, s := range out[TopBreeds:] {
			other += s.Count
		}
		out = append(out[:TopBreeds:TopBreeds], Slice{Label: OtherLabel, Count: other})
	}

	for i := range out {
		out[i].Percent = float64(out[i].Count) / float64(total) * 100
	}
	return out
}

// Marker es un pin del mapa.
type Marker struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Tooltip   string  `json:"tooltip"`
	PopupName string  `json:"popup_name"`
	PopupAge  string  `json:"popup_age"`
}

// Markers devuelve exactamente un marker por record.
// Coordenadas: latitude/longitude, luego location_lat/location_long, luego el fallback.
func Markers(records []animals.Record) []Marker {
	out := make([]Marker, 0, len(records))
	for _, r := range records {
		out = append(out, Marker{
			Lat:       coord(r, FallbackLat, animals.FieldLatitude, animals.FieldLocationLat),
			Lng:       coord(r, FallbackLng, animals.FieldLongitude, animals.FieldLocationLong),
			Tooltip:   r.StringOr(animals.FieldBreed, Unknown),
			PopupName: r.StringOr(animals.FieldName, Unknown),
			PopupAge:  r.StringOr(animals.FieldAgeDescriptor, Unknown),
		})
	}
	return out
}

func coord(r animals.Record, fallback float64, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := r.Float(k); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return fallback
}
