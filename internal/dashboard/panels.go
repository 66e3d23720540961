package dashboard

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"shelter-dashboard/internal/domain/animals"
)

const (
	NoData      = "No data available"
	NoBreedData = "No breed data available"

	ChartTitle = "Breed Distribution (Top 10 + Other)"

	chartRadius = 150.0
	chartCenter = 160.0

	MapZoom = 10
)

// Paleta qualitative Set3.
var chartColors = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Columnas conocidas del dataset en el orden de la tabla; el resto va después, ordenado.
var columnOrder = []string{
	animals.FieldAnimalID,
	animals.FieldAnimalType,
	animals.FieldBreed,
	animals.FieldColor,
	animals.FieldDateOfBirth,
	animals.FieldDateTime,
	animals.FieldMonthYear,
	animals.FieldName,
	animals.FieldOutcomeSubtype,
	animals.FieldOutcomeType,
	animals.FieldSex,
	animals.FieldAgeDescriptor,
	animals.FieldAgeWeeks,
	animals.FieldLocationLat,
	animals.FieldLocationLong,
	animals.FieldLatitude,
	animals.FieldLongitude,
}

type TablePanel struct {
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	Total       int        `json:"total"`
	Page        int        `json:"page"`
	PageCount   int        `json:"page_count"`
	PageSize    int        `json:"page_size"`
	SortColumn  string     `json:"sort_column,omitempty"`
	SortDesc    bool       `json:"sort_desc,omitempty"`
	Selected    int        `json:"selected"`
	Placeholder string     `json:"placeholder,omitempty"`
}

type ChartSlice struct {
	Slice
	Color  string  `json:"color"`
	Path   string  `json:"path,omitempty"` // SVG; vacío si es el círculo completo
	Full   bool    `json:"full,omitempty"`
	LabelX float64 `json:"label_x"`
	LabelY float64 `json:"label_y"`
}

type ChartPanel struct {
	Title       string       `json:"title"`
	Slices      []ChartSlice `json:"slices,omitempty"`
	Size        float64      `json:"size"`
	Placeholder string       `json:"placeholder,omitempty"`
}

type MapPanel struct {
	CenterLat   float64  `json:"center_lat"`
	CenterLng   float64  `json:"center_lng"`
	Zoom        int      `json:"zoom"`
	Markers     []Marker `json:"markers,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// BuildTable: filas de la tabla (todas las columnas del resultado, página visible).
func BuildTable(s Snapshot) TablePanel {
	t := TablePanel{
		Columns:    Columns(s.Rows),
		Total:      len(s.Rows),
		Page:       s.Page,
		PageCount:  s.PageCount,
		PageSize:   s.PageSize,
		SortColumn: s.SortColumn,
		SortDesc:   s.SortDesc,
		Selected:   s.Selected,
	}
	if len(s.Visible) == 0 {
		t.Placeholder = NoData
		return t
	}

	t.Rows = make([][]string, 0, len(s.Visible))
	for _, r := range s.Visible {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = animals.FormatValue(r[c])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Columns devuelve la unión de claves (sin _id) en orden estable.
func Columns(rows []animals.Record) []string {
	present := map[string]struct{}{}
	for _, r := range rows {
		for k := range r {
			if k == animals.FieldID {
				continue
			}
			present[k] = struct{}{}
		}
	}

	out := make([]string, 0, len(present))
	for _, c := range columnOrder {
		if _, ok := present[c]; ok {
			out = append(out, c)
			delete(present, c)
		}
	}
	rest := make([]string, 0, len(present))
	for k := range present {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// BuildChart depende solo de las filas visibles.
func BuildChart(visible []animals.Record) ChartPanel {
	p := ChartPanel{Title: ChartTitle, Size: 2 * chartCenter}
	if len(visible) == 0 {
		p.Placeholder = NoData
		return p
	}

	hist := Histogram(visible)
	if len(hist) == 0 {
		p.Placeholder = NoBreedData
		return p
	}

	total := 0
	for _, s := range hist {
		total += s.Count
	}

	angle := -math.Pi / 2 // arranca arriba
	for i, s := range hist {
		sweep := float64(s.Count) / float64(total) * 2 * math.Pi
		mid := angle + sweep/2
		cs := ChartSlice{
			Slice:  s,
			Color:  chartColors[i%len(chartColors)],
			LabelX: round2(chartCenter + 0.65*chartRadius*math.Cos(mid)),
			LabelY: round2(chartCenter + 0.65*chartRadius*math.Sin(mid)),
		}
		if len(hist) == 1 {
			cs.Full = true
		} else {
			cs.Path = arcPath(angle, angle+sweep)
		}
		p.Slices = append(p.Slices, cs)
		angle += sweep
	}
	return p
}

// BuildMap depende solo de las filas visibles.
func BuildMap(visible []animals.Record) MapPanel {
	p := MapPanel{CenterLat: FallbackLat, CenterLng: FallbackLng, Zoom: MapZoom}
	if len(visible) == 0 {
		p.Placeholder = NoData
		return p
	}
	p.Markers = Markers(visible)
	return p
}

func arcPath(from, to float64) string {
	x1 := chartCenter + chartRadius*math.Cos(from)
	y1 := chartCenter + chartRadius*math.Sin(from)
	x2 := chartCenter + chartRadius*math.Cos(to)
	y2 := chartCenter + chartRadius*math.Sin(to)
	large := 0
	if to-from > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		chartCenter, chartCenter, x1, y1, chartRadius, chartRadius, large, x2, y2)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Panels guarda el último render de cada panel. Bind registra tres
// suscripciones independientes sobre la View, una por panel.
type Panels struct {
	mu    sync.RWMutex
	table TablePanel
	chart ChartPanel
	mapP  MapPanel

	filter   string
	fetchErr error
}

func Bind(v *View) *Panels {
	p := &Panels{}
	v.Subscribe(func(s Snapshot) {
		t := BuildTable(s)
		p.mu.Lock()
		p.table, p.filter, p.fetchErr = t, s.Filter, s.FetchErr
		p.mu.Unlock()
	})
	v.Subscribe(func(s Snapshot) {
		c := BuildChart(s.Visible)
		p.mu.Lock()
		p.chart = c
		p.mu.Unlock()
	})
	v.Subscribe(func(s Snapshot) {
		m := BuildMap(s.Visible)
		p.mu.Lock()
		p.mapP = m
		p.mu.Unlock()
	})
	return p
}

// Rendered es la foto de los tres paneles.
type Rendered struct {
	Filter string     `json:"filter"`
	Error  string     `json:"error,omitempty"`
	Table  TablePanel `json:"table"`
	Chart  ChartPanel `json:"chart"`
	Map    MapPanel   `json:"map"`
}

func (p *Panels) Current() Rendered {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := Rendered{
		Filter: p.filter,
		Table:  p.table,
		Chart:  p.chart,
		Map:    p.mapP,
	}
	if p.fetchErr != nil {
		out.Error = p.fetchErr.Error()
	}
	return out
}
