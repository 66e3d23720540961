package dashboard

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/rescue"
)

const DefaultPageSize = 10

// ErrSuperseded: el resultado de un fetch se descartó porque empezó otro más nuevo.
var ErrSuperseded = errors.New("fetch superseded by a newer filter selection")

// Snapshot es el estado de la vista entregado a cada suscriptor.
// Visible es lo que la tabla muestra (orden + página), no el resultado crudo.
type Snapshot struct {
	Version uint64

	Filter   string
	Loaded   bool
	FetchErr error

	Rows    []animals.Record
	Visible []animals.Record

	Page       int
	PageCount  int
	PageSize   int
	SortColumn string
	SortDesc   bool
	Selected   int
}

// View es dueña del estado de una sesión. Cada cambio publica un Snapshot a
// todos los suscriptores, en orden y bajo el lock de la vista: los
// suscriptores no deben llamar de vuelta a la View.
type View struct {
	fetcher  Fetcher
	pageSize int

	mu       sync.Mutex
	fetchSeq uint64
	version  uint64
	subs     []func(Snapshot)

	filter     string
	loaded     bool
	fetchErr   error
	rows       []animals.Record
	page       int
	sortColumn string
	sortDesc   bool
	selected   int
}

func NewView(fetcher Fetcher, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{
		fetcher:  fetcher,
		pageSize: pageSize,
		filter:   rescue.LabelAll,
	}
}

// Subscribe registra una recomputación y la corre enseguida con el estado actual.
func (v *View) Subscribe(fn func(Snapshot)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.subs = append(v.subs, fn)
	fn(v.snapshotLocked())
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// SelectFilter trae los records del filtro y reemplaza las filas de la tabla.
// Un label desconocido no toca el estado. Si mientras tanto arrancó otra
// selección, el resultado se descarta y se devuelve ErrSuperseded.
// Un error de red deja la tabla vacía (placeholder) y se devuelve igual.
func (v *View) SelectFilter(ctx context.Context, label string) error {
	d, err := rescue.Resolve(label)
	if err != nil {
		return err
	}
	return v.load(ctx, d.Label, false)
}

// Refresh vuelve a pedir el filtro actual. Conserva orden, página y fila
// (ajustadas al nuevo resultado); un error previo se limpia si el fetch anda.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	label := v.filter
	v.mu.Unlock()
	return v.load(ctx, label, true)
}

func (v *View) load(ctx context.Context, label string, keepPosition bool) error {
	v.mu.Lock()
	v.fetchSeq++
	seq := v.fetchSeq
	v.mu.Unlock()

	rows, err := v.fetcher.Fetch(ctx, label)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.fetchSeq {
		return ErrSuperseded
	}
	if errors.Is(err, rescue.ErrUnknownFilter) {
		return err
	}

	v.filter = label
	v.loaded = true
	v.fetchErr = err
	v.rows = rows
	if err != nil {
		v.rows = nil
	}
	if keepPosition {
		v.page = clamp(v.page, 0, pageCount(len(v.rows), v.pageSize)-1)
		visible := len(visibleRows(v.rows, v.sortColumn, v.sortDesc, v.page, v.pageSize))
		v.selected = clamp(v.selected, 0, visible-1)
	} else {
		v.page = 0
		v.selected = 0
	}
	v.publishLocked()
	return err
}

// SetPage cambia de página (se ajusta al rango válido).
func (v *View) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.page = clamp(page, 0, pageCount(len(v.rows), v.pageSize)-1)
	v.selected = 0
	v.publishLocked()
}

// SortBy ordena la tabla por column; "" vuelve al orden del fetch.
func (v *View) SortBy(column string, desc bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sortColumn = strings.TrimSpace(column)
	v.sortDesc = desc && v.sortColumn != ""
	v.publishLocked()
}

// SelectRow marca una fila de la página visible.
func (v *View) SelectRow(i int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	visible := len(visibleRows(v.rows, v.sortColumn, v.sortDesc, v.page, v.pageSize))
	v.selected = clamp(i, 0, visible-1)
	v.publishLocked()
}

func (v *View) publishLocked() {
	v.version++
	s := v.snapshotLocked()
	for _, fn := range v.subs {
		fn(s)
	}
}

func (v *View) snapshotLocked() Snapshot {
	return Snapshot{
		Version:    v.version,
		Filter:     v.filter,
		Loaded:     v.loaded,
		FetchErr:   v.fetchErr,
		Rows:       v.rows,
		Visible:    visibleRows(v.rows, v.sortColumn, v.sortDesc, v.page, v.pageSize),
		Page:       v.page,
		PageCount:  pageCount(len(v.rows), v.pageSize),
		PageSize:   v.pageSize,
		SortColumn: v.sortColumn,
		SortDesc:   v.sortDesc,
		Selected:   v.selected,
	}
}

// visibleRows es puro: ordena una copia (estable) y recorta la página.
func visibleRows(rows []animals.Record, column string, desc bool, page, size int) []animals.Record {
	if len(rows) == 0 {
		return nil
	}

	sorted := rows
	if column != "" {
		sorted = append([]animals.Record(nil), rows...)
		sort.SliceStable(sorted, func(i, j int) bool {
			c := compareField(sorted[i], sorted[j], column)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	start := page * size
	if start >= len(sorted) {
		return nil
	}
	end := start + size
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end]
}

// compareField: numérico si ambos lo son, si no texto; faltantes siempre al final
// en orden ascendente.
func compareField(a, b animals.Record, field string) int {
	as, aok := a.String(field)
	bs, bok := b.String(field)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	if af, ok := a.Float(field); ok {
		if bf, ok := b.Float(field); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(as, bs)
}

func pageCount(n, size int) int {
	if n == 0 || size <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
