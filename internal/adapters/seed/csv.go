package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/logger"
)

// Columnas numéricas del export del refugio; el resto queda como texto.
var numericFields = map[string]bool{
	animals.FieldAgeWeeks:     true,
	animals.FieldLocationLat:  true,
	animals.FieldLocationLong: true,
	animals.FieldLatitude:     true,
	animals.FieldLongitude:    true,
}

// ParseCSV lee un CSV con header y devuelve un record por fila.
// Columnas sin nombre (índice exportado por pandas) y celdas vacías se omiten.
func ParseCSV(r io.Reader) ([]animals.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var out []animals.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rec := animals.Record{}
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			rec[header[i]] = cellValue(header[i], cell)
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}

func cellValue(field, cell string) any {
	if !numericFields[field] {
		return cell
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	return f
}

// LoadIfEmpty carga el CSV en el store solo si el store no tiene records.
// Devuelve cuántos records insertó.
func LoadIfEmpty(ctx context.Context, store animals.Store, path string, log logger.Logger) (int, error) {
	if log == nil {
		log = logger.Nop()
	}
	if strings.TrimSpace(path) == "" {
		return 0, nil
	}

	existing, err := store.Read(ctx, animals.NewQuery())
	if err != nil {
		return 0, fmt.Errorf("check store: %w", err)
	}
	if len(existing) > 0 {
		log.Info("seed skipped, store not empty", map[string]any{"records": len(existing)})
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	recs, err := ParseCSV(f)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, rec := range recs {
		if _, err := store.Create(ctx, rec); err != nil {
			return n, fmt.Errorf("seed record %d: %w", n+1, err)
		}
		n++
	}
	log.Info("seed loaded", map[string]any{"path": path, "records": n})
	return n, nil
}
