package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelter-dashboard/internal/adapters/storage/memory"
	"shelter-dashboard/internal/domain/animals"
)

const sample = `,age_upon_outcome,animal_id,breed,name,sex_upon_outcome,location_lat,location_long,age_upon_outcome_in_weeks
1,3 years,A1,Newfoundland,Bo,Intact Female,30.5,-97.6,156.0
2,1 year,A2,Beagle,,Neutered Male,n/a,-97.7,52.3
`

func TestParseCSV_TypesAndBlanks(t *testing.T) {
	recs, err := ParseCSV(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	first := recs[0]
	if first[animals.FieldAgeWeeks] != 156.0 || first[animals.FieldLocationLat] != 30.5 {
		t.Fatalf("numeric columns must be floats: %v", first)
	}
	if first[animals.FieldAnimalID] != "A1" {
		t.Fatalf("text column mismatch: %v", first)
	}
	if _, ok := first[""]; ok {
		t.Fatalf("unnamed index column must be dropped")
	}

	second := recs[1]
	if _, ok := second[animals.FieldName]; ok {
		t.Fatalf("empty cells must be omitted: %v", second)
	}
	if second[animals.FieldLocationLat] != "n/a" {
		t.Fatalf("unparseable numbers stay as text: %v", second)
	}
}

func TestLoadIfEmpty_OnlySeedsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.csv")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx := context.Background()
	store := memory.NewAnimalsRepo()

	n, err := LoadIfEmpty(ctx, store, path, nil)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 seeded, got %d err=%v", n, err)
	}

	n, err = LoadIfEmpty(ctx, store, path, nil)
	if err != nil || n != 0 {
		t.Fatalf("second load must be a no-op, got %d err=%v", n, err)
	}

	got, _ := store.Read(ctx, animals.NewQuery(animals.Lt(animals.FieldAgeWeeks, 104)))
	if len(got) != 1 || got[0][animals.FieldBreed] != "Beagle" {
		t.Fatalf("unexpected filtered read: %v", got)
	}
}

func TestLoadIfEmpty_MissingFile(t *testing.T) {
	if _, err := LoadIfEmpty(context.Background(), memory.NewAnimalsRepo(), "/nonexistent/seed.csv", nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
