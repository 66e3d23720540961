package dashboard

import (
	"context"
	"strings"
	"testing"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/rescue"
)

func TestColumns_KnownOrderThenSorted(t *testing.T) {
	cols := Columns([]animals.Record{
		{animals.FieldID: "x", "zeta": 1, animals.FieldName: "Rex", animals.FieldBreed: "Mix"},
		{"alpha": true},
	})
	want := []string{animals.FieldBreed, animals.FieldName, "alpha", "zeta"}
	if strings.Join(cols, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, cols)
	}
}

func TestBuildChart_Placeholders(t *testing.T) {
	if p := BuildChart(nil); p.Placeholder != NoData || len(p.Slices) != 0 {
		t.Fatalf("expected no-data placeholder, got %+v", p)
	}
	if p := BuildChart([]animals.Record{{animals.FieldName: "Rex"}}); p.Placeholder != NoBreedData {
		t.Fatalf("expected no-breed placeholder, got %+v", p)
	}
}

func TestBuildChart_SingleBreedIsFullCircle(t *testing.T) {
	p := BuildChart([]animals.Record{{animals.FieldBreed: "Beagle"}, {animals.FieldBreed: "Beagle"}})
	if p.Title != ChartTitle || len(p.Slices) != 1 || !p.Slices[0].Full || p.Slices[0].Path != "" {
		t.Fatalf("unexpected chart: %+v", p)
	}
}

func TestBuildChart_ArcPerSlice(t *testing.T) {
	p := BuildChart(breeds(3, 1))
	if len(p.Slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(p.Slices))
	}
	if !strings.Contains(p.Slices[0].Path, " 0 1 1 ") {
		t.Fatalf("75%% slice must use the large arc flag, got %q", p.Slices[0].Path)
	}
	if !strings.Contains(p.Slices[1].Path, " 0 0 1 ") {
		t.Fatalf("25%% slice must use the small arc flag, got %q", p.Slices[1].Path)
	}
	if p.Slices[0].Color == p.Slices[1].Color {
		t.Fatalf("slices must get distinct colors")
	}
}

func TestBuildMap_CenterAndPlaceholder(t *testing.T) {
	p := BuildMap(nil)
	if p.Placeholder != NoData || p.CenterLat != FallbackLat || p.CenterLng != FallbackLng || p.Zoom != MapZoom {
		t.Fatalf("unexpected empty map: %+v", p)
	}
	if p = BuildMap(numbered(3)); len(p.Markers) != 3 || p.Placeholder != "" {
		t.Fatalf("expected 3 markers, got %+v", p)
	}
}

func TestBind_PanelsFollowVisibleRows(t *testing.T) {
	rows := numbered(12)
	rows[11][animals.FieldBreed] = "Poodle"
	f := &fakeFetcher{data: map[string][]animals.Record{rescue.LabelAll: rows}}
	v := NewView(f, 10)
	p := Bind(v)

	if cur := p.Current(); cur.Table.Placeholder != NoData || cur.Chart.Placeholder != NoData {
		t.Fatalf("expected placeholders before load, got %+v", cur)
	}

	_ = v.SelectFilter(context.Background(), rescue.LabelAll)
	cur := p.Current()
	if len(cur.Table.Rows) != 10 || len(cur.Map.Markers) != 10 {
		t.Fatalf("expected first page in table and map, got table=%d map=%d", len(cur.Table.Rows), len(cur.Map.Markers))
	}
	if len(cur.Chart.Slices) != 1 {
		t.Fatalf("first page has a single breed, got %v", cur.Chart.Slices)
	}

	v.SetPage(1)
	cur = p.Current()
	if len(cur.Table.Rows) != 2 || len(cur.Map.Markers) != 2 || len(cur.Chart.Slices) != 2 {
		t.Fatalf("panels must follow the visible page, got %+v", cur)
	}
	if cur.Filter != rescue.LabelAll {
		t.Fatalf("expected filter All, got %q", cur.Filter)
	}
}
