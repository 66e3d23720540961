package animals

import (
	"errors"
	"net/url"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{FieldID: "1", FieldBreed: "Newfoundland", FieldSex: "Intact Female", FieldAgeWeeks: 52.0},
		{FieldID: "2", FieldBreed: "Beagle", FieldSex: "Neutered Male", FieldAgeWeeks: 104.0},
		{FieldID: "3", FieldBreed: "Newfoundland", FieldSex: "Spayed Female", FieldAgeWeeks: 30},
		{FieldID: "4", FieldName: "Ghost"},
	}
}

func ids(recs []Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID())
	}
	return out
}

func TestFilter_Operators(t *testing.T) {
	cases := []struct {
		name string
		q    Query
		want []string
	}{
		{"empty query returns all", NewQuery(), []string{"1", "2", "3", "4"}},
		{"eq string", NewQuery(Eq(FieldBreed, "Beagle")), []string{"2"}},
		{"eq numeric from string", NewQuery(Eq(FieldAgeWeeks, "30")), []string{"3"}},
		{"lt", NewQuery(Lt(FieldAgeWeeks, 104)), []string{"1", "3"}},
		{"gte", NewQuery(Gte(FieldAgeWeeks, 52)), []string{"1", "2"}},
		{"lte", NewQuery(Lte(FieldAgeWeeks, 52)), []string{"1", "3"}},
		{"range inclusive", NewQuery(Between(FieldAgeWeeks, 30, 52)), []string{"1", "3"}},
		{"in", NewQuery(In(FieldBreed, "Newfoundland", "Poodle")), []string{"1", "3"}},
		{"regex substring", NewQuery(Regex(FieldSex, "Intact Female")), []string{"1"}},
		{"and", NewQuery(In(FieldBreed, "Newfoundland"), Regex(FieldSex, "Female"), Lt(FieldAgeWeeks, 40)), []string{"3"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Filter(sampleRecords(), c.q)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(c.want) {
				t.Fatalf("expected %v, got %v", c.want, gotIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != c.want[i] {
					t.Fatalf("expected %v, got %v", c.want, gotIDs)
				}
			}
		})
	}
}

func TestFilter_InAndRegexCompareUntrimmedText(t *testing.T) {
	recs := []Record{
		{FieldID: "1", FieldBreed: "Beagle  ", FieldSex: " Intact Female"},
		{FieldID: "2", FieldBreed: "Beagle", FieldSex: "Intact Female"},
		{FieldID: "3", FieldBreed: "   "},
	}

	got, err := Filter(recs, NewQuery(In(FieldBreed, "Beagle")))
	if err != nil || len(got) != 1 || got[0].ID() != "2" {
		t.Fatalf("in must not trim stored values, got %v err=%v", ids(got), err)
	}
	if got, _ = Filter(recs, NewQuery(In(FieldBreed, "Beagle  "))); len(got) != 1 || got[0].ID() != "1" {
		t.Fatalf("in must match the exact stored text, got %v", ids(got))
	}
	if got, _ = Filter(recs, NewQuery(Regex(FieldSex, "^Intact"))); len(got) != 1 || got[0].ID() != "2" {
		t.Fatalf("regex must see leading spaces, got %v", ids(got))
	}
	if got, _ = Filter(recs, NewQuery(Regex(FieldBreed, "^ +$"))); len(got) != 1 || got[0].ID() != "3" {
		t.Fatalf("whitespace-only values are still present, got %v", ids(got))
	}
}

func TestQuery_Validate_RejectsMalformed(t *testing.T) {
	bad := []Query{
		NewQuery(Condition{Field: "", Op: OpEq, Value: "x"}),
		NewQuery(Condition{Field: "breed", Op: "near"}),
		NewQuery(In(FieldBreed)),
		NewQuery(Regex(FieldSex, "(")),
		NewQuery(Between(FieldAgeWeeks, 10, 5)),
	}
	for i, q := range bad {
		if err := q.Validate(); !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("case %d: expected ErrInvalidQuery, got %v", i, err)
		}
	}
}

func TestParseParams_AgeIsUpperBound(t *testing.T) {
	q, err := ParseParams(url.Values{FieldAgeWeeks: {"52"}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(q.Conditions) != 1 || q.Conditions[0].Op != OpLt || q.Conditions[0].Bound != 52 {
		t.Fatalf("expected lt 52, got %+v", q.Conditions)
	}

	got, _ := Filter(sampleRecords(), q)
	for _, r := range got {
		if n, _ := r.Float(FieldAgeWeeks); n >= 52 {
			t.Fatalf("expected strictly below 52, got %v", n)
		}
	}
}

func TestParseParams_OperatorsAndErrors(t *testing.T) {
	q, err := ParseParams(url.Values{
		"breed[in]":             {"Newfoundland", "Beagle"},
		"sex_upon_outcome":      {"Intact Female"},
		FieldAgeWeeks + "[gte]": {"26"},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, _ := Filter(sampleRecords(), q)
	if len(got) != 1 || got[0].ID() != "1" {
		t.Fatalf("unexpected result: %v", ids(got))
	}

	for _, v := range []url.Values{
		{FieldAgeWeeks: {"abc"}},
		{"breed[near]": {"x"}},
		{"breed[in": {"x"}},
		{FieldAgeWeeks + "[lt]": {"ten"}},
	} {
		if _, err := ParseParams(v); !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("params %v: expected ErrInvalidQuery, got %v", v, err)
		}
	}
}

func TestEncodeParams_ParsesBackToSameSelection(t *testing.T) {
	q := NewQuery(
		In(FieldBreed, "Newfoundland", "Beagle"),
		Regex(FieldSex, "Intact"),
		Between(FieldAgeWeeks, 26, 156),
	)

	back, err := ParseParams(EncodeParams(q))
	if err != nil {
		t.Fatalf("parse encoded: %v", err)
	}

	want, _ := Filter(sampleRecords(), q)
	got, _ := Filter(sampleRecords(), back)
	if len(want) != len(got) || len(got) != 1 || got[0].ID() != "1" {
		t.Fatalf("expected same selection, want %v got %v", ids(want), ids(got))
	}
}

func TestRecord_WithoutID(t *testing.T) {
	r := Record{FieldID: "x", FieldBreed: "Beagle"}
	s := r.WithoutID()
	if _, ok := s[FieldID]; ok {
		t.Fatalf("expected _id stripped")
	}
	if r.ID() != "x" {
		t.Fatalf("original must not be mutated")
	}
}
