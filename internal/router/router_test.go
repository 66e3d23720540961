package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	mem "shelter-dashboard/internal/adapters/storage/memory"
	"shelter-dashboard/internal/dashboard"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/rescue"
	"shelter-dashboard/internal/middleware"
	"shelter-dashboard/internal/platform/config"
	"shelter-dashboard/internal/router"
)

// newServer levanta el router completo; el dashboard pide al mismo servidor.
func newServer(t *testing.T, store animals.Store) *httptest.Server {
	t.Helper()
	ts := httptest.NewUnstartedServer(nil)

	cfg := config.Config{
		APIBaseURL:   "http://" + ts.Listener.Addr().String(),
		FetchTimeout: 2 * time.Second,
		Dashboard: config.Dashboard{
			Title:       "Shelter Test",
			Author:      "qa",
			User:        "lilly",
			Role:        "admin",
			MaxSessions: 8,
		},
		CORSOrigins: []string{"*"},
	}

	h, err := router.NewRouter(router.Options{Config: cfg, Store: store})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	ts.Config.Handler = h
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

func seededStore(t *testing.T) animals.Store {
	t.Helper()
	store := mem.NewAnimalsRepo()
	recs := []animals.Record{
		{"name": "A", "breed": "Newfoundland", "sex_upon_outcome": "Intact Female", "age_upon_outcome_in_weeks": 60.0},
		{"name": "B", "breed": "Newfoundland", "sex_upon_outcome": "Intact Female", "age_upon_outcome_in_weeks": 200.0},
		{"name": "C", "breed": "Beagle", "sex_upon_outcome": "Intact Female", "age_upon_outcome_in_weeks": 60.0},
		{"name": "D", "breed": "Labrador Retriever Mix", "sex_upon_outcome": "Spayed Female", "age_upon_outcome_in_weeks": 60.0},
		{"name": "E", "breed": "Chesapeake Bay Retriever", "sex_upon_outcome": "Intact Female", "age_upon_outcome_in_weeks": 26.0},
		{"name": "F", "breed": "German Shepherd", "sex_upon_outcome": "Intact Male", "age_upon_outcome_in_weeks": 104.0},
	}
	for _, r := range recs {
		if _, err := store.Create(context.Background(), r); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return store
}

func doReq(t *testing.T, method, target string, headers map[string]string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, target, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func listNames(t *testing.T, baseURL, query string) []string {
	t.Helper()
	st, body := doReq(t, http.MethodGet, baseURL+"/api/animals?"+query, nil, nil)
	if st != http.StatusOK {
		t.Fatalf("list %q: expected 200, got %d body=%s", query, st, body)
	}
	var recs []map[string]any
	if err := json.Unmarshal(body, &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r["name"].(string))
	}
	return names
}

func TestHTTP_API_CreateAndList(t *testing.T) {
	ts := newServer(t, mem.NewAnimalsRepo())

	if names := listNames(t, ts.URL, ""); len(names) != 0 {
		t.Fatalf("expected empty store, got %v", names)
	}

	st, body := doReq(t, http.MethodPost, ts.URL+"/api/animals", nil, map[string]any{
		"name": "Milo", "breed": "Beagle", "age_upon_outcome_in_weeks": 30,
	})
	if st != http.StatusOK || !strings.Contains(string(body), `"status":"success"`) {
		t.Fatalf("expected success, got %d body=%s", st, body)
	}

	if names := listNames(t, ts.URL, "breed=Beagle"); len(names) != 1 || names[0] != "Milo" {
		t.Fatalf("unexpected list: %v", names)
	}
}

func TestHTTP_API_NonAdminCannotCreate(t *testing.T) {
	ts := newServer(t, seededStore(t))
	before := len(listNames(t, ts.URL, ""))

	st, body := doReq(t, http.MethodPost, ts.URL+"/api/animals",
		map[string]string{middleware.HeaderDebugRole: "user"},
		map[string]any{"name": "Sneaky", "breed": "Beagle"})
	if st != http.StatusForbidden || strings.TrimSpace(string(body)) != `{"error":"Unauthorized"}` {
		t.Fatalf("expected 403 Unauthorized, got %d body=%s", st, body)
	}

	if after := len(listNames(t, ts.URL, "")); after != before {
		t.Fatalf("store changed on rejected create: %d -> %d", before, after)
	}
}

func TestHTTP_API_InvalidBody(t *testing.T) {
	ts := newServer(t, mem.NewAnimalsRepo())

	st, _ := doReq(t, http.MethodPost, ts.URL+"/api/animals", nil, map[string]any{"latitude": 500})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid latitude, got %d", st)
	}
	st, _ = doReq(t, http.MethodPost, ts.URL+"/api/animals", nil, []int{1, 2})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-object body, got %d", st)
	}
}

func TestHTTP_API_AgeParamIsLessThan(t *testing.T) {
	ts := newServer(t, seededStore(t))

	names := listNames(t, ts.URL, "age_upon_outcome_in_weeks=60")
	if len(names) != 1 || names[0] != "E" {
		t.Fatalf("expected only E (26 < 60), got %v", names)
	}
	if names = listNames(t, ts.URL, "age_upon_outcome_in_weeks=52"); strings.Join(names, ",") != "E" {
		t.Fatalf("expected only E (26 < 52), got %v", names)
	}

	st, _ := doReq(t, http.MethodGet, ts.URL+"/api/animals?age_upon_outcome_in_weeks=abc", nil, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer age, got %d", st)
	}
	st, _ = doReq(t, http.MethodGet, ts.URL+"/api/animals?breed%5Blike%5D=x", nil, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown operator, got %d", st)
	}
}

func TestHTTP_API_BracketOperators(t *testing.T) {
	ts := newServer(t, seededStore(t))

	q := url.Values{}
	q.Add("breed[in]", "Newfoundland")
	q.Add("breed[in]", "Beagle")
	q.Add("age_upon_outcome_in_weeks[lte]", "100")
	names := listNames(t, ts.URL, q.Encode())
	if strings.Join(names, ",") != "A,C" {
		t.Fatalf("expected A,C, got %v", names)
	}

	q = url.Values{"sex_upon_outcome[regex]": {"Intact Male"}}
	if names = listNames(t, ts.URL, q.Encode()); strings.Join(names, ",") != "F" {
		t.Fatalf("expected F, got %v", names)
	}
}

func fetchState(t *testing.T, client *http.Client, baseURL, query string) dashboard.Rendered {
	t.Helper()
	resp, err := client.Get(baseURL + "/dashboard/state?" + query)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("state %q: expected 200, got %d body=%s", query, resp.StatusCode, b)
	}
	var out dashboard.Rendered
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return out
}

func nameColumn(t *testing.T, s dashboard.Rendered) []string {
	t.Helper()
	idx := -1
	for i, c := range s.Table.Columns {
		if c == animals.FieldName {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("name column missing: %v", s.Table.Columns)
	}
	out := make([]string, 0, len(s.Table.Rows))
	for _, row := range s.Table.Rows {
		out = append(out, row[idx])
	}
	return out
}

func TestHTTP_Dashboard_FiltersThroughAPI(t *testing.T) {
	ts := newServer(t, seededStore(t))
	client := ts.Client()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("jar: %v", err)
	}
	client.Jar = jar

	all := fetchState(t, client, ts.URL, "filter=all")
	if all.Filter != rescue.LabelAll || strings.Join(nameColumn(t, all), ",") != "A,C,D,E" {
		t.Fatalf("All must keep only age < 104, got %v", nameColumn(t, all))
	}
	if len(all.Map.Markers) != 4 || all.Chart.Placeholder != "" {
		t.Fatalf("expected 4 markers and a chart, got %+v", all)
	}
	for _, m := range all.Map.Markers {
		if m.Lat != dashboard.FallbackLat || m.Lng != dashboard.FallbackLng {
			t.Fatalf("records without coordinates must use the fallback, got %+v", m)
		}
	}

	water := fetchState(t, client, ts.URL, url.Values{"filter": {rescue.LabelWater}}.Encode())
	if water.Filter != rescue.LabelWater || strings.Join(nameColumn(t, water), ",") != "A,E" {
		t.Fatalf("unexpected water rescue rows: %v", nameColumn(t, water))
	}
	for _, row := range water.Table.Rows {
		for _, cell := range row {
			if strings.Contains(cell, "Spayed") {
				t.Fatalf("sex constraint violated: %v", row)
			}
		}
	}

	st, _ := doReq(t, http.MethodGet, ts.URL+"/dashboard/state?filter=Space+Rescue", nil, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown filter, got %d", st)
	}
}

func TestHTTP_Dashboard_ReloadShowsCreatedRecords(t *testing.T) {
	ts := newServer(t, seededStore(t))
	client := ts.Client()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("jar: %v", err)
	}
	client.Jar = jar

	if before := fetchState(t, client, ts.URL, "filter=All"); len(before.Table.Rows) != 4 {
		t.Fatalf("expected 4 rows before create, got %v", nameColumn(t, before))
	}

	st, body := doReq(t, http.MethodPost, ts.URL+"/api/animals", nil, map[string]any{
		"name": "G", "breed": "Beagle", "age_upon_outcome_in_weeks": 10,
	})
	if st != http.StatusOK {
		t.Fatalf("create: %d %s", st, body)
	}
	api := listNames(t, ts.URL, "age_upon_outcome_in_weeks%5Blt%5D=104")

	for _, query := range []string{"filter=All", ""} {
		got := nameColumn(t, fetchState(t, client, ts.URL, query))
		if len(got) != len(api) || got[len(got)-1] != "G" {
			t.Fatalf("reload %q: dashboard shows %v, api has %v", query, got, api)
		}
	}
}

func TestHTTP_Dashboard_PageAndHealth(t *testing.T) {
	ts := newServer(t, seededStore(t))

	st, body := doReq(t, http.MethodGet, ts.URL+"/", nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 page, got %d", st)
	}
	for _, want := range []string{"Shelter Test", dashboard.ChartTitle, "Disaster or Individual Tracking", "L.map"} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("page missing %q", want)
		}
	}

	if st, body = doReq(t, http.MethodGet, ts.URL+"/health", nil, nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, body)
	}

	st, body = doReq(t, http.MethodGet, ts.URL+"/metrics", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "dashboard_fetches_total") {
		t.Fatalf("metrics missing dashboard fetches: %d", st)
	}
}
