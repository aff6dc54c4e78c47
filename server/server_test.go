package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/padangco/seagreen/dashboard"
	"github.com/padangco/seagreen/dataset"
	"github.com/padangco/seagreen/engine"
)

// ── Test Helpers ──────────────────────────────────────────────────────────────

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds := engine.Bind(dataset.NewStore(
		[]dataset.StartupRecord{
			{Industry: "Energy", Activity1: "Solar", Country: "Vietnam", Company: "A", FoundedYear: 2019, CompanyStage: "Seed"},
			{Industry: "Energy", Activity1: "Solar", Country: "Vietnam", Company: "B", FoundedYear: 2021, CompanyStage: "Seed"},
			{Industry: "Waste Management", Activity1: "Recycling", Country: "Thailand", Company: "C", FoundedYear: 2018, CompanyStage: "Series A"},
		},
		[]dataset.FundingPeriodRecord{
			{Country: "VIETNAM", Period: "2023 Q1", FundingAmountMillionUSD: 1.25},
			{Country: "Vietnam", Period: "2023 Q2", FundingAmountMillionUSD: 3},
		},
	))
	reg := prometheus.NewRegistry()
	m := dashboard.NewMetrics(reg)
	d, err := dashboard.NewDispatcher(ds, dashboard.WithMetrics(m))
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	srv := httptest.NewServer(New(d, dashboard.NewRegistry(d, time.Minute, m), reg))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createSession(t *testing.T, base string) string {
	t.Helper()
	resp := do(t, http.MethodPost, base+"/api/sessions", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var body struct{ ID string }
	decode(t, resp, &body)
	return body.ID
}

type viewBody struct {
	View    string          `json:"view"`
	Status  string          `json:"status"`
	Value   json.RawMessage `json:"value"`
	Message string          `json:"message"`
}

type snapshotBody struct {
	Selection struct {
		Countries []string `json:"countries"`
		Stage     *string  `json:"stage"`
	} `json:"selection"`
	Views []viewBody `json:"views"`
}

func (s snapshotBody) view(name string) viewBody {
	for _, v := range s.Views {
		if v.View == name {
			return v
		}
	}
	return viewBody{}
}

// ============================================================================
// TESTS
// ============================================================================

func TestHealthAndReference(t *testing.T) {
	srv := newTestServer(t)

	if resp := do(t, http.MethodGet, srv.URL+"/healthz", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	var ref referenceBody
	decode(t, do(t, http.MethodGet, srv.URL+"/api/reference", ""), &ref)
	if len(ref.Countries) != 6 || len(ref.Stages) != 10 || len(ref.Industries) != 7 {
		t.Errorf("reference sizes = %d/%d/%d", len(ref.Countries), len(ref.Stages), len(ref.Industries))
	}
	if len(ref.Periods) != 2 || ref.Periods[0] != "2023 Q1" {
		t.Errorf("periods = %v", ref.Periods)
	}
}

func TestSessionFlow(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/sessions/" + createSession(t, srv.URL)

	// Fresh session: nothing selected.
	var snap snapshotBody
	decode(t, do(t, http.MethodGet, base+"/views", ""), &snap)
	if got := snap.view(dashboard.ViewCount); string(got.Value) != "0" {
		t.Errorf("initial count = %s", got.Value)
	}
	if got := snap.view(dashboard.ViewDeals); got.Status != dashboard.StatusSelectionRequired {
		t.Errorf("initial deals status = %s", got.Status)
	}

	resp := do(t, http.MethodPut, base+"/countries", `{"countries":["Vietnam"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set countries status = %d", resp.StatusCode)
	}
	decode(t, resp, &snap)
	if got := snap.view(dashboard.ViewCount); string(got.Value) != "2" {
		t.Errorf("count = %s, want 2", got.Value)
	}
	var deals engine.DealSeries
	if err := json.Unmarshal(snap.view(dashboard.ViewDeals).Value, &deals); err != nil {
		t.Fatalf("decode deals: %v", err)
	}
	if len(deals.Periods) != 2 || deals.DealCounts[0] != 1 {
		t.Errorf("deals = %+v", deals)
	}

	decode(t, do(t, http.MethodPut, base+"/stage", `{"stage":"Seed"}`), &snap)
	if snap.Selection.Stage == nil || *snap.Selection.Stage != "Seed" {
		t.Errorf("selection stage = %v", snap.Selection.Stage)
	}
	var sc engine.StageCount
	json.Unmarshal(snap.view(dashboard.ViewStageCount).Value, &sc)
	if sc.Count != 2 {
		t.Errorf("stage count = %+v", sc)
	}

	var one viewBody
	decode(t, do(t, http.MethodGet, base+"/views/"+dashboard.ViewTopIndustries, ""), &one)
	if string(one.Value) != `["Energy"]` {
		t.Errorf("top industries = %s", one.Value)
	}

	decode(t, do(t, http.MethodPut, base+"/stage", `{"stage":""}`), &snap)
	if snap.Selection.Stage != nil {
		t.Errorf("stage should be cleared, got %v", *snap.Selection.Stage)
	}

	if resp := do(t, http.MethodDelete, base, ""); resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	if resp := do(t, http.MethodGet, base+"/views", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("after delete status = %d", resp.StatusCode)
	}
}

func TestErrorResponses(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/sessions/" + createSession(t, srv.URL)

	tests := []struct {
		name       string
		method     string
		url        string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown session", http.MethodGet, srv.URL + "/api/sessions/nope/views", "", http.StatusNotFound, CodeSessionNotFound},
		{"invalid country", http.MethodPut, base + "/countries", `{"countries":["Atlantis"]}`, http.StatusBadRequest, CodeInvalidFilterValue},
		{"invalid stage", http.MethodPut, base + "/stage", `{"stage":"Series Z"}`, http.StatusBadRequest, CodeInvalidFilterValue},
		{"malformed body", http.MethodPut, base + "/countries", `{"countries":`, http.StatusBadRequest, CodeInvalidRequest},
		{"unknown view", http.MethodGet, base + "/views/pie", "", http.StatusNotFound, CodeUnknownView},
		{"unknown chart", http.MethodGet, base + "/charts/pie.png", "", http.StatusNotFound, CodeUnknownChart},
		{"deals without selection", http.MethodGet, base + "/charts/deals.png", "", http.StatusConflict, CodeSelectionRequired},
		{"deals config without selection", http.MethodGet, base + "/charts/deals.json", "", http.StatusConflict, CodeSelectionRequired},
		{"treemap without selection", http.MethodGet, base + "/charts/treemap.png", "", http.StatusConflict, CodeNothingToRender},
		{"unknown chart config", http.MethodGet, base + "/charts/pie.json", "", http.StatusNotFound, CodeUnknownChart},
		{"bad year", http.MethodGet, base + "/table?minYear=soon", "", http.StatusBadRequest, CodeInvalidRequest},
		{"unknown column", http.MethodGet, base + "/table?contains.valuation=1", "", http.StatusBadRequest, CodeUnknownColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, tt.url, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var body errorBody
			decode(t, resp, &body)
			if body.Error != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Error, tt.wantCode)
			}
		})
	}
}

func TestTableQueryEndpoint(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/sessions/" + createSession(t, srv.URL)
	do(t, http.MethodPut, base+"/countries", `{"countries":["Vietnam","Thailand"]}`)

	var tbl engine.TableData
	decode(t, do(t, http.MethodGet, base+"/table?contains.industry=energy&minYear=2020", ""), &tbl)
	if len(tbl.Rows) != 1 || tbl.Rows[0][5] != "B" {
		t.Errorf("rows = %v", tbl.Rows)
	}
}

func TestChartsAndExport(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/sessions/" + createSession(t, srv.URL)
	do(t, http.MethodPut, base+"/countries", `{"countries":["Vietnam"]}`)

	for _, chart := range []string{"heatmap", "treemap", "stages", "deals"} {
		resp := do(t, http.MethodGet, base+"/charts/"+chart+".png", "")
		if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
			t.Errorf("%s: status %d, type %q", chart, resp.StatusCode, resp.Header.Get("Content-Type"))
		}
	}

	resp := do(t, http.MethodGet, base+"/export.xlsx", "")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != xlsxContentType {
		t.Errorf("export: status %d, type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}

func TestChartConfigs(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/sessions/" + createSession(t, srv.URL)
	do(t, http.MethodPut, base+"/countries", `{"countries":["Vietnam"]}`)

	resp := do(t, http.MethodGet, base+"/charts/deals.json", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deals status = %d", resp.StatusCode)
	}
	var deals engine.ChartConfig
	decode(t, resp, &deals)
	if deals.ChartType != "combo" || deals.Y2Axis != engine.LabelDeals || !deals.ShowLegend {
		t.Errorf("deals config = %+v", deals)
	}
	if len(deals.Series) != 2 || deals.Series[1].Axis != "y2" || deals.Series[1].Color != engine.DealBarColor {
		t.Fatalf("deals series = %+v", deals.Series)
	}
	if got := deals.Series[0].Data; len(got) != 2 || got[0].Value != 1.25 || got[1].Value != 3 {
		t.Errorf("funding points = %+v", got)
	}

	resp = do(t, http.MethodGet, base+"/charts/treemap.json", "")
	var treemap engine.ChartConfig
	decode(t, resp, &treemap)
	if treemap.ChartType != "treemap" || len(treemap.Colors) != len(treemap.Series[0].Data) {
		t.Errorf("treemap config = %+v", treemap)
	}
	for _, pt := range treemap.Series[0].Data {
		want := 0.0
		if pt.Label == "Energy" {
			want = 2
		}
		if pt.Value != want {
			t.Errorf("treemap %s = %v, want %v", pt.Label, pt.Value, want)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createSession(t, srv.URL)

	resp := do(t, http.MethodGet, srv.URL+"/metrics", "")
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	for _, name := range []string{"seagreen_active_sessions 1", "seagreen_recomputes_total 1"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("metrics missing %q", name)
		}
	}
}
