package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mind-engage/campusmate/internal/admission"
	"github.com/mind-engage/campusmate/internal/config"
	"github.com/mind-engage/campusmate/internal/logger"
	"github.com/mind-engage/campusmate/internal/records"
)

func testStore() *records.Store {
	return records.NewStore([]records.Record{
		{CollegeID: 1, College: "Anna University", Course: "CSE", Category: "OC", Year: 2023, CutoffRank: 10000},
		{CollegeID: 2, College: "PSG Tech", Course: "CSE", Category: "OC", Year: 2023, CutoffRank: 5000},
		{CollegeID: 1, College: "Anna University", Course: "CSE", Category: "OC", Year: 2022, CutoffRank: 9500},
		{CollegeID: 1, College: "Anna University", Course: "ECE", Category: "BC", Year: 2023, CutoffRank: 15000},
	})
}

func testConfig() config.Config {
	return config.Config{RecommendLimit: 5, CORSOrigins: []string{"http://localhost:3000"}, DataSource: "csv"}
}

func predictorRouter(store *records.Store) http.Handler {
	return NewPredictorRouter(PredictorDeps{
		Config:    testConfig(),
		Log:       logger.Nop(),
		Data:      records.NewLive(nil, store),
		Predictor: admission.MockPredictor{},
		Estimator: admission.SmoothEstimator{},
	})
}

func do(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestPredictorRootAndHealth(t *testing.T) {
	h := predictorRouter(testStore())

	rec := do(t, h, http.MethodGet, "/", nil, "")
	var root struct {
		Status  string `json:"status"`
		Records int    `json:"records"`
		Years   []int  `json:"years"`
	}
	decodeBody(t, rec, &root)
	if root.Status != "ok" || root.Records != 4 || len(root.Years) != 2 || root.Years[1] != 2023 {
		t.Fatalf("root=%+v", root)
	}
	if rec := do(t, h, http.MethodGet, "/healthz", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz=%d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/readyz", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz=%d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/metrics", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics=%d", rec.Code)
	}
}

func TestPredictCutoff(t *testing.T) {
	h := predictorRouter(testStore())

	rec := do(t, h, http.MethodPost, "/predict-cutoff",
		map[string]any{"college_id": 1, "course": "cse", "category": "oc", "year": 2023}, "")
	var c admission.Cutoff
	decodeBody(t, rec, &c)
	if c.Rank != 10000 || c.Source != admission.SourceHistorical {
		t.Fatalf("historical: %+v", c)
	}

	rec = do(t, h, http.MethodPost, "/predict-cutoff",
		map[string]any{"college_id": 7, "course": "CSE", "category": "OC", "year": 2025}, "")
	c = admission.Cutoff{}
	decodeBody(t, rec, &c)
	if c.Rank != 5950 || c.Source != admission.SourceEstimated {
		t.Fatalf("estimated: %+v", c)
	}

	// name lookup wins over id
	rec = do(t, h, http.MethodPost, "/predict-cutoff",
		map[string]any{"college": "psg", "course": "CSE", "category": "OC"}, "")
	c = admission.Cutoff{}
	decodeBody(t, rec, &c)
	if c.Rank != 5000 || c.Source != admission.SourceHistorical {
		t.Fatalf("by name, latest year: %+v", c)
	}

	if rec := do(t, h, http.MethodPost, "/predict-cutoff", map[string]any{"college_id": 1, "year": 2023}, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing course: code=%d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/predict-cutoff", "{not json", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: code=%d", rec.Code)
	}
}

func TestAdmissionProbability(t *testing.T) {
	h := predictorRouter(testStore())

	rec := do(t, h, http.MethodPost, "/admission-probability",
		map[string]any{"college_id": 1, "course": "CSE", "category": "OC", "year": 2023, "rank": 10000}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
	var out probabilityResp
	decodeBody(t, rec, &out)
	if out.Probability != 0.5 || out.PredictedCutoff != 10000 || out.Strategy != admission.StrategySmooth || out.Range != nil {
		t.Fatalf("out=%+v", out)
	}

	for _, rank := range []int{0, -3} {
		rec := do(t, h, http.MethodPost, "/admission-probability",
			map[string]any{"college_id": 1, "course": "CSE", "category": "OC", "year": 2023, "rank": rank}, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("rank %d: code=%d", rank, rec.Code)
		}
	}
}

func TestAdmissionProbabilityBanded(t *testing.T) {
	h := NewPredictorRouter(PredictorDeps{
		Config:    testConfig(),
		Data:      records.NewLive(nil, testStore()),
		Estimator: admission.BandedEstimator{},
	})
	rec := do(t, h, http.MethodPost, "/admission-probability",
		map[string]any{"college_id": 1, "course": "CSE", "category": "OC", "year": 2023, "rank": 8000}, "")
	var out probabilityResp
	decodeBody(t, rec, &out)
	if out.Strategy != admission.StrategyBanded || out.Range == nil || !out.Range.Contains(out.Probability) {
		t.Fatalf("out=%+v", out)
	}
}

func TestTrends(t *testing.T) {
	h := predictorRouter(testStore())
	var out struct {
		Trends []trendPoint `json:"trends"`
	}
	decodeBody(t, do(t, h, http.MethodPost, "/trends", map[string]any{"college_id": 1, "course": "cse"}, ""), &out)
	if len(out.Trends) != 2 || out.Trends[0].Year != 2023 || out.Trends[1].CutoffRank != 9500 {
		t.Fatalf("trends=%+v", out.Trends)
	}

	out.Trends = nil
	decodeBody(t, do(t, h, http.MethodPost, "/trends", map[string]any{"college_id": 1, "course": "CSE", "years": []int{2022}}, ""), &out)
	if len(out.Trends) != 1 || out.Trends[0].Year != 2022 {
		t.Fatalf("filtered trends=%+v", out.Trends)
	}

	if rec := do(t, h, http.MethodPost, "/trends", map[string]any{"course": "CSE"}, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing college: code=%d", rec.Code)
	}
}

func TestRecommend(t *testing.T) {
	h := predictorRouter(testStore())

	rec := do(t, h, http.MethodPost, "/recommend", map[string]any{"rank": 8000, "course": "CSE", "category": "OC"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
	var out admission.Recommendation
	decodeBody(t, rec, &out)
	if out.Year != 2023 || len(out.Safe) != 1 || len(out.Target) != 0 || len(out.Dream) != 0 {
		t.Fatalf("out=%+v", out)
	}
	if out.Safe[0].College != "Anna University" || out.Safe[0].Band != admission.Safe {
		t.Fatalf("safe=%+v", out.Safe[0])
	}

	if rec := do(t, h, http.MethodPost, "/recommend", map[string]any{"rank": 0, "course": "CSE"}, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("rank 0: code=%d", rec.Code)
	}
}

func TestColleges(t *testing.T) {
	h := predictorRouter(testStore())
	var rows []records.Record
	decodeBody(t, do(t, h, http.MethodGet, "/colleges?course=cse&year=2023", nil, ""), &rows)
	if len(rows) != 2 {
		t.Fatalf("rows=%+v", rows)
	}
	if rec := do(t, h, http.MethodGet, "/colleges?year=soon", nil, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad year: code=%d", rec.Code)
	}
}

func TestPredictorEmptyStore(t *testing.T) {
	h := predictorRouter(records.NewStore(nil))

	if rec := do(t, h, http.MethodGet, "/readyz", nil, ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz=%d", rec.Code)
	}
	rec := do(t, h, http.MethodPost, "/predict-cutoff", map[string]any{"college_id": 1, "course": "CSE", "category": "OC"}, "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "no data") {
		t.Fatalf("code=%d body=%q", rec.Code, rec.Body)
	}
	// an explicit year still gets an estimate
	rec = do(t, h, http.MethodPost, "/predict-cutoff", map[string]any{"college_id": 1, "course": "CSE", "category": "OC", "year": 2024}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("explicit year: code=%d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/recommend", map[string]any{"rank": 100, "course": "CSE", "category": "OC"}, "")
	var out admission.Recommendation
	decodeBody(t, rec, &out)
	if out.Count() != 0 || out.Safe == nil {
		t.Fatalf("out=%+v", out)
	}
}
