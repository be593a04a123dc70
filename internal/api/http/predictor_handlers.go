package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mind-engage/campusmate/internal/admission"
	"github.com/mind-engage/campusmate/internal/metrics"
	"github.com/mind-engage/campusmate/internal/records"
)

type cutoffReq struct {
	CollegeID int    `json:"college_id"`
	College   string `json:"college"`
	Course    string `json:"course"`
	Category  string `json:"category"`
	Year      int    `json:"year"`
	Rank      int    `json:"rank"`
}

// query resolves a missing year to the latest one in the store.
func (c cutoffReq) query(store *records.Store) (admission.CutoffQuery, error) {
	q := admission.CutoffQuery{
		CollegeID: c.CollegeID,
		College:   strings.TrimSpace(c.College),
		Course:    c.Course,
		Category:  c.Category,
		Year:      c.Year,
	}
	if q.Year == 0 {
		y, err := store.LatestYear()
		if err != nil {
			return q, err
		}
		q.Year = y
	}
	return q, nil
}

// GET /
func PredictorRootHandler(data *records.Live) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := data.Store()
		status := "ok"
		if s.Len() == 0 {
			status = "no data"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "CampusMate predictor service",
			"status":  status,
			"records": s.Len(),
			"years":   s.Years(),
		})
	}
}

// POST /predict-cutoff  { "college_id": 1, "college": "...", "course": "CSE", "category": "OC", "year": 2024 }
func PredictCutoffHandler(data *records.Live, p admission.Predictor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cutoffReq
		if !decode(w, r, &req) {
			return
		}
		store := data.Store()
		q, err := req.query(store)
		if err != nil {
			writeError(w, err)
			return
		}
		res := admission.Resolver{Store: store, Predictor: p}
		c, err := res.Resolve(q)
		if err != nil {
			writeError(w, err)
			return
		}
		metrics.CutoffResolutions.WithLabelValues(string(c.Source)).Inc()
		writeJSON(w, http.StatusOK, c)
	}
}

type probabilityResp struct {
	Probability     float64                `json:"probability"`
	PredictedCutoff int                    `json:"predicted_cutoff"`
	Source          admission.CutoffSource `json:"source"`
	Strategy        admission.Strategy     `json:"strategy"`
	Range           *admission.Range       `json:"range,omitempty"`
}

// POST /admission-probability  (cutoff request + "rank")
func AdmissionProbabilityHandler(data *records.Live, p admission.Predictor, est admission.Estimator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cutoffReq
		if !decode(w, r, &req) {
			return
		}
		if req.Rank <= 0 {
			writeError(w, admission.ErrInvalidRank)
			return
		}
		store := data.Store()
		q, err := req.query(store)
		if err != nil {
			writeError(w, err)
			return
		}
		res := admission.Resolver{Store: store, Predictor: p}
		a, err := res.Assess(q, req.Rank, est)
		if err != nil {
			writeError(w, err)
			return
		}
		metrics.CutoffResolutions.WithLabelValues(string(a.Source)).Inc()
		writeJSON(w, http.StatusOK, probabilityResp{
			Probability:     a.Probability,
			PredictedCutoff: a.Cutoff.Rank,
			Source:          a.Source,
			Strategy:        a.Strategy,
			Range:           a.Range,
		})
	}
}

type trendPoint struct {
	Year       int    `json:"year"`
	Category   string `json:"category"`
	CutoffRank int    `json:"cutoff_rank"`
}

// POST /trends  { "college_id": 1, "course": "CSE", "years": [2022, 2023] }
func TrendsHandler(data *records.Live) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CollegeID int    `json:"college_id"`
			Course    string `json:"course"`
			Years     []int  `json:"years"`
		}
		if !decode(w, r, &req) {
			return
		}
		if req.CollegeID <= 0 || strings.TrimSpace(req.Course) == "" {
			http.Error(w, "college_id and course are required", http.StatusBadRequest)
			return
		}
		rows := data.Store().Trends(req.CollegeID, req.Course, req.Years)
		out := make([]trendPoint, 0, len(rows))
		for _, rec := range rows {
			out = append(out, trendPoint{Year: rec.Year, Category: rec.Category, CutoffRank: rec.CutoffRank})
		}
		writeJSON(w, http.StatusOK, map[string]any{"trends": out})
	}
}

// POST /recommend  { "rank": 9000, "course": "CSE", "category": "OC", "year": 2024, "limit": 5 }
func RecommendHandler(data *records.Live, est admission.Estimator, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			admission.Query
			Limit int `json:"limit"`
		}
		if !decode(w, r, &req) {
			return
		}
		opts := admission.Options{Limit: limit, Estimator: est}
		if req.Limit > 0 {
			opts.Limit = req.Limit
		}
		rec, err := admission.Recommend(data.Store(), req.Query, opts)
		if err != nil {
			writeError(w, err)
			return
		}
		metrics.Recommended.WithLabelValues(string(admission.Safe)).Add(float64(len(rec.Safe)))
		metrics.Recommended.WithLabelValues(string(admission.Target)).Add(float64(len(rec.Target)))
		metrics.Recommended.WithLabelValues(string(admission.Dream)).Add(float64(len(rec.Dream)))
		writeJSON(w, http.StatusOK, rec)
	}
}

// GET /colleges?course=CSE&category=OC&year=2024
func CollegesHandler(data *records.Live) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := records.Filter{Course: q.Get("course"), Category: q.Get("category")}
		if y := q.Get("year"); y != "" {
			year, err := strconv.Atoi(y)
			if err != nil || year < 0 {
				http.Error(w, "bad year", http.StatusBadRequest)
				return
			}
			f.Year = year
		}
		writeJSON(w, http.StatusOK, data.Store().Filter(f))
	}
}

// GET /admin/records/stats?course=&category=&year=
func RecordStatsHandler(data *records.Live) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := records.Filter{Course: q.Get("course"), Category: q.Get("category")}
		if y := q.Get("year"); y != "" {
			year, err := strconv.Atoi(y)
			if err != nil {
				http.Error(w, "bad year", http.StatusBadRequest)
				return
			}
			f.Year = year
		}
		s := data.Store()
		rows := s.Filter(f)
		if len(rows) == 0 && s.Len() == 0 {
			writeError(w, records.ErrEmptyStore)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"stats":      records.Summarize(rows),
			"years":      s.Years(),
			"courses":    s.Courses(),
			"categories": s.Categories(),
		})
	}
}
