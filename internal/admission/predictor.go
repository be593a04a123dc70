package admission

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidQuery is returned when a cutoff query lacks course, category or year.
var ErrInvalidQuery = errors.New("admission: course, category and year are required")

// CutoffQuery identifies one college/course/category/year cell.
// College is an optional name fragment; CollegeID feeds the predictors.
type CutoffQuery struct {
	CollegeID int
	College   string
	Course    string
	Category  string
	Year      int
}

func (q CutoffQuery) validate() error {
	if strings.TrimSpace(q.Course) == "" || strings.TrimSpace(q.Category) == "" || q.Year <= 0 {
		return ErrInvalidQuery
	}
	return nil
}

// Predictor estimates a cutoff rank when no historical row exists.
type Predictor interface {
	PredictCutoff(q CutoffQuery) (float64, error)
}

type PredictorKind string

const (
	PredictorMock  PredictorKind = "mock"
	PredictorModel PredictorKind = "model"
)

func ParsePredictorKind(s string) (PredictorKind, error) {
	switch PredictorKind(strings.ToLower(strings.TrimSpace(s))) {
	case PredictorMock, "":
		return PredictorMock, nil
	case PredictorModel:
		return PredictorModel, nil
	}
	return "", fmt.Errorf("unknown predictor %q", s)
}

// Affine placeholder used by MockPredictor: base + id*perCollege + (year-baseYear)*perYear.
const (
	mockBase       = 5000
	mockPerCollege = 100
	mockPerYear    = 50
	mockBaseYear   = 2020
)

// MockPredictor is a deterministic rule-based stand-in for the trained model.
type MockPredictor struct{}

func (MockPredictor) PredictCutoff(q CutoffQuery) (float64, error) {
	return float64(mockBase + q.CollegeID*mockPerCollege + (q.Year-mockBaseYear)*mockPerYear), nil
}

// DefaultIndex is the encoding used for values a model never saw in training.
const DefaultIndex = 0

// Encoder maps categorical values to the integer codes a model was fit on.
type Encoder struct {
	Classes []string
	index   map[string]int
}

func NewEncoder(classes []string) *Encoder {
	e := &Encoder{Classes: classes, index: make(map[string]int, len(classes))}
	for i, c := range classes {
		e.index[c] = i
	}
	return e
}

// Lookup reports the code for v and whether v was a training class.
func (e *Encoder) Lookup(v string) (int, bool) {
	i, ok := e.index[v]
	return i, ok
}

// IndexOr returns the code for v, or def for unseen values.
func (e *Encoder) IndexOr(v string, def int) int {
	if i, ok := e.Lookup(v); ok {
		return i
	}
	return def
}

// LinearModel is a regression over [college, course, category, year] with
// label-encoded categoricals.
type LinearModel struct {
	Intercept float64
	Coef      [4]float64
	College   *Encoder
	Course    *Encoder
	Category  *Encoder
}

type modelArtifact struct {
	Intercept    float64 `json:"intercept"`
	Coefficients struct {
		College  float64 `json:"college"`
		Course   float64 `json:"course"`
		Category float64 `json:"category"`
		Year     float64 `json:"year"`
	} `json:"coefficients"`
	Encoders struct {
		College  []string `json:"college"`
		Course   []string `json:"course"`
		Category []string `json:"category"`
	} `json:"encoders"`
}

// LoadModel reads a JSON model artifact.
func LoadModel(path string) (*LinearModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var a modelArtifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	if len(a.Encoders.Course) == 0 || len(a.Encoders.Category) == 0 {
		return nil, fmt.Errorf("parse model %s: encoders missing", path)
	}
	return &LinearModel{
		Intercept: a.Intercept,
		Coef: [4]float64{
			a.Coefficients.College,
			a.Coefficients.Course,
			a.Coefficients.Category,
			a.Coefficients.Year,
		},
		College:  NewEncoder(a.Encoders.College),
		Course:   NewEncoder(upperAll(a.Encoders.Course)),
		Category: NewEncoder(upperAll(a.Encoders.Category)),
	}, nil
}

// Features encodes q; unseen categorical values get DefaultIndex.
func (m *LinearModel) Features(q CutoffQuery) [4]float64 {
	return [4]float64{
		float64(m.College.IndexOr(strconv.Itoa(q.CollegeID), DefaultIndex)),
		float64(m.Course.IndexOr(strings.ToUpper(q.Course), DefaultIndex)),
		float64(m.Category.IndexOr(strings.ToUpper(q.Category), DefaultIndex)),
		float64(q.Year),
	}
}

func (m *LinearModel) PredictCutoff(q CutoffQuery) (float64, error) {
	x := m.Features(q)
	y := m.Intercept
	for i, c := range m.Coef {
		y += c * x[i]
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("model produced %v", y)
	}
	return math.Max(1, y), nil
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	return out
}
