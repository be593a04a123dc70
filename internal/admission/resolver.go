package admission

import (
	"math"

	"github.com/mind-engage/campusmate/internal/records"
)

type CutoffSource string

const (
	SourceHistorical CutoffSource = "historical"
	SourceEstimated  CutoffSource = "estimated"
)

// Cutoff is a resolved cutoff rank and where it came from.
type Cutoff struct {
	Rank   int             `json:"predicted_cutoff_rank"`
	Source CutoffSource    `json:"source"`
	Record *records.Record `json:"record,omitempty"`
}

// Resolver prefers an exact historical row and falls back to a Predictor.
type Resolver struct {
	Store     *records.Store
	Predictor Predictor
}

// Resolve looks the cell up by college name when one is given, by id
// otherwise. The requested year is matched exactly.
func (r *Resolver) Resolve(q CutoffQuery) (Cutoff, error) {
	if err := q.validate(); err != nil {
		return Cutoff{}, err
	}
	if r.Store != nil {
		var (
			rec records.Record
			ok  bool
		)
		if q.College != "" {
			rec, ok = r.Store.Find(q.College, q.Course, q.Category, q.Year)
		} else {
			rec, ok = r.Store.FindByID(q.CollegeID, q.Course, q.Category, q.Year)
		}
		if ok {
			return Cutoff{Rank: rec.CutoffRank, Source: SourceHistorical, Record: &rec}, nil
		}
	}
	p := r.Predictor
	if p == nil {
		p = MockPredictor{}
	}
	v, err := p.PredictCutoff(q)
	if err != nil {
		return Cutoff{}, err
	}
	return Cutoff{Rank: int(math.Round(v)), Source: SourceEstimated}, nil
}

// Assessment is a resolved cutoff plus the probability for one rank.
type Assessment struct {
	Cutoff
	Estimate
}

// Assess validates rank before resolving anything.
func (r *Resolver) Assess(q CutoffQuery, rank int, est Estimator) (Assessment, error) {
	if rank <= 0 {
		return Assessment{}, ErrInvalidRank
	}
	c, err := r.Resolve(q)
	if err != nil {
		return Assessment{}, err
	}
	if est == nil {
		est = SmoothEstimator{}
	}
	return Assessment{Cutoff: c, Estimate: est.Estimate(c.Rank, rank)}, nil
}
