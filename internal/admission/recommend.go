package admission

import (
	"github.com/mind-engage/campusmate/internal/records"
)

// DefaultLimit caps each band in a recommendation.
const DefaultLimit = 5

// Query is a student's rank and preferences. Year 0, or a year the store
// does not have, means the latest year.
type Query struct {
	Rank     int    `json:"rank"`
	Course   string `json:"course"`
	Category string `json:"category"`
	Year     int    `json:"year,omitempty"`
}

// College is a classified record.
type College struct {
	records.Record
	Band        Band    `json:"band"`
	Probability float64 `json:"probability"`
}

type Recommendation struct {
	Year   int       `json:"year"`
	Safe   []College `json:"safe"`
	Target []College `json:"target"`
	Dream  []College `json:"dream"`
}

// Options tune Recommend. Limit 0 means DefaultLimit, negative means no cap.
type Options struct {
	Limit     int
	Estimator Estimator
}

// Recommend resolves the year, filters the store, classifies and scores.
// An empty store yields an empty recommendation.
func Recommend(store *records.Store, q Query, opts Options) (Recommendation, error) {
	if q.Rank <= 0 {
		return Recommendation{}, ErrInvalidRank
	}
	out := Recommendation{Safe: []College{}, Target: []College{}, Dream: []College{}}
	if store == nil || store.Len() == 0 {
		return out, nil
	}
	year, err := store.ResolveYear(q.Year)
	if err != nil {
		return out, nil
	}
	out.Year = year

	candidates := store.Filter(records.Filter{Course: q.Course, Category: q.Category, Year: year})
	bands, err := Classify(q.Rank, candidates)
	if err != nil {
		return Recommendation{}, err
	}

	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	est := opts.Estimator
	if est == nil {
		est = SmoothEstimator{}
	}
	score := func(b Band) []College {
		rows := bands[b]
		if limit > 0 && len(rows) > limit {
			rows = rows[:limit]
		}
		cs := make([]College, 0, len(rows))
		for _, r := range rows {
			cs = append(cs, College{
				Record:      r,
				Band:        b,
				Probability: est.Estimate(r.CutoffRank, q.Rank).Probability,
			})
		}
		return cs
	}
	out.Safe = score(Safe)
	out.Target = score(Target)
	out.Dream = score(Dream)
	return out, nil
}

// Count is the number of colleges across all bands.
func (r Recommendation) Count() int { return len(r.Safe) + len(r.Target) + len(r.Dream) }
