package records

// Stats aggregates cutoff ranks over a set of records.
type Stats struct {
	Count int     `json:"count"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summarize computes Stats; the zero value is returned for no records.
func Summarize(rows []Record) Stats {
	if len(rows) == 0 {
		return Stats{}
	}
	st := Stats{Count: len(rows), Min: rows[0].CutoffRank, Max: rows[0].CutoffRank}
	sum := 0
	for _, r := range rows {
		sum += r.CutoffRank
		if r.CutoffRank < st.Min {
			st.Min = r.CutoffRank
		}
		if r.CutoffRank > st.Max {
			st.Max = r.CutoffRank
		}
	}
	st.Mean = float64(sum) / float64(len(rows))
	return st
}
