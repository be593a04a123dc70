package intent

import (
	"fmt"
	"math"
	"strings"

	"github.com/mind-engage/campusmate/internal/randsrc"
	"github.com/mind-engage/campusmate/internal/records"
)

// rank window for college search, relative to the student's rank
const (
	searchLow  = 0.7
	searchHigh = 1.3
)

// DefaultSearchLimit caps the colleges listed in a search reply.
const DefaultSearchLimit = 5

type Reply struct {
	Intent     Tag     `json:"intent"`
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence"`
}

// Responder answers chat messages. Store may be empty; Rand picks templates
// and the cosmetic confidence.
type Responder struct {
	Store *records.Store
	Rand  randsrc.Source
	Limit int
}

func NewResponder(store *records.Store, rnd randsrc.Source) *Responder {
	if rnd == nil {
		rnd = randsrc.Global()
	}
	return &Responder{Store: store, Rand: rnd, Limit: DefaultSearchLimit}
}

func (r *Responder) Respond(message string) Reply {
	tag := Classify(message)
	return Reply{
		Intent:     tag,
		Response:   r.compose(message, tag),
		Confidence: math.Round((0.80+r.Rand.Float64()*0.19)*100) / 100,
	}
}

func (r *Responder) compose(message string, tag Tag) string {
	e := Extract(message)
	switch {
	case tag == CollegeSearch && e.Any():
		return formatSearch(e, r.Search(e))
	case tag == Cutoff && (e.Course != "" || e.Category != ""):
		if st, ok := r.cutoffStats(e); ok {
			return formatStats(e, st)
		}
	}
	return r.pick(tag)
}

func (r *Responder) pick(tag Tag) string {
	opts := Templates[tag]
	if len(opts) == 0 {
		opts = Templates[Default]
	}
	return opts[r.Rand.Intn(len(opts))]
}

// Search filters by course and category, keeps cutoffs within 0.7x-1.3x of
// the rank when one is given, then keeps only the latest remaining year.
func (r *Responder) Search(e Entities) []records.Record {
	if r.Store == nil || r.Store.Len() == 0 {
		return nil
	}
	rows := r.Store.Filter(records.Filter{Course: e.Course, Category: e.Category})
	if e.Rank > 0 {
		lo, hi := float64(e.Rank)*searchLow, float64(e.Rank)*searchHigh
		kept := rows[:0]
		for _, row := range rows {
			c := float64(row.CutoffRank)
			if c >= lo && c <= hi {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	if len(rows) == 0 {
		return nil
	}
	latest := 0
	for _, row := range rows {
		if row.Year > latest {
			latest = row.Year
		}
	}
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	out := make([]records.Record, 0, limit)
	for _, row := range rows {
		if row.Year == latest {
			out = append(out, row)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func (r *Responder) cutoffStats(e Entities) (records.Stats, bool) {
	if r.Store == nil || r.Store.Len() == 0 {
		return records.Stats{}, false
	}
	st := records.Summarize(r.Store.Filter(records.Filter{Course: e.Course, Category: e.Category}))
	return st, st.Count > 0
}

func describe(e Entities, b *strings.Builder) {
	if e.Course != "" {
		fmt.Fprintf(b, " for %s", e.Course)
	}
	if e.Category != "" {
		fmt.Fprintf(b, " in %s category", e.Category)
	}
}

func formatSearch(e Entities, found []records.Record) string {
	if len(found) == 0 {
		return "No colleges found matching your criteria. Try adjusting your preferences or provide more details!"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d colleges", len(found))
	describe(e, &b)
	if e.Rank > 0 {
		fmt.Fprintf(&b, " matching rank %d", e.Rank)
	}
	b.WriteString(":\n\n")
	for i, c := range found {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.College)
		fmt.Fprintf(&b, "   Course: %s | Category: %s\n", c.Course, c.Category)
		fmt.Fprintf(&b, "   Cutoff Rank: %d | Year: %d\n\n", c.CutoffRank, c.Year)
	}
	return b.String()
}

func formatStats(e Entities, st records.Stats) string {
	var b strings.Builder
	b.WriteString("Cutoff information")
	describe(e, &b)
	b.WriteString(":\n\n")
	fmt.Fprintf(&b, "📊 Average Cutoff: %d\n", int(st.Mean))
	fmt.Fprintf(&b, "🔽 Lowest Cutoff: %d\n", st.Min)
	fmt.Fprintf(&b, "🔼 Highest Cutoff: %d\n\n", st.Max)
	b.WriteString("Want specific college cutoffs? Tell me the college name!")
	return b.String()
}
