// Package admission sorts colleges into Safe/Target/Dream bands for a
// student's rank and scores admission probability against a cutoff.
package admission

import (
	"errors"

	"github.com/mind-engage/campusmate/internal/records"
)

// ErrInvalidRank is returned for a zero or negative rank.
var ErrInvalidRank = errors.New("admission: rank must be a positive integer")

type Band string

const (
	Safe   Band = "safe"
	Target Band = "target"
	Dream  Band = "dream"
)

// Bands in display order.
var Bands = []Band{Safe, Target, Dream}

// Lower bounds of cutoff/rank for each band. Intervals are half-open:
// [1.2, inf) safe, [0.95, 1.2) target, [0.7, 0.95) dream.
const (
	SafeRatio   = 1.2
	TargetRatio = 0.95
	DreamRatio  = 0.7
)

// BandFor places a cutoff relative to rank. ok is false when the college is
// out of reach (ratio below DreamRatio). rank must be positive.
func BandFor(rank, cutoff int) (b Band, ok bool) {
	r := float64(cutoff) / float64(rank)
	switch {
	case r >= SafeRatio:
		return Safe, true
	case r >= TargetRatio:
		return Target, true
	case r >= DreamRatio:
		return Dream, true
	}
	return "", false
}

// Classify partitions already-filtered candidates by band, keeping source
// order inside each band. Every band key is present in the result.
func Classify(rank int, candidates []records.Record) (map[Band][]records.Record, error) {
	if rank <= 0 {
		return nil, ErrInvalidRank
	}
	out := map[Band][]records.Record{
		Safe:   {},
		Target: {},
		Dream:  {},
	}
	for _, c := range candidates {
		if b, ok := BandFor(rank, c.CutoffRank); ok {
			out[b] = append(out[b], c)
		}
	}
	return out, nil
}
