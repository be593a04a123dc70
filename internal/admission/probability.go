package admission

import (
	"fmt"
	"math"
	"strings"

	"github.com/mind-engage/campusmate/internal/randsrc"
)

type Strategy string

const (
	StrategySmooth Strategy = "smooth"
	StrategyBanded Strategy = "banded"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategySmooth, "":
		return StrategySmooth, nil
	case StrategyBanded:
		return StrategyBanded, nil
	}
	return "", fmt.Errorf("unknown probability strategy %q", s)
}

// Smooth maps (cutoff - rank) through a logistic curve scaled by 10% of the
// cutoff. Equal cutoff and rank give exactly 0.5.
func Smooth(cutoff, rank float64) float64 {
	diff := cutoff - rank
	scale := math.Max(1, cutoff*0.1)
	p := 1 / (1 + math.Exp(-diff/scale))
	return round4(clamp01(p))
}

// Range is a probability interval [Lo, Hi), or [Lo, Hi] when Closed.
type Range struct {
	Lo     float64 `json:"lo"`
	Hi     float64 `json:"hi"`
	Closed bool    `json:"-"`
}

func (r Range) Contains(p float64) bool {
	if p < r.Lo {
		return false
	}
	if r.Closed {
		return p <= r.Hi
	}
	return p < r.Hi
}

func (r Range) Midpoint() float64 { return (r.Lo + r.Hi) / 2 }

// banded table keyed on rank/cutoff, checked in order with ratio <= maxRatio
var bandedTable = []struct {
	maxRatio float64
	rng      Range
}{
	{0.8, Range{Lo: 0.85, Hi: 0.99, Closed: true}},
	{0.95, Range{Lo: 0.65, Hi: 0.85}},
	{1.1, Range{Lo: 0.45, Hi: 0.65}},
	{1.3, Range{Lo: 0.25, Hi: 0.45}},
	{math.Inf(1), Range{Lo: 0.05, Hi: 0.20}},
}

// BandedRange picks the probability range for ratio = rank/cutoff.
// A non-positive cutoff falls into the lowest range.
func BandedRange(cutoff, rank float64) Range {
	if cutoff <= 0 {
		return bandedTable[len(bandedTable)-1].rng
	}
	ratio := rank / cutoff
	for _, b := range bandedTable {
		if ratio <= b.maxRatio {
			return b.rng
		}
	}
	return bandedTable[len(bandedTable)-1].rng
}

// Banded draws uniformly inside BandedRange, or returns its midpoint when rnd
// is nil. The value is truncated to 4 decimals and never leaves the range.
func Banded(cutoff, rank float64, rnd randsrc.Source) float64 {
	rg := BandedRange(cutoff, rank)
	p := rg.Midpoint()
	if rnd != nil {
		p = rg.Lo + rnd.Float64()*(rg.Hi-rg.Lo)
	}
	p = math.Min(p, 1.0)
	p = math.Floor(p*1e4+1e-9) / 1e4
	if p < rg.Lo {
		p = rg.Lo
	}
	if !rg.Closed && p >= rg.Hi {
		p = rg.Hi - 1e-4
	}
	return p
}

// Estimate is a probability with the strategy that produced it.
type Estimate struct {
	Probability float64  `json:"probability"`
	Strategy    Strategy `json:"strategy"`
	Range       *Range   `json:"range,omitempty"`
}

type Estimator interface {
	Estimate(cutoff, rank int) Estimate
}

type SmoothEstimator struct{}

func (SmoothEstimator) Estimate(cutoff, rank int) Estimate {
	return Estimate{Probability: Smooth(float64(cutoff), float64(rank)), Strategy: StrategySmooth}
}

// BandedEstimator jitters inside the band when Rand is set and uses the
// midpoint otherwise.
type BandedEstimator struct {
	Rand randsrc.Source
}

func (e BandedEstimator) Estimate(cutoff, rank int) Estimate {
	rg := BandedRange(float64(cutoff), float64(rank))
	return Estimate{
		Probability: Banded(float64(cutoff), float64(rank), e.Rand),
		Strategy:    StrategyBanded,
		Range:       &rg,
	}
}

// NewEstimator builds the estimator for s. jitter only affects the banded strategy.
func NewEstimator(s Strategy, jitter bool, rnd randsrc.Source) (Estimator, error) {
	switch s {
	case StrategySmooth:
		return SmoothEstimator{}, nil
	case StrategyBanded:
		if !jitter {
			return BandedEstimator{}, nil
		}
		if rnd == nil {
			rnd = randsrc.Global()
		}
		return BandedEstimator{Rand: rnd}, nil
	}
	return nil, fmt.Errorf("unknown probability strategy %q", s)
}

func clamp01(p float64) float64 { return math.Min(1, math.Max(0, p)) }

func round4(p float64) float64 { return math.Round(p*1e4) / 1e4 }
