// Package records holds the historical cutoff table both services read from.
// A Store is populated once at startup and never mutated afterwards.
package records

import (
	"errors"
	"strings"
)

var (
	// ErrDataUnavailable means the tabular source was missing or malformed.
	ErrDataUnavailable = errors.New("records: data unavailable")
	// ErrEmptyStore is returned by LatestYear when nothing was loaded.
	ErrEmptyStore = errors.New("records: empty store")
)

// Record is one historical (college, course, category, year) cutoff.
type Record struct {
	CollegeID  int    `json:"college_id,omitempty"`
	College    string `json:"college_name"`
	Course     string `json:"course"`
	Category   string `json:"category"`
	Year       int    `json:"year"`
	CutoffRank int    `json:"cutoff_rank"`
}

// Validate checks the fields a stored row must carry.
func (r Record) Validate() error {
	switch {
	case strings.TrimSpace(r.College) == "" && r.CollegeID <= 0:
		return errors.New("college name or id required")
	case strings.TrimSpace(r.Course) == "" || strings.TrimSpace(r.Category) == "":
		return errors.New("course and category required")
	case r.Year <= 0:
		return errors.New("year must be positive")
	case r.CutoffRank <= 0:
		return errors.New("cutoff_rank must be positive")
	}
	return nil
}

// Filter selects records; zero-valued fields match everything.
type Filter struct {
	Course   string
	Category string
	Year     int
}

func (f Filter) match(r Record) bool {
	if f.Course != "" && !strings.EqualFold(f.Course, r.Course) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, r.Category) {
		return false
	}
	if f.Year != 0 && f.Year != r.Year {
		return false
	}
	return true
}

// NormalizeCode upper-cases and trims a course or category code.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
