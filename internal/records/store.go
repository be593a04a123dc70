package records

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Store is an immutable in-memory table. All methods are safe for concurrent use.
type Store struct {
	rows   []Record
	years  map[int]struct{}
	latest int
}

// NewStore builds a store over rows, keeping their order. Course and category
// codes are normalized to upper case.
func NewStore(rows []Record) *Store {
	s := &Store{
		rows:  make([]Record, len(rows)),
		years: make(map[int]struct{}),
	}
	for i, r := range rows {
		r.Course = NormalizeCode(r.Course)
		r.Category = NormalizeCode(r.Category)
		r.College = strings.TrimSpace(r.College)
		s.rows[i] = r
		s.years[r.Year] = struct{}{}
		if r.Year > s.latest {
			s.latest = r.Year
		}
	}
	return s
}

// Load reads every record from src. Any failure is reported as ErrDataUnavailable.
func Load(ctx context.Context, src Source) (*Store, error) {
	rows, err := src.Records(ctx)
	if err != nil {
		if errors.Is(err, ErrDataUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return NewStore(rows), nil
}

// Open applies the startup policy: with allowEmpty a load failure degrades to an
// empty store and the error is still returned for logging; without it the
// caller gets a nil store and must refuse to serve.
func Open(ctx context.Context, src Source, allowEmpty bool) (*Store, error) {
	s, err := Load(ctx, src)
	if err == nil {
		return s, nil
	}
	if allowEmpty {
		return NewStore(nil), err
	}
	return nil, err
}

func (s *Store) Len() int { return len(s.rows) }

// All returns a copy of every record in source order.
func (s *Store) All() []Record {
	out := make([]Record, len(s.rows))
	copy(out, s.rows)
	return out
}

// Filter returns records matching every non-zero field of f, in source order.
func (s *Store) Filter(f Filter) []Record {
	out := []Record{}
	for _, r := range s.rows {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// LatestYear returns the most recent year present.
func (s *Store) LatestYear() (int, error) {
	if len(s.rows) == 0 {
		return 0, ErrEmptyStore
	}
	return s.latest, nil
}

func (s *Store) HasYear(year int) bool {
	_, ok := s.years[year]
	return ok
}

// ResolveYear returns year when the store has it and the latest year otherwise.
// Zero means no year was requested.
func (s *Store) ResolveYear(year int) (int, error) {
	if year != 0 && s.HasYear(year) {
		return year, nil
	}
	return s.LatestYear()
}

// Find matches college as a case-insensitive substring of the college name and
// the other fields exactly. The first match in source order wins.
func (s *Store) Find(college, course, category string, year int) (Record, bool) {
	if year == 0 {
		return Record{}, false
	}
	needle := strings.ToLower(strings.TrimSpace(college))
	f := Filter{Course: course, Category: category, Year: year}
	for _, r := range s.rows {
		if f.match(r) && strings.Contains(strings.ToLower(r.College), needle) {
			return r, true
		}
	}
	return Record{}, false
}

// FindByID is Find keyed on the numeric college id.
func (s *Store) FindByID(collegeID int, course, category string, year int) (Record, bool) {
	if collegeID == 0 || year == 0 {
		return Record{}, false
	}
	f := Filter{Course: course, Category: category, Year: year}
	for _, r := range s.rows {
		if r.CollegeID == collegeID && f.match(r) {
			return r, true
		}
	}
	return Record{}, false
}

// Trends returns the history of one college and course, optionally limited to years.
func (s *Store) Trends(collegeID int, course string, years []int) []Record {
	want := make(map[int]struct{}, len(years))
	for _, y := range years {
		want[y] = struct{}{}
	}
	out := []Record{}
	for _, r := range s.rows {
		if r.CollegeID != collegeID || !strings.EqualFold(r.Course, course) {
			continue
		}
		if len(want) > 0 {
			if _, ok := want[r.Year]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Years lists the distinct years, ascending.
func (s *Store) Years() []int {
	out := make([]int, 0, len(s.years))
	for y := range s.years {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

func (s *Store) Courses() []string    { return s.distinct(func(r Record) string { return r.Course }) }
func (s *Store) Categories() []string { return s.distinct(func(r Record) string { return r.Category }) }

// distinct keeps first-seen order.
func (s *Store) distinct(key func(Record) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range s.rows {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
