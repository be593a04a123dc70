package records

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func sampleStore() *Store {
	return NewStore([]Record{
		{CollegeID: 1, College: "Anna University", Course: "cse", Category: "oc", Year: 2022, CutoffRank: 1200},
		{CollegeID: 2, College: "PSG Tech", Course: "CSE", Category: "OC", Year: 2023, CutoffRank: 3000},
		{CollegeID: 1, College: "Anna University", Course: "CSE", Category: "OC", Year: 2023, CutoffRank: 1500},
		{CollegeID: 3, College: "CIT", Course: "ECE", Category: "BC", Year: 2023, CutoffRank: 9000},
		{CollegeID: 1, College: "Anna University", Course: "CSE", Category: "BC", Year: 2021, CutoffRank: 2500},
	})
}

func TestFilterSourceOrderAndPredicates(t *testing.T) {
	s := sampleStore()

	got := s.Filter(Filter{Course: "cse", Category: "OC"})
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	wantOrder := []int{1200, 3000, 1500}
	for i, r := range got {
		if r.CutoffRank != wantOrder[i] {
			t.Errorf("row %d: expected cutoff %d, got %d", i, wantOrder[i], r.CutoffRank)
		}
	}

	if n := len(s.Filter(Filter{})); n != s.Len() {
		t.Errorf("empty filter should match all, got %d", n)
	}
	if n := len(s.Filter(Filter{Year: 2023})); n != 3 {
		t.Errorf("year filter: expected 3, got %d", n)
	}
	if got := s.Filter(Filter{Course: "MECH"}); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestLatestYearAndResolve(t *testing.T) {
	s := sampleStore()
	y, err := s.LatestYear()
	if err != nil || y != 2023 {
		t.Fatalf("latest year: %d %v", y, err)
	}
	cases := map[int]int{0: 2023, 2021: 2021, 2019: 2023, 2030: 2023}
	for in, want := range cases {
		got, err := s.ResolveYear(in)
		if err != nil {
			t.Fatalf("resolve %d: %v", in, err)
		}
		if got != want {
			t.Errorf("resolve %d: expected %d, got %d", in, want, got)
		}
	}
}

func TestYearFallbackMatchesLatest(t *testing.T) {
	s := sampleStore()
	missing, _ := s.ResolveYear(1999)
	latest, _ := s.LatestYear()
	a := s.Filter(Filter{Course: "CSE", Category: "OC", Year: missing})
	b := s.Filter(Filter{Course: "CSE", Category: "OC", Year: latest})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("fallback result differs: %v vs %v", a, b)
	}
}

func TestEmptyStore(t *testing.T) {
	s := NewStore(nil)
	if _, err := s.LatestYear(); !errors.Is(err, ErrEmptyStore) {
		t.Fatalf("expected ErrEmptyStore, got %v", err)
	}
	if _, err := s.ResolveYear(2023); !errors.Is(err, ErrEmptyStore) {
		t.Fatalf("expected ErrEmptyStore from ResolveYear, got %v", err)
	}
	if got := s.Filter(Filter{Course: "CSE"}); len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
	if _, ok := s.Find("anna", "CSE", "OC", 2023); ok {
		t.Error("find on empty store should miss")
	}
}

func TestFind(t *testing.T) {
	s := sampleStore()

	r, ok := s.Find("ANNA", "cse", "oc", 2023)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.CutoffRank != 1500 {
		t.Errorf("expected 2023 row, got %+v", r)
	}

	if _, ok := s.Find("anna", "CSE", "OC", 2020); ok {
		t.Error("year must match exactly")
	}
	if _, ok := s.Find("nowhere", "CSE", "OC", 2023); ok {
		t.Error("unexpected match")
	}

	// Empty substring matches the first row for the key.
	r, ok = s.Find("", "CSE", "OC", 2023)
	if !ok || r.College != "PSG Tech" {
		t.Errorf("expected first row in source order, got %+v", r)
	}
}

func TestFindByIDAndTrends(t *testing.T) {
	s := sampleStore()
	r, ok := s.FindByID(1, "CSE", "OC", 2022)
	if !ok || r.CutoffRank != 1200 {
		t.Fatalf("FindByID: %+v %v", r, ok)
	}
	if _, ok := s.FindByID(0, "CSE", "OC", 2022); ok {
		t.Error("id 0 must never match")
	}

	tr := s.Trends(1, "cse", nil)
	if len(tr) != 3 {
		t.Fatalf("expected 3 trend rows, got %d", len(tr))
	}
	tr = s.Trends(1, "CSE", []int{2021, 2023})
	if len(tr) != 2 || tr[0].Year != 2023 || tr[1].Year != 2021 {
		t.Errorf("unexpected trend rows: %+v", tr)
	}
}

func TestIntrospection(t *testing.T) {
	s := sampleStore()
	if got := s.Years(); !reflect.DeepEqual(got, []int{2021, 2022, 2023}) {
		t.Errorf("years: %v", got)
	}
	if got := s.Courses(); !reflect.DeepEqual(got, []string{"CSE", "ECE"}) {
		t.Errorf("courses: %v", got)
	}
	if got := s.Categories(); !reflect.DeepEqual(got, []string{"OC", "BC"}) {
		t.Errorf("categories: %v", got)
	}
}

func TestSummarize(t *testing.T) {
	st := Summarize(sampleStore().Filter(Filter{Course: "CSE"}))
	if st.Count != 4 || st.Min != 1200 || st.Max != 3000 || st.Mean != 2050 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if z := Summarize(nil); z != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", z)
	}
}

type failingSource struct{ err error }

func (f failingSource) Records(context.Context) ([]Record, error) { return nil, f.err }

func TestOpenPolicy(t *testing.T) {
	ctx := context.Background()
	src := failingSource{err: errors.New("disk gone")}

	s, err := Open(ctx, src, false)
	if s != nil || !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("strict open: store=%v err=%v", s, err)
	}

	s, err = Open(ctx, src, true)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("degraded open should still report the error, got %v", err)
	}
	if s == nil || s.Len() != 0 {
		t.Fatalf("degraded open should yield an empty store, got %v", s)
	}
}
