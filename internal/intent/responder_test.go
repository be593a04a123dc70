package intent

import (
	"strings"
	"testing"

	"github.com/mind-engage/campusmate/internal/randsrc"
	"github.com/mind-engage/campusmate/internal/records"
)

type stubRand struct {
	i int
	f float64
}

func (s stubRand) Intn(int) int     { return s.i }
func (s stubRand) Float64() float64 { return s.f }

func chatStore() *records.Store {
	return records.NewStore([]records.Record{
		{College: "A", Course: "CSE", Category: "OC", Year: 2022, CutoffRank: 9000},
		{College: "B", Course: "CSE", Category: "OC", Year: 2023, CutoffRank: 10000},
		{College: "C", Course: "CSE", Category: "OC", Year: 2023, CutoffRank: 20000},
		{College: "D", Course: "ECE", Category: "BC", Year: 2023, CutoffRank: 15000},
	})
}

func TestRespondSearch(t *testing.T) {
	r := NewResponder(chatStore(), stubRand{})
	reply := r.Respond("find college for cse oc rank 10000")
	if reply.Intent != CollegeSearch {
		t.Fatalf("unexpected intent %s", reply.Intent)
	}
	want := "Found 1 colleges for CSE in OC category matching rank 10000:\n\n1. B\n"
	if !strings.HasPrefix(reply.Response, want) {
		t.Errorf("unexpected response:\n%s", reply.Response)
	}
	if !strings.Contains(reply.Response, "Cutoff Rank: 10000 | Year: 2023") {
		t.Errorf("missing detail line:\n%s", reply.Response)
	}
}

func TestSearchLatestYearOfRemainingRows(t *testing.T) {
	r := NewResponder(chatStore(), stubRand{})
	// window [6300, 11700] keeps A (2022) and B (2023); only 2023 survives
	got := r.Search(Entities{Course: "CSE", Rank: 9000})
	if len(got) != 1 || got[0].College != "B" {
		t.Errorf("unexpected rows: %+v", got)
	}
	// window [4900, 9100] keeps only A, so 2022 is the latest remaining year
	got = r.Search(Entities{Course: "CSE", Rank: 7000})
	if len(got) != 1 || got[0].College != "A" {
		t.Errorf("unexpected rows: %+v", got)
	}
}

func TestSearchLimit(t *testing.T) {
	var rows []records.Record
	for i := 0; i < 9; i++ {
		rows = append(rows, records.Record{College: "X", Course: "IT", Category: "SC", Year: 2023, CutoffRank: 1000 + i})
	}
	r := NewResponder(records.NewStore(rows), stubRand{})
	if got := r.Search(Entities{Course: "IT"}); len(got) != DefaultSearchLimit {
		t.Errorf("expected %d rows, got %d", DefaultSearchLimit, len(got))
	}
}

func TestRespondSearchNoMatch(t *testing.T) {
	r := NewResponder(chatStore(), stubRand{})
	reply := r.Respond("find college for civil")
	if !strings.HasPrefix(reply.Response, "No colleges found") {
		t.Errorf("unexpected response: %s", reply.Response)
	}
}

func TestRespondCutoffStats(t *testing.T) {
	r := NewResponder(chatStore(), stubRand{})
	reply := r.Respond("cutoff for bc category")
	if reply.Intent != Cutoff {
		t.Fatalf("unexpected intent %s", reply.Intent)
	}
	for _, want := range []string{"Cutoff information in BC category", "Average Cutoff: 15000", "Lowest Cutoff: 15000", "Highest Cutoff: 15000"} {
		if !strings.Contains(reply.Response, want) {
			t.Errorf("missing %q in:\n%s", want, reply.Response)
		}
	}
}

func TestRespondCutoffWithoutDataFallsBackToTemplate(t *testing.T) {
	r := NewResponder(chatStore(), stubRand{i: 1})
	reply := r.Respond("cutoff for st students")
	if reply.Response != Templates[Cutoff][1] {
		t.Errorf("expected template 1, got %q", reply.Response)
	}
}

func TestRespondTemplateSelection(t *testing.T) {
	for i := range Templates[Thanks] {
		r := NewResponder(chatStore(), stubRand{i: i})
		if got := r.Respond("thanks").Response; got != Templates[Thanks][i] {
			t.Errorf("index %d: got %q", i, got)
		}
	}
}

func TestRespondEmptyStore(t *testing.T) {
	r := NewResponder(records.NewStore(nil), stubRand{})
	if got := r.Respond("find college for cse").Response; !strings.HasPrefix(got, "No colleges found") {
		t.Errorf("unexpected response: %s", got)
	}
	if got := r.Respond("cutoff for oc").Response; got != Templates[Cutoff][0] {
		t.Errorf("expected template, got %q", got)
	}
}

func TestConfidenceRange(t *testing.T) {
	r := NewResponder(chatStore(), randsrc.Seeded(7))
	for i := 0; i < 200; i++ {
		c := r.Respond("hello").Confidence
		if c < 0.80 || c > 0.99 {
			t.Fatalf("confidence %v out of range", c)
		}
	}
	if c := NewResponder(nil, stubRand{}).Respond("hello").Confidence; c != 0.8 {
		t.Errorf("expected 0.8 for a zero draw, got %v", c)
	}
}
