package records

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mind-engage/campusmate/internal/db"
)

const sampleCSV = `Name,college_id,course,category,year,cutoff_rank
Anna University,1,CSE,OC,2023,1500
PSG Tech,2,ece,bc,2023,9000.0
`

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].CutoffRank != 9000 || rows[1].CollegeID != 2 {
		t.Errorf("unexpected row: %+v", rows[1])
	}
}

func TestParseCSVIDOnly(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("college_id,course,category,year,cutoff_rank\n3,MECH,SC,2021,15000\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rows[0].College != "College 3" {
		t.Errorf("expected synthesized name, got %q", rows[0].College)
	}
}

func TestParseCSVRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing column": "Name,course,category,year\nX,CSE,OC,2023\n",
		"no name or id":  "course,category,year,cutoff_rank\nCSE,OC,2023,100\n",
		"bad rank":       "Name,course,category,year,cutoff_rank\nX,CSE,OC,2023,abc\n",
		"zero rank":      "Name,course,category,year,cutoff_rank\nX,CSE,OC,2023,0\n",
		"bad year":       "Name,course,category,year,cutoff_rank\nX,CSE,OC,20x3,100\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCSV(strings.NewReader(in)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadCSVSource(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "cutoff_history.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(ctx, CSVSource{Path: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", s.Len())
	}
	if got := s.Filter(Filter{Course: "ECE", Category: "BC"}); len(got) != 1 {
		t.Errorf("codes should be normalized on load, got %v", got)
	}

	_, err = Load(ctx, CSVSource{Path: filepath.Join(dir, "missing.csv")})
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable for missing file, got %v", err)
	}

	bad := filepath.Join(dir, "bad.csv")
	os.WriteFile(bad, []byte("foo,bar\n1,2\n"), 0o644)
	if _, err := Load(ctx, CSVSource{Path: bad}); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable for malformed file, got %v", err)
	}
}

func TestImportAndSQLSource(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })

	rows, _ := ParseCSV(strings.NewReader(sampleCSV))
	n, err := Import(ctx, dbh, rows, true)
	if err != nil || n != 2 {
		t.Fatalf("import: n=%d err=%v", n, err)
	}
	// replace keeps the table at one copy
	if _, err := Import(ctx, dbh, rows, true); err != nil {
		t.Fatalf("re-import: %v", err)
	}

	s, err := Load(ctx, SQLSource{DB: dbh})
	if err != nil {
		t.Fatalf("load from sql: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", s.Len())
	}
	r, ok := s.Find("psg", "ECE", "BC", 2023)
	if !ok || r.CutoffRank != 9000 {
		t.Errorf("unexpected lookup result: %+v %v", r, ok)
	}
}

func TestImportRejectsInvalidRows(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })

	rows := []Record{
		{College: "A", Course: "CSE", Category: "OC", Year: 2023, CutoffRank: 100},
		{College: "B", Course: "CSE", Category: "OC", Year: 2023, CutoffRank: 0},
	}
	if _, err := Import(ctx, dbh, rows, false); err == nil {
		t.Fatal("expected error for non-positive cutoff")
	}
	s, err := Load(ctx, SQLSource{DB: dbh})
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Fatalf("failed import must not commit, got %d rows", s.Len())
	}
}
