package records

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Source yields the rows a Store is built from.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// CSVSource reads a header-indexed CSV file.
type CSVSource struct {
	Path string
}

func (s CSVSource) Records(_ context.Context) ([]Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()
	rows, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, s.Path, err)
	}
	return rows, nil
}

// column aliases accepted for the college name
var nameColumns = []string{"name", "college", "college_name"}

// ParseCSV decodes cutoff rows. Header names are case-insensitive; either a
// college name column or college_id must be present.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header")
		}
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range hdr {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, k := range []string{"course", "category", "year", "cutoff_rank"} {
		if _, ok := idx[k]; !ok {
			return nil, errors.New("missing column: " + k)
		}
	}
	nameCol := -1
	for _, k := range nameColumns {
		if i, ok := idx[k]; ok {
			nameCol = i
			break
		}
	}
	idCol, hasID := idx["college_id"]
	if nameCol < 0 && !hasID {
		return nil, errors.New("missing column: name or college_id")
	}

	var out []Record
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		get := func(i int) string {
			if i < 0 || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row := Record{
			Course:   get(idx["course"]),
			Category: get(idx["category"]),
		}
		if nameCol >= 0 {
			row.College = get(nameCol)
		}
		if hasID {
			if row.CollegeID, err = atoi(get(idCol)); err != nil {
				return nil, fmt.Errorf("line %d: college_id: %w", line, err)
			}
		}
		if row.Year, err = atoi(get(idx["year"])); err != nil {
			return nil, fmt.Errorf("line %d: year: %w", line, err)
		}
		if row.CutoffRank, err = atoi(get(idx["cutoff_rank"])); err != nil {
			return nil, fmt.Errorf("line %d: cutoff_rank: %w", line, err)
		}
		if row.CutoffRank <= 0 {
			return nil, fmt.Errorf("line %d: cutoff_rank must be positive", line)
		}
		if row.College == "" {
			row.College = "College " + strconv.Itoa(row.CollegeID)
		}
		out = append(out, row)
	}
	return out, nil
}

// atoi also accepts integral floats ("10000.0") as written by spreadsheet exports.
func atoi(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

// SQLSource reads the cutoff_history table.
type SQLSource struct {
	DB *sql.DB
}

func (s SQLSource) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT college_id, college_name, course, category, year, cutoff_rank
		  FROM cutoff_history
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.CollegeID, &r.College, &r.Course, &r.Category, &r.Year, &r.CutoffRank); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return out, nil
}

// Import appends rows to cutoff_history inside one transaction.
// With replace the table is cleared first.
func Import(ctx context.Context, db *sql.DB, rows []Record, replace bool) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cutoff_history`); err != nil {
			return 0, err
		}
	}
	n := 0
	for i, r := range rows {
		if err := r.Validate(); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		if r.College == "" {
			r.College = "College " + strconv.Itoa(r.CollegeID)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cutoff_history (college_id, college_name, course, category, year, cutoff_rank)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r.CollegeID, r.College, NormalizeCode(r.Course), NormalizeCode(r.Category), r.Year, r.CutoffRank)
		if err != nil {
			return n, fmt.Errorf("insert %s/%s/%d: %w", r.College, r.Course, r.Year, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
