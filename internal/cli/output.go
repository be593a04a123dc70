package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mind-engage/campusmate/internal/admission"
	"github.com/mind-engage/campusmate/internal/records"
)

var bandColor = map[admission.Band]*color.Color{
	admission.Safe:   color.New(color.FgGreen, color.Bold),
	admission.Target: color.New(color.FgYellow, color.Bold),
	admission.Dream:  color.New(color.FgMagenta, color.Bold),
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRecommendation(w io.Writer, rec admission.Recommendation) {
	fmt.Fprintln(w, color.CyanString("Year %d", rec.Year))
	for _, b := range admission.Bands {
		var rows []admission.College
		switch b {
		case admission.Safe:
			rows = rec.Safe
		case admission.Target:
			rows = rec.Target
		case admission.Dream:
			rows = rec.Dream
		}
		fmt.Fprintln(w, bandColor[b].Sprintf("\n%s (%d)", b, len(rows)))
		if len(rows) == 0 {
			continue
		}
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"College", "Course", "Category", "Cutoff", "Probability"})
		for _, c := range rows {
			table.Append([]string{
				c.College,
				c.Course,
				c.Category,
				strconv.Itoa(c.CutoffRank),
				strconv.FormatFloat(c.Probability, 'f', 4, 64),
			})
		}
		table.Render()
	}
}

func printRecords(w io.Writer, rows []records.Record) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "College", "Course", "Category", "Year", "Cutoff"})
	for _, r := range rows {
		table.Append([]string{
			strconv.Itoa(r.CollegeID),
			r.College,
			r.Course,
			r.Category,
			strconv.Itoa(r.Year),
			strconv.Itoa(r.CutoffRank),
		})
	}
	table.Render()
}
