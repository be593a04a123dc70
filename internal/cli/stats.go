package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mind-engage/campusmate/internal/records"
)

func newStatsCmd(o *options) *cobra.Command {
	var (
		f    records.Filter
		list bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize cutoffs by course, category and year",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := o.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			rows := s.Filter(f)
			st := records.Summarize(rows)
			w := cmd.OutOrStdout()
			if o.format == "json" {
				return writeJSON(w, map[string]any{
					"stats":      st,
					"years":      s.Years(),
					"courses":    s.Courses(),
					"categories": s.Categories(),
				})
			}
			fmt.Fprintln(w, color.YellowString("%d of %d records", len(rows), s.Len()))
			table := tablewriter.NewWriter(w)
			table.SetHeader([]string{"Count", "Min", "Mean", "Max"})
			table.Append([]string{
				strconv.Itoa(st.Count),
				strconv.Itoa(st.Min),
				strconv.FormatFloat(st.Mean, 'f', 1, 64),
				strconv.Itoa(st.Max),
			})
			table.Render()
			if list {
				printRecords(w, rows)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.Course, "course", "", "course code")
	fl.StringVar(&f.Category, "category", "", "category code")
	fl.IntVar(&f.Year, "year", 0, "year")
	fl.BoolVar(&list, "list", false, "also print matching records")
	return cmd
}
