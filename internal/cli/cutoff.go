package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mind-engage/campusmate/internal/admission"
)

func newCutoffCmd(o *options) *cobra.Command {
	var (
		q         admission.CutoffQuery
		predictor string
		modelPath string
	)
	cmd := &cobra.Command{
		Use:   "cutoff",
		Short: "Resolve a cutoff from history, or estimate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := o.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			kind, err := admission.ParsePredictorKind(predictor)
			if err != nil {
				return err
			}
			var p admission.Predictor = admission.MockPredictor{}
			if kind == admission.PredictorModel {
				m, err := admission.LoadModel(modelPath)
				if err != nil {
					return err
				}
				p = m
			}
			if q.Year == 0 {
				if q.Year, err = s.LatestYear(); err != nil {
					return err
				}
			}
			res := admission.Resolver{Store: s, Predictor: p}
			c, err := res.Resolve(q)
			if err != nil {
				return err
			}
			if o.format == "json" {
				return writeJSON(cmd.OutOrStdout(), c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cutoff %d (%s, %d)\n", c.Rank, c.Source, q.Year)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&q.CollegeID, "college-id", 0, "numeric college id")
	f.StringVar(&q.College, "college", "", "college name fragment")
	f.StringVar(&q.Course, "course", "", "course code")
	f.StringVar(&q.Category, "category", "", "category code")
	f.IntVar(&q.Year, "year", 0, "year (default: latest)")
	f.StringVar(&predictor, "predictor", o.cfg.Predictor, "mock or model")
	f.StringVar(&modelPath, "model", o.cfg.ModelPath, "model artifact path")
	return cmd
}
