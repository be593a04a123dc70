package cli

import (
	"github.com/spf13/cobra"

	"github.com/mind-engage/campusmate/internal/admission"
	"github.com/mind-engage/campusmate/internal/randsrc"
)

func newClassifyCmd(o *options) *cobra.Command {
	var (
		q        admission.Query
		limit    int
		strategy string
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Sort colleges into safe, target and dream for a rank",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := o.loadStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := admission.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			est, err := admission.NewEstimator(st, o.cfg.ProbabilityJitter, randsrc.Global())
			if err != nil {
				return err
			}
			rec, err := admission.Recommend(s, q, admission.Options{Limit: limit, Estimator: est})
			if err != nil {
				return err
			}
			if o.format == "json" {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			printRecommendation(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&q.Rank, "rank", 0, "student rank (required)")
	f.StringVar(&q.Course, "course", "", "course code, e.g. CSE")
	f.StringVar(&q.Category, "category", "", "category code, e.g. OC")
	f.IntVar(&q.Year, "year", 0, "year (default: latest)")
	f.IntVar(&limit, "limit", o.cfg.RecommendLimit, "max colleges per band, negative for all")
	f.StringVar(&strategy, "strategy", o.cfg.ProbabilityStrategy, "probability strategy: smooth or banded")
	_ = cmd.MarkFlagRequired("rank")
	return cmd
}
