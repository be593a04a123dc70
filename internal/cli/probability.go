package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mind-engage/campusmate/internal/admission"
	"github.com/mind-engage/campusmate/internal/randsrc"
)

func newProbabilityCmd(o *options) *cobra.Command {
	var (
		cutoff, rank int
		strategy     string
		jitter       bool
	)
	cmd := &cobra.Command{
		Use:   "probability",
		Short: "Score the admission probability for a rank against a cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cutoff <= 0 || rank <= 0 {
				return errors.New("--cutoff and --rank must be positive")
			}
			st, err := admission.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			est, err := admission.NewEstimator(st, jitter, randsrc.Global())
			if err != nil {
				return err
			}
			e := est.Estimate(cutoff, rank)
			if o.format == "json" {
				return writeJSON(cmd.OutOrStdout(), e)
			}
			band, ok := admission.BandFor(rank, cutoff)
			label := "out of reach"
			if ok {
				label = bandColor[band].Sprint(band)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "probability %.4f (%s), band %s\n", e.Probability, e.Strategy, label)
			if e.Range != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "range [%.2f, %.2f]\n", e.Range.Lo, e.Range.Hi)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&cutoff, "cutoff", 0, "cutoff rank")
	f.IntVar(&rank, "rank", 0, "student rank")
	f.StringVar(&strategy, "strategy", o.cfg.ProbabilityStrategy, "smooth or banded")
	f.BoolVar(&jitter, "jitter", false, "draw inside the banded range instead of using its midpoint")
	return cmd
}
