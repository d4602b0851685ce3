package cli

import (
	"github.com/spf13/cobra"

	"github.com/rteale/boundcells/seeds"
)

// randomOpts holds the command-line flags for the random command.
type randomOpts struct {
	analyze analyzeOpts
	num     int
	minSep  float64
	seed    int64
}

// newRandomCmd creates the random command, which generates a seeded random
// mosaic and runs the same analysis pipeline as analyze. Useful as a
// regularity baseline for real distributions at the same density.
func newRandomCmd() *cobra.Command {
	var opts randomOpts

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Analyze a generated random cell mosaic",
		Long: `Generate a seeded random mosaic and compute its regularity statistics.

A minimum separation constrains how close two generated cells may be,
mimicking soma exclusion zones.

Examples:
  boundcells random --num 500 --width 1000 --height 1000
  boundcells random --num 500 --width 1000 --height 1000 --min-sep 15 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRandom(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.num, "num", 500, "number of cells to generate")
	cmd.Flags().Float64Var(&opts.minSep, "min-sep", 0, "minimum separation between cells in pixels")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed")
	cmd.Flags().IntVar(&opts.analyze.flags.Width, "width", 1000, "image width in pixels")
	cmd.Flags().IntVar(&opts.analyze.flags.Height, "height", 1000, "image height in pixels")
	cmd.Flags().Float64Var(&opts.analyze.flags.Scale, "mpp", 0, "microns per pixel")
	cmd.Flags().Float64Var(&opts.analyze.flags.Alpha, "alpha", 0, "alpha threshold in pixels (default: mean inter-cell distance)")
	cmd.Flags().Float64Var(&opts.analyze.flags.DilationFactor, "dilate", 0, "dilation factor applied to the alpha boundary")
	cmd.Flags().StringVar(&opts.analyze.csvOut, "out-csv", "", "write per-cell metrics to this CSV file")

	return cmd
}

func runRandom(cmd *cobra.Command, opts randomOpts) error {
	w := float64(opts.analyze.flags.Width)
	h := float64(opts.analyze.flags.Height)

	points, err := seeds.GenerateMinSep(opts.num, w, h, opts.minSep, opts.seed)
	if err != nil {
		return err
	}
	return analyzePoints(cmd.Context(), "random", points, opts.analyze)
}
