package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/spf13/cobra"

	"github.com/rteale/boundcells"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	flags      params // overlaid on the parameter file
	configPath string // optional TOML parameter file
	csvOut     string // per-cell CSV output path, empty to skip
	noAlpha    bool   // keep the full-image boundary
}

// newAnalyzeCmd creates the analyze command, which loads cell coordinates
// from a CSV file and prints the regularity report.
//
// Defaults:
//   - mpp: 1.0 (coordinates already in microns)
//   - alpha: mean inter-cell distance of the mosaic
//   - dilation: none
//   - dimensions: smallest integer box containing the points
func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze <points.csv>",
		Short: "Compute bound-cell regularity statistics for a cell mosaic",
		Long: `Compute bound-cell regularity statistics for a cell mosaic.

The input file holds one x,y coordinate pair per row, in pixel units.

Examples:
  boundcells analyze cells.csv --mpp 0.65
  boundcells analyze cells.csv --alpha 40 --dilate 0.5 --out-csv cells_stats.csv
  boundcells analyze cells.csv --params retina.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.flags.Scale, "mpp", 0, "microns per pixel")
	cmd.Flags().Float64Var(&opts.flags.Alpha, "alpha", 0, "alpha threshold in pixels (default: mean inter-cell distance)")
	cmd.Flags().Float64Var(&opts.flags.DilationFactor, "dilate", 0, "dilation factor applied to the alpha boundary")
	cmd.Flags().IntVar(&opts.flags.Width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&opts.flags.Height, "height", 0, "image height in pixels")
	cmd.Flags().StringVar(&opts.configPath, "params", "", "TOML parameter file")
	cmd.Flags().StringVar(&opts.csvOut, "out-csv", "", "write per-cell metrics to this CSV file")
	cmd.Flags().BoolVar(&opts.noAlpha, "no-boundary", false, "skip boundary extraction and keep every cell bound")

	return cmd
}

func runAnalyze(ctx context.Context, path string, opts analyzeOpts) error {
	points, err := loadPoints(path)
	if err != nil {
		return err
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return analyzePoints(ctx, id, points, opts)
}

// analyzePoints runs the shared analysis pipeline: build the distribution,
// apply the boundary transitions, print the report and optionally save the
// per-cell CSV.
func analyzePoints(ctx context.Context, id string, points []r2.Point, opts analyzeOpts) error {
	logger := loggerFromContext(ctx)

	p := params{Scale: 1}
	if opts.configPath != "" {
		fileParams, err := loadParams(opts.configPath)
		if err != nil {
			return err
		}
		p = p.merge(fileParams)
	}
	p = p.merge(opts.flags)

	if p.Width == 0 || p.Height == 0 {
		p.Width, p.Height = autoDims(points)
		logger.Debugf("inferred dimensions %dx%d", p.Width, p.Height)
	}

	prog := newProgress(logger)
	cd, err := boundcells.New(points, p.Width, p.Height,
		boundcells.WithScale(p.Scale), boundcells.WithID(id))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Tessellated %d cells", cd.NumCells()))

	if !opts.noAlpha {
		alpha := p.Alpha
		if alpha == 0 {
			alpha = cd.DefaultAlpha()
			logger.Debugf("using default alpha %.3f", alpha)
		}
		if err := cd.SetAlpha(alpha); err != nil {
			return err
		}
		logger.Infof("Alpha boundary retained %d of %d cells",
			cd.Stats().NumBoundCells, cd.NumCells())

		if p.DilationFactor != 0 {
			if err := cd.Dilate(p.DilationFactor); err != nil {
				return err
			}
			logger.Infof("Dilated boundary retained %d cells", cd.Stats().NumBoundCells)
		}
	}

	if err := cd.WriteReport(os.Stdout); err != nil {
		return err
	}

	if opts.csvOut != "" {
		file, err := os.Create(opts.csvOut)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := cd.WriteCellData(file); err != nil {
			return err
		}
		logger.Infof("Wrote per-cell metrics to %s", opts.csvOut)
	}
	return nil
}
