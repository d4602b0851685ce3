// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundcells

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Table returns the scalar statistics as a flat map, the read model consumed
// by reporting collaborators.
func (s *Statistics) Table() map[string]float64 {
	return map[string]float64{
		"num_bound_cells":    float64(s.NumBoundCells),
		"total_bound_area":   s.TotalBoundArea,
		"bound_density":      s.BoundDensity,
		"mean_icd":           s.MeanICD,
		"std_icd":            s.StdICD,
		"mean_nn":            s.MeanNN,
		"std_nn":             s.StdNN,
		"mean_vd":            s.MeanVD,
		"std_vd":             s.StdVD,
		"mean_num_neighbors": s.MeanNeighbors,
		"std_num_neighbors":  s.StdNeighbors,
		"nnri":               s.NNRI,
		"vdri":               s.VDRI,
		"alt_nnri":           s.AltNNRI,
	}
}

// WriteCellData writes the per-bound-cell metrics as CSV, one row per bound
// cell in ascending id order.
func (cd *CellDistribution) WriteCellData(w io.Writer) error {
	s := cd.stats

	ids := make([]int, 0, len(s.NN))
	for id := range s.NN {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	cw := csv.NewWriter(w)
	header := []string{"Cell ID", "Nearest Neighbour (um)", "Voronoi Domain Area (um2)", "Number of Neighbours"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, id := range ids {
		row := []string{
			strconv.Itoa(id),
			strconv.FormatFloat(s.NN[id], 'f', -1, 64),
			strconv.FormatFloat(s.VDArea[id], 'f', -1, 64),
			strconv.Itoa(s.Neighbors[id]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReport writes a human-readable summary of the distribution and its
// current statistics snapshot.
func (cd *CellDistribution) WriteReport(w io.Writer) error {
	s := cd.stats
	const prec = 3

	var err error
	line := func(label, format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "%-44s"+format+"\n", append([]any{label}, args...)...)
	}
	section := func(title string) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintln(w, title)
	}

	section("----------------- Global ------------------")
	line("ID", "%s", cd.id)
	line("Image dimensions (pixels)", "%d x %d", cd.width, cd.height)
	line("Image area (pixels^2)", "%d", cd.width*cd.height)
	line("Microns per pixel", "%.*f", prec, cd.mpp)
	line("Boundary state", "%s", cd.state)
	if cd.alpha != 0 {
		line("Alpha value", "%.*f", prec, cd.alpha)
	}

	section("----------------- Unbound -----------------")
	line("Total number of cells", "%d", s.NumCells)
	line("(Estimated) tissue area (microns^2)", "%.0f", s.EstimatedArea)
	line("(Estimated) cell density (cells per mm^2)", "%.0f", s.EstimatedDensity)

	section("----------------- Bound -------------------")
	line("Mean ICD (microns)", "%.*f +- %.*f", prec, s.MeanICD, prec, s.StdICD)
	line("Mean NN (microns)", "%.*f +- %.*f", prec, s.MeanNN, prec, s.StdNN)
	line("Mean VD cell area (microns^2)", "%.*f +- %.*f", prec, s.MeanVD, prec, s.StdVD)
	line("Mean number of neighbors", "%.*f +- %.*f", prec, s.MeanNeighbors, prec, s.StdNeighbors)
	line("Number of bound cells", "%d", s.NumBoundCells)
	line("Total VD area (microns^2)", "%.*f", prec, s.TotalBoundArea)
	line("(True) bound cell density (cells per mm^2)", "%.*f", prec, s.BoundDensity)
	line("NNRI", "%.*f", prec, s.NNRI)
	line("VDRI", "%.*f", prec, s.VDRI)
	line("ALT NNRI", "%.*f", prec, s.AltNNRI)
	return err
}
