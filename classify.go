// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundcells

import (
	"github.com/rteale/boundcells/geom"
	"github.com/rteale/boundcells/voronoi"
)

// ClassifyBound returns the site ids whose Voronoi cells lie fully inside the
// boundary polygon, in ascending order.
//
// A site is unbound if its region touches the unbounded face of the diagram,
// if its cell polygon is empty, or if the cell polygon is not fully contained
// in the boundary. Containment is strict in the sense that cells merely
// intersecting the boundary are excluded: partially clipped cells at the
// tissue edge carry truncated areas and neighbor counts that would bias the
// regularity statistics.
func ClassifyBound(d *voronoi.Diagram, boundary geom.Polygon) []int {
	bound := make([]int, 0, d.NumCells())
	for i := 0; i < d.NumCells(); i++ {
		cell, err := d.Cell(i)
		if err != nil {
			continue
		}
		if cell.IsOpen() {
			continue
		}
		poly := cell.Polygon()
		if len(poly) == 0 {
			continue
		}
		if boundary.Contains(poly) {
			bound = append(bound, i)
		}
	}
	return bound
}
