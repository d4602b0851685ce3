// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voronoi implements planar Voronoi diagrams, built on Delaunay triangulation.
package voronoi

import (
	"github.com/golang/geo/r2"

	"github.com/rteale/boundcells/geom"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell
// in a Diagram. The cell's index corresponds to the index of its site in the
// Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// Region returns the cell's vertex-index list in counter-clockwise order.
// Unbounded cells carry the Open sentinel. The slice aliases the diagram and
// must not be modified.
func (c Cell) Region() []int {
	return c.d.Regions[c.idx]
}

// IsOpen reports whether the cell touches the unbounded face of the diagram.
func (c Cell) IsOpen() bool {
	for _, idx := range c.Region() {
		if idx == Open {
			return true
		}
	}
	return false
}

// NumFiniteVertices returns the number of finite vertices in the cell.
// For a bounded cell this equals the number of neighboring cells.
func (c Cell) NumFiniteVertices() int {
	n := 0
	for _, idx := range c.Region() {
		if idx != Open {
			n++
		}
	}
	return n
}

// Polygon returns the cell's finite vertices as an open polygon in
// counter-clockwise order. For an unbounded cell this is only the finite part
// of the cell.
func (c Cell) Polygon() geom.Polygon {
	poly := make(geom.Polygon, 0, len(c.Region()))
	for _, idx := range c.Region() {
		if idx != Open {
			poly = append(poly, c.d.Vertices[idx])
		}
	}
	return poly
}
