// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/rteale/boundcells/delaunay"
)

const defaultEps = 1e-12

// Open marks a region that touches the unbounded face of the diagram.
// Sites on the convex hull of the input carry it in their region list.
const Open = -1

// Diagram is a planar Voronoi diagram derived from the Delaunay
// triangulation of its sites. It is read-only after construction.
//
// Regions[i] lists indices into Vertices in counter-clockwise order around
// site i; hull sites additionally carry the Open sentinel. Cocircular site
// groups produce coincident vertices, which are kept as-is. Ridges holds
// every unordered pair of sites sharing a Voronoi edge, each pair sorted
// ascending, the whole list sorted lexicographically.
type Diagram struct {
	Sites    []r2.Point
	Vertices []r2.Point
	Regions  [][]int
	Ridges   [][2]int
}

// NumCells returns the number of sites (and cells) in the diagram.
func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

// Cell returns a view of the cell with the given site index.
// It returns an error if the index is out of range.
func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= len(d.Sites) {
		return Cell{}, fmt.Errorf("voronoi: cell index %d out of range [0 %d)", i, len(d.Sites))
	}
	return Cell{idx: i, d: d}, nil
}

type DiagramOptions struct {
	Eps float64
}

type DiagramOption func(*DiagramOptions) error

// WithEps sets the epsilon forwarded to the triangulation.
func WithEps(eps float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if eps <= 0 {
			return fmt.Errorf("voronoi: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// New computes the Voronoi diagram of sites.
//
// The diagram is the Delaunay dual: every triangle contributes its
// circumcenter as a Voronoi vertex, every Delaunay edge is a ridge, and the
// region of a site is the fan of circumcenters of its incident triangles,
// sorted by angle around the site.
func New(sites []r2.Point, setters ...DiagramOption) (*Diagram, error) {
	opts := DiagramOptions{Eps: defaultEps}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	dt, err := delaunay.Triangulate(sites, delaunay.WithEps(opts.Eps))
	if err != nil {
		return nil, err
	}

	d := &Diagram{
		Sites:    sites,
		Vertices: make([]r2.Point, dt.NumTriangles()),
		Regions:  make([][]int, len(sites)),
	}

	incident := make([][]int, len(sites))
	edgeCount := make(map[[2]int]int)
	for tIdx, tri := range dt.Triangles {
		a, b, c := dt.TriangleVertices(tIdx)
		d.Vertices[tIdx] = circumcenter(a, b, c)
		for j := 0; j < 3; j++ {
			v := tri[j]
			incident[v] = append(incident[v], tIdx)
			edgeCount[orderedPair(v, tri[(j+1)%3])]++
		}
	}

	// A Delaunay edge on the convex hull belongs to exactly one triangle;
	// both of its sites have unbounded regions.
	open := make([]bool, len(sites))
	d.Ridges = make([][2]int, 0, len(edgeCount))
	for e, n := range edgeCount {
		d.Ridges = append(d.Ridges, e)
		if n == 1 {
			open[e[0]] = true
			open[e[1]] = true
		}
	}
	sort.Slice(d.Ridges, func(i, j int) bool {
		if d.Ridges[i][0] != d.Ridges[j][0] {
			return d.Ridges[i][0] < d.Ridges[j][0]
		}
		return d.Ridges[i][1] < d.Ridges[j][1]
	})

	for i := range sites {
		region := incident[i]
		sortRegionCCW(sites[i], region, d.Vertices)
		if open[i] {
			region = append(region, Open)
		}
		d.Regions[i] = region
	}

	return d, nil
}

// sortRegionCCW orders the region's vertex indices counter-clockwise around
// the site. A bounded Voronoi cell is convex and contains its site, so an
// angular sort yields the cell polygon directly.
func sortRegionCCW(site r2.Point, region []int, vertices []r2.Point) {
	sort.SliceStable(region, func(a, b int) bool {
		pa := vertices[region[a]].Sub(site)
		pb := vertices[region[b]].Sub(site)
		return math.Atan2(pa.Y, pa.X) < math.Atan2(pb.Y, pb.X)
	})
}

func orderedPair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// circumcenter returns the center of the circle through a, b and c. For a
// near-degenerate triangle the center runs far from the triangle, matching
// the behavior of the unbounded dual edge it approximates.
func circumcenter(a, b, c r2.Point) r2.Point {
	ab := b.Sub(a)
	ac := c.Sub(a)
	dd := 2 * (ab.X*ac.Y - ab.Y*ac.X)
	abSq := ab.X*ab.X + ab.Y*ab.Y
	acSq := ac.X*ac.X + ac.Y*ac.Y
	ux := (ac.Y*abSq - ab.Y*acSq) / dd
	uy := (ab.X*acSq - ac.X*abSq) / dd
	return r2.Point{X: a.X + ux, Y: a.Y + uy}
}
