// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay computes planar Delaunay triangulations by lifting points
// onto the paraboloid z = x² + y² and keeping the downward-facing faces of
// the 3D convex hull.
package delaunay

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const defaultEps = 1e-12

// ErrInsufficientPoints is returned when fewer than four points are supplied.
// Alpha shapes and Voronoi diagrams both require a non-degenerate
// triangulation, which needs at least four points in the plane.
var ErrInsufficientPoints = errors.New("delaunay: insufficient points for triangulation (minimum 4 required)")

// ErrDegenerate is returned when the points admit no triangulation, e.g. when
// all of them are collinear.
var ErrDegenerate = errors.New("delaunay: degenerate point configuration")

// Triangulation is a planar Delaunay triangulation. Triangles index into
// Points and are oriented counter-clockwise.
type Triangulation struct {
	Points    []r2.Point
	Triangles [][3]int
}

// NumTriangles returns the number of triangles.
func (t *Triangulation) NumTriangles() int {
	return len(t.Triangles)
}

// TriangleVertices returns the three corner points of triangle tIdx.
func (t *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(t.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	tri := t.Triangles[tIdx]
	return t.Points[tri[0]], t.Points[tri[1]], t.Points[tri[2]]
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

// WithEps sets the epsilon used by the convex hull computation.
func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return fmt.Errorf("delaunay: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// Triangulate computes the Delaunay triangulation of points.
//
// Each point (x, y) is lifted to (x, y, x²+y²); the faces of the lifted
// hull whose outward normal points downward project back onto the Delaunay
// triangles of the planar set.
func Triangulate(points []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{Eps: defaultEps}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	if len(points) < 4 {
		return nil, ErrInsufficientPoints
	}

	lifted := make([]r3.Vector, len(points))
	for i, p := range points {
		lifted[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.X*p.X + p.Y*p.Y}
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, opts.Eps)
	if len(ch.Indices)%3 != 0 {
		return nil, errors.New("delaunay: inconsistent number of indices returned from QuickHull")
	}

	t := &Triangulation{Points: points}
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		ia, ib, ic := ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]
		a, b, c := lifted[ia], lifted[ib], lifted[ic]

		// ConvexHull with ccw=true orients faces counter-clockwise viewed
		// from inside the hull, so (b-a)×(c-a) points into the hull.
		// Lower-hull faces therefore have an upward-pointing normal.
		norm := b.Sub(a).Cross(c.Sub(a))
		if norm.Z <= opts.Eps {
			continue
		}

		tri := [3]int{ia, ib, ic}
		sortTriangleCCW(&tri, t.Points)
		t.Triangles = append(t.Triangles, tri)
	}

	if len(t.Triangles) == 0 {
		return nil, ErrDegenerate
	}

	return t, nil
}

func sortTriangleCCW(t *[3]int, pts []r2.Point) {
	a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
	if (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}
