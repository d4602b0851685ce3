// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geom provides the planar polygon value type shared by the boundary
// extraction, raster and classification packages.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// onEdgeEps is the tolerance for treating a point as lying on a polygon edge.
// Boundary polygons have integer vertices, so this only absorbs float noise.
const onEdgeEps = 1e-9

// Polygon is an ordered sequence of planar vertices. A closed polygon repeats
// its first vertex at the end. Boundary polygons must be simple
// (non-self-intersecting).
type Polygon []r2.Point

// Closed reports whether the polygon repeats its first vertex at the end.
func (p Polygon) Closed() bool {
	return len(p) >= 2 && p[0] == p[len(p)-1]
}

// Close returns p with the first vertex appended if it is not closed already.
func (p Polygon) Close() Polygon {
	if len(p) == 0 || p.Closed() {
		return p
	}
	out := make(Polygon, len(p)+1)
	copy(out, p)
	out[len(p)] = p[0]
	return out
}

// Round returns a copy of p with every vertex rounded to integer pixel
// coordinates.
func (p Polygon) Round() Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = r2.Point{X: math.Round(v.X), Y: math.Round(v.Y)}
	}
	return out
}

// Clone returns a copy of p.
func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Ring converts p to a closed orb ring.
func (p Polygon) Ring() orb.Ring {
	c := p.Close()
	ring := make(orb.Ring, len(c))
	for i, v := range c {
		ring[i] = orb.Point{v.X, v.Y}
	}
	return ring
}

// Area returns the unsigned polygon area (shoelace formula).
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	return math.Abs(planar.Area(p.Ring()))
}

// ContainsPoint reports whether pt lies inside p or on its boundary.
func (p Polygon) ContainsPoint(pt r2.Point) bool {
	c := p.Close()
	for i := 0; i+1 < len(c); i++ {
		if pointOnSegment(pt, c[i], c[i+1]) {
			return true
		}
	}
	return planar.RingContains(p.Ring(), orb.Point{pt.X, pt.Y})
}

// Contains reports whether q lies fully inside p. Vertices of q may touch the
// boundary of p; this mirrors the usual polygon containment semantics where
// interior contact does not disqualify. Edges of q must not properly cross
// edges of p.
func (p Polygon) Contains(q Polygon) bool {
	if len(q) == 0 {
		return false
	}
	for _, v := range q {
		if !p.ContainsPoint(v) {
			return false
		}
	}
	pc, qc := p.Close(), q.Close()
	for i := 0; i+1 < len(qc); i++ {
		for j := 0; j+1 < len(pc); j++ {
			if segmentsCross(qc[i], qc[i+1], pc[j], pc[j+1]) {
				return false
			}
		}
	}
	return true
}

// Rect returns the closed axis-aligned rectangle (0,0)-(w,h) in CCW order.
func Rect(w, h float64) Polygon {
	return Polygon{
		{X: 0, Y: 0},
		{X: w, Y: 0},
		{X: w, Y: h},
		{X: 0, Y: h},
		{X: 0, Y: 0},
	}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

func cross(o, a, b r2.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// pointOnSegment reports whether pt lies on the segment ab within onEdgeEps.
func pointOnSegment(pt, a, b r2.Point) bool {
	ab := b.Sub(a)
	l := ab.Norm()
	if l == 0 {
		return Dist(pt, a) <= onEdgeEps
	}
	if math.Abs(cross(a, b, pt))/l > onEdgeEps {
		return false
	}
	d := pt.Sub(a).Dot(ab) / l
	return d >= -onEdgeEps && d <= l+onEdgeEps
}

// segmentsCross reports whether segments ab and cd cross transversally.
// Shared endpoints and collinear overlap do not count as a crossing.
func segmentsCross(a, b, c, d r2.Point) bool {
	d1 := cross(a, b, c)
	d2 := cross(a, b, d)
	d3 := cross(c, d, a)
	d4 := cross(c, d, b)
	return ((d1 > onEdgeEps && d2 < -onEdgeEps) || (d1 < -onEdgeEps && d2 > onEdgeEps)) &&
		((d3 > onEdgeEps && d4 < -onEdgeEps) || (d3 < -onEdgeEps && d4 > onEdgeEps))
}
