// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package raster converts between boundary polygons and binary masks.
//
// The boundary alternates between the two representations because dilation is
// raster-native while containment testing and reporting are polygon-native.
// Geometry coordinates have their origin at the bottom-left; the raster
// origin is top-left. Both conversion directions apply the vertical flip, so
// a polygon→mask→polygon round trip stays in geometry coordinates.
package raster

import (
	"errors"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"

	"github.com/rteale/boundcells/geom"
)

// ErrEmptyMask is returned when a mask holds no foreground region to trace.
var ErrEmptyMask = errors.New("raster: mask has no foreground region")

// Mask is a binary raster over the image dimensions. The zero value is not
// usable; construct masks with New or FromPolygon.
type Mask struct {
	w, h int
	bits []bool
}

// New returns an all-background mask of the given dimensions.
func New(w, h int) *Mask {
	return &Mask{w: w, h: h, bits: make([]bool, w*h)}
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.h }

// At reports whether the pixel at column x, row y is foreground.
// Out-of-range coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.bits[y*m.w+x]
}

// Set marks the pixel at column x, row y.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return
	}
	m.bits[y*m.w+x] = v
}

// Area returns the number of foreground pixels.
func (m *Mask) Area() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns a copy of m.
func (m *Mask) Clone() *Mask {
	out := New(m.w, m.h)
	copy(out.bits, m.bits)
	return out
}

// Equal reports whether two masks have identical dimensions and pixels.
func (m *Mask) Equal(o *Mask) bool {
	if m.w != o.w || m.h != o.h {
		return false
	}
	for i, b := range m.bits {
		if b != o.bits[i] {
			return false
		}
	}
	return true
}

// FromPolygon rasterizes a polygon into a w×h mask by scan-filling its
// interior and stroking a one-pixel outline, so boundary pixels are part of
// the mask.
func FromPolygon(poly geom.Polygon, w, h int) *Mask {
	m := New(w, h)
	if len(poly) < 3 {
		return m
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	for i, v := range poly {
		// flip: geometry origin is bottom-left, row h-1 is geometry y=0
		x, y := v.X, float64(h-1)-v.Y
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.FillPreserve()
	dc.SetLineWidth(1)
	dc.Stroke()

	img := dc.Image()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			m.bits[y*m.w+x] = r >= 0x8000
		}
	}
	return m
}

// Dilate grows the foreground by a square structuring element whose side is
// round(strength). A side of one pixel or less leaves the mask unchanged.
// The element's origin follows the scipy binary_dilation convention: index
// (k-1)/2 of a k-sided element.
func (m *Mask) Dilate(strength float64) *Mask {
	k := int(math.Round(strength))
	if k <= 1 {
		return m.Clone()
	}
	lo := -((k - 1) / 2)
	hi := k / 2

	// Square elements are separable: a horizontal pass then a vertical pass.
	mid := New(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			for dx := lo; dx <= hi; dx++ {
				if m.At(x+dx, y) {
					mid.bits[y*m.w+x] = true
					break
				}
			}
		}
	}
	out := New(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			for dy := lo; dy <= hi; dy++ {
				if mid.At(x, y+dy) {
					out.bits[y*m.w+x] = true
					break
				}
			}
		}
	}
	return out
}

// Outline traces the boundary of the mask's foreground and returns it as a
// closed polygon in geometry coordinates. When several disjoint regions
// exist, the one with the most boundary vertices wins; that favors the
// largest contiguous region. Returns ErrEmptyMask for a blank mask.
func (m *Mask) Outline() (geom.Polygon, error) {
	labels := make([]int, m.w*m.h)
	next := 0
	var best []point

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.bits[y*m.w+x] || labels[y*m.w+x] != 0 {
				continue
			}
			next++
			m.label(x, y, next, labels)
			contour := m.trace(x, y)
			if len(contour) > len(best) {
				best = contour
			}
		}
	}
	if best == nil {
		return nil, ErrEmptyMask
	}

	poly := make(geom.Polygon, len(best))
	for i, p := range best {
		poly[i] = r2.Point{X: float64(p.x), Y: float64(m.h - 1 - p.y)}
	}
	return poly.Close(), nil
}

type point struct{ x, y int }

// label flood-fills the 8-connected component containing (x, y).
func (m *Mask) label(x, y, id int, labels []int) {
	stack := []point{{x, y}}
	labels[y*m.w+x] = id
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.x+dx, p.y+dy
				if m.At(nx, ny) && labels[ny*m.w+nx] == 0 {
					labels[ny*m.w+nx] = id
					stack = append(stack, point{nx, ny})
				}
			}
		}
	}
}

// moore lists the 8 neighbors in clockwise order starting from west.
var moore = [8]point{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}}

func mooreIndex(d point) int {
	for i, v := range moore {
		if v == d {
			return i
		}
	}
	panic("raster: not a neighbor offset")
}

// trace walks the outer contour of the region whose top-left boundary pixel
// is (sx, sy) using Moore-neighbor tracing. The start pixel is found by
// row-major scan, so its west neighbor is background. The walk stops when it
// re-enters the start pixel in the starting tracer state, which closes the
// contour exactly; a step cap guards pathological pinched regions.
func (m *Mask) trace(sx, sy int) []point {
	start := point{sx, sy}
	contour := []point{start}

	// Backtrack index: the background neighbor scanned just before the
	// current pixel was found. The scan resumes from the position after it.
	back := 0 // west of start is background
	cur := start
	for steps := 0; steps <= 4*m.w*m.h; steps++ {
		found := false
		var nxt point
		nxtBack := 0
		for i := 1; i <= 8; i++ {
			j := (back + i) % 8
			cand := point{cur.x + moore[j].x, cur.y + moore[j].y}
			if m.At(cand.x, cand.y) {
				nxt = cand
				// the previously scanned offset is background; reuse it,
				// re-indexed relative to the pixel just found
				jm1 := (j + 7) % 8
				nxtBack = mooreIndex(point{
					cur.x + moore[jm1].x - cand.x,
					cur.y + moore[jm1].y - cand.y,
				})
				found = true
				break
			}
		}
		if !found {
			// isolated pixel
			return contour
		}
		if nxt == start && nxtBack == 0 {
			return contour
		}
		contour = append(contour, nxt)
		cur = nxt
		back = nxtBack
	}
	return contour
}
