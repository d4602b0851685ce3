// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

func TestPolygon_Close(t *testing.T) {
	tests := []struct {
		name string
		in   Polygon
		want Polygon
	}{
		{
			"open triangle",
			Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}},
			Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}, {X: 0, Y: 0}},
		},
		{
			"already closed",
			Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}, {X: 0, Y: 0}},
			Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}, {X: 0, Y: 0}},
		},
		{"empty", Polygon{}, Polygon{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Close()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Close() mismatch (-want +got):\n%s", diff)
			}
			if len(got) > 0 && !got.Closed() {
				t.Errorf("Close() result not Closed()")
			}
		})
	}
}

func TestPolygon_Round(t *testing.T) {
	in := Polygon{{X: 0.4, Y: 0.6}, {X: 9.5, Y: -1.2}}
	want := Polygon{{X: 0, Y: 1}, {X: 10, Y: -1}}
	if diff := cmp.Diff(want, in.Round()); diff != "" {
		t.Errorf("Round() mismatch (-want +got):\n%s", diff)
	}
}

func TestPolygon_Area(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want float64
	}{
		{"unit square", Rect(1, 1), 1},
		{"rectangle", Rect(10, 5), 50},
		{
			"diamond",
			Polygon{{X: 5, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 5}},
			50,
		},
		{
			"clockwise still positive",
			Polygon{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}},
			16,
		},
		{"degenerate", Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.Area(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygon_ContainsPoint(t *testing.T) {
	square := Rect(10, 10)
	tests := []struct {
		name string
		pt   r2.Point
		want bool
	}{
		{"center", r2.Point{X: 5, Y: 5}, true},
		{"on edge", r2.Point{X: 5, Y: 0}, true},
		{"on vertex", r2.Point{X: 10, Y: 10}, true},
		{"outside", r2.Point{X: 11, Y: 5}, false},
		{"just outside", r2.Point{X: -0.001, Y: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := square.ContainsPoint(tt.pt); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestPolygon_Contains(t *testing.T) {
	square := Rect(10, 10)
	tests := []struct {
		name string
		q    Polygon
		want bool
	}{
		{
			"strictly inside",
			Polygon{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}},
			true,
		},
		{
			// a cell may touch the boundary from the inside
			"touching inscribed diamond",
			Polygon{{X: 5, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 5}},
			true,
		},
		{
			"vertex outside",
			Polygon{{X: 5, Y: 5}, {X: 12, Y: 5}, {X: 5, Y: 8}},
			false,
		},
		{
			"fully outside",
			Polygon{{X: 20, Y: 20}, {X: 22, Y: 20}, {X: 21, Y: 22}},
			false,
		},
		{"empty", Polygon{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := square.Contains(tt.q); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestPolygon_Contains_CrossingEdges(t *testing.T) {
	// a non-convex boundary: vertices inside is not enough, edges must not
	// cross
	u := Polygon{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
		{X: 6, Y: 10}, {X: 6, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 10}, {X: 0, Y: 10},
	}
	// both endpoints inside the U, but the connecting edge crosses the notch
	bridge := Polygon{{X: 2, Y: 8}, {X: 8, Y: 8}, {X: 5, Y: 1}}
	if u.Contains(bridge) {
		t.Errorf("Contains(bridge across notch) = true, want false")
	}
}

func TestDist(t *testing.T) {
	got := Dist(r2.Point{X: 0, Y: 0}, r2.Point{X: 3, Y: 4})
	if got != 5 {
		t.Errorf("Dist() = %v, want 5", got)
	}
}

func TestSegmentsCross(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d r2.Point
		want       bool
	}{
		{
			"proper crossing",
			r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 4},
			r2.Point{X: 0, Y: 4}, r2.Point{X: 4, Y: 0},
			true,
		},
		{
			"shared endpoint",
			r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0},
			r2.Point{X: 4, Y: 0}, r2.Point{X: 4, Y: 4},
			false,
		},
		{
			"collinear overlap",
			r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0},
			r2.Point{X: 2, Y: 0}, r2.Point{X: 6, Y: 0},
			false,
		},
		{
			"touching midpoint",
			r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0},
			r2.Point{X: 2, Y: 0}, r2.Point{X: 2, Y: 4},
			false,
		},
		{
			"disjoint",
			r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0},
			r2.Point{X: 3, Y: 3}, r2.Point{X: 4, Y: 4},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentsCross(tt.a, tt.b, tt.c, tt.d); got != tt.want {
				t.Errorf("segmentsCross() = %v, want %v", got, tt.want)
			}
		})
	}
}
