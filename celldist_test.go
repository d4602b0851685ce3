// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundcells

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"

	"github.com/rteale/boundcells/geom"
)

func mustNew(t *testing.T, points []r2.Point, w, h int, setters ...Option) *CellDistribution {
	t.Helper()
	cd, err := New(points, w, h, setters...)
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}
	return cd
}

func TestNew_InvalidArguments(t *testing.T) {
	if _, err := New(squarePlusCenter(), 0, 20); err == nil {
		t.Errorf("New(width=0) error = nil, want non-nil")
	}
	if _, err := New(squarePlusCenter(), 20, 20, WithScale(0)); err == nil {
		t.Errorf("New(WithScale(0)) error = nil, want non-nil")
	}
	if _, err := New(squarePlusCenter()[:3], 20, 20); err == nil {
		t.Errorf("New(3 points) error = nil, want non-nil")
	}
}

func TestNew_InitialState(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20, WithID("sample-1"))

	if got := cd.State(); got != StateInitial {
		t.Errorf("State() = %v, want %v", got, StateInitial)
	}
	if got := cd.Alpha(); got != 0 {
		t.Errorf("Alpha() = %v, want 0", got)
	}
	if got := cd.ID(); got != "sample-1" {
		t.Errorf("ID() = %q, want %q", got, "sample-1")
	}
	if got := cd.NumCells(); got != 5 {
		t.Errorf("NumCells() = %v, want 5", got)
	}

	if diff := cmp.Diff([]int{0, 1, 2, 3, 4}, cd.BoundCells()); diff != "" {
		t.Errorf("BoundCells() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(geom.Rect(20, 20), cd.Boundary()); diff != "" {
		t.Errorf("Boundary() mismatch (-want +got):\n%s", diff)
	}
	if got := cd.Stats().NumBoundCells; got != 5 {
		t.Errorf("Stats().NumBoundCells = %v, want 5", got)
	}
	if got := cd.Stats().EstimatedArea; got != 400 {
		t.Errorf("Stats().EstimatedArea = %v, want 400 (full image)", got)
	}
}

func TestDefaultAlpha(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20)

	// all cells bound initially, so the mean runs over all 8 ridges
	want := (4*math.Sqrt(50) + 4*10) / 8
	if got := cd.DefaultAlpha(); math.Abs(got-want) > 1e-9 {
		t.Errorf("DefaultAlpha() = %v, want %v", got, want)
	}
}

func TestSetAlpha(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20)

	if err := cd.SetAlpha(8); err != nil {
		t.Fatalf("SetAlpha(8) error = %v, want nil", err)
	}
	if got := cd.State(); got != StateAlphaBounded {
		t.Errorf("State() = %v, want %v", got, StateAlphaBounded)
	}
	if got := cd.Alpha(); got != 8 {
		t.Errorf("Alpha() = %v, want 8", got)
	}
	if got := cd.Boundary().Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("Boundary().Area() = %v, want 100", got)
	}

	// corner cells are open, only the center survives; its diamond touches
	// the square boundary but edge contact still counts as inside
	if diff := cmp.Diff([]int{4}, cd.BoundCells()); diff != "" {
		t.Errorf("BoundCells() mismatch (-want +got):\n%s", diff)
	}

	s := cd.Stats()
	if got := s.Neighbors[4]; got != 4 {
		t.Errorf("Stats().Neighbors[4] = %v, want 4", got)
	}
	if got := s.NN[4]; math.Abs(got-math.Sqrt(50)) > 1e-9 {
		t.Errorf("Stats().NN[4] = %v, want sqrt(50)", got)
	}
	if got := s.VDArea[4]; math.Abs(got-50) > 1e-9 {
		t.Errorf("Stats().VDArea[4] = %v, want 50", got)
	}
	if got := s.AltNNRI; got != 2 {
		t.Errorf("Stats().AltNNRI = %v, want 2", got)
	}
}

func TestSetAlpha_ErrorKeepsState(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20)
	if err := cd.SetAlpha(8); err != nil {
		t.Fatalf("SetAlpha(8) error = %v, want nil", err)
	}
	boundary := cd.Boundary()

	// every fan triangle has circumradius 5, alpha below that retains nothing
	if err := cd.SetAlpha(4); err == nil {
		t.Fatalf("SetAlpha(4) error = nil, want non-nil")
	}
	if got := cd.State(); got != StateAlphaBounded {
		t.Errorf("State() after failed SetAlpha = %v, want %v", got, StateAlphaBounded)
	}
	if got := cd.Alpha(); got != 8 {
		t.Errorf("Alpha() after failed SetAlpha = %v, want 8", got)
	}
	if diff := cmp.Diff(boundary, cd.Boundary()); diff != "" {
		t.Errorf("Boundary() changed by failed SetAlpha (-want +got):\n%s", diff)
	}
}

func TestDilate_RequiresBoundary(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20)
	if err := cd.Dilate(0.5); !errors.Is(err, ErrNoBoundary) {
		t.Errorf("Dilate() in initial state error = %v, want ErrNoBoundary", err)
	}
	if got := cd.State(); got != StateInitial {
		t.Errorf("State() after failed Dilate = %v, want %v", got, StateInitial)
	}
}

func TestDilate_SubPixelKeepsBoundary(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20)
	if err := cd.SetAlpha(8); err != nil {
		t.Fatalf("SetAlpha(8) error = %v, want nil", err)
	}
	boundary := cd.Boundary()
	mask := cd.Mask()
	bound := cd.BoundCells()

	if err := cd.Dilate(0); err != nil {
		t.Fatalf("Dilate(0) error = %v, want nil", err)
	}
	if got := cd.State(); got != StateDilated {
		t.Errorf("State() = %v, want %v", got, StateDilated)
	}
	if diff := cmp.Diff(boundary, cd.Boundary()); diff != "" {
		t.Errorf("Boundary() changed by sub-pixel dilation (-want +got):\n%s", diff)
	}
	if !cd.Mask().Equal(mask) {
		t.Errorf("Mask() changed by sub-pixel dilation")
	}
	if diff := cmp.Diff(bound, cd.BoundCells()); diff != "" {
		t.Errorf("BoundCells() changed by sub-pixel dilation (-want +got):\n%s", diff)
	}

	// the area estimate switches from the full image to the mask
	if got, want := cd.Stats().EstimatedArea, float64(mask.Area()); got != want {
		t.Errorf("Stats().EstimatedArea = %v, want %v (mask area)", got, want)
	}
}

func TestDilate_GrowsBoundary(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20)
	if err := cd.SetAlpha(8); err != nil {
		t.Fatalf("SetAlpha(8) error = %v, want nil", err)
	}
	areaBefore := cd.Mask().Area()

	// strength 0.5 * 8 = 4 pixels
	if err := cd.Dilate(0.5); err != nil {
		t.Fatalf("Dilate(0.5) error = %v, want nil", err)
	}
	if got := cd.State(); got != StateDilated {
		t.Errorf("State() = %v, want %v", got, StateDilated)
	}
	if got := cd.Mask().Area(); got <= areaBefore {
		t.Errorf("Mask().Area() = %v, want > %v after dilation", got, areaBefore)
	}
	if got := cd.Boundary().Area(); got <= 100 {
		t.Errorf("Boundary().Area() = %v, want > 100 after dilation", got)
	}
	if !cd.Boundary().Closed() {
		t.Errorf("Boundary() not closed after dilation")
	}

	// the square rests on geometry y=0, so dilation grows it onto the bottom
	// raster row; the re-traced boundary must still reach y=0
	minY := math.Inf(1)
	for _, p := range cd.Boundary() {
		minY = math.Min(minY, p.Y)
	}
	if minY != 0 {
		t.Errorf("Boundary() min y = %v, want 0 after dilation", minY)
	}

	// the corner cells stay open, dilation cannot make them bound
	if diff := cmp.Diff([]int{4}, cd.BoundCells()); diff != "" {
		t.Errorf("BoundCells() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetAlpha_ResetsDilation(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20)
	if err := cd.SetAlpha(8); err != nil {
		t.Fatalf("SetAlpha(8) error = %v, want nil", err)
	}
	mask := cd.Mask()

	if err := cd.Dilate(0.5); err != nil {
		t.Fatalf("Dilate(0.5) error = %v, want nil", err)
	}
	if err := cd.SetAlpha(8); err != nil {
		t.Fatalf("second SetAlpha(8) error = %v, want nil", err)
	}

	if got := cd.State(); got != StateAlphaBounded {
		t.Errorf("State() = %v, want %v", got, StateAlphaBounded)
	}
	if !cd.Mask().Equal(mask) {
		t.Errorf("Mask() after re-applying alpha differs from the pre-dilation mask")
	}
	if got := cd.Boundary().Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("Boundary().Area() = %v, want 100", got)
	}
}

func TestSetUserBoundary(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20)

	if err := cd.SetUserBoundary(geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}); !errors.Is(err, ErrInvalidBoundary) {
		t.Errorf("SetUserBoundary(2 vertices) error = %v, want ErrInvalidBoundary", err)
	}
	if got := cd.State(); got != StateInitial {
		t.Errorf("State() after failed SetUserBoundary = %v, want %v", got, StateInitial)
	}

	poly := geom.Polygon{
		{X: -0.4, Y: -0.4}, {X: 10.4, Y: -0.4}, {X: 10.4, Y: 10.4}, {X: -0.4, Y: 10.4},
	}
	if err := cd.SetUserBoundary(poly); err != nil {
		t.Fatalf("SetUserBoundary() error = %v, want nil", err)
	}
	if got := cd.State(); got != StateUserDefined {
		t.Errorf("State() = %v, want %v", got, StateUserDefined)
	}

	want := geom.Polygon{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	if diff := cmp.Diff(want, cd.Boundary()); diff != "" {
		t.Errorf("Boundary() not rounded and closed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4}, cd.BoundCells()); diff != "" {
		t.Errorf("BoundCells() mismatch (-want +got):\n%s", diff)
	}
}

func TestWithScale_ConvertsStatistics(t *testing.T) {
	cd1 := mustNew(t, squarePlusCenter(), 20, 20)
	cd2 := mustNew(t, squarePlusCenter(), 20, 20, WithScale(2))
	for _, cd := range []*CellDistribution{cd1, cd2} {
		if err := cd.SetAlpha(8); err != nil {
			t.Fatalf("SetAlpha(8) error = %v, want nil", err)
		}
	}

	s1, s2 := cd1.Stats(), cd2.Stats()
	if got, want := s2.NN[4], 2*s1.NN[4]; math.Abs(got-want) > 1e-9 {
		t.Errorf("NN[4] at mpp=2 = %v, want %v", got, want)
	}
	if got, want := s2.VDArea[4], 4*s1.VDArea[4]; math.Abs(got-want) > 1e-9 {
		t.Errorf("VDArea[4] at mpp=2 = %v, want %v", got, want)
	}

	// the default alpha is defined in pixels and ignores the scale
	if got, want := cd2.DefaultAlpha(), cd1.DefaultAlpha(); got != want {
		t.Errorf("DefaultAlpha() at mpp=2 = %v, want %v", got, want)
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	cd := mustNew(t, squarePlusCenter(), 20, 20)

	pts := cd.Points()
	pts[0] = r2.Point{X: 99, Y: 99}
	if cd.Points()[0].X == 99 {
		t.Errorf("Points() aliases internal state")
	}

	bound := cd.BoundCells()
	bound[0] = 99
	if cd.BoundCells()[0] == 99 {
		t.Errorf("BoundCells() aliases internal state")
	}

	mask := cd.Mask()
	mask.Set(0, 0, !mask.At(0, 0))
	if cd.Mask().Equal(mask) {
		t.Errorf("Mask() aliases internal state")
	}

	boundary := cd.Boundary()
	boundary[0] = r2.Point{X: 99, Y: 99}
	if cd.Boundary()[0].X == 99 {
		t.Errorf("Boundary() aliases internal state")
	}
}

func TestBoundaryState_String(t *testing.T) {
	tests := []struct {
		state BoundaryState
		want  string
	}{
		{StateInitial, "initial"},
		{StateAlphaBounded, "alpha-bounded"},
		{StateDilated, "dilated"},
		{StateUserDefined, "user-defined"},
		{BoundaryState(42), "BoundaryState(42)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("BoundaryState(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
