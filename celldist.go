// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundcells

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/rteale/boundcells/alphashape"
	"github.com/rteale/boundcells/geom"
	"github.com/rteale/boundcells/raster"
	"github.com/rteale/boundcells/voronoi"
)

// ErrNoBoundary is returned when dilation is requested before any
// data-driven boundary has been established.
var ErrNoBoundary = errors.New("boundcells: no boundary defined yet")

// ErrInvalidBoundary is returned for user boundaries with fewer than three
// vertices.
var ErrInvalidBoundary = errors.New("boundcells: boundary polygon needs at least 3 vertices")

// BoundaryState identifies how the current tissue boundary was obtained.
type BoundaryState int

const (
	// StateInitial: boundary is the full image rectangle, all cells bound.
	StateInitial BoundaryState = iota
	// StateAlphaBounded: boundary is the alpha-shape polygon.
	StateAlphaBounded
	// StateDilated: boundary is the outline of the dilated mask.
	StateDilated
	// StateUserDefined: boundary was supplied by the caller.
	StateUserDefined
)

func (s BoundaryState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateAlphaBounded:
		return "alpha-bounded"
	case StateDilated:
		return "dilated"
	case StateUserDefined:
		return "user-defined"
	}
	return fmt.Sprintf("BoundaryState(%d)", int(s))
}

// CellDistribution owns a cell mosaic and everything derived from it: the
// Voronoi diagram (built once at construction), the current tissue boundary
// in both polygon and mask form, the bound-cell set and the statistics
// snapshot. Every transition (SetAlpha, Dilate, SetUserBoundary) recomputes
// boundary, mask, bound set and statistics together and swaps them in
// atomically, so readers never observe a boundary without a matching
// bound set.
//
// A CellDistribution is not safe for concurrent mutation; callers sharing an
// instance across goroutines must serialize the mutating calls. Read
// accessors may run concurrently once a mutation has completed.
type CellDistribution struct {
	id            string
	points        []r2.Point
	width, height int
	mpp           float64

	diagram *voronoi.Diagram

	state    BoundaryState
	alpha    float64
	boundary geom.Polygon
	mask     *raster.Mask
	bound    []int
	stats    *Statistics
}

type Options struct {
	Scale float64
	ID    string
}

type Option func(*Options) error

// WithScale sets the spatial scale in microns per pixel. The default is 1.
func WithScale(mpp float64) Option {
	return func(o *Options) error {
		if mpp <= 0 {
			return fmt.Errorf("boundcells: scale must be positive, got %v", mpp)
		}
		o.Scale = mpp
		return nil
	}
}

// WithID attaches an identifier used in reports.
func WithID(id string) Option {
	return func(o *Options) error {
		o.ID = id
		return nil
	}
}

// New builds a CellDistribution from cell coordinates in pixel units and the
// image dimensions. The Voronoi diagram is computed once here; the boundary
// starts as the full image rectangle with every cell bound.
func New(points []r2.Point, width, height int, setters ...Option) (*CellDistribution, error) {
	opts := Options{Scale: 1}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("boundcells: invalid image dimensions %dx%d", width, height)
	}

	diagram, err := voronoi.New(points)
	if err != nil {
		return nil, err
	}

	boundary := geom.Rect(float64(width), float64(height))
	bound := make([]int, len(points))
	for i := range bound {
		bound[i] = i
	}

	cd := &CellDistribution{
		id:       opts.ID,
		points:   points,
		width:    width,
		height:   height,
		mpp:      opts.Scale,
		diagram:  diagram,
		state:    StateInitial,
		boundary: boundary,
		mask:     raster.FromPolygon(boundary, width, height),
		bound:    bound,
	}
	cd.stats = ComputeStatistics(diagram, bound, cd.mpp, cd.imageAreaPx())
	return cd, nil
}

// DefaultAlpha returns the mean inter-cell ridge distance in pixels. Using it
// as the alpha threshold makes boundary tightness scale with local cell
// density.
func (cd *CellDistribution) DefaultAlpha() float64 {
	return cd.stats.MeanICDPixels
}

// SetAlpha extracts the alpha-shape boundary for the given alpha and
// reclassifies the bound set. It can be called from any state and fully
// replaces boundary, mask, bound set and statistics; on error the previous
// state is kept.
func (cd *CellDistribution) SetAlpha(alpha float64) error {
	boundary, err := alphashape.Extract(cd.points, alpha)
	if err != nil {
		return err
	}
	mask := raster.FromPolygon(boundary, cd.width, cd.height)
	bound := ClassifyBound(cd.diagram, boundary)
	stats := ComputeStatistics(cd.diagram, bound, cd.mpp, cd.imageAreaPx())

	cd.state = StateAlphaBounded
	cd.alpha = alpha
	cd.boundary = boundary
	cd.mask = mask
	cd.bound = bound
	cd.stats = stats
	return nil
}

// Dilate grows the current mask by factor times the current alpha, coupling
// border expansion to local cell spacing, and re-extracts the boundary
// polygon from the dilated mask. Successive dilations accumulate. Dilation
// in the Initial state returns ErrNoBoundary.
//
// A strength that rounds below one pixel keeps mask, boundary polygon and
// bound set bit-for-bit identical; only the area estimate switches to the
// mask area.
func (cd *CellDistribution) Dilate(factor float64) error {
	if cd.state == StateInitial {
		return ErrNoBoundary
	}
	alpha := cd.alpha
	if alpha == 0 {
		alpha = cd.DefaultAlpha()
	}
	strength := factor * alpha

	mask := cd.mask.Dilate(strength)
	boundary := cd.boundary
	bound := cd.bound
	if !mask.Equal(cd.mask) {
		poly, err := mask.Outline()
		if err != nil {
			return err
		}
		boundary = poly
		bound = ClassifyBound(cd.diagram, boundary)
	}
	stats := ComputeStatistics(cd.diagram, bound, cd.mpp, float64(mask.Area()))

	cd.state = StateDilated
	cd.boundary = boundary
	cd.mask = mask
	cd.bound = bound
	cd.stats = stats
	return nil
}

// SetUserBoundary replaces the boundary with an externally supplied polygon.
// The polygon is rounded to pixel coordinates and closed before use.
func (cd *CellDistribution) SetUserBoundary(poly geom.Polygon) error {
	if len(poly) < 3 {
		return ErrInvalidBoundary
	}
	boundary := poly.Round().Close()
	mask := raster.FromPolygon(boundary, cd.width, cd.height)
	bound := ClassifyBound(cd.diagram, boundary)
	stats := ComputeStatistics(cd.diagram, bound, cd.mpp, cd.imageAreaPx())

	cd.state = StateUserDefined
	cd.boundary = boundary
	cd.mask = mask
	cd.bound = bound
	cd.stats = stats
	return nil
}

func (cd *CellDistribution) imageAreaPx() float64 {
	return float64(cd.width) * float64(cd.height)
}

// ID returns the identifier attached with WithID.
func (cd *CellDistribution) ID() string { return cd.id }

// NumCells returns the number of sites in the mosaic.
func (cd *CellDistribution) NumCells() int { return len(cd.points) }

// Points returns a copy of the cell coordinates.
func (cd *CellDistribution) Points() []r2.Point {
	out := make([]r2.Point, len(cd.points))
	copy(out, cd.points)
	return out
}

// Width returns the image width in pixels.
func (cd *CellDistribution) Width() int { return cd.width }

// Height returns the image height in pixels.
func (cd *CellDistribution) Height() int { return cd.height }

// Scale returns the microns-per-pixel factor.
func (cd *CellDistribution) Scale() float64 { return cd.mpp }

// State returns the current boundary state.
func (cd *CellDistribution) State() BoundaryState { return cd.state }

// Alpha returns the alpha applied by the last SetAlpha call, or zero.
func (cd *CellDistribution) Alpha() float64 { return cd.alpha }

// Diagram returns the Voronoi diagram. It is read-only after construction
// and must not be modified.
func (cd *CellDistribution) Diagram() *voronoi.Diagram { return cd.diagram }

// Boundary returns a copy of the current boundary polygon.
func (cd *CellDistribution) Boundary() geom.Polygon { return cd.boundary.Clone() }

// Mask returns a copy of the current raster mask.
func (cd *CellDistribution) Mask() *raster.Mask { return cd.mask.Clone() }

// BoundCells returns a copy of the bound site ids in ascending order.
func (cd *CellDistribution) BoundCells() []int {
	out := make([]int, len(cd.bound))
	copy(out, cd.bound)
	return out
}

// Stats returns the current statistics snapshot. The snapshot is immutable
// and stays valid across later transitions.
func (cd *CellDistribution) Stats() *Statistics { return cd.stats }
