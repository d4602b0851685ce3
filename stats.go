// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package boundcells

import (
	"math"

	"github.com/golang/geo/r2"
	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/rteale/boundcells/geom"
	"github.com/rteale/boundcells/voronoi"
)

// micronsPerMM2 converts a per-µm² density into cells per mm².
const micronsPerMM2 = 1_000_000

// Statistics is an immutable snapshot of the spatial statistics over a
// bound-cell set. Distances are in microns, areas in square microns,
// densities in cells per mm². A snapshot is replaced wholesale whenever the
// bound set changes; callers must not modify its maps.
type Statistics struct {
	NumCells      int
	NumBoundCells int

	// EstimatedArea is the tissue area estimate in µm²: the full image in
	// the Initial and AlphaBounded states, the dilated mask afterwards.
	EstimatedArea float64
	// EstimatedDensity divides the total site count by EstimatedArea.
	// It is not interchangeable with BoundDensity, whose denominator is the
	// bound cells' own Voronoi area.
	EstimatedDensity float64

	// ICD holds the inter-cell distance for every ridge with at least one
	// bound endpoint, keyed by the ordered site pair.
	ICD map[[2]int]float64
	// NN holds the distance from each bound site to its nearest other site.
	NN map[int]float64
	// VDArea holds each bound site's Voronoi cell area.
	VDArea map[int]float64
	// Neighbors holds each bound site's Voronoi neighbor count.
	Neighbors map[int]int

	MeanICD, StdICD             float64
	MeanNN, StdNN               float64
	MeanVD, StdVD               float64
	MeanNeighbors, StdNeighbors float64

	// MeanICDPixels is the mean inter-cell distance before unit conversion.
	// The default alpha is defined in pixel units, so it is kept alongside
	// the micron aggregates.
	MeanICDPixels float64

	// TotalBoundArea is the summed Voronoi area of the bound cells in µm².
	TotalBoundArea float64
	// BoundDensity is NumBoundCells over TotalBoundArea, in cells per mm².
	BoundDensity float64

	NNRI    float64
	VDRI    float64
	AltNNRI float64
}

// RegularityIndex is the mean of a metric divided by its standard deviation;
// larger values indicate more regular spacing. A zero deviation propagates
// as a non-finite value rather than being masked.
func RegularityIndex(mean, std float64) float64 {
	return mean / std
}

// AltIndex normalizes a mean nearest-neighbor distance by the expected
// spacing of a perfectly regular packing at the same density.
func AltIndex(meanNN, totalArea float64, numCells int) float64 {
	return meanNN / (0.5 * math.Sqrt(totalArea/float64(numCells)))
}

// ComputeStatistics computes the statistics snapshot for the given bound set.
// mpp converts pixels to microns (squared for areas); estAreaPx is the
// current tissue area estimate in pixels².
func ComputeStatistics(d *voronoi.Diagram, bound []int, mpp, estAreaPx float64) *Statistics {
	s := &Statistics{
		NumCells:      d.NumCells(),
		NumBoundCells: len(bound),
		ICD:           make(map[[2]int]float64),
		NN:            make(map[int]float64),
		VDArea:        make(map[int]float64),
		Neighbors:     make(map[int]int),
	}

	boundSet := make(map[int]bool, len(bound))
	for _, id := range bound {
		boundSet[id] = true
	}

	// Inter-cell distances over ridges touching the bound set. Proximity at
	// the tissue edge still matters, so a bound-unbound pair counts.
	icdPx := make([]float64, 0, len(d.Ridges))
	for _, ridge := range d.Ridges {
		if !boundSet[ridge[0]] && !boundSet[ridge[1]] {
			continue
		}
		dist := geom.Dist(d.Sites[ridge[0]], d.Sites[ridge[1]])
		s.ICD[ridge] = dist * mpp
		icdPx = append(icdPx, dist)
	}

	// Nearest-neighbor distances from a spatial index over the full mosaic:
	// the nearest site of a bound cell may itself be unbound.
	tree := siteTree(d.Sites)
	nnPx := make([]float64, 0, len(bound))
	vdPx := make([]float64, 0, len(bound))
	neighbors := make([]float64, 0, len(bound))
	for _, id := range bound {
		nn := nearestOther(tree, d.Sites[id])
		s.NN[id] = nn * mpp
		nnPx = append(nnPx, nn)

		cell, err := d.Cell(id)
		if err != nil {
			continue
		}
		area := cell.Polygon().Area()
		s.VDArea[id] = area * mpp * mpp
		vdPx = append(vdPx, area)

		n := cell.NumFiniteVertices()
		s.Neighbors[id] = n
		neighbors = append(neighbors, float64(n))
	}

	meanICDPx, stdICDPx := meanStd(icdPx)
	s.MeanICDPixels = meanICDPx
	s.MeanICD, s.StdICD = meanICDPx*mpp, stdICDPx*mpp

	meanNNPx, stdNNPx := meanStd(nnPx)
	s.MeanNN, s.StdNN = meanNNPx*mpp, stdNNPx*mpp

	meanVDPx, stdVDPx := meanStd(vdPx)
	s.MeanVD, s.StdVD = meanVDPx*mpp*mpp, stdVDPx*mpp*mpp

	s.MeanNeighbors, s.StdNeighbors = meanStd(neighbors)

	totalVDPx := 0.0
	for _, a := range vdPx {
		totalVDPx += a
	}
	s.TotalBoundArea = totalVDPx * mpp * mpp
	s.BoundDensity = float64(s.NumBoundCells) / s.TotalBoundArea * micronsPerMM2

	s.EstimatedArea = estAreaPx * mpp * mpp
	s.EstimatedDensity = float64(s.NumCells) / s.EstimatedArea * micronsPerMM2

	s.NNRI = RegularityIndex(s.MeanNN, s.StdNN)
	s.VDRI = RegularityIndex(s.MeanVD, s.StdVD)
	s.AltNNRI = AltIndex(s.MeanNN, s.TotalBoundArea, s.NumBoundCells)

	return s
}

// siteTree builds a kd-tree over every site of the mosaic.
func siteTree(sites []r2.Point) *kdtree.Tree {
	pts := make(kdtree.Points, len(sites))
	for i, s := range sites {
		pts[i] = kdtree.Point{s.X, s.Y}
	}
	return kdtree.New(pts, false)
}

// nearestOther returns the distance from site to its nearest other site in
// pixels. The two nearest hits include the site itself at distance zero, so
// the answer is the larger of the two; coincident sites correctly yield zero.
func nearestOther(tree *kdtree.Tree, site r2.Point) float64 {
	keeper := kdtree.NewNKeeper(2)
	tree.NearestSet(keeper, kdtree.Point{site.X, site.Y})
	best := 0.0
	for _, c := range keeper.Heap {
		if c.Comparable == nil || math.IsInf(c.Dist, 1) {
			continue
		}
		if c.Dist > best {
			best = c.Dist
		}
	}
	// kd-tree distances are squared Euclidean
	return math.Sqrt(best)
}

// meanStd returns the mean and population standard deviation of vals, or
// NaNs for an empty slice.
func meanStd(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return math.NaN(), math.NaN()
	}
	mean, err := mstats.Mean(vals)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	std, err := mstats.StandardDeviationPopulation(vals)
	if err != nil {
		return mean, math.NaN()
	}
	return mean, std
}
