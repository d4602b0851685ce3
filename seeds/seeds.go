// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package seeds generates random planar cell mosaics, optionally with a
// minimum-separation constraint, for testing and simulated distributions.
package seeds

import (
	"fmt"
	"math/rand"

	"github.com/golang/geo/r2"

	"github.com/rteale/boundcells/geom"
)

// maxAttempts bounds the rejection sampling per seed before giving up.
const maxAttempts = 100_000

// Generate returns cnt uniform random points inside the w×h rectangle.
// The seed parameter ensures reproducibility.
func Generate(cnt int, w, h float64, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)
	for i := range points {
		points[i] = r2.Point{X: random.Float64() * w, Y: random.Float64() * h}
	}
	return points
}

// GenerateMinSep returns cnt random points inside the w×h rectangle with a
// minimum Euclidean separation between any two points. It fails when the
// constraint cannot be satisfied within a bounded number of attempts, which
// happens when minSep is too large for the requested density.
func GenerateMinSep(cnt int, w, h, minSep float64, seed int64) ([]r2.Point, error) {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, 0, cnt)
	for len(points) < cnt {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			cand := r2.Point{X: random.Float64() * w, Y: random.Float64() * h}
			if separated(cand, points, minSep) {
				points = append(points, cand)
				placed = true
				break
			}
		}
		if !placed {
			return nil, fmt.Errorf("seeds: could not place point %d of %d with separation %v",
				len(points)+1, cnt, minSep)
		}
	}
	return points, nil
}

func separated(cand r2.Point, points []r2.Point, minSep float64) bool {
	for _, p := range points {
		if geom.Dist(cand, p) < minSep {
			return false
		}
	}
	return true
}
