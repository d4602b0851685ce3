// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package alphashape extracts concave boundary polygons from planar point
// sets. The alpha parameter acts as a low-pass geometric filter: small values
// yield tight, concave boundaries, large values approach the convex hull.
package alphashape

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"

	"github.com/rteale/boundcells/delaunay"
	"github.com/rteale/boundcells/geom"
)

// ErrDisconnectedBoundary is returned when the retained boundary edges do not
// form a single closed cycle, e.g. for a branching edge graph or when alpha
// retains no triangle at all.
var ErrDisconnectedBoundary = errors.New("alphashape: boundary edges do not form a single closed cycle")

// Extract computes the alpha-shape boundary of points and returns it as a
// closed polygon with integer vertices.
//
// Every Delaunay triangle whose circumradius is below alpha contributes its
// edges; an edge shared by two retained triangles is interior and is dropped,
// leaving exactly the outer boundary of the alpha-complex. Disjoint fragments
// are discarded by keeping only the largest connected component, which is
// then walked into a single closed cycle.
func Extract(points []r2.Point, alpha float64) (geom.Polygon, error) {
	dt, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, err
	}

	edges := boundaryEdges(dt, alpha)
	if len(edges) == 0 {
		return nil, ErrDisconnectedBoundary
	}

	comp := largestComponent(edges)
	path, err := walkCycle(edges, comp)
	if err != nil {
		return nil, err
	}

	poly := make(geom.Polygon, len(path))
	for i, idx := range path {
		poly[i] = points[idx]
	}
	return poly.Round().Close(), nil
}

// boundaryEdges returns the outer edges of the alpha-complex in a stable
// insertion order. Adding an edge twice removes it: the second occurrence
// means two retained triangles share it, so it is interior.
func boundaryEdges(dt *delaunay.Triangulation, alpha float64) [][2]int {
	present := make(map[[2]int]bool)
	order := make([][2]int, 0)

	addEdge := func(i, j int) {
		key := orderedPair(i, j)
		if present[key] {
			present[key] = false
			return
		}
		present[key] = true
		order = append(order, key)
	}

	for tIdx, tri := range dt.Triangles {
		pa, pb, pc := dt.TriangleVertices(tIdx)
		if circumradius(pa, pb, pc) < alpha {
			addEdge(tri[0], tri[1])
			addEdge(tri[1], tri[2])
			addEdge(tri[2], tri[0])
		}
	}

	edges := order[:0]
	for _, e := range order {
		if present[e] {
			edges = append(edges, e)
		}
	}
	return edges
}

// circumradius computes the circumcircle radius from the three edge lengths
// via Heron's formula. Degenerate triangles yield a non-finite radius, which
// never passes the alpha filter.
func circumradius(pa, pb, pc r2.Point) float64 {
	a := geom.Dist(pa, pb)
	b := geom.Dist(pb, pc)
	c := geom.Dist(pc, pa)
	s := (a + b + c) / 2
	area := math.Sqrt(s * (s - a) * (s - b) * (s - c))
	return a * b * c / (4 * area)
}

// largestComponent returns the vertex set of the largest connected component
// of the edge graph. Vertices are visited in edge insertion order, so ties
// resolve to the first component encountered.
func largestComponent(edges [][2]int) map[int]bool {
	adj := adjacency(edges)

	vertexOrder := make([]int, 0, len(adj))
	seen := make(map[int]bool)
	for _, e := range edges {
		for _, v := range e {
			if !seen[v] {
				seen[v] = true
				vertexOrder = append(vertexOrder, v)
			}
		}
	}

	visited := make(map[int]bool)
	var best map[int]bool
	for _, start := range vertexOrder {
		if visited[start] {
			continue
		}
		comp := make(map[int]bool)
		queue := []int{start}
		visited[start] = true
		comp[start] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, nb := range adj[v] {
				if !visited[nb] {
					visited[nb] = true
					comp[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		if best == nil || len(comp) > len(best) {
			best = comp
		}
	}
	return best
}

// walkCycle orders the component's vertices into a single cycle: starting
// from the first recorded edge, the path is extended through unvisited
// neighbors until none remain. The walk fails if it strands part of the
// component or cannot close back on its starting vertex.
func walkCycle(edges [][2]int, comp map[int]bool) ([]int, error) {
	adj := adjacency(edges)

	var start [2]int
	found := false
	for _, e := range edges {
		if comp[e[0]] {
			start = e
			found = true
			break
		}
	}
	if !found {
		return nil, ErrDisconnectedBoundary
	}

	path := []int{start[0], start[1]}
	visited := map[int]bool{start[0]: true, start[1]: true}
	current := start[1]
	for {
		next := -1
		for _, nb := range adj[current] {
			if !visited[nb] {
				next = nb
				break
			}
		}
		if next == -1 {
			break
		}
		visited[next] = true
		path = append(path, next)
		current = next
	}

	if len(path) != len(comp) || !hasEdge(adj, current, path[0]) {
		return nil, ErrDisconnectedBoundary
	}
	return path, nil
}

func adjacency(edges [][2]int) map[int][]int {
	adj := make(map[int][]int)
	for _, e := range edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}
	return adj
}

func hasEdge(adj map[int][]int, a, b int) bool {
	for _, nb := range adj[a] {
		if nb == b {
			return true
		}
	}
	return false
}

func orderedPair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
