// Copyright (c) 2026 Rowan Teale
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package boundcells quantifies the spatial regularity of a 2D cell mosaic,
// such as retinal cell centers. It builds a Voronoi tessellation over the
// cell coordinates, derives a data-driven tissue boundary from the alpha
// shape of the point set, classifies which cells lie fully inside that
// boundary, and computes regularity statistics (inter-cell distance,
// nearest-neighbor distance, Voronoi-domain area, neighbor counts and the
// NNRI/VDRI indices) over the bound subset.
//
// The CellDistribution aggregate owns all derived state and sequences the
// subpackages: delaunay and voronoi supply the tessellation, alphashape the
// boundary polygon, raster the mask form of the boundary and its
// morphological dilation.
package boundcells
