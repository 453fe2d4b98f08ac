// Package pathtiler fits pre-authored terrain template segments onto a
// procedurally generated grid path.
//
// Given a sequence of grid points (a road, river, or border a generator
// has already laid out) and a catalog of terrain-template segments, it
// searches for a sequence of segments that tiles the path end to end,
// staying within a configurable deviation tolerance, and paints the
// chosen templates onto a map.
//
// The module is organized the way lvlath organizes a graph library: a
// small set of focused subpackages, each owning one concern, composed
// behind this package's application-facing surface.
//
//	geo/        — grid-cell positions, vectors, and 8-neighbor directions
//	gridmat/    — dense, generic per-cell matrices over a rectangle
//	priorityarr/ — a flat array-backed priority store (Dijkstra frontier)
//	flood/      — multi-source, budgeted BFS spreading over a grid
//	catalog/    — authored template/segment data and its YAML loader
//	pathcond/   — pure path-conditioning transforms (extend, shrink, ...)
//	geometry/   — the deviation/progress matrices and separation erosion
//	search/     — the Dijkstra-style best-first search over segments
//	traceback/  — backward reconstruction, randomized choice, and paint
//	tiler/      — TilingPath and the Tile entry point tying it together
//
// Typical use:
//
//	path := tiler.NewTilingPath(grid, points, maxDeviation, start, end, segments)
//	path.InertiallyExtend(2, 3).RetainIfValid()
//	result, err := path.Tile(rand.New(rand.NewSource(seed)))
package pathtiler
