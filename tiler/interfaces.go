package tiler

import (
	"github.com/terrakit/pathtiler/geo"
	"github.com/terrakit/pathtiler/pathcond"
	"github.com/terrakit/pathtiler/traceback"
)

// TileGrid is the "map" collaborator contract of spec.md §6: the surface
// a TilingPath is conditioned against and ultimately paints onto, indexed
// by the caller's own native map-position type P rather than CellPos, so
// a host application never needs to depend on this module's coordinate
// type.
type TileGrid[P any] interface {
	// Contains reports whether mpos is a paintable cell of the map.
	Contains(mpos P) bool

	// Set paints tileIndex at mpos.
	Set(mpos P, tileIndex int)

	// CellBounds returns the map's cell-grid extent, used by
	// (*TilingPath[P]).ExtendEdge to detect edge-touching endpoints.
	CellBounds() pathcond.Rect

	// ToMapPos converts a module-internal CellPos into the caller's
	// native map-position type.
	ToMapPos(p geo.CellPos) P

	// FromMapPos is ToMapPos's inverse. The tiler itself does not call
	// it: NewTilingPath takes its points as CellPos already.
	FromMapPos(mpos P) geo.CellPos
}

// Rng is the uniform-integer primitive Tile needs to break ties among
// cost-optimal predecessors during traceback, satisfied directly by
// *math/rand.Rand (spec.md §6).
type Rng interface{ Intn(n int) int }

// gridAdapter bridges a TileGrid[P] into package traceback's CellPos-typed
// Grid contract, so traceback never needs to know about the caller's
// native position type.
type gridAdapter[P any] struct {
	grid TileGrid[P]
}

func (g gridAdapter[P]) Contains(p geo.CellPos) bool {
	return g.grid.Contains(g.grid.ToMapPos(p))
}

func (g gridAdapter[P]) Set(p geo.CellPos, tileIndex int) {
	g.grid.Set(g.grid.ToMapPos(p), tileIndex)
}

var _ traceback.Grid = gridAdapter[int]{}
