// Package tiler is the module's top-level, application-facing package
// (analogous to lvlath's root package re-exporting core/matrix/
// algorithms behind one doc-commented surface): it hosts TilingPath, its
// chainable conditioner methods, and the Tile entry point that drives
// conditioning → geometry pass → search → traceback end to end.
//
// Everything in geo, gridmat, priorityarr, flood, catalog, pathcond,
// geometry, search, and traceback is an internal implementation detail
// reachable only through this package for ordinary application code.
package tiler

import (
	"github.com/terrakit/pathtiler/catalog"
	"github.com/terrakit/pathtiler/geo"
)

// Terminal is a path endpoint's connection role: a type label (e.g.
// "Beach") and a compass direction. Direction == geo.DirNone means
// "derive automatically from the path's own first/last step", per
// spec.md §4.2 step 2. The zero value's Direction is geo.North, not
// geo.DirNone, so a zero Terminal does not auto-derive its direction.
type Terminal struct {
	Type      string
	Direction geo.Direction
}

// label renders the terminal as the "<type>.<dir>" form catalog segments
// author their Start/End fields in.
func (t Terminal) label() string {
	return t.Type + "." + t.Direction.String()
}

// TilingPath is the central entity of spec.md §3: an owning map
// reference, a (possibly nil) point sequence, deviation/separation
// bounds, the path's terminal roles, and the permitted segment catalog.
// P is the caller's native map-position type (spec.md §6's "conversion
// from CellPos to the map's native position type").
//
// TilingPath exclusively owns its points and search scratch; per
// spec.md §5, the caller must serialize Tile calls against concurrent
// readers/writers of Grid.
type TilingPath[P any] struct {
	Grid   TileGrid[P]
	points []geo.CellPos

	MaxDeviation  int
	MaxSkip       int
	MinSeparation int

	Start, End Terminal
	Segments   *catalog.PermittedSegments
}

// NewTilingPath constructs a TilingPath from the required parameters of
// spec.md §6: map, points, maxDeviation, the two terminals, and the
// permitted segment set. MaxSkip and MinSeparation default to zero
// (MaxSkip's zero value is resolved to 2*MaxDeviation+1 at Tile time,
// per spec.md §4.2 step 3) and are set via plain field assignment
// afterward, matching the "mutator properties" of spec.md §6 — a
// functional-options constructor is not used here because the type has
// too few, too-independent optional knobs to justify the indirection
// the teacher corpus reserves for `catalog`-style multi-option
// constructors.
func NewTilingPath[P any](grid TileGrid[P], points []geo.CellPos, maxDeviation int, start, end Terminal, permitted *catalog.PermittedSegments) *TilingPath[P] {
	var pts []geo.CellPos
	if points != nil {
		pts = append([]geo.CellPos(nil), points...)
	}
	return &TilingPath[P]{
		Grid:         grid,
		points:       pts,
		MaxDeviation: maxDeviation,
		Start:        start,
		End:          end,
		Segments:     permitted,
	}
}

// Points returns the path's current point sequence, or nil if the path
// has been invalidated (spec.md §3: "null means no path").
func (p *TilingPath[P]) Points() []geo.CellPos {
	if p.points == nil {
		return nil
	}
	return append([]geo.CellPos(nil), p.points...)
}
