// Package catalog defines the authored template/segment data this module
// consumes: TemplateSegment (a path fragment shape with start/end/inner
// connection labels), TerrainTemplate (the painted tile block a segment
// references), and PermittedSegments (the subset of a catalog a single
// search may use). Catalog construction is deterministic and panic-free,
// in the style of lvlath's builder package: an invalid segment yields one
// of the sentinel errors below, never a panic, and a Set is immutable
// once built. A segment whose TemplateID names no template in the Set
// yields a descriptive error that wraps no sentinel.
package catalog

import (
	"errors"
	"fmt"

	"github.com/terrakit/pathtiler/geo"
)

// Sentinel errors for catalog construction and validation.
var (
	// ErrEmptyPoints indicates a TemplateSegment was authored with fewer
	// than two points.
	ErrEmptyPoints = errors.New("catalog: segment must have at least two points")

	// ErrDuplicateConsecutivePoints indicates a programmer error in an
	// authored segment: the same point twice in a row. Per spec.md §7
	// this is a hard failure, not a recoverable validation outcome.
	ErrDuplicateConsecutivePoints = errors.New("catalog: segment has duplicate consecutive points")

	// ErrNonUnitStep indicates a segment step that is not one of the
	// eight unit offsets.
	ErrNonUnitStep = errors.New("catalog: segment step is not a unit 8-neighbor offset")

	// ErrEmptyLabel indicates a segment was authored with an empty
	// start or end terminal label.
	ErrEmptyLabel = errors.New("catalog: start/end label must not be empty")

	// ErrUnknownSegment indicates a segment referenced by
	// PermittedSegments is not registered in the backing catalog Set.
	ErrUnknownSegment = errors.New("catalog: segment not present in catalog")
)

// TemplateSegment is an authored path fragment: a shape of unit 8-neighbor
// steps connecting a start terminal to an end terminal, with zero or more
// interior ("inner") connection labels describing how it may be used when
// neither terminal of the tiling.
type TemplateSegment struct {
	// ID is a stable, catalog-assigned index.
	ID int

	// Start and End are terminal labels of the form "<type>.<dir>",
	// e.g. "Beach.E", with <dir> spelled as geo.Direction.String().
	Start, End string

	// Inner lists the connection labels under which this segment may
	// serve as a non-terminal ("inner") piece of a tiling.
	Inner []string

	// Points is the sequence of ≥2 CellVec waypoints, each consecutive
	// pair a unit 8-neighbor offset, relative to the segment's own
	// origin (the first point is conventionally, but not required to
	// be, the zero vector).
	Points []geo.CellVec

	// TemplateID is the id of the TerrainTemplate this segment paints.
	TemplateID int
}

// Validate checks the structural invariants a TemplateSegment must hold
// to be used in a search: at least two points, no duplicate consecutive
// points, every step a unit 8-neighbor offset, and non-empty terminal
// labels. A failing segment indicates a broken catalog (spec.md §7's
// "programmer error" class), so callers should treat a non-nil error as
// fatal to the catalog load, not as an ordinary per-request failure.
func (s *TemplateSegment) Validate() error {
	if len(s.Points) < 2 {
		return fmt.Errorf("%w: segment %d", ErrEmptyPoints, s.ID)
	}
	if s.Start == "" || s.End == "" {
		return fmt.Errorf("%w: segment %d", ErrEmptyLabel, s.ID)
	}
	for i := 1; i < len(s.Points); i++ {
		prev, cur := s.Points[i-1], s.Points[i]
		step := geo.CellVec{X: cur.X - prev.X, Y: cur.Y - prev.Y}
		if step == (geo.CellVec{}) {
			return fmt.Errorf("%w: segment %d at point %d", ErrDuplicateConsecutivePoints, s.ID, i)
		}
		if !geo.IsUnit8(step) {
			return fmt.Errorf("%w: segment %d at point %d", ErrNonUnitStep, s.ID, i)
		}
	}
	return nil
}

// Moves returns the net displacement from the segment's first point to
// its last.
func (s *TemplateSegment) Moves() geo.CellVec {
	n := len(s.Points)
	return geo.CellVec{X: s.Points[n-1].X - s.Points[0].X, Y: s.Points[n-1].Y - s.Points[0].Y}
}

// HasStartType reports whether label matches this segment's start
// terminal.
func (s *TemplateSegment) HasStartType(label string) bool { return s.Start == label }

// HasEndType reports whether label matches this segment's end terminal.
func (s *TemplateSegment) HasEndType(label string) bool { return s.End == label }

// HasInnerType reports whether label is one of this segment's permitted
// interior connection labels.
func (s *TemplateSegment) HasInnerType(label string) bool {
	for _, l := range s.Inner {
		if l == label {
			return true
		}
	}
	return false
}

// TileCell is one cell of a TerrainTemplate's painted grid. Present is
// false for a null cell (a cell the template intentionally leaves
// unpainted, e.g. a segment shape narrower than its bounding block).
type TileCell struct {
	Index   int
	Present bool
}

// TerrainTemplate is the painted tile block a TemplateSegment references.
type TerrainTemplate struct {
	// ID is a stable, catalog-assigned index.
	ID int

	// Tiles is the template's tile grid, row-major ([row][col]),
	// possibly containing non-Present cells.
	Tiles [][]TileCell

	// PickAny marks a template whose concrete tile is chosen
	// stochastically by an external rendering engine. Per spec.md §4.5,
	// such a template must never reach direct painting by this module.
	PickAny bool
}

// Height and Width report the template's tile-grid dimensions.
func (t *TerrainTemplate) Height() int { return len(t.Tiles) }
func (t *TerrainTemplate) Width() int {
	if len(t.Tiles) == 0 {
		return 0
	}
	return len(t.Tiles[0])
}
