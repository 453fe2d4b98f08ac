// Package traceback implements spec.md §4.5: the backward walk from a
// search's terminal cell, randomized choice among cost-optimal
// predecessors, and painting of the chosen templates onto a map.
//
// It is grounded on gridgraph.ExpandIsland's predecessor-array
// reconstruction style: rather than storing an explicit predecessor
// pointer per cell (which package search never allocates, to keep the
// frontier the sole piece of per-cell state), traceback recomputes the
// candidate set on the fly from the finished cost lattice, exactly as
// the forward search itself would score them.
package traceback

import (
	"errors"
	"fmt"

	"github.com/terrakit/pathtiler/geo"
	"github.com/terrakit/pathtiler/geometry"
	"github.com/terrakit/pathtiler/gridmat"
	"github.com/terrakit/pathtiler/search"
)

// Sentinel errors for the "programmer error" class of spec.md §7: a
// broken catalog or lost search invariant, never an ordinary "no path"
// outcome (that is signaled by search.Result.Found, upstream of this
// package).
var (
	// ErrPickAnyTemplate indicates a template marked PickAny reached the
	// painter; such templates must be chosen by an external rendering
	// engine and never painted directly by this module (spec.md §4.5).
	ErrPickAnyTemplate = errors.New("traceback: pick-any template cannot be painted directly")

	// ErrNoPredecessor indicates the backward walk found zero candidate
	// predecessors at a cell the forward search itself reached with a
	// finite cost — an assertion failure per spec.md §7.
	ErrNoPredecessor = errors.New("traceback: no optimal predecessor found")
)

// Rng is the uniform-integer primitive traceback needs to choose among
// tied-cost predecessors, satisfied directly by *math/rand.Rand.
type Rng interface{ Intn(n int) int }

// Grid is the painting surface traceback writes to: a local, padded
// cell position already translated to world space (via Config.Bounds),
// addressed by an integer tile index. The conversion from a world
// CellPos to the caller's native map-position type is the tiler
// package's concern, not this one's (spec.md §6's "map" collaborator).
type Grid interface {
	Contains(p geo.CellPos) bool
	Set(p geo.CellPos, tileIndex int)
}

// Config bundles the finished forward search and the collaborators
// traceback needs to reconstruct and paint the winning tiling.
type Config struct {
	// Search is the exact Config the forward search ran with; ScoreSegment
	// must be recomputed identically during traceback.
	Search search.Config

	// Costs is the per-type cost lattice search.Run produced.
	Costs []*gridmat.Matrix[int]

	// SegmentsByEndType maps a terminal-type id to every permitted
	// segment that may terminate a relaxation step into that type —
	// the mirror image of search.Config.SegmentsByStartType.
	SegmentsByEndType map[int][]*search.TilingSegment

	// Bounds translates local (padded-rectangle) cell positions back to
	// world space for painting.
	Bounds geometry.Bounds

	Grid Grid
}

type candidate struct {
	seg  *search.TilingSegment
	from geo.CellPos
	cost int
}

// Run walks backward from pathEnd with best cost best, choosing at each
// step uniformly at random among cost-optimal predecessors, painting the
// chosen template, and collecting the traversed points in path order.
func Run(cfg Config, best int, rng Rng) ([]geo.CellPos, error) {
	s := cfg.Search

	// Reinstate pathStart's cost so a loop's shared start/end cell can
	// terminate the backward walk against it (spec.md §4.5).
	cfg.Costs[s.PathStartTypeID].SetFast(s.PathStart.X, s.PathStart.Y, 0)

	to, toType, toCost := s.PathEnd, s.PathEndTypeID, best
	points := []geo.CellPos{to}

	for to != s.PathStart || toType != s.PathStartTypeID {
		cands := collectCandidates(cfg, to, toType, toCost)
		if len(cands) == 0 {
			return nil, fmt.Errorf("%w: at %v type %d cost %d", ErrNoPredecessor, to, toType, toCost)
		}

		chosen := cands[rng.Intn(len(cands))]

		if err := paint(cfg, chosen); err != nil {
			return nil, err
		}

		for i := len(chosen.seg.RelativePoints) - 2; i >= 0; i-- {
			points = append(points, chosen.from.Add(chosen.seg.RelativePoints[i]))
		}

		to, toType, toCost = chosen.from, chosen.seg.StartTypeID, chosen.cost
	}

	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

// collectCandidates gathers every segment ending in toType at to whose
// origin is in bounds, unexcluded, scores finitely, and whose origin's
// own recorded cost exactly accounts for the remainder of toCost — i.e.
// every optimal predecessor, per spec.md §4.5.
func collectCandidates(cfg Config, to geo.CellPos, toType, toCost int) []candidate {
	var out []candidate
	dev := cfg.Search.Geometry.Deviation
	for _, seg := range cfg.SegmentsByEndType[toType] {
		from := to.Add(seg.Moves.Neg())
		if !dev.InBounds(from.X, from.Y) || dev.Get(from.X, from.Y) == geometry.OverDeviation {
			continue
		}

		s := search.ScoreSegment(cfg.Search, seg, from)
		if s >= search.MaxCost {
			continue
		}

		fromCost := cfg.Costs[seg.StartTypeID].Get(from.X, from.Y)
		if fromCost == toCost-s {
			out = append(out, candidate{seg: seg, from: from, cost: fromCost})
		}
	}
	return out
}

// paint copies a chosen segment's template onto cfg.Grid, anchored so
// the template's (0,0) tile cell coincides with the segment's own point
// origin (candidate.from), translated into world space via cfg.Bounds.
func paint(cfg Config, c candidate) error {
	tpl := c.seg.Template
	if tpl.PickAny {
		return fmt.Errorf("%w: template %d", ErrPickAnyTemplate, tpl.ID)
	}

	anchor := cfg.Bounds.ToWorld(c.from)
	for row, cells := range tpl.Tiles {
		for col, cell := range cells {
			if !cell.Present {
				continue
			}
			pos := geo.CellPos{X: anchor.X + col, Y: anchor.Y + row}
			if cfg.Grid.Contains(pos) {
				cfg.Grid.Set(pos, cell.Index)
			}
		}
	}
	return nil
}
