// Package search implements the Dijkstra-style best-first search of
// spec.md §4.2 and §4.4: a three-dimensional (x, y, terminal-type) cost
// lattice explored with package priorityarr as the frontier, scored per
// segment by ScoreSegment.
//
// It is grounded on lvlath's dijkstra package: a per-call unexported
// runner struct carrying the mutable search state, a relax-style
// updateFrom method, and a main loop that pops the frontier's minimum
// and stops when it is exhausted or the target is reached. The frontier
// itself is generalized from dijkstra's binary heap to priorityarr's
// segment tree of minima, per spec.md §9's explicit design note.
package search

import (
	"github.com/terrakit/pathtiler/geo"
	"github.com/terrakit/pathtiler/geometry"
	"github.com/terrakit/pathtiler/gridmat"
	"github.com/terrakit/pathtiler/priorityarr"
)

// MaxCost is the sentinel cost meaning "forbidden" / "no path found".
// It is scaled well below math.MaxInt so that cfg.Width*cfg.Height*
// NumTypes additions of real costs against it (and a few more in the
// traceback comparison) can never wrap around.
const MaxCost = 1 << 30

// Config bundles everything a single search invocation needs. Every
// field is a read-only input; Run allocates and releases its own scratch
// (cost tables, priority array).
type Config struct {
	Width, Height int

	// Geometry is the deviation/lowProgress/highProgress matrices and
	// ring parameters computed by package geometry for this invocation.
	Geometry *geometry.Result

	MaxSkip int

	// NumTypes is the number of interned terminal-type ids; cost layers
	// are indexed [0,NumTypes).
	NumTypes int

	// SegmentsByStartType maps a terminal-type id to every permitted
	// segment that may depart a cell reached with that type.
	SegmentsByStartType map[int][]*TilingSegment

	PathStart, PathEnd             geo.CellPos
	PathStartTypeID, PathEndTypeID int

	// InnerTypeIDs is the set of terminal-type ids permitted to appear
	// in the interior of a tiling (as opposed to the path's own unique
	// start/end terminals).
	InnerTypeIDs map[int]bool
}

// Result is the outcome of Run: the per-type cost lattice (consumed by
// package traceback to reconstruct optimal predecessors) and whether
// pathEnd was reached with a finite cost.
type Result struct {
	Costs []*gridmat.Matrix[int]
	Best  int
	Found bool
}

// Run executes spec.md §4.2 steps 6-9 over cfg's lattice: register cost
// tables, seed from pathStart, and repeatedly pop-and-relax the
// priority-array frontier until it is exhausted or pathEnd is popped.
func Run(cfg Config) *Result {
	r := newRunner(cfg)
	r.seed()

	for {
		idx, priority := r.frontier.GetMinIndex()
		if priority >= MaxCost || idx < 0 {
			break
		}
		x, y, typeID := r.decode(idx)
		pos := geo.CellPos{X: x, Y: y}
		if pos == cfg.PathEnd {
			break
		}
		r.updateFrom(pos, typeID, priority)
	}

	best := r.costs[cfg.PathEndTypeID].Get(cfg.PathEnd.X, cfg.PathEnd.Y)
	return &Result{Costs: r.costs, Best: best, Found: best != MaxCost}
}

// runner holds the mutable state for a single search invocation.
type runner struct {
	cfg      Config
	costs    []*gridmat.Matrix[int]
	frontier *priorityarr.Array
}

func newRunner(cfg Config) *runner {
	costs := make([]*gridmat.Matrix[int], cfg.NumTypes)
	for t := range costs {
		m, _ := gridmat.NewFilled[int](cfg.Width, cfg.Height, MaxCost)
		costs[t] = m
	}
	n := cfg.NumTypes * cfg.Width * cfg.Height
	return &runner{cfg: cfg, costs: costs, frontier: priorityarr.New(n, MaxCost)}
}

func (r *runner) index(x, y, typeID int) int {
	return typeID*r.cfg.Width*r.cfg.Height + y*r.cfg.Width + x
}

func (r *runner) decode(idx int) (x, y, typeID int) {
	cellsPerType := r.cfg.Width * r.cfg.Height
	typeID = idx / cellsPerType
	rem := idx % cellsPerType
	y = rem / r.cfg.Width
	x = rem % r.cfg.Width
	return x, y, typeID
}

// seed relaxes from pathStart with cost 0, per spec.md §4.2 step 7.
// costs[startTypeID][pathStart] is deliberately left at MaxCost (not set
// to 0 here) so a loop's shared start/end cell does not short-circuit
// the forward search by immediately satisfying the pathEnd stop
// condition with a false cost; traceback reinstates it to 0 once the
// forward search is done (spec.md §4.5).
func (r *runner) seed() {
	r.updateFrom(r.cfg.PathStart, r.cfg.PathStartTypeID, 0)
}

// updateFrom is the relaxation step of spec.md §4.2: for every segment
// permitted to depart (from, fromType), score it, and if the resulting
// cost improves the destination cell's best-known cost in the segment's
// end-type layer, update the cost table and the frontier priority.
// Finally, from's own frontier slot is raised to MaxCost so it can never
// be popped again.
func (r *runner) updateFrom(from geo.CellPos, fromType int, fromCost int) {
	for _, seg := range r.cfg.SegmentsByStartType[fromType] {
		to := from.Add(seg.Moves)
		if !r.cfg.Geometry.Deviation.InBounds(to.X, to.Y) {
			continue
		}
		if r.cfg.Geometry.Deviation.Get(to.X, to.Y) == geometry.OverDeviation {
			continue
		}

		segCost := ScoreSegment(r.cfg, seg, from)
		if segCost >= MaxCost {
			continue
		}

		toCost := fromCost + segCost
		toType := seg.EndTypeID
		if toCost < r.costs[toType].Get(to.X, to.Y) {
			r.costs[toType].SetFast(to.X, to.Y, toCost)
			r.frontier.Set(r.index(to.X, to.Y, toType), toCost)
		}
	}

	r.frontier.Set(r.index(from.X, from.Y, fromType), MaxCost)
}
