package tiler

import (
	"github.com/terrakit/pathtiler/catalog"
	"github.com/terrakit/pathtiler/geo"
	"github.com/terrakit/pathtiler/geometry"
	"github.com/terrakit/pathtiler/pathcond"
	"github.com/terrakit/pathtiler/search"
	"github.com/terrakit/pathtiler/traceback"
)

// pathRectCenter returns a Rect's integer center. When MinX+MaxX (or
// MinY+MaxY) is odd, Go's truncating division rounds the half toward zero.
func pathRectCenter(r pathcond.Rect) geo.CellPos {
	return geo.CellPos{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Tile is the module's single entry point (spec.md §4.2): it conditions
// nothing further itself (the caller chains the conditioners beforehand)
// but drives the padded geometry pass, terminal-type interning, the
// forward search, and the backward traceback/paint, returning the final
// world-space point sequence.
//
// A nil path (p.Points() == nil, e.g. after RetainIfValid invalidated
// it) and an unfittable path (the forward search never reaches pathEnd)
// are both reported identically as (nil, nil); error is reserved for
// programmer errors surfaced by package traceback (spec.md §7).
func (p *TilingPath[P]) Tile(random Rng) ([]geo.CellPos, error) {
	if p.points == nil {
		return nil, nil
	}
	points := p.points
	isLoop := pathcond.IsLoop(points)

	start, end := p.Start, p.End
	if start.Direction == geo.DirNone {
		start.Direction = geo.FromCVec(points[1].Sub(points[0]))
	}
	if end.Direction == geo.DirNone {
		n := len(points)
		if isLoop {
			end.Direction = geo.FromCVec(points[1].Sub(points[0]))
		} else {
			end.Direction = geo.FromCVec(points[n-1].Sub(points[n-2]))
		}
	}

	maxSkip := p.MaxSkip
	if maxSkip <= 0 {
		maxSkip = 2*p.MaxDeviation + 1
	}

	bounds := geometry.PadBounds(points, p.MaxDeviation+p.MinSeparation)
	local := make([]geo.CellPos, len(points))
	for i, pt := range points {
		local[i] = bounds.ToLocal(pt)
	}

	geomRes, err := geometry.Run(bounds.Width(), bounds.Height(), local, isLoop, p.MaxDeviation, p.MinSeparation, maxSkip)
	if err != nil {
		return nil, err
	}

	byStart, byEnd, innerTypeIDs, reg := registerSegments(p.Segments)

	pathStartTypeID := reg.id(start.label())
	pathEndTypeID := reg.id(end.label())

	searchCfg := search.Config{
		Width: bounds.Width(), Height: bounds.Height(),
		Geometry:            geomRes,
		MaxSkip:             maxSkip,
		NumTypes:            reg.count(),
		SegmentsByStartType: byStart,
		PathStart:           bounds.ToLocal(points[0]),
		PathEnd:             bounds.ToLocal(points[len(points)-1]),
		PathStartTypeID:     pathStartTypeID,
		PathEndTypeID:       pathEndTypeID,
		InnerTypeIDs:        innerTypeIDs,
	}

	res := search.Run(searchCfg)
	if !res.Found {
		return nil, nil
	}

	tbCfg := traceback.Config{
		Search:            searchCfg,
		Costs:             res.Costs,
		SegmentsByEndType: byEnd,
		Bounds:            bounds,
		Grid:              gridAdapter[P]{grid: p.Grid},
	}

	localResult, err := traceback.Run(tbCfg, res.Best, random)
	if err != nil {
		return nil, err
	}

	out := make([]geo.CellPos, len(localResult))
	for i, lp := range localResult {
		out[i] = bounds.ToWorld(lp)
	}
	return out, nil
}

// registerSegments builds segmentsByStart/segmentsByEnd and the global
// innerTypeIds set from a PermittedSegments, per spec.md §4.2 step 6 and
// the glossary's "Inner type" definition.
//
// Only segments in Inner contribute their Start/End labels to
// innerTypeIds — Start and End segments are reserved for the path's own
// unique terminals and never license an interior connection. A segment
// may depart (is registered in segmentsByStart) if it is in Start or
// Inner, and may arrive (segmentsByEnd) if it is in Inner or End; a
// segment present in more than one role is registered once per map, not
// duplicated. Each list keeps the order of Inner, then Start, then End, so
// traceback sees its candidates in the same order on every call.
func registerSegments(permitted *catalog.PermittedSegments) (byStart, byEnd map[int][]*search.TilingSegment, innerTypeIDs map[int]bool, reg *typeRegistry) {
	reg = newTypeRegistry()
	innerTypeIDs = make(map[int]bool)

	wrapped := make(map[int]*search.TilingSegment, len(permitted.Catalog.Segments()))
	build := func(seg *catalog.TemplateSegment) *search.TilingSegment {
		if ts, ok := wrapped[seg.ID]; ok {
			return ts
		}
		tpl := permitted.Catalog.TemplateFor(seg)
		ts := search.NewTilingSegment(seg, tpl, reg.id(seg.Start), reg.id(seg.End))
		wrapped[seg.ID] = ts
		return ts
	}

	byStart = make(map[int][]*search.TilingSegment)
	byEnd = make(map[int][]*search.TilingSegment)
	inStart := make(map[int]bool)
	inEnd := make(map[int]bool)
	addStart := func(ts *search.TilingSegment) {
		if !inStart[ts.ID] {
			inStart[ts.ID] = true
			byStart[ts.StartTypeID] = append(byStart[ts.StartTypeID], ts)
		}
	}
	addEnd := func(ts *search.TilingSegment) {
		if !inEnd[ts.ID] {
			inEnd[ts.ID] = true
			byEnd[ts.EndTypeID] = append(byEnd[ts.EndTypeID], ts)
		}
	}

	for _, seg := range permitted.Inner {
		ts := build(seg)
		innerTypeIDs[ts.StartTypeID] = true
		innerTypeIDs[ts.EndTypeID] = true
		addStart(ts)
		addEnd(ts)
	}
	for _, seg := range permitted.Start {
		addStart(build(seg))
	}
	for _, seg := range permitted.End {
		addEnd(build(seg))
	}
	return byStart, byEnd, innerTypeIDs, reg
}

// typeRegistry interns "<type>.<dir>" terminal-type labels (catalog
// segment Start/End/Inner fields, and a path's own derived terminals)
// into dense integer ids, in first-seen order, for a single Tile call.
type typeRegistry struct {
	ids  map[string]int
	next int
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{ids: make(map[string]int)}
}

func (r *typeRegistry) id(label string) int {
	if id, ok := r.ids[label]; ok {
		return id
	}
	id := r.next
	r.ids[label] = id
	r.next++
	return id
}

func (r *typeRegistry) count() int { return r.next }

// RetainDisjointPaths keeps, in order, every path in paths that shares no
// cell with a previously-kept path — the TilingPath-level mirror of
// pathcond.RetainDisjointPaths, which operates on raw point slices. A nil
// path, or one whose Points() is nil, is dropped.
func RetainDisjointPaths[P any](paths []*TilingPath[P]) []*TilingPath[P] {
	seen := make(map[geo.CellPos]bool)
	var out []*TilingPath[P]
	for _, tp := range paths {
		if tp == nil || tp.points == nil {
			continue
		}
		disjoint := true
		for _, pt := range tp.points {
			if seen[pt] {
				disjoint = false
				break
			}
		}
		if !disjoint {
			continue
		}
		for _, pt := range tp.points {
			seen[pt] = true
		}
		out = append(out, tp)
	}
	return out
}
