// Package pathcond implements the pure path-conditioning transformations
// of spec.md §4.1: validation, loop-start rotation, inertial extension,
// edge extension, chirality normalization, shrinking, and disjoint-path
// retention. Every function here is a pure slice-in/slice-out
// transformation with no shared state, in the style of lvlath's
// algorithms/bfs/dfs packages (free functions over a *core.Graph that
// never mutate their input).
package pathcond

import (
	"errors"
	"fmt"
	"math"

	"github.com/terrakit/pathtiler/geo"
)

// Sentinel errors returned by ValidatePathPoints and Shrink.
var (
	// ErrNilOrEmpty indicates a nil or zero-length points slice.
	ErrNilOrEmpty = errors.New("pathcond: points is nil or empty")

	// ErrTooShort indicates fewer points than the minimum for the
	// path's shape (2 for an open path, 3 for a loop).
	ErrTooShort = errors.New("pathcond: too few points")

	// ErrDuplicatePoint indicates the same cell appears twice, other
	// than the permitted loop-closing repeat of points[0].
	ErrDuplicatePoint = errors.New("pathcond: duplicate point")

	// ErrDiagonalStep indicates a consecutive pair differs by something
	// other than a non-diagonal unit offset.
	ErrDiagonalStep = errors.New("pathcond: step is not a non-diagonal unit offset")

	// ErrShrinkMinLenTooSmall indicates Shrink was called with
	// minimumLength <= 1, an argument-out-of-range programmer error
	// per spec.md §7.
	ErrShrinkMinLenTooSmall = errors.New("pathcond: minimumLength must be > 1")
)

// IsLoop reports whether points describes a closed loop: at least two
// points, with the first and last equal.
func IsLoop(points []geo.CellPos) bool {
	return len(points) >= 2 && points[0] == points[len(points)-1]
}

// clone returns a copy of points, so conditioners never alias their
// input's backing array.
func clone(points []geo.CellPos) []geo.CellPos {
	out := make([]geo.CellPos, len(points))
	copy(out, points)
	return out
}

// ValidatePathPoints reports whether points is a well-formed TilingPath
// point sequence: non-nil and non-empty, long enough for its shape (≥3
// if a loop, else ≥2), free of duplicate points (ignoring the loop's
// repeated closing point), and stepping by a non-diagonal unit offset
// between every consecutive pair. On false, the returned error names
// which invariant failed; ValidatePathPoints is total (never panics) and
// deterministic.
func ValidatePathPoints(points []geo.CellPos) (bool, error) {
	if len(points) == 0 {
		return false, ErrNilOrEmpty
	}
	loop := IsLoop(points)
	minLen := 2
	if loop {
		minLen = 3
	}
	if len(points) < minLen {
		return false, fmt.Errorf("%w: have %d, need %d", ErrTooShort, len(points), minLen)
	}

	checkUpTo := len(points)
	if loop {
		checkUpTo-- // the repeated closing point is exempt
	}
	seen := make(map[geo.CellPos]bool, checkUpTo)
	for i := 0; i < checkUpTo; i++ {
		if seen[points[i]] {
			return false, fmt.Errorf("%w: %v", ErrDuplicatePoint, points[i])
		}
		seen[points[i]] = true
	}

	for i := 1; i < len(points); i++ {
		step := points[i].Sub(points[i-1])
		if !geo.IsNonDiagonalUnit(step) {
			return false, fmt.Errorf("%w: between %v and %v", ErrDiagonalStep, points[i-1], points[i])
		}
	}
	return true, nil
}

// marchFrom returns extLen points marching away from anchor in direction
// dir, nearest point first: anchor+dir, anchor+2*dir, ... anchor+extLen*dir.
func marchFrom(anchor geo.CellPos, dir geo.Direction, extLen int) []geo.CellPos {
	out := make([]geo.CellPos, extLen)
	step := dir.Vec()
	cur := anchor
	for i := 0; i < extLen; i++ {
		cur = cur.Add(step)
		out[i] = cur
	}
	return out
}

// reverseCellPos reverses s in place order but returns a new slice,
// since conditioners must not mutate their argument.
func reverseCellPos(s []geo.CellPos) []geo.CellPos {
	out := make([]geo.CellPos, len(s))
	n := len(s)
	for i, p := range s {
		out[n-1-i] = p
	}
	return out
}

// InertiallyExtend prepends extLen points marching backward from
// points[0] and appends extLen points marching forward from the last
// point, each in the cardinal direction nearest the path's own heading
// over its first/last min(inertialRange, len-1) points. Loops are
// returned unchanged (a copy), per spec.md §4.1 and the roundtrip law of
// spec.md §8.6.
func InertiallyExtend(points []geo.CellPos, extLen, inertialRange int) []geo.CellPos {
	if IsLoop(points) || extLen <= 0 || len(points) < 2 {
		return clone(points)
	}
	n := len(points)
	rangeLen := inertialRange
	if rangeLen > n-1 {
		rangeLen = n - 1
	}
	if rangeLen < 1 {
		rangeLen = 1
	}

	startVec := points[rangeLen].Sub(points[0])
	startDir := geo.Snap(startVec)
	endVec := points[n-1].Sub(points[n-1-rangeLen])
	endDir := geo.Snap(endVec)

	prefix := marchFrom(points[0], startDir.Reverse(), extLen)
	prefix = reverseCellPos(prefix) // furthest-from-path first
	suffix := marchFrom(points[n-1], endDir, extLen)

	out := make([]geo.CellPos, 0, extLen+n+extLen)
	out = append(out, prefix...)
	out = append(out, points...)
	out = append(out, suffix...)
	return out
}

// Rect is an axis-aligned integer cell rectangle, inclusive of Min and
// Max on both axes; it stands in for the map's cellBounds collaborator
// contract of spec.md §6.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// edgeNormal reports the outward cardinal direction from p if p lies on
// exactly one edge of bounds (not a corner, where two edges meet).
func edgeNormal(p geo.CellPos, bounds Rect) (dir geo.Direction, onEdge bool) {
	onLeft := p.X == bounds.MinX
	onRight := p.X == bounds.MaxX
	onTop := p.Y == bounds.MinY
	onBottom := p.Y == bounds.MaxY

	count := 0
	for _, b := range []bool{onLeft, onRight, onTop, onBottom} {
		if b {
			count++
		}
	}
	if count != 1 {
		return geo.DirNone, false
	}
	switch {
	case onLeft:
		return geo.West, true
	case onRight:
		return geo.East, true
	case onTop:
		return geo.North, true
	default: // onBottom
		return geo.South, true
	}
}

// ExtendEdge prepends/appends extLen points marching outward along the
// map's edge normal from whichever endpoint touches bounds on exactly one
// side (not a corner). Non-loops only; loops and non-edge or corner
// endpoints are returned unchanged.
func ExtendEdge(points []geo.CellPos, extLen int, bounds Rect) []geo.CellPos {
	if IsLoop(points) || extLen <= 0 || len(points) == 0 {
		return clone(points)
	}
	out := clone(points)

	if dir, onEdge := edgeNormal(out[0], bounds); onEdge {
		prefix := marchFrom(out[0], dir, extLen)
		prefix = reverseCellPos(prefix)
		out = append(prefix, out...)
	}
	last := len(points) - 1
	if dir, onEdge := edgeNormal(points[last], bounds); onEdge {
		suffix := marchFrom(points[last], dir, extLen)
		out = append(out, suffix...)
	}
	return out
}

// OptimizeLoop rotates a closed loop's point array so that its new
// start/end join sits at the midpoint of the longest straight run
// between two consecutive axis-aligned bends. Among equally long runs, one
// whose midpoint is already the start wins, so applying OptimizeLoop to
// its own output returns it unchanged. Non-loops are returned unchanged,
// satisfying spec.md §8.7.
func OptimizeLoop(points []geo.CellPos) []geo.CellPos {
	if !IsLoop(points) {
		return clone(points)
	}
	ring := points[:len(points)-1]
	m := len(ring)
	if m < 3 {
		return clone(points)
	}

	var bends []int
	for i := 0; i < m; i++ {
		prev := ring[(i-1+m)%m]
		cur := ring[i]
		next := ring[(i+1)%m]
		d1 := cur.Sub(prev)
		d2 := next.Sub(cur)
		if d1 != d2 {
			bends = append(bends, i)
		}
	}
	if len(bends) == 0 {
		return clone(points)
	}

	bestSpan, bestIdx := -1, 0
	for i := range bends {
		a, b := bends[i], bends[(i+1)%len(bends)]
		span := b - a
		if span <= 0 {
			span += m
		}
		// On a tie, prefer a run whose midpoint is already the start, so a
		// second call leaves its own output unchanged.
		if span > bestSpan || (span == bestSpan && (a+span/2)%m == 0) {
			bestSpan, bestIdx = span, i
		}
	}
	mid := (bends[bestIdx] + bestSpan/2) % m

	rotated := make([]geo.CellPos, 0, m+1)
	rotated = append(rotated, ring[mid:]...)
	rotated = append(rotated, ring[:mid]...)
	rotated = append(rotated, rotated[0])
	return rotated
}

// Shrink trims shrinkBy points from each end of a non-loop path, or
// validates a loop's length without trimming it (loops never shrink, per
// spec.md §4.1). Returns (nil, nil) if the result would have fewer than
// minLen points ("no conforming trim", not an error). Returns
// ErrShrinkMinLenTooSmall if minLen <= 1, an out-of-range argument.
func Shrink(points []geo.CellPos, shrinkBy, minLen int) ([]geo.CellPos, error) {
	if minLen <= 1 {
		return nil, ErrShrinkMinLenTooSmall
	}
	if IsLoop(points) {
		if len(points) < minLen {
			return nil, nil
		}
		return clone(points), nil
	}
	newLen := len(points) - 2*shrinkBy
	if newLen < minLen {
		return nil, nil
	}
	return clone(points[shrinkBy : len(points)-shrinkBy]), nil
}

func cross(a, b geo.CellVec) int { return a.X*b.Y - a.Y*b.X }

// ChirallyNormalize ensures a consistent winding/rotation sense.
//
// For loops: locate the point with minimum Y (ties broken by minimum X),
// compute the cross product of its incoming and outgoing edge vectors,
// and reverse the ring if that cross product is negative.
//
// For non-loops: compute the cross product of (start - measureFromCenter)
// and (end - measureFromCenter); reverse if negative. On a zero cross
// product (collinear with the center), break the tie first by distance
// from the center (the closer endpoint becomes the start), then by
// absolute angle from the center, lexicographically.
func ChirallyNormalize(points []geo.CellPos, measureFromCenter geo.CellPos) []geo.CellPos {
	if len(points) < 2 {
		return clone(points)
	}
	if IsLoop(points) {
		return chirallyNormalizeLoop(points)
	}
	return chirallyNormalizeOpen(points, measureFromCenter)
}

func chirallyNormalizeLoop(points []geo.CellPos) []geo.CellPos {
	ring := points[:len(points)-1]
	m := len(ring)
	if m < 3 {
		return clone(points)
	}
	best := 0
	for i := 1; i < m; i++ {
		if ring[i].Y < ring[best].Y || (ring[i].Y == ring[best].Y && ring[i].X < ring[best].X) {
			best = i
		}
	}
	prev := ring[(best-1+m)%m]
	cur := ring[best]
	next := ring[(best+1)%m]
	inEdge := cur.Sub(prev)
	outEdge := next.Sub(cur)
	if cross(inEdge, outEdge) < 0 {
		return reverseLoop(points)
	}
	return clone(points)
}

func reverseLoop(points []geo.CellPos) []geo.CellPos {
	ring := points[:len(points)-1]
	rev := reverseCellPos(ring)
	return append(rev, rev[0])
}

func angle(v geo.CellVec) float64 {
	return math.Atan2(float64(v.Y), float64(v.X))
}

func distSq(v geo.CellVec) int { return v.X*v.X + v.Y*v.Y }

func chirallyNormalizeOpen(points []geo.CellPos, center geo.CellPos) []geo.CellPos {
	n := len(points)
	startVec := points[0].Sub(center)
	endVec := points[n-1].Sub(center)
	c := cross(startVec, endVec)
	switch {
	case c < 0:
		return reverseCellPos(points)
	case c > 0:
		return clone(points)
	}

	dStart, dEnd := distSq(startVec), distSq(endVec)
	if dStart != dEnd {
		if dStart > dEnd {
			return reverseCellPos(points)
		}
		return clone(points)
	}

	aStart, aEnd := angle(startVec), angle(endVec)
	if aStart > aEnd {
		return reverseCellPos(points)
	}
	return clone(points)
}

// RetainDisjointPaths retains each path in paths only if it shares no
// cell with any previously-retained path, preserving order. A nil entry
// is dropped (it represents "no path", per spec.md §3's TilingPath.points
// semantics).
func RetainDisjointPaths(paths [][]geo.CellPos) [][]geo.CellPos {
	seen := make(map[geo.CellPos]bool)
	var out [][]geo.CellPos
	for _, p := range paths {
		if p == nil {
			continue
		}
		disjoint := true
		for _, pt := range p {
			if seen[pt] {
				disjoint = false
				break
			}
		}
		if !disjoint {
			continue
		}
		for _, pt := range p {
			seen[pt] = true
		}
		out = append(out, p)
	}
	return out
}
