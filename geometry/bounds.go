// Package geometry implements the geometric conditioning pass of
// spec.md §4.3: the per-cell deviation, lowProgress, and highProgress
// matrices computed over a padded bounding box around the path, plus the
// minimum-separation erosion that excludes cells from the search.
//
// It is grounded on gridgraph's BFS-shaped component/expansion
// algorithms, generalized to multi-source layered spreading via package
// flood, and on gridmat for the per-cell matrices themselves.
package geometry

import "github.com/terrakit/pathtiler/geo"

// OverDeviation marks a cell excluded from the search entirely: outside
// the conditioned region, or eroded away by minimum-separation.
//
// InvalidProgress marks a lowProgress/highProgress cell that flood
// propagation never assigned a value to (gap in the cluster-detection
// pass, or a cell beyond scanRange).
//
// Both are far enough from any realistic coordinate/progress-index range
// that accidental collision with a real value is not a concern, and
// small enough relative to math.MaxInt that downstream addition (e.g.
// deviationAcc += deviation[p]) cannot silently overflow.
const (
	OverDeviation   = 1 << 20
	InvalidProgress = -(1 << 20)

	// OppositeProgress is the signed-progress sentinel for the "directly
	// opposite on the ring" case when a loop's forward and backward
	// limits differ. Progress only reaches its tie branch when the two
	// limits are equal (an even modulus) and then returns forwardLimit,
	// so Progress does not produce this value; the skip checks in this
	// package and in package search still treat it as over any limit.
	OppositeProgress = -(1 << 21)
)

// Bounds is an axis-aligned integer cell rectangle, inclusive on both
// axes.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width and Height report the rectangle's cell-grid dimensions.
func (b Bounds) Width() int  { return b.MaxX - b.MinX + 1 }
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Offset returns the displacement from the rectangle's minimum corner to
// the origin; subtracting it from a world CellPos yields the position
// local to a matrix built over this Bounds.
func (b Bounds) Offset() geo.CellVec { return geo.CellVec{X: b.MinX, Y: b.MinY} }

// ToLocal translates a world CellPos into this Bounds's local coordinate
// system (local (0,0) == world (MinX,MinY)).
func (b Bounds) ToLocal(p geo.CellPos) geo.CellPos {
	return geo.CellPos{X: p.X - b.MinX, Y: p.Y - b.MinY}
}

// ToWorld is the inverse of ToLocal.
func (b Bounds) ToWorld(p geo.CellPos) geo.CellPos {
	return geo.CellPos{X: p.X + b.MinX, Y: p.Y + b.MinY}
}

// PadBounds computes the padded bounding box around points: the tight
// bounding box expanded by pad cells in every direction, per spec.md
// §4.2 step 4 ("expand by MaxDeviation + MinSeparation in all
// directions").
func PadBounds(points []geo.CellPos, pad int) Bounds {
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Bounds{MinX: minX - pad, MinY: minY - pad, MaxX: maxX + pad, MaxY: maxY + pad}
}
