package search

import (
	"github.com/terrakit/pathtiler/geo"
	"github.com/terrakit/pathtiler/geometry"
)

// ScoreSegment implements spec.md §4.4 in full: terminal-type gating,
// the loop anti-wrap check, per-point validation against the deviation
// and progress matrices, and the monotonic-progression check. Returns
// MaxCost for any rejection; otherwise the segment's additive deviation
// cost.
//
// Exported so package traceback can recompute a candidate predecessor's
// score exactly as the forward search did, per spec.md §4.5's "has
// finite score s" predecessor test.
func ScoreSegment(cfg Config, seg *TilingSegment, from geo.CellPos) int {

	// 1. Terminal-type gating.
	if from == cfg.PathStart {
		if seg.StartTypeID != cfg.PathStartTypeID {
			return MaxCost
		}
	} else if !cfg.InnerTypeIDs[seg.StartTypeID] {
		return MaxCost
	}

	to := from.Add(seg.Moves)
	if to == cfg.PathEnd {
		if seg.EndTypeID != cfg.PathEndTypeID {
			return MaxCost
		}
	} else if !cfg.InnerTypeIDs[seg.EndTypeID] {
		return MaxCost
	}

	geomRes := cfg.Geometry

	// 2. Loop anti-wrap: forbid segments that cross back over the loop
	// seam. Preserved literally per spec.md §9's open question.
	if geomRes.IsLoop && to != cfg.PathEnd {
		hTo := geomRes.HighProgress.Get(to.X, to.Y)
		lFrom := geomRes.LowProgress.Get(from.X, from.Y)
		if lFrom > hTo && hTo != 0 {
			return MaxCost
		}
	}

	// 3. Per-point validation.
	var lowAcc, highAcc, deviationAcc int
	n := len(seg.RelativePoints)
	for i := 0; i < n; i++ {
		p := from.Add(seg.RelativePoints[i])
		if !geomRes.Deviation.InBounds(p.X, p.Y) || geomRes.Deviation.Get(p.X, p.Y) == geometry.OverDeviation {
			return MaxCost
		}
		if i > 0 {
			deviationAcc += geomRes.Deviation.Get(p.X, p.Y)
		}
		if i+1 < n {
			next := from.Add(seg.RelativePoints[i+1])
			if !geomRes.Deviation.InBounds(next.X, next.Y) || geomRes.Deviation.Get(next.X, next.Y) == geometry.OverDeviation {
				return MaxCost
			}
			lowFrom := geomRes.LowProgress.Get(p.X, p.Y)
			lowTo := geomRes.LowProgress.Get(next.X, next.Y)
			highFrom := geomRes.HighProgress.Get(p.X, p.Y)
			highTo := geomRes.HighProgress.Get(next.X, next.Y)

			lowStep := geomRes.Progress(lowFrom, lowTo)
			highStep := geomRes.Progress(highFrom, highTo)
			if exceedsMaxSkip(lowStep, cfg.MaxSkip) || exceedsMaxSkip(highStep, cfg.MaxSkip) {
				return MaxCost
			}
			lowAcc += lowStep
			highAcc += highStep
		}
	}

	// 4. Monotonic progression: the path may pause but may not regress.
	if lowAcc < 0 || highAcc < 0 {
		return MaxCost
	}

	// 5. Result.
	return deviationAcc
}

func exceedsMaxSkip(p, maxSkip int) bool {
	if p == geometry.OppositeProgress {
		return true
	}
	if p < 0 {
		p = -p
	}
	return p > maxSkip
}
