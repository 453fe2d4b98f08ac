package geometry

import (
	"github.com/terrakit/pathtiler/flood"
	"github.com/terrakit/pathtiler/geo"
	"github.com/terrakit/pathtiler/gridmat"
)

// Result holds the three per-cell matrices the geometric conditioning
// pass produces, plus the loop-ring parameters scoring needs to compute
// signed progress consistently.
type Result struct {
	Deviation       *gridmat.Matrix[int]
	LowProgress     *gridmat.Matrix[int]
	HighProgress    *gridmat.Matrix[int]
	ProgressModulus int
	IsLoop          bool
}

// Progress is a convenience wrapper around the package Progress function
// bound to this Result's ring parameters.
func (r *Result) Progress(from, to int) int {
	return Progress(from, to, r.ProgressModulus, r.IsLoop)
}

// Run computes the geometry pass over a width×height matrix for
// localPoints (already translated into that matrix's local coordinate
// system, per Bounds.ToLocal), following spec.md §4.3 in full: seeding
// from the path, a BFS progress fill up to scanRange = maxDeviation +
// minSeparation, and (if minSeparation > 0) minimum-separation erosion.
func Run(width, height int, localPoints []geo.CellPos, isLoop bool, maxDeviation, minSeparation, maxSkip int) (*Result, error) {
	deviation, err := gridmat.NewFilled[int](width, height, OverDeviation)
	if err != nil {
		return nil, err
	}
	lowProgress, err := gridmat.NewFilled[int](width, height, InvalidProgress)
	if err != nil {
		return nil, err
	}
	highProgress, err := gridmat.NewFilled[int](width, height, InvalidProgress)
	if err != nil {
		return nil, err
	}

	progressModulus := len(localPoints)
	seedCount := progressModulus
	if isLoop {
		progressModulus = len(localPoints) - 1
		seedCount = progressModulus
	}

	res := &Result{
		Deviation: deviation, LowProgress: lowProgress, HighProgress: highProgress,
		ProgressModulus: progressModulus, IsLoop: isLoop,
	}

	pathIndex := make(map[geo.CellPos]int, seedCount)
	seeds := make([]flood.Seed, 0, seedCount)
	for i := 0; i < seedCount; i++ {
		p := localPoints[i]
		pathIndex[p] = i
		seeds = append(seeds, flood.Seed{Pos: p})
	}

	scanRange := maxDeviation + minSeparation
	offsets := geo.Offsets8()

	flood.Fill(width, height, offsets, seeds, scanRange, func(pos geo.CellPos, hop, budget int) (bool, int) {
		if hop == 0 {
			i := pathIndex[pos]
			lowProgress.SetFast(pos.X, pos.Y, i)
			highProgress.SetFast(pos.X, pos.Y, i)
		} else {
			var lows, highs []int
			for _, off := range offsets {
				np := pos.Add(off)
				if !deviation.InBounds(np.X, np.Y) {
					continue
				}
				if deviation.Get(np.X, np.Y) >= hop {
					continue // not yet settled (strictly smaller deviation required)
				}
				l := lowProgress.Get(np.X, np.Y)
				h := highProgress.Get(np.X, np.Y)
				if l == InvalidProgress || h == InvalidProgress {
					continue
				}
				lows = append(lows, l)
				highs = append(highs, h)
			}
			if low, high, ok := FindLowAndHigh(lows, highs, progressModulus, isLoop); ok {
				lowProgress.SetFast(pos.X, pos.Y, low)
				highProgress.SetFast(pos.X, pos.Y, high)
			}
		}
		deviation.SetFast(pos.X, pos.Y, hop)
		return hop+1 <= scanRange, 0
	})

	if minSeparation > 0 {
		erode(res, width, height, maxDeviation, minSeparation, maxSkip, offsets)
	}

	return res, nil
}

// erode performs the minimum-separation erosion pass of spec.md §4.3:
// seed from invalid-progress cells, over-skip neighborhoods, and
// over-deviation cells, then flood-fill a decrementing exclusion radius
// that marks newly-reached cells OverDeviation.
func erode(res *Result, width, height, maxDeviation, minSeparation, maxSkip int, offsets []geo.CellVec) {
	var seeds []flood.Seed
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pos := geo.CellPos{X: x, Y: y}
			low := res.LowProgress.Get(x, y)
			high := res.HighProgress.Get(x, y)
			if low == InvalidProgress || high == InvalidProgress {
				seeds = append(seeds, flood.Seed{Pos: pos, Budget: minSeparation})
				continue
			}
			if neighborhoodOverSkips(res, pos, offsets, maxSkip) {
				seeds = append(seeds, flood.Seed{Pos: pos, Budget: minSeparation - 1})
				continue
			}
			if res.Deviation.Get(x, y) > maxDeviation {
				seeds = append(seeds, flood.Seed{Pos: pos, Budget: 0})
			}
		}
	}

	flood.Fill(width, height, offsets, seeds, minSeparation, func(pos geo.CellPos, hop, budget int) (bool, int) {
		d := res.Deviation.Get(pos.X, pos.Y)
		if d != 0 && d != OverDeviation {
			res.Deviation.SetFast(pos.X, pos.Y, OverDeviation)
		}
		return budget > 0, budget - 1
	})
}

// neighborhoodOverSkips reports whether any of pos's 8 neighbors has a
// progress jump from pos exceeding maxSkip in either the low or high
// scalar.
func neighborhoodOverSkips(res *Result, pos geo.CellPos, offsets []geo.CellVec, maxSkip int) bool {
	low := res.LowProgress.Get(pos.X, pos.Y)
	high := res.HighProgress.Get(pos.X, pos.Y)
	for _, off := range offsets {
		np := pos.Add(off)
		if !res.Deviation.InBounds(np.X, np.Y) {
			continue
		}
		nLow := res.LowProgress.Get(np.X, np.Y)
		nHigh := res.HighProgress.Get(np.X, np.Y)
		if nLow == InvalidProgress || nHigh == InvalidProgress {
			continue
		}
		if exceedsSkip(res.Progress(low, nLow), maxSkip) || exceedsSkip(res.Progress(high, nHigh), maxSkip) {
			return true
		}
	}
	return false
}

func exceedsSkip(p, maxSkip int) bool {
	if p == OppositeProgress {
		return true
	}
	if p < 0 {
		p = -p
	}
	return p > maxSkip
}
