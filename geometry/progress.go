package geometry

import "sort"

// Progress computes the signed distance from progress index `from` to
// `to`, per spec.md §4.3.
//
// Non-loop: the plain difference to - from.
//
// Loop: let p = (progressModulus + to - from) mod progressModulus. If p
// is within forwardLimit = ceil(progressModulus/2) of from going
// forward, return p (a positive "ahead" distance). If p is within
// backwardLimit = floor(progressModulus/2) going backward, return p -
// progressModulus (a negative "behind" distance). Otherwise `to` is
// exactly opposite `from` on the ring. That case only arises for an even
// progressModulus, where forwardLimit == backwardLimit, and Progress then
// returns forwardLimit itself; the OppositeProgress fallback in that
// branch is not reached.
func Progress(from, to, progressModulus int, isLoop bool) int {
	if !isLoop {
		return to - from
	}
	if progressModulus <= 0 {
		return to - from
	}
	p := ((to-from)%progressModulus + progressModulus) % progressModulus
	forwardLimit := (progressModulus + 1) / 2
	backwardLimit := progressModulus / 2

	switch {
	case p < forwardLimit:
		return p
	case p > backwardLimit:
		return p - progressModulus
	default:
		if forwardLimit == backwardLimit {
			return forwardLimit
		}
		return OppositeProgress
	}
}

// FindLowAndHigh derives a cell's (lowProgress, highProgress) pair from
// the progress values of its already-settled neighbors (those visited at
// a strictly smaller deviation), per spec.md §4.3.
//
// With zero neighbor values the result is invalid (ok=false). With
// exactly one, it is copied directly. For a non-loop path, low is the
// minimum and high the maximum of the neighbor values. For a loop, the
// neighbor values are sorted and walked in circular order looking for
// the one gap with negative Progress(a,b); the values immediately after
// and before that gap become low and high respectively. If no such gap
// exists (the values are fully dispersed around the ring), the result is
// invalid.
func FindLowAndHigh(neighborLows, neighborHighs []int, progressModulus int, isLoop bool) (low, high int, ok bool) {
	if !isLoop {
		vals := append(append([]int(nil), neighborLows...), neighborHighs...)
		if len(vals) == 0 {
			return 0, 0, false
		}
		low, high = vals[0], vals[0]
		for _, v := range vals[1:] {
			if v < low {
				low = v
			}
			if v > high {
				high = v
			}
		}
		return low, high, true
	}

	vals := append(append([]int(nil), neighborLows...), neighborHighs...)
	if len(vals) == 0 {
		return 0, 0, false
	}
	sort.Ints(vals)
	uniq := vals[:0:0]
	for i, v := range vals {
		if i == 0 || v != vals[i-1] {
			uniq = append(uniq, v)
		}
	}
	n := len(uniq)
	if n == 1 {
		return uniq[0], uniq[0], true
	}

	gapIdx := -1
	for i := 0; i < n; i++ {
		a, b := uniq[i], uniq[(i+1)%n]
		if Progress(a, b, progressModulus, true) < 0 {
			gapIdx = i
			break
		}
	}
	if gapIdx == -1 {
		return 0, 0, false
	}
	low = uniq[(gapIdx+1)%n]
	high = uniq[gapIdx]
	return low, high, true
}
