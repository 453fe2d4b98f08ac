// Package flood implements the generic flood-fill driver shared by the
// geometry pass's two BFS-shaped computations: progress propagation
// (spreading path progress outward by increasing Chebyshev-ish deviation
// radius) and minimum-separation erosion (spreading an exclusion radius
// inward from over-skip or out-of-bound cells).
//
// Both consumers are multi-source, layered breadth-first fills over an
// 8-neighborhood where each cell is visited exactly once. They differ
// only in what a "visit" means and whether propagation should continue;
// this package factors out the scheduling (which cell is visited when,
// and that no cell is visited twice) and leaves the semantics to a
// caller-supplied callback, the same separation of concerns
// gridgraph.ConnectedComponents and gridgraph.ExpandIsland use between
// "how to walk the grid" and "what a component/path means".
package flood

import "github.com/terrakit/pathtiler/geo"

// Seed is one flood-fill source: a starting cell and the propagation
// budget it begins with. For the progress-fill use, budget is unused
// (pass 0); for separation erosion, budget is the remaining
// exclusion radius.
type Seed struct {
	Pos    geo.CellPos
	Budget int
}

// Visit is called exactly once for each cell reached by the fill, the
// first time it is reached. hop is the cell's distance (in BFS layers)
// from the nearest seed; budget is the payload threaded in from whichever
// seed or propagation step reached this cell first. The callback returns
// whether to keep propagating from this cell, and the budget to hand to
// its unvisited neighbors if so.
type Visit func(pos geo.CellPos, hop int, budget int) (propagate bool, nextBudget int)

// Fill performs a multi-source, layered BFS over an width×height grid
// using the given 8- or 4-neighbor offsets, starting from seeds (all at
// hop 0), calling visit on each newly-reached cell, and stopping once no
// bucket up to maxHops yields further propagation.
//
// Complexity: O(width*height*len(offsets)) time and memory, since every
// cell is visited at most once and is enqueued at most once per visited
// neighbor.
func Fill(width, height int, offsets []geo.CellVec, seeds []Seed, maxHops int, visit Visit) {
	if width <= 0 || height <= 0 || maxHops < 0 {
		return
	}
	visited := make([]bool, width*height)
	inBounds := func(p geo.CellPos) bool {
		return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
	}
	index := func(p geo.CellPos) int { return p.Y*width + p.X }

	buckets := make([][]Seed, maxHops+1)
	for _, s := range seeds {
		if !inBounds(s.Pos) {
			continue
		}
		buckets[0] = append(buckets[0], s)
	}

	for hop := 0; hop <= maxHops; hop++ {
		// Visiting this hop only appends into buckets[hop+1], never
		// buckets[hop], so ranging over buckets[hop] is safe and avoids a
		// slice-of-slices double-buffer.
		for _, item := range buckets[hop] {
			idx := index(item.Pos)
			if visited[idx] {
				continue
			}
			visited[idx] = true

			propagate, nextBudget := visit(item.Pos, hop, item.Budget)
			if !propagate || hop == maxHops {
				continue
			}
			for _, off := range offsets {
				np := item.Pos.Add(off)
				if !inBounds(np) {
					continue
				}
				if visited[index(np)] {
					continue
				}
				buckets[hop+1] = append(buckets[hop+1], Seed{Pos: np, Budget: nextBudget})
			}
		}
	}
}
