package tiler

import "github.com/terrakit/pathtiler/pathcond"

// RetainIfValid validates the path's current points with
// pathcond.ValidatePathPoints; an invalid path is invalidated (its
// Points() becomes nil) rather than returning the error to the caller,
// per spec.md §7's "validation failure" handling. It is chainable like
// every other conditioner.
func (p *TilingPath[P]) RetainIfValid() *TilingPath[P] {
	if ok, _ := pathcond.ValidatePathPoints(p.points); !ok {
		p.points = nil
	}
	return p
}

// InertiallyExtend delegates to pathcond.InertiallyExtend.
func (p *TilingPath[P]) InertiallyExtend(extLen, inertialRange int) *TilingPath[P] {
	p.points = pathcond.InertiallyExtend(p.points, extLen, inertialRange)
	return p
}

// ExtendEdge delegates to pathcond.ExtendEdge, using the map's own cell
// bounds.
func (p *TilingPath[P]) ExtendEdge(extLen int) *TilingPath[P] {
	p.points = pathcond.ExtendEdge(p.points, extLen, p.Grid.CellBounds())
	return p
}

// OptimizeLoop delegates to pathcond.OptimizeLoop.
func (p *TilingPath[P]) OptimizeLoop() *TilingPath[P] {
	p.points = pathcond.OptimizeLoop(p.points)
	return p
}

// ChirallyNormalize delegates to pathcond.ChirallyNormalize, measuring
// from the map's own bounds center.
func (p *TilingPath[P]) ChirallyNormalize() *TilingPath[P] {
	b := p.Grid.CellBounds()
	center := pathRectCenter(b)
	p.points = pathcond.ChirallyNormalize(p.points, center)
	return p
}

// Shrink delegates to pathcond.Shrink. Unlike every other conditioner,
// Shrink surfaces an error: per SPEC_FULL.md's error handling design,
// (*TilingPath).Shrink returns ErrShrinkMinLenTooSmall when minLen <= 1,
// an argument-out-of-range programmer error rather than an ordinary
// conditioning outcome. On success (including the "no conforming trim"
// non-error outcome, which invalidates the path) it still returns p so
// ordinary calls can remain part of a chain:
//
//	p.InertiallyExtend(2, 3).Shrink(1, 4)
//
// A failing call breaks the chain — the caller must check err before
// continuing to condition p.
func (p *TilingPath[P]) Shrink(shrinkBy, minLen int) (*TilingPath[P], error) {
	pts, err := pathcond.Shrink(p.points, shrinkBy, minLen)
	if err != nil {
		return p, err
	}
	p.points = pts
	return p, nil
}
