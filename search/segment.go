package search

import (
	"github.com/terrakit/pathtiler/catalog"
	"github.com/terrakit/pathtiler/geo"
)

// TilingSegment is the search-internal wrapper around a
// (catalog.TemplateSegment, catalog.TerrainTemplate) pair: interned
// terminal-type ids, the net displacement, and the point sequence
// re-based to the origin so relaxation can translate it by any cell in
// one step.
type TilingSegment struct {
	*catalog.TemplateSegment
	Template *catalog.TerrainTemplate

	StartTypeID, EndTypeID int

	// Moves is points[last] - points[0].
	Moves geo.CellVec

	// RelativePoints is Points translated so RelativePoints[0] is the
	// zero vector.
	RelativePoints []geo.CellVec

	// StepDirs is the per-step compass direction, StepDirs[i] being the
	// direction from RelativePoints[i] to RelativePoints[i+1].
	StepDirs []geo.Direction
}

// NewTilingSegment builds a TilingSegment from a validated catalog
// segment/template pair and the interned ids of its terminal labels.
func NewTilingSegment(seg *catalog.TemplateSegment, tpl *catalog.TerrainTemplate, startTypeID, endTypeID int) *TilingSegment {
	origin := seg.Points[0]
	rel := make([]geo.CellVec, len(seg.Points))
	for i, p := range seg.Points {
		rel[i] = geo.CellVec{X: p.X - origin.X, Y: p.Y - origin.Y}
	}

	dirs := make([]geo.Direction, len(rel)-1)
	for i := 1; i < len(rel); i++ {
		step := geo.CellVec{X: rel[i].X - rel[i-1].X, Y: rel[i].Y - rel[i-1].Y}
		dirs[i-1] = geo.FromCVec(step)
	}

	return &TilingSegment{
		TemplateSegment: seg,
		Template:        tpl,
		StartTypeID:     startTypeID,
		EndTypeID:       endTypeID,
		Moves:           seg.Moves(),
		RelativePoints:  rel,
		StepDirs:        dirs,
	}
}
