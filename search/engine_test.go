package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrakit/pathtiler/catalog"
	"github.com/terrakit/pathtiler/geo"
	"github.com/terrakit/pathtiler/geometry"
)

func cp(x, y int) geo.CellPos { return geo.CellPos{X: x, Y: y} }
func cv(x, y int) geo.CellVec { return geo.CellVec{X: x, Y: y} }

func straightHSegment() *TilingSegment {
	seg := &catalog.TemplateSegment{
		ID:    1,
		Start: "Beach.R",
		End:   "Beach.R",
		Points: []geo.CellVec{
			cv(0, 0), cv(1, 0), cv(2, 0), cv(3, 0),
		},
		TemplateID: 1,
	}
	return NewTilingSegment(seg, &catalog.TerrainTemplate{ID: 1}, 0, 0)
}

// TestRunSingleSegmentStraightPath mirrors spec.md §8 scenario S1: a
// straight 4-point path with a single straight-H segment available and
// MaxDeviation=0 must be tiled at cost 0.
func TestRunSingleSegmentStraightPath(t *testing.T) {
	path := []geo.CellPos{cp(0, 0), cp(1, 0), cp(2, 0), cp(3, 0)}
	geomRes, err := geometry.Run(4, 1, path, false, 0, 0, 2)
	require.NoError(t, err)

	seg := straightHSegment()
	cfg := Config{
		Width: 4, Height: 1,
		Geometry: geomRes,
		MaxSkip:  2,
		NumTypes: 1,
		SegmentsByStartType: map[int][]*TilingSegment{
			0: {seg},
		},
		PathStart: cp(0, 0), PathEnd: cp(3, 0),
		PathStartTypeID: 0, PathEndTypeID: 0,
		InnerTypeIDs: map[int]bool{0: true},
	}

	res := Run(cfg)
	require.True(t, res.Found)
	assert.Equal(t, 0, res.Best)
}

// TestRunRejectsWhenSegmentMissing mirrors spec.md §8 scenario S3: with
// no segment able to depart pathStart, Tile (here, the underlying
// search) must report no path found.
func TestRunRejectsWhenSegmentMissing(t *testing.T) {
	path := []geo.CellPos{cp(0, 0), cp(1, 0), cp(2, 0), cp(3, 0)}
	geomRes, err := geometry.Run(4, 1, path, false, 0, 0, 2)
	require.NoError(t, err)

	cfg := Config{
		Width: 4, Height: 1,
		Geometry: geomRes,
		MaxSkip:  2,
		NumTypes: 1,
		SegmentsByStartType: map[int][]*TilingSegment{},
		PathStart:            cp(0, 0), PathEnd: cp(3, 0),
		PathStartTypeID: 0, PathEndTypeID: 0,
		InnerTypeIDs: map[int]bool{0: true},
	}

	res := Run(cfg)
	assert.False(t, res.Found)
}

// TestRunRejectsWrongEndType checks terminal-type gating at pathEnd: a
// segment whose endTypeID does not match the path's configured end type
// must never be selected, even though it otherwise fits geometrically.
func TestRunRejectsWrongEndType(t *testing.T) {
	path := []geo.CellPos{cp(0, 0), cp(1, 0), cp(2, 0), cp(3, 0)}
	geomRes, err := geometry.Run(4, 1, path, false, 0, 0, 2)
	require.NoError(t, err)

	seg := NewTilingSegment(&catalog.TemplateSegment{
		ID: 1, Start: "Beach.R", End: "Beach.D",
		Points:     []geo.CellVec{cv(0, 0), cv(1, 0), cv(2, 0), cv(3, 0)},
		TemplateID: 1,
	}, &catalog.TerrainTemplate{ID: 1}, 0, 1)

	cfg := Config{
		Width: 4, Height: 1,
		Geometry: geomRes,
		MaxSkip:  2,
		NumTypes: 2,
		SegmentsByStartType: map[int][]*TilingSegment{
			0: {seg},
		},
		PathStart: cp(0, 0), PathEnd: cp(3, 0),
		PathStartTypeID: 0, PathEndTypeID: 0,
		InnerTypeIDs: map[int]bool{0: true, 1: true},
	}

	res := Run(cfg)
	assert.False(t, res.Found)
}

// TestRunRejectsSegmentExceedingMaxSkip ensures the per-point validation
// step rejects a segment whose progress jump between consecutive points
// exceeds MaxSkip (spec.md §8's "MaxSkip==1, sharp turns" boundary
// case), even though terminal types and bounds are otherwise fine.
func TestRunRejectsSegmentExceedingMaxSkip(t *testing.T) {
	path := []geo.CellPos{cp(0, 0), cp(1, 0), cp(2, 0), cp(3, 0)}
	geomRes, err := geometry.Run(4, 1, path, false, 0, 0, 2)
	require.NoError(t, err)

	// A segment that leaps straight from progress index 0 to 3 in one
	// step: a progress jump of 3, which exceeds MaxSkip=1.
	seg := NewTilingSegment(&catalog.TemplateSegment{
		ID: 1, Start: "Beach.R", End: "Beach.R",
		Points:     []geo.CellVec{cv(0, 0), cv(3, 0)},
		TemplateID: 1,
	}, &catalog.TerrainTemplate{ID: 1}, 0, 0)

	cfg := Config{
		Width: 4, Height: 1,
		Geometry: geomRes,
		MaxSkip:  1,
		NumTypes: 1,
		SegmentsByStartType: map[int][]*TilingSegment{
			0: {seg},
		},
		PathStart: cp(0, 0), PathEnd: cp(3, 0),
		PathStartTypeID: 0, PathEndTypeID: 0,
		InnerTypeIDs: map[int]bool{0: true},
	}

	res := Run(cfg)
	assert.False(t, res.Found)
}

// squareLoopSegments builds the four chained "turn" segments of
// tiler.TestTileS4ClosedLoopExactFit at the search layer: type ids
// 0=N, 1=E, 2=S, 3=W, 4=closing (distinct from 0, so the loop's shared
// start/end cell occupies two different cost-lattice layers).
func squareLoopSegments() (top, right, bottom, left *TilingSegment) {
	mk := func(id, startType, endType int, points ...geo.CellVec) *TilingSegment {
		seg := &catalog.TemplateSegment{ID: id, Start: "T", End: "T", Points: points, TemplateID: id}
		return NewTilingSegment(seg, &catalog.TerrainTemplate{ID: id}, startType, endType)
	}
	top = mk(1, 0, 1, cv(0, 0), cv(1, 0), cv(2, 0), cv(3, 0))
	right = mk(2, 1, 2, cv(0, 0), cv(0, 1), cv(0, 2), cv(0, 3))
	bottom = mk(3, 2, 3, cv(0, 0), cv(-1, 0), cv(-2, 0), cv(-3, 0))
	left = mk(4, 3, 4, cv(0, 0), cv(0, -1), cv(0, -2), cv(0, -3))
	return
}

func squareLoopPath() []geo.CellPos {
	return []geo.CellPos{
		cp(0, 0), cp(1, 0), cp(2, 0), cp(3, 0),
		cp(3, 1), cp(3, 2), cp(3, 3),
		cp(2, 3), cp(1, 3), cp(0, 3),
		cp(0, 2), cp(0, 1), cp(0, 0),
	}
}

// TestRunClosedLoopSquareTraversal mirrors spec.md §8 scenario S4: a
// 3x3 square loop, MaxDeviation=0, tiled by four turn segments chained
// around the ring, must reach pathEnd at cost 0 via the loop's own
// seeding/relaxation path (isLoop=true), never exercised by any other
// test in this package.
func TestRunClosedLoopSquareTraversal(t *testing.T) {
	path := squareLoopPath()
	geomRes, err := geometry.Run(4, 4, path, true, 0, 0, 1)
	require.NoError(t, err)

	top, right, bottom, left := squareLoopSegments()
	cfg := Config{
		Width: 4, Height: 4,
		Geometry: geomRes,
		MaxSkip:  1,
		NumTypes: 5,
		SegmentsByStartType: map[int][]*TilingSegment{
			0: {top}, 1: {right}, 2: {bottom}, 3: {left},
		},
		PathStart: cp(0, 0), PathEnd: cp(0, 0),
		PathStartTypeID: 0, PathEndTypeID: 4,
		InnerTypeIDs: map[int]bool{1: true, 2: true, 3: true},
	}

	res := Run(cfg)
	require.True(t, res.Found)
	assert.Equal(t, 0, res.Best)
}
