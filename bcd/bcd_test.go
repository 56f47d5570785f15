package bcd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizlim/CoveragePlanner/geom"
)

func rectPts(x0, y0, x1, y1 int64) []geom.Point {
	return []geom.Point{
		geom.NewPoint(x0, y0), geom.NewPoint(x1, y0),
		geom.NewPoint(x1, y1), geom.NewPoint(x0, y1),
	}
}

func sumAreaFloat(cells []geom.Polygon) float64 {
	total := 0.0
	for _, c := range cells {
		// SignedArea is twice the signed area.
		f, _ := new(big.Rat).Quo(c.SignedArea(), big.NewRat(2, 1)).Float64()
		if f < 0 {
			f = -f
		}
		total += f
	}
	return total
}

func TestDecomposeEmptySquareYieldsOneCell(t *testing.T) {
	outer := geom.NewPolygon(rectPts(0, 0, 100, 100)).EnsureOrientation(true)
	pwh := geom.NewPolygonWithHoles(outer, nil)

	cells, _, err := Decompose(pwh)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.InDelta(t, 10000.0, sumAreaFloat(cells), 1e-6)
}

func TestDecomposeSquareWithHoleYieldsMultipleCells(t *testing.T) {
	outer := geom.NewPolygon(rectPts(0, 0, 100, 100)).EnsureOrientation(true)
	hole := geom.NewPolygon(rectPts(30, 30, 60, 60)).EnsureOrientation(false)
	pwh := geom.NewPolygonWithHoles(outer, []geom.Polygon{hole})

	cells, events, err := Decompose(pwh)
	require.NoError(t, err)
	assert.Greater(t, len(cells), 1, "a square with a hole must decompose into more than one cell")
	assert.NotEmpty(t, events)

	wantArea := 100.0*100.0 - 30.0*30.0
	assert.InDelta(t, wantArea, sumAreaFloat(cells), 1e-6)

	for _, c := range cells {
		assert.True(t, isXMonotone(c))
	}
}

func TestDecomposeLShapeYieldsTwoCells(t *testing.T) {
	// An L-shape: a 100x100 square with the top-right 50x50 quadrant removed.
	outer := geom.NewPolygon([]geom.Point{
		geom.NewPoint(0, 0), geom.NewPoint(100, 0), geom.NewPoint(100, 50),
		geom.NewPoint(50, 50), geom.NewPoint(50, 100), geom.NewPoint(0, 100),
	}).EnsureOrientation(true)
	pwh := geom.NewPolygonWithHoles(outer, nil)

	cells, _, err := Decompose(pwh)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(cells), 2)
	assert.InDelta(t, 7500.0, sumAreaFloat(cells), 1e-6)
}

func TestDecomposeTriangleYieldsOneCell(t *testing.T) {
	// The apex is an inflection vertex: the ceiling changes edge there but
	// the cell must not be cut in two.
	outer := geom.NewPolygon([]geom.Point{
		geom.NewPoint(0, 0), geom.NewPoint(10, 0), geom.NewPoint(5, 10),
	}).EnsureOrientation(true)
	pwh := geom.NewPolygonWithHoles(outer, nil)

	cells, _, err := Decompose(pwh)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.InDelta(t, 50.0, sumAreaFloat(cells), 1e-6)
}

func TestDecomposeCellsPartitionFreeRegion(t *testing.T) {
	outer := geom.NewPolygon(rectPts(0, 0, 100, 100)).EnsureOrientation(true)
	hole := geom.NewPolygon(rectPts(30, 30, 60, 60)).EnsureOrientation(false)
	pwh := geom.NewPolygonWithHoles(outer, []geom.Polygon{hole})

	cells, _, err := Decompose(pwh)
	require.NoError(t, err)

	// Sample a grid of half-integer points: all boundaries here lie on
	// integer coordinates, so every sample is cleanly inside or outside.
	half := func(v int64) *big.Rat { return big.NewRat(2*v+1, 2) }
	for x := int64(0); x < 100; x += 5 {
		for y := int64(0); y < 100; y += 5 {
			pt := geom.NewPointRat(half(x), half(y))
			strictly := 0
			covered := false
			for _, c := range cells {
				if c.Contains(pt) {
					strictly++
				}
				if c.ContainsOrOnBoundary(pt) {
					covered = true
				}
			}
			if pwh.Contains(pt) {
				assert.Truef(t, covered, "free point %v not covered by any cell", pt)
			} else {
				assert.Zerof(t, strictly, "point %v outside the free region lies inside a cell", pt)
			}
			assert.LessOrEqualf(t, strictly, 1, "point %v lies strictly inside %d cells", pt, strictly)
		}
	}
}

func TestDecomposeRejectsCoincidentVertices(t *testing.T) {
	outer := geom.NewPolygon([]geom.Point{
		geom.NewPoint(0, 0), geom.NewPoint(50, 0), geom.NewPoint(50, 0), geom.NewPoint(0, 100),
	})
	pwh := geom.NewPolygonWithHoles(outer, nil)

	_, _, err := Decompose(pwh)
	require.Error(t, err)
}
