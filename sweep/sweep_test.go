package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/sweepdir"
)

func sq(x0, y0, x1, y1 int64) geom.Polygon {
	return geom.NewPolygon([]geom.Point{
		geom.NewPoint(x0, y0), geom.NewPoint(x1, y0),
		geom.NewPoint(x1, y1), geom.NewPoint(x0, y1),
	})
}

func TestGenerateCoversSquareWithMultipleLines(t *testing.T) {
	cell := sq(0, 0, 100, 40)
	d, err := sweepdir.Best(cell)
	require.NoError(t, err)

	path, err := Generate(cell, d, 10)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	for _, p := range path {
		assert.True(t, cell.ContainsOrOnBoundary(p), "point %v escaped the cell", p)
	}

	// The path must start and end on the cell boundary.
	for _, p := range []geom.Point{path[0], path[len(path)-1]} {
		assert.True(t, cell.OnBoundary(p))
	}
}

func TestGenerateAlternatesDirectionBetweenLines(t *testing.T) {
	cell := sq(0, 0, 100, 40)
	d, err := sweepdir.Best(cell)
	require.NoError(t, err)

	path, err := Generate(cell, d, 10)
	require.NoError(t, err)
	// The first two sweep lines run in opposite directions along x.
	require.GreaterOrEqual(t, len(path), 4)
	assert.Equal(t, 1, path[1].X.Cmp(path[0].X))
	assert.Equal(t, -1, path[3].X.Cmp(path[2].X))

	// A boustrophedon path over multiple lines never visits any point
	// twice, since each leg's entry is the previous leg's exit.
	seen := map[string]int{}
	for _, p := range path {
		seen[p.String()]++
	}
	dup := 0
	for _, n := range seen {
		if n > 1 {
			dup++
		}
	}
	assert.Zero(t, dup, "boustrophedon path should not revisit any point")
}

func TestGenerateRejectsNonPositiveStep(t *testing.T) {
	cell := sq(0, 0, 10, 10)
	d, err := sweepdir.Best(cell)
	require.NoError(t, err)

	_, err = Generate(cell, d, 0)
	assert.Error(t, err)
}

func TestGenerateSingleCentralLineWhenStepEqualsShortSide(t *testing.T) {
	// A rectangle whose short side equals the sweep step is covered by one
	// central line: exactly two waypoints.
	cell := sq(0, 0, 100, 10)
	d, err := sweepdir.Best(cell)
	require.NoError(t, err)

	path, err := Generate(cell, d, 10)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.True(t, path[0].Equal(geom.NewPoint(0, 5)))
	assert.True(t, path[1].Equal(geom.NewPoint(100, 5)))
}

func TestGenerateSinglePassWhenStepExceedsExtent(t *testing.T) {
	cell := sq(0, 0, 10, 10)
	d, err := sweepdir.Best(cell)
	require.NoError(t, err)

	path, err := Generate(cell, d, 1000)
	require.NoError(t, err)
	require.NotEmpty(t, path)
	for _, p := range path {
		assert.True(t, cell.ContainsOrOnBoundary(p))
	}
}
