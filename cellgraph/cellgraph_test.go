package cellgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizlim/CoveragePlanner/geom"
)

func sq(x0, y0, x1, y1 int64) geom.Polygon {
	return geom.NewPolygon([]geom.Point{
		geom.NewPoint(x0, y0), geom.NewPoint(x1, y0),
		geom.NewPoint(x1, y1), geom.NewPoint(x0, y1),
	})
}

func TestBuildAdjacentSquares(t *testing.T) {
	// Two 10x10 squares sharing the vertical edge x=10.
	cells := []geom.Polygon{sq(0, 0, 10, 10), sq(10, 0, 20, 10)}

	g, inter, err := Build(cells)
	require.NoError(t, err)
	require.Equal(t, []int{1}, g.Adjacency[0])
	require.Equal(t, []int{0}, g.Adjacency[1])

	pts, ok := inter[CellPair{0, 1}]
	require.True(t, ok)
	assert.Len(t, pts, 2+maxInteriorCandidates)
}

func TestBuildNoAdjacencyWhenDisjoint(t *testing.T) {
	cells := []geom.Polygon{sq(0, 0, 10, 10), sq(20, 20, 30, 30)}
	g, inter, err := Build(cells)
	require.NoError(t, err)
	assert.Empty(t, g.Adjacency[0])
	assert.Empty(t, g.Adjacency[1])
	assert.Empty(t, inter)
}

func TestBuildChainOfThreeCells(t *testing.T) {
	cells := []geom.Polygon{sq(0, 0, 10, 10), sq(10, 0, 20, 10), sq(20, 0, 30, 10)}
	g, _, err := Build(cells)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, g.Adjacency[0])
	assert.ElementsMatch(t, []int{0, 2}, g.Adjacency[1])
	assert.Equal(t, []int{1}, g.Adjacency[2])
}
