package traversal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizlim/CoveragePlanner/cellgraph"
	"github.com/Gizlim/CoveragePlanner/geom"
)

func sq(x0, y0, x1, y1 int64) geom.Polygon {
	return geom.NewPolygon([]geom.Point{
		geom.NewPoint(x0, y0), geom.NewPoint(x1, y0),
		geom.NewPoint(x1, y1), geom.NewPoint(x0, y1),
	})
}

func TestTraverseChainVisitsEveryCellOnce(t *testing.T) {
	cells := []geom.Polygon{sq(0, 0, 10, 10), sq(10, 0, 20, 10), sq(20, 0, 30, 10)}
	g, _, err := cellgraph.Build(cells)
	require.NoError(t, err)

	order, err := Traverse(g, geom.NewPoint(5, 5))
	require.NoError(t, err)

	visited := map[int]bool{}
	for _, s := range order {
		if !s.Revisit {
			visited[s.CellIndex] = true
		}
	}
	assert.Len(t, visited, 3)
	assert.Equal(t, 0, order[0].CellIndex)
}

func TestTraverseBranchingGraphBacktracks(t *testing.T) {
	// A "T" shape: cell 0 connects to 1 and 2, neither of which connects
	// onward; the DFS must visit both, backtracking through 0.
	cells := []geom.Polygon{sq(10, 0, 20, 10), sq(0, 0, 10, 10), sq(20, 0, 30, 10)}
	g, _, err := cellgraph.Build(cells)
	require.NoError(t, err)

	order, err := Traverse(g, geom.NewPoint(15, 5))
	require.NoError(t, err)

	visited := map[int]bool{}
	for _, s := range order {
		if !s.Revisit {
			visited[s.CellIndex] = true
		}
	}
	assert.Len(t, visited, 3)

	sawRevisit := false
	for _, s := range order {
		if s.Revisit {
			sawRevisit = true
		}
	}
	assert.True(t, sawRevisit, "expected a backtrack revisit of cell 0")
}

func TestTraverseStartOutsideAllCellsUsesNearest(t *testing.T) {
	cells := []geom.Polygon{sq(0, 0, 10, 10)}
	g, _, err := cellgraph.Build(cells)
	require.NoError(t, err)

	order, err := Traverse(g, geom.NewPoint(100, 100))
	require.NoError(t, err)
	require.Len(t, order, 1)
	assert.Equal(t, 0, order[0].CellIndex)
}

func TestTraverseNoCellsIsStartOutOfRegion(t *testing.T) {
	g := &cellgraph.Graph{}
	_, err := Traverse(g, geom.NewPoint(0, 0))
	require.Error(t, err)
}
