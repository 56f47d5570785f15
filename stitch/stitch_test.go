package stitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizlim/CoveragePlanner/cellgraph"
	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/sweep"
	"github.com/Gizlim/CoveragePlanner/sweepdir"
	"github.com/Gizlim/CoveragePlanner/traversal"
)

func sq(x0, y0, x1, y1 int64) geom.Polygon {
	return geom.NewPolygon([]geom.Point{
		geom.NewPoint(x0, y0), geom.NewPoint(x1, y0),
		geom.NewPoint(x1, y1), geom.NewPoint(x0, y1),
	})
}

func genSweeps(t *testing.T, cells []geom.Polygon, step int) [][]geom.Point {
	t.Helper()
	out := make([][]geom.Point, len(cells))
	for i, c := range cells {
		d, err := sweepdir.Best(c)
		require.NoError(t, err)
		pts, err := sweep.Generate(c, d, step)
		require.NoError(t, err)
		out[i] = pts
	}
	return out
}

func TestStitchSingleCellStartsAtStartPoint(t *testing.T) {
	cells := []geom.Polygon{sq(0, 0, 100, 100)}
	g, isect, err := cellgraph.Build(cells)
	require.NoError(t, err)

	start := geom.NewPoint(5, 5)
	order, err := traversal.Traverse(g, start)
	require.NoError(t, err)

	sweeps := genSweeps(t, cells, 10)

	w, err := Stitch(g, isect, order, sweeps, start)
	require.NoError(t, err)
	require.NotEmpty(t, w)
	assert.True(t, w[0].Equal(start))
}

func TestStitchEveryCellVisited(t *testing.T) {
	// Two cells side by side, adjacent along their shared edge.
	cells := []geom.Polygon{sq(0, 0, 50, 100), sq(50, 0, 100, 100)}
	g, isect, err := cellgraph.Build(cells)
	require.NoError(t, err)

	start := geom.NewPoint(5, 5)
	order, err := traversal.Traverse(g, start)
	require.NoError(t, err)

	sweeps := genSweeps(t, cells, 10)

	w, err := Stitch(g, isect, order, sweeps, start)
	require.NoError(t, err)

	// Every point of the stitched path must stay inside the union of the
	// two cells (no waypoint strays outside the free region).
	for _, p := range w {
		assert.True(t, cells[0].ContainsOrOnBoundary(p) || cells[1].ContainsOrOnBoundary(p),
			"waypoint %v escaped both cells", p)
	}

	// Each cell holds at least one waypoint that lies in no other cell.
	for ci := range cells {
		visited := false
		for _, p := range w {
			if cells[ci].ContainsOrOnBoundary(p) && !cells[1-ci].ContainsOrOnBoundary(p) {
				visited = true
			}
		}
		assert.Truef(t, visited, "no waypoint visits cell %d", ci)
	}
}

func TestStitchSingleCellNeedsNoCandidates(t *testing.T) {
	cells := []geom.Polygon{sq(0, 0, 10, 10)}
	g := &cellgraph.Graph{Cells: cells, Adjacency: [][]int{{}}}
	isect := cellgraph.Intersections{}
	sweeps := genSweeps(t, cells, 5)
	order := []traversal.Step{{CellIndex: 0}}

	w, err := Stitch(g, isect, order, sweeps, geom.NewPoint(1, 1))
	require.NoError(t, err)
	assert.NotEmpty(t, w)
}

func TestStitchIsDeterministic(t *testing.T) {
	cells := []geom.Polygon{sq(0, 0, 50, 100), sq(50, 0, 100, 100)}
	g, isect, err := cellgraph.Build(cells)
	require.NoError(t, err)

	start := geom.NewPoint(5, 5)
	order, err := traversal.Traverse(g, start)
	require.NoError(t, err)

	sweeps := genSweeps(t, cells, 10)

	w1, err := Stitch(g, isect, order, sweeps, start)
	require.NoError(t, err)
	w2, err := Stitch(g, isect, order, sweeps, start)
	require.NoError(t, err)

	require.Equal(t, len(w1), len(w2))
	for i := range w1 {
		assert.True(t, w1[i].Equal(w2[i]), "waypoint %d differs between runs", i)
	}
}

func TestSubdivideDisabledReturnsUnchanged(t *testing.T) {
	w := []geom.Point{geom.NewPoint(0, 0), geom.NewPoint(10, 0)}
	out := Subdivide(w, 0)
	assert.Equal(t, w, out)
}

func TestSubdivideInsertsInteriorPoints(t *testing.T) {
	w := []geom.Point{geom.NewPoint(0, 0), geom.NewPoint(9, 0)}
	out := Subdivide(w, 3)
	// length 9, delta 3 -> floor(9/3)+1 = 4 segments -> 5 points.
	require.Len(t, out, 5)
	assert.True(t, out[0].Equal(geom.NewPoint(0, 0)))
	assert.True(t, out[len(out)-1].Equal(geom.NewPoint(9, 0)))
}
