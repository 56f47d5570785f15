package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizlim/CoveragePlanner/geom"
)

func TestShortestPathDirectWhenVisible(t *testing.T) {
	square := geom.NewPolygon([]geom.Point{
		geom.NewPoint(0, 0), geom.NewPoint(10, 0), geom.NewPoint(10, 10), geom.NewPoint(0, 10),
	})
	path, err := ShortestPath(square, geom.NewPoint(1, 1), geom.NewPoint(9, 9))
	require.NoError(t, err)
	assert.Len(t, path, 2)
}

func pathLen(pts []geom.Point) float64 {
	total := 0.0
	for i := 0; i+1 < len(pts); i++ {
		total += dist(pts[i], pts[i+1])
	}
	return total
}

func TestShortestPathNeverBeatsStraightLine(t *testing.T) {
	c := geom.NewPolygon([]geom.Point{
		geom.NewPoint(0, 0), geom.NewPoint(10, 0), geom.NewPoint(10, 4),
		geom.NewPoint(4, 4), geom.NewPoint(4, 6), geom.NewPoint(10, 6),
		geom.NewPoint(10, 10), geom.NewPoint(0, 10),
	})
	from := geom.NewPoint(8, 1)
	to := geom.NewPoint(8, 9)

	path, err := ShortestPath(c, from, to)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pathLen(path), dist(from, to))
}

func TestShortestPathRoutesAroundNotch(t *testing.T) {
	// A "C" shaped polygon: a notch juts in from the right, so a straight
	// line between the two arms must route around the notch's tip.
	c := geom.NewPolygon([]geom.Point{
		geom.NewPoint(0, 0), geom.NewPoint(10, 0), geom.NewPoint(10, 4),
		geom.NewPoint(4, 4), geom.NewPoint(4, 6), geom.NewPoint(10, 6),
		geom.NewPoint(10, 10), geom.NewPoint(0, 10),
	})
	from := geom.NewPoint(8, 1)
	to := geom.NewPoint(8, 9)

	path, err := ShortestPath(c, from, to)
	require.NoError(t, err)
	assert.Greater(t, len(path), 2, "expected the path to detour around the notch")
	assert.True(t, path[0].Equal(from))
	assert.True(t, path[len(path)-1].Equal(to))
}
