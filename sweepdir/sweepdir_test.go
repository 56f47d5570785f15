package sweepdir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizlim/CoveragePlanner/geom"
)

func rect(w, h int64) geom.Polygon {
	return geom.NewPolygon([]geom.Point{
		geom.NewPoint(0, 0), geom.NewPoint(w, 0), geom.NewPoint(w, h), geom.NewPoint(0, h),
	})
}

func TestBestPicksShortAltitudeAxis(t *testing.T) {
	// A wide, short rectangle: sweeping along its long edge (horizontal)
	// minimizes altitude (the vertical extent), so the chosen direction
	// must be horizontal.
	p := rect(100, 10)
	d, err := Best(p)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Dy.Sign())
	assert.NotEqual(t, 0, d.Dx.Sign())
}

func TestBestPicksHypotenuseOfRightTriangle(t *testing.T) {
	// For the 30-40-50 right triangle the minimal width is attained along
	// the hypotenuse (1200/50 = 24, against 30 and 40 for the legs).
	p := geom.NewPolygon([]geom.Point{
		geom.NewPoint(0, 0), geom.NewPoint(40, 0), geom.NewPoint(0, 30),
	})
	d, err := Best(p)
	require.NoError(t, err)
	hyp := geom.NewDirection(geom.NewPoint(40, 0), geom.NewPoint(0, 30))
	assert.Equal(t, 0, d.Cross(hyp).Sign())
}

func TestMainDirectionOfAxisAlignedRectangle(t *testing.T) {
	p := rect(100, 10)
	deg := MainDirection(p)
	assert.True(t, deg == 0 || deg == 90, "expected an axis-aligned main direction, got %d", deg)
}
