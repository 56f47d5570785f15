package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gizlim/CoveragePlanner/buildctx"
	"github.com/Gizlim/CoveragePlanner/config"
	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/ioplan"
)

func sq(x0, y0, x1, y1 int64) geom.Polygon {
	return geom.NewPolygon([]geom.Point{
		geom.NewPoint(x0, y0), geom.NewPoint(x1, y0),
		geom.NewPoint(x1, y1), geom.NewPoint(x0, y1),
	})
}

func TestInFreeRegion(t *testing.T) {
	pwh := geom.NewPolygonWithHoles(sq(0, 0, 100, 100), []geom.Polygon{sq(40, 40, 60, 60)})

	assert.True(t, inFreeRegion(pwh, geom.NewPoint(5, 5)))
	assert.True(t, inFreeRegion(pwh, geom.NewPoint(0, 0)), "outer boundary counts as free")
	assert.False(t, inFreeRegion(pwh, geom.NewPoint(-5, -5)))
	assert.False(t, inFreeRegion(pwh, geom.NewPoint(50, 50)), "inside a hole is not free")
}

func TestDegreesOfAndDirectionFromDegreesRoundTrip(t *testing.T) {
	d := geom.NewDirection(geom.NewPoint(0, 0), geom.NewPoint(10, 0))
	deg := degreesOf(d)
	assert.InDelta(t, 0, deg, 1e-9)

	back, ok := directionFromDegrees(deg)
	require.True(t, ok)
	bx, by := back.Float64()
	assert.InDelta(t, 1, bx, 1e-9)
	assert.InDelta(t, 0, by, 1e-9)
}

func TestDirectionFromDegreesRejectsNaN(t *testing.T) {
	_, ok := directionFromDegrees(math.NaN())
	assert.False(t, ok)
}

// fixedAngler always answers with a fixed angle, used to exercise the
// manual-orientation branch of generateSweeps without a real interactive
// front-end.
type fixedAngler struct {
	deg float64
	ok  bool
}

func (f fixedAngler) Angle(int, geom.Polygon, float64) (float64, bool) { return f.deg, f.ok }

func TestGenerateSweepsFallsBackOnNaNAngle(t *testing.T) {
	ctx := buildctx.New(true)
	p := config.Default()
	p.ManualOrientation = true
	p.SweepStep = 10

	cells := []geom.Polygon{sq(0, 0, 50, 50)}
	sweeps, err := generateSweeps(ctx, p, Collaborators{Angler: fixedAngler{deg: math.NaN(), ok: true}}, cells)
	require.NoError(t, err)
	require.Len(t, sweeps, 1)
	assert.NotEmpty(t, sweeps[0])

	foundWarning := false
	for _, m := range ctx.Messages() {
		if m != "" {
			foundWarning = true
		}
	}
	assert.True(t, foundWarning, "expected a logged warning for the NaN manual angle")
}

func TestGenerateSweepsUsesComputedDirectionWhenNoManualAnswer(t *testing.T) {
	ctx := buildctx.New(false)
	p := config.Default()
	p.SweepStep = 10

	cells := []geom.Polygon{sq(0, 0, 100, 30)}
	sweeps, err := generateSweeps(ctx, p, Collaborators{Angler: ioplan.NoopAngleProvider{}}, cells)
	require.NoError(t, err)
	require.Len(t, sweeps, 1)
	assert.NotEmpty(t, sweeps[0])

	// The computed direction runs along the long (horizontal) edge, so the
	// first sweep line keeps a constant y.
	require.GreaterOrEqual(t, len(sweeps[0]), 2)
	assert.Equal(t, 0, sweeps[0][0].Y.Cmp(sweeps[0][1].Y))
}
