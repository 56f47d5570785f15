// Package sweepdir implements the sweep-direction analyzer: the per-cell
// best sweep direction (the one minimizing the cell's altitude, i.e. the
// number of sweep lines needed) and the diagnostic-only global main
// direction.
//
// Altitude comparisons stay in the exact rational field — the same
// Direction/Point types component D and G use — since this is the value
// sweep generation keys off of; only the diagnostic main
// direction, which never feeds back into planning, uses floating trig.
package sweepdir

import (
	"math"
	"math/big"

	"github.com/Gizlim/CoveragePlanner/geom"
)

// Altitude returns the altitude of poly in direction d: the range of the
// projection of poly's vertices onto the axis orthogonal to d, which is
// the span the sweep must traverse. The result is scaled by |d|, since the
// projection axis d.Perp() is not normalized; Best accounts for that when
// comparing altitudes across directions of different lengths.
func Altitude(poly geom.Polygon, d geom.Direction) *big.Rat {
	min, max := Range(poly, d)
	return new(big.Rat).Sub(max, min)
}

// Range returns the min and max projection of poly's vertices onto the axis
// orthogonal to d (the perpendicular axis sweep lines are spaced along).
func Range(poly geom.Polygon, d geom.Direction) (min, max *big.Rat) {
	perp := d.Perp()
	for i := 0; i < poly.Len(); i++ {
		proj := dot(perp, poly.At(i))
		if min == nil || proj.Cmp(min) < 0 {
			min = proj
		}
		if max == nil || proj.Cmp(max) > 0 {
			max = proj
		}
	}
	return min, max
}

func dot(d geom.Direction, p geom.Point) *big.Rat {
	t1 := new(big.Rat).Mul(d.Dx, p.X)
	t2 := new(big.Rat).Mul(d.Dy, p.Y)
	return t1.Add(t1, t2)
}

// Best returns the sweep direction minimizing poly's altitude. The minimum
// is always attained parallel to one of the polygon's edges, so only those
// directions are tested; ties are broken by lowest edge index so the
// result is deterministic.
func Best(poly geom.Polygon) (geom.Direction, error) {
	if poly.Len() < 2 {
		return geom.Direction{}, errDegenerate
	}
	// Altitude(poly, d) is scaled by |d|, so two candidate directions are
	// compared by their normalized squared altitudes, alt_i^2/|d_i|^2,
	// cross-multiplied to stay in the exact field.
	var bestDir geom.Direction
	var bestAlt2, bestLen2 *big.Rat
	for i := 0; i < poly.Len(); i++ {
		a, b := poly.Edge(i)
		if a.Equal(b) {
			continue
		}
		d := geom.NewDirection(a, b)
		alt := Altitude(poly, d)
		alt2 := new(big.Rat).Mul(alt, alt)
		len2 := d.Dot(d)
		if bestAlt2 == nil ||
			new(big.Rat).Mul(alt2, bestLen2).Cmp(new(big.Rat).Mul(bestAlt2, len2)) < 0 {
			bestDir, bestAlt2, bestLen2 = d, alt2, len2
		}
	}
	if bestAlt2 == nil {
		return geom.Direction{}, errDegenerate
	}
	return bestDir, nil
}

type degenerateErr struct{}

func (degenerateErr) Error() string { return "sweepdir: polygon has no valid edge direction" }

var errDegenerate = degenerateErr{}

// MainDirection computes the length-weighted modal edge direction of the
// outer polygon, over 180 one-degree bins ([0,180)). It is used only for
// display/diagnostics, never for planning, which is why it is the one
// place in this package that leaves the exact field for floating
// trigonometry.
func MainDirection(outer geom.Polygon) int {
	histogram := make([]float64, 180)
	for i := 0; i < outer.Len(); i++ {
		a, b := outer.Edge(i)
		ax, ay := a.Float64()
		bx, by := b.Float64()
		dx, dy := bx-ax, by-ay
		length := math.Hypot(dx, dy)
		// y-axis grows down in image coordinates; flip so theta runs the
		// conventional way from x-axis towards y-axis-up.
		degIdx := (int(math.Round(math.Atan2(-dy, dx)/math.Pi*180.0)) + 180) % 180
		histogram[degIdx] += length
	}
	best, bestWeight := 0, histogram[0]
	for i := 1; i < 180; i++ {
		if histogram[i] > bestWeight {
			best, bestWeight = i, histogram[i]
		}
	}
	return best
}
