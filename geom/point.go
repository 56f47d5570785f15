// Package geom implements the exact-rational geometric kernel the rest of
// the coverage pipeline is built on: points, directions, polygons and the
// orientation/intersection/in-polygon predicates used by decomposition,
// visibility and sweep generation.
//
// Every predicate here operates over math/big.Rat so that coincident and
// collinear vertex configurations, which are the usual source of
// floating-point robustness failures in sweep-line algorithms, are decided
// exactly. Floating point only appears at the edges of the pipeline: when
// Euclidean lengths are needed (visibility graph edge weights, sweep
// ordering heuristics) and when waypoints are rounded to integer pixels for
// output.
package geom

import "math/big"

// Point is a point in the plane with exact rational coordinates.
type Point struct {
	X, Y *big.Rat
}

// NewPoint builds a Point from integer pixel coordinates.
func NewPoint(x, y int64) Point {
	return Point{X: big.NewRat(x, 1), Y: big.NewRat(y, 1)}
}

// NewPointRat builds a Point from rationals. x and y are copied, so the
// caller may reuse or mutate them afterwards.
func NewPointRat(x, y *big.Rat) Point {
	return Point{X: new(big.Rat).Set(x), Y: new(big.Rat).Set(y)}
}

// Equal reports whether p and q denote the same exact point.
func (p Point) Equal(q Point) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{
		X: new(big.Rat).Add(p.X, q.X),
		Y: new(big.Rat).Add(p.Y, q.Y),
	}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{
		X: new(big.Rat).Sub(p.X, q.X),
		Y: new(big.Rat).Sub(p.Y, q.Y),
	}
}

// Scale returns p scaled by the rational factor k.
func (p Point) Scale(k *big.Rat) Point {
	return Point{
		X: new(big.Rat).Mul(p.X, k),
		Y: new(big.Rat).Mul(p.Y, k),
	}
}

// Mid returns the exact midpoint of p and q.
func Mid(p, q Point) Point {
	half := big.NewRat(1, 2)
	return p.Add(q).Scale(half)
}

// Float64 converts p to a float64 pair, for use at the output boundary
// (rounding to integer pixels) and for Euclidean-length computations.
func (p Point) Float64() (x, y float64) {
	x, _ = p.X.Float64()
	y, _ = p.Y.Float64()
	return x, y
}

// String renders p as "(x, y)" using decimal approximations, for diagnostics.
func (p Point) String() string {
	x, y := p.Float64()
	return fmtFloatPair(x, y)
}
