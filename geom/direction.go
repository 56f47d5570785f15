package geom

import "math/big"

// Direction is a non-zero vector in the exact rational plane. Angle
// comparisons between directions are always decided from the signs of
// cross and dot products, never from atan2, so that exactness is preserved
// end to end.
type Direction struct {
	Dx, Dy *big.Rat
}

// NewDirection builds a Direction from p to q. Panics if p equals q; callers
// must never hand degenerate edges to it (the decomposer rejects those
// first, as a DegeneratePolygon error).
func NewDirection(p, q Point) Direction {
	d := Direction{Dx: new(big.Rat).Sub(q.X, p.X), Dy: new(big.Rat).Sub(q.Y, p.Y)}
	if d.Dx.Sign() == 0 && d.Dy.Sign() == 0 {
		panic("geom: zero-length direction")
	}
	return d
}

// Perp returns the direction rotated +90 degrees, i.e. orthogonal to d.
func (d Direction) Perp() Direction {
	return Direction{Dx: new(big.Rat).Neg(d.Dy), Dy: new(big.Rat).Set(d.Dx)}
}

// Cross returns the 2D cross product d x e.
func (d Direction) Cross(e Direction) *big.Rat {
	t1 := new(big.Rat).Mul(d.Dx, e.Dy)
	t2 := new(big.Rat).Mul(d.Dy, e.Dx)
	return t1.Sub(t1, t2)
}

// Dot returns d . e.
func (d Direction) Dot(e Direction) *big.Rat {
	t1 := new(big.Rat).Mul(d.Dx, e.Dx)
	t2 := new(big.Rat).Mul(d.Dy, e.Dy)
	return t1.Add(t1, t2)
}

// Float64 converts d to a float64 vector for length/angle diagnostics.
func (d Direction) Float64() (dx, dy float64) {
	dx, _ = d.Dx.Float64()
	dy, _ = d.Dy.Float64()
	return dx, dy
}
