package geom

import "math/big"

// Orientation is the sign of the turn from a->b to a->c.
type Orientation int

const (
	Clockwise        Orientation = -1
	Collinear3       Orientation = 0
	CounterClockwise Orientation = 1
)

// Area2 returns twice the signed area of triangle (a, b, c). Positive when
// a, b, c turn counter-clockwise, negative when clockwise, zero when
// collinear.
func Area2(a, b, c Point) *big.Rat {
	ab := new(big.Rat).Sub(b.X, a.X)
	ac := new(big.Rat).Sub(c.Y, a.Y)
	t1 := new(big.Rat).Mul(ab, ac)

	ad := new(big.Rat).Sub(c.X, a.X)
	ae := new(big.Rat).Sub(b.Y, a.Y)
	t2 := new(big.Rat).Mul(ad, ae)

	return t1.Sub(t1, t2)
}

// Orient classifies the turn from a->b to a->c.
func Orient(a, b, c Point) Orientation {
	switch s := Area2(a, b, c).Sign(); {
	case s > 0:
		return CounterClockwise
	case s < 0:
		return Clockwise
	default:
		return Collinear3
	}
}

// Left reports whether c lies strictly to the left of the directed line ab.
func Left(a, b, c Point) bool {
	return Orient(a, b, c) == CounterClockwise
}

// LeftOn reports whether c lies to the left of, or on, the directed line ab.
func LeftOn(a, b, c Point) bool {
	return Orient(a, b, c) != Clockwise
}

// CollinearPts reports whether a, b, c lie on a common line.
func CollinearPts(a, b, c Point) bool {
	return Orient(a, b, c) == Collinear3
}

// Between reports whether c lies on the closed segment ab, given that a, b,
// c are already known to be collinear.
func Between(a, b, c Point) bool {
	if a.X.Cmp(b.X) != 0 {
		return (a.X.Cmp(c.X) <= 0 && c.X.Cmp(b.X) <= 0) ||
			(a.X.Cmp(c.X) >= 0 && c.X.Cmp(b.X) >= 0)
	}
	return (a.Y.Cmp(c.Y) <= 0 && c.Y.Cmp(b.Y) <= 0) ||
		(a.Y.Cmp(c.Y) >= 0 && c.Y.Cmp(b.Y) >= 0)
}

// OnSegment reports whether point c lies on the closed segment ab.
func OnSegment(a, b, c Point) bool {
	return CollinearPts(a, b, c) && Between(a, b, c)
}

func xorb(x, y bool) bool {
	return x != y
}

// SegmentsIntersect reports whether open segments ab and cd intersect at a
// single point that is interior to both of them (a "proper"
// intersection: no shared endpoints, no overlap along a line).
func SegmentsIntersect(a, b, c, d Point) bool {
	if CollinearPts(a, b, c) || CollinearPts(a, b, d) ||
		CollinearPts(c, d, a) || CollinearPts(c, d, b) {
		return false
	}
	return xorb(Left(a, b, c), Left(a, b, d)) &&
		xorb(Left(c, d, a), Left(c, d, b))
}

// SegmentsTouchOrCross reports whether closed segments ab and cd intersect
// at all, properly or by sharing/overlapping an endpoint.
func SegmentsTouchOrCross(a, b, c, d Point) bool {
	if SegmentsIntersect(a, b, c, d) {
		return true
	}
	if OnSegment(a, b, c) || OnSegment(a, b, d) ||
		OnSegment(c, d, a) || OnSegment(c, d, b) {
		return true
	}
	return false
}

// SegmentIntersection computes the exact intersection point of lines ab and
// cd, assumed non-parallel (the caller must check via Direction.Cross first).
// Uses the standard parametric line intersection: ok is false if the lines
// are parallel.
func SegmentIntersection(a, b, c, d Point) (p Point, ok bool) {
	d1 := NewDirection(a, b)
	d2 := NewDirection(c, d)
	denom := d1.Cross(d2)
	if denom.Sign() == 0 {
		return Point{}, false
	}

	// Solve a + t*d1 = c + u*d2 for t using Cramer's rule.
	acx := new(big.Rat).Sub(c.X, a.X)
	acy := new(big.Rat).Sub(c.Y, a.Y)
	num := new(big.Rat).Sub(
		new(big.Rat).Mul(acx, d2.Dy),
		new(big.Rat).Mul(acy, d2.Dx),
	)
	t := new(big.Rat).Quo(num, denom)

	return Point{
		X: new(big.Rat).Add(a.X, new(big.Rat).Mul(t, d1.Dx)),
		Y: new(big.Rat).Add(a.Y, new(big.Rat).Mul(t, d1.Dy)),
	}, true
}

// VerticalLineSegment clips the infinite vertical line x=at against segment
// pq and returns the intersection point, if pq actually crosses that x
// (inclusive of its own endpoints).
func VerticalLineSegment(at *big.Rat, p, q Point) (pt Point, ok bool) {
	cmpP := p.X.Cmp(at)
	cmpQ := q.X.Cmp(at)
	if (cmpP < 0 && cmpQ < 0) || (cmpP > 0 && cmpQ > 0) {
		return Point{}, false
	}
	if cmpP == 0 && cmpQ == 0 {
		// Segment is itself vertical at x=at; degenerate for clipping
		// purposes, so p is returned as its representative point.
		return p, true
	}
	if cmpP == 0 {
		return p, true
	}
	if cmpQ == 0 {
		return q, true
	}
	// Linear interpolation: x = p.X + t*(q.X-p.X), solve for t.
	dx := new(big.Rat).Sub(q.X, p.X)
	t := new(big.Rat).Quo(new(big.Rat).Sub(at, p.X), dx)
	y := new(big.Rat).Add(p.Y, new(big.Rat).Mul(t, new(big.Rat).Sub(q.Y, p.Y)))
	return Point{X: new(big.Rat).Set(at), Y: y}, true
}
