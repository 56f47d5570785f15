package geom

import (
	"errors"
	"math/big"

	"github.com/aurelien-rainone/assertgo"
)

// Errors returned by Polygon.Validate. Higher layers map these onto the
// DegeneratePolygon error kind.
var (
	ErrTooFewVertices  = errors.New("geom: polygon has fewer than 3 vertices")
	ErrCoincidentVerts = errors.New("geom: polygon has two coincident consecutive vertices")
	ErrSelfIntersects  = errors.New("geom: polygon is self-intersecting")
)

// Polygon is a simple closed ring: the last point implicitly connects back
// to the first. Orientation is CCW for outer boundaries, CW for holes.
type Polygon struct {
	Points []Point
}

// NewPolygon builds a Polygon from an explicit point list.
func NewPolygon(pts []Point) Polygon {
	return Polygon{Points: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int { return len(p.Points) }

// At returns vertex i, wrapping modulo Len.
func (p Polygon) At(i int) Point {
	n := len(p.Points)
	return p.Points[((i%n)+n)%n]
}

// Edge returns the i-th directed edge (At(i), At(i+1)).
func (p Polygon) Edge(i int) (Point, Point) {
	return p.At(i), p.At(i + 1)
}

// SignedArea returns twice the signed area of the polygon (positive if CCW).
func (p Polygon) SignedArea() *big.Rat {
	sum := big.NewRat(0, 1)
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a, b := p.At(i), p.At(i+1)
		t := new(big.Rat).Sub(
			new(big.Rat).Mul(a.X, b.Y),
			new(big.Rat).Mul(b.X, a.Y),
		)
		sum.Add(sum, t)
	}
	return sum
}

// IsCCW reports whether the polygon winds counter-clockwise.
func (p Polygon) IsCCW() bool {
	return p.SignedArea().Sign() > 0
}

// Reversed returns the polygon with its vertex order reversed.
func (p Polygon) Reversed() Polygon {
	n := len(p.Points)
	out := make([]Point, n)
	for i, pt := range p.Points {
		out[n-1-i] = pt
	}
	return Polygon{Points: out}
}

// EnsureOrientation returns p reoriented to CCW (ccw=true) or CW (ccw=false).
func (p Polygon) EnsureOrientation(ccw bool) Polygon {
	assert.True(p.SignedArea().Sign() != 0, "zero-area ring has no orientation")
	if p.IsCCW() == ccw {
		return p
	}
	return p.Reversed()
}

// Validate checks the structural invariants every ring must satisfy: at
// least three vertices, no coincident consecutive vertices, and no
// self-intersections.
func (p Polygon) Validate() error {
	n := len(p.Points)
	if n < 3 {
		return ErrTooFewVertices
	}
	for i := 0; i < n; i++ {
		a, b := p.At(i), p.At(i+1)
		if a.Equal(b) {
			return ErrCoincidentVerts
		}
	}
	for i := 0; i < n; i++ {
		a1, a2 := p.Edge(i)
		for j := i + 1; j < n; j++ {
			if j == i {
				continue
			}
			// Adjacent edges share an endpoint by construction; skip them.
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := p.Edge(j)
			if SegmentsIntersect(a1, a2, b1, b2) {
				return ErrSelfIntersects
			}
		}
	}
	return nil
}

// Contains reports whether pt lies strictly inside p, using a crossing-number
// test decided entirely by exact orientation predicates (never atan2).
func (p Polygon) Contains(pt Point) bool {
	if p.OnBoundary(pt) {
		return false
	}
	inside := false
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a, b := p.At(i), p.At(i+1)
		if crossesRay(a, b, pt) {
			inside = !inside
		}
	}
	return inside
}

// ContainsOrOnBoundary reports whether pt lies inside p or exactly on its
// boundary.
func (p Polygon) ContainsOrOnBoundary(pt Point) bool {
	if p.OnBoundary(pt) {
		return true
	}
	return p.Contains(pt)
}

// OnBoundary reports whether pt lies exactly on the boundary of p.
func (p Polygon) OnBoundary(pt Point) bool {
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a, b := p.At(i), p.At(i+1)
		if OnSegment(a, b, pt) {
			return true
		}
	}
	return false
}

// crossesRay reports whether the edge (a,b) crosses the horizontal ray
// cast from pt towards +X, i.e. the classic PNPOLY even-odd test, but
// decided with exact orientation rather than floating comparisons.
func crossesRay(a, b, pt Point) bool {
	ay, by, py := a.Y, b.Y, pt.Y
	if (ay.Cmp(py) > 0) == (by.Cmp(py) > 0) {
		return false
	}
	// x-intersection of edge ab with horizontal line y=pt.Y
	dy := new(big.Rat).Sub(by, ay)
	t := new(big.Rat).Quo(new(big.Rat).Sub(py, ay), dy)
	ix := new(big.Rat).Add(a.X, new(big.Rat).Mul(t, new(big.Rat).Sub(b.X, a.X)))
	return ix.Cmp(pt.X) > 0
}

// Translate returns p with every vertex shifted by (dx, dy).
func (p Polygon) Translate(dx, dy int64) Polygon {
	off := NewPoint(dx, dy)
	out := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Add(off)
	}
	return Polygon{Points: out}
}

// BoundingBox returns the axis-aligned bounding box of p.
func (p Polygon) BoundingBox() (min, max Point) {
	min, max = p.Points[0], p.Points[0]
	for _, pt := range p.Points[1:] {
		if pt.X.Cmp(min.X) < 0 {
			min.X = pt.X
		}
		if pt.Y.Cmp(min.Y) < 0 {
			min.Y = pt.Y
		}
		if pt.X.Cmp(max.X) > 0 {
			max.X = pt.X
		}
		if pt.Y.Cmp(max.Y) > 0 {
			max.Y = pt.Y
		}
	}
	return min, max
}

// PolygonWithHoles is one outer polygon plus zero or more holes strictly
// inside it. Holes are pairwise disjoint.
type PolygonWithHoles struct {
	Outer Polygon
	Holes []Polygon
}

// NewPolygonWithHoles builds a PolygonWithHoles, normalizing orientation:
// outer CCW, holes CW.
func NewPolygonWithHoles(outer Polygon, holes []Polygon) PolygonWithHoles {
	pwh := PolygonWithHoles{Outer: outer.EnsureOrientation(true)}
	pwh.Holes = make([]Polygon, len(holes))
	for i, h := range holes {
		pwh.Holes[i] = h.EnsureOrientation(false)
	}
	return pwh
}

// Validate checks every ring of pwh and the additional invariant that no
// hole touches the outer boundary.
func (pwh PolygonWithHoles) Validate() error {
	if err := pwh.Outer.Validate(); err != nil {
		return err
	}
	for _, h := range pwh.Holes {
		if err := h.Validate(); err != nil {
			return err
		}
		for _, pt := range h.Points {
			if pwh.Outer.OnBoundary(pt) {
				return ErrSelfIntersects
			}
		}
	}
	return nil
}

// Contains reports whether pt lies in the free region described by pwh:
// inside the outer ring and outside every hole.
func (pwh PolygonWithHoles) Contains(pt Point) bool {
	if !pwh.Outer.Contains(pt) {
		return false
	}
	for _, h := range pwh.Holes {
		if h.Contains(pt) {
			return false
		}
	}
	return true
}
