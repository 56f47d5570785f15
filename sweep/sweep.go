// Package sweep generates the boustrophedon sweep path inside a single
// cell: parallel lines along the cell's best sweep direction, spaced by
// the configured step, connected end to end in alternating (ox-plow)
// order.
//
// Sweep lines are built without ever leaving the exact rational field for
// their geometry: a line at perpendicular offset c is the point
// Q = perp * (c / perp.perp) extended along d, and its crossings with the
// cell boundary are found with the same parametric line intersection
// geom.SegmentIntersection uses elsewhere — no trigonometric rotation is
// needed since the sweep direction is handled as a vector, not an angle.
// Only the physical spacing between lines (step pixels converted to a
// projection-space delta) needs the perpendicular's Euclidean length, which
// is the one place this package leaves the exact field, mirroring
// sweepdir's MainDirection.
package sweep

import (
	"math"
	"math/big"
	"sort"

	"github.com/aurelien-rainone/assertgo"

	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/planerr"
	"github.com/Gizlim/CoveragePlanner/sweepdir"
	"github.com/Gizlim/CoveragePlanner/visibility"
)

// Generate returns the boustrophedon path covering cell, sweeping along d
// with lines spaced step pixels apart.
func Generate(cell geom.Polygon, d geom.Direction, step int) ([]geom.Point, error) {
	if step <= 0 {
		return nil, planerr.New(planerr.InvalidParameter, "sweep", "sweep step must be positive")
	}

	minC, maxC := sweepdir.Range(cell, d)
	perp := d.Perp()
	perpDotPerp := perp.Dot(perp)
	if perpDotPerp.Sign() == 0 {
		return nil, planerr.New(planerr.DegeneratePolygon, "sweep", "zero-length sweep direction")
	}
	perpLenF, _ := new(big.Float).SetRat(perpDotPerp).Float64()
	deltaC := new(big.Rat).SetFloat64(float64(step) * math.Sqrt(perpLenF))
	if deltaC == nil || deltaC.Sign() <= 0 {
		return nil, planerr.New(planerr.InvalidParameter, "sweep", "sweep step too small to represent")
	}

	var offsets []*big.Rat
	span := new(big.Rat).Sub(maxC, minC)
	if span.Cmp(deltaC) <= 0 {
		// Cell no wider than one step: a single central sweep line.
		mid := new(big.Rat).Quo(new(big.Rat).Add(minC, maxC), big.NewRat(2, 1))
		offsets = append(offsets, mid)
	} else {
		for c := new(big.Rat).Set(minC); c.Cmp(maxC) <= 0; c = new(big.Rat).Add(c, deltaC) {
			offsets = append(offsets, c)
		}
		if offsets[len(offsets)-1].Cmp(maxC) < 0 {
			offsets = append(offsets, maxC)
		}
	}

	var path []geom.Point
	for i, c := range offsets {
		segs := lineSegments(cell, d, perp, perpDotPerp, c)
		if len(segs) == 0 {
			continue
		}
		if i%2 == 1 {
			for l, r := 0, len(segs)-1; l < r; l, r = l+1, r-1 {
				segs[l], segs[r] = segs[r], segs[l]
			}
			for j := range segs {
				segs[j][0], segs[j][1] = segs[j][1], segs[j][0]
			}
		}
		for _, seg := range segs {
			if len(path) > 0 {
				last := path[len(path)-1]
				if !last.Equal(seg[0]) {
					transit, err := visibility.ShortestPath(cell, last, seg[0])
					if err != nil {
						return nil, err
					}
					path = append(path, transit[1:]...)
				}
			} else {
				path = append(path, seg[0])
			}
			// A line tangent at a vertex degenerates to a point; don't
			// emit it twice.
			if !seg[0].Equal(seg[1]) {
				path = append(path, seg[1])
			}
		}
	}
	return path, nil
}

// lineSegments finds the free-region segments the line at perpendicular
// offset c (through Q = perp*(c/perp.perp), extended along d) crosses
// inside cell, ordered ascending along d.
func lineSegments(cell geom.Polygon, d, perp geom.Direction, perpDotPerp *big.Rat, c *big.Rat) [][2]geom.Point {
	scale := new(big.Rat).Quo(c, perpDotPerp)
	q := geom.NewPointRat(
		new(big.Rat).Mul(perp.Dx, scale),
		new(big.Rat).Mul(perp.Dy, scale),
	)
	q2 := geom.NewPointRat(
		new(big.Rat).Add(q.X, d.Dx),
		new(big.Rat).Add(q.Y, d.Dy),
	)

	type hit struct {
		pt geom.Point
		t  *big.Rat
	}
	var hits []hit
	for i := 0; i < cell.Len(); i++ {
		p1, p2 := cell.Edge(i)
		edgeDir := geom.NewDirection(p1, p2)
		if d.Cross(edgeDir).Sign() == 0 {
			continue // parallel to the sweep line, contributes no crossing
		}
		pt, ok := geom.SegmentIntersection(q, q2, p1, p2)
		if !ok || !geom.Between(p1, p2, pt) {
			continue
		}
		hits = append(hits, hit{pt: pt, t: dotDir(d, pt)})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].t.Cmp(hits[j].t) < 0 })

	// A line passing through a vertex hits both incident edges at the same
	// point; collapse the pair so the even-odd pairing below stays aligned.
	dedup := hits[:0]
	for i, h := range hits {
		if i == 0 || !h.pt.Equal(hits[i-1].pt) {
			dedup = append(dedup, h)
		}
	}
	hits = dedup
	if len(hits) == 1 {
		// Tangent touch at a single vertex: the whole line reduces to it.
		return [][2]geom.Point{{hits[0].pt, hits[0].pt}}
	}
	assert.True(len(hits)%2 == 0, "odd number of sweep-line crossings (%d)", len(hits))

	var segs [][2]geom.Point
	for i := 0; i+1 < len(hits); i += 2 {
		segs = append(segs, [2]geom.Point{hits[i].pt, hits[i+1].pt})
	}
	return segs
}

func dotDir(d geom.Direction, p geom.Point) *big.Rat {
	t1 := new(big.Rat).Mul(d.Dx, p.X)
	t2 := new(big.Rat).Mul(d.Dy, p.Y)
	return t1.Add(t1, t2)
}
