// Package cellgraph builds the cell adjacency graph over the cells
// bcd.Decompose produces.
//
// The graph is an arena: cells live in a single slice and every adjacency
// is recorded as an index into that slice, never as a pointer, so the
// structure can't grow a reference cycle and can be copied or serialized
// trivially.
package cellgraph

import (
	"math/big"
	"sort"

	"github.com/aurelien-rainone/assertgo"

	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/planerr"
)

// maxInteriorCandidates bounds how many interior entry points are offered
// per adjacency edge, beyond the two shared-segment endpoints.
const maxInteriorCandidates = 3

// Graph is the arena of decomposed cells plus their adjacency.
type Graph struct {
	Cells     []geom.Polygon
	Adjacency [][]int // Adjacency[i] lists the indices adjacent to Cells[i], ascending
}

// CellPair is an unordered adjacency key, always stored with I < J.
type CellPair struct {
	I, J int
}

// Intersections maps each adjacent cell pair to its candidate entry points,
// shared endpoints first, then up to maxInteriorCandidates interior points
// spaced evenly along the shared border.
type Intersections map[CellPair][]geom.Point

// Build computes adjacency between every pair of cells by finding a shared
// boundary segment of positive length, and derives the candidate entry
// points for each adjacency found.
func Build(cells []geom.Polygon) (*Graph, Intersections, error) {
	if len(cells) == 0 {
		return nil, nil, planerr.New(planerr.DecompositionFailure, "cellgraph", "no cells to connect")
	}

	adjacency := make([][]int, len(cells))
	intersections := make(Intersections)

	for i := 0; i < len(cells); i++ {
		for j := i + 1; j < len(cells); j++ {
			assert.True(i != j, "cell %d paired against itself", i)
			seg, ok := sharedBorder(cells[i], cells[j])
			if !ok {
				continue
			}
			assert.True(!seg[0].Equal(seg[1]), "shared border of cells %d,%d has zero length", i, j)
			adjacency[i] = append(adjacency[i], j)
			adjacency[j] = append(adjacency[j], i)
			intersections[CellPair{i, j}] = candidatePoints(seg[0], seg[1])
		}
	}

	for i := range adjacency {
		sort.Ints(adjacency[i])
	}

	return &Graph{Cells: cells, Adjacency: adjacency}, intersections, nil
}

// sharedBorder finds the longest collinear overlap between any edge of a
// and any edge of b, returning its two endpoints if its length is positive.
func sharedBorder(a, b geom.Polygon) ([2]geom.Point, bool) {
	var best [2]geom.Point
	var bestLen *big.Rat
	found := false

	for i := 0; i < a.Len(); i++ {
		p1, p2 := a.Edge(i)
		for j := 0; j < b.Len(); j++ {
			q1, q2 := b.Edge(j)
			seg, ok := overlapSegment(p1, p2, q1, q2)
			if !ok {
				continue
			}
			l := segLen2(seg[0], seg[1])
			if !found || l.Cmp(bestLen) > 0 {
				best, bestLen, found = seg, l, true
			}
		}
	}
	return best, found
}

// overlapSegment returns the overlapping portion of two collinear segments
// p1-p2 and q1-q2, or ok=false if they aren't collinear or don't overlap.
func overlapSegment(p1, p2, q1, q2 geom.Point) ([2]geom.Point, bool) {
	if geom.Orient(p1, p2, q1) != geom.Collinear3 || geom.Orient(p1, p2, q2) != geom.Collinear3 {
		return [2]geom.Point{}, false
	}

	// Parametrize all four points along p1->p2 using whichever coordinate
	// varies, so they can be ordered and intersected as 1-D intervals.
	param := func(pt geom.Point) *big.Rat {
		dx := new(big.Rat).Sub(p2.X, p1.X)
		if dx.Sign() != 0 {
			return new(big.Rat).Quo(new(big.Rat).Sub(pt.X, p1.X), dx)
		}
		dy := new(big.Rat).Sub(p2.Y, p1.Y)
		if dy.Sign() == 0 {
			return big.NewRat(0, 1)
		}
		return new(big.Rat).Quo(new(big.Rat).Sub(pt.Y, p1.Y), dy)
	}

	t0, t1 := big.NewRat(0, 1), big.NewRat(1, 1)
	tq1, tq2 := param(q1), param(q2)
	lo, hi := tq1, tq2
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	startT, endT := t0, t1
	if lo.Cmp(startT) > 0 {
		startT = lo
	}
	if hi.Cmp(endT) < 0 {
		endT = hi
	}
	if startT.Cmp(endT) >= 0 {
		return [2]geom.Point{}, false
	}

	at := func(t *big.Rat) geom.Point {
		dx := new(big.Rat).Sub(p2.X, p1.X)
		dy := new(big.Rat).Sub(p2.Y, p1.Y)
		return geom.NewPointRat(
			new(big.Rat).Add(p1.X, new(big.Rat).Mul(t, dx)),
			new(big.Rat).Add(p1.Y, new(big.Rat).Mul(t, dy)),
		)
	}
	return [2]geom.Point{at(startT), at(endT)}, true
}

func segLen2(a, b geom.Point) *big.Rat {
	dx := new(big.Rat).Sub(b.X, a.X)
	dy := new(big.Rat).Sub(b.Y, a.Y)
	dx.Mul(dx, dx)
	dy.Mul(dy, dy)
	return dx.Add(dx, dy)
}

// candidatePoints returns the segment endpoints followed by up to
// maxInteriorCandidates evenly spaced interior points.
func candidatePoints(a, b geom.Point) []geom.Point {
	pts := []geom.Point{a, b}
	n := maxInteriorCandidates + 1
	for k := 1; k < n; k++ {
		t := big.NewRat(int64(k), int64(n))
		x := new(big.Rat).Add(a.X, new(big.Rat).Mul(t, new(big.Rat).Sub(b.X, a.X)))
		y := new(big.Rat).Add(a.Y, new(big.Rat).Mul(t, new(big.Rat).Sub(b.Y, a.Y)))
		pts = append(pts, geom.NewPointRat(x, y))
	}
	return pts
}
