// Package stitch implements the path stitcher: the only stage that carries
// mutable state across the pipeline — each cell's cleaned flag and the
// single growing waypoint list — as it walks the traversal order, gluing
// per-cell sweeps together with in-cell shortest paths and inter-cell
// crossing points.
package stitch

import (
	"math"
	"math/big"

	"github.com/Gizlim/CoveragePlanner/cellgraph"
	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/planerr"
	"github.com/Gizlim/CoveragePlanner/traversal"
	"github.com/Gizlim/CoveragePlanner/visibility"
)

// Stitch walks order, gluing sweeps[i] (the boustrophedon path already
// generated for cell i, in the cell's natural forward direction) into one
// waypoint list starting at start. g and isect give the cell polygons,
// adjacency and inter-cell candidate entry points that sweep generation
// and traversal ordering already computed.
func Stitch(g *cellgraph.Graph, isect cellgraph.Intersections, order []traversal.Step, sweeps [][]geom.Point, start geom.Point) ([]geom.Point, error) {
	if len(order) == 0 {
		return nil, planerr.New(planerr.StartOutOfRegion, "stitch", "empty traversal order")
	}

	cleaned := make([]bool, len(g.Cells))
	var w []geom.Point
	p := start

	for i, step := range order {
		cell := step.CellIndex
		poly := g.Cells[cell]
		sweepPts := sweeps[cell]

		if len(sweepPts) == 0 {
			return nil, planerr.New(planerr.SweepEmpty, "stitch", "cell has no sweep points")
		}

		if !cleaned[cell] {
			chosen := orientSweep(sweepPts, p)
			path, err := visibility.ShortestPath(poly, p, chosen[0])
			if err != nil {
				return nil, err
			}
			w = appendDedup(w, dropLast(path))
			w = appendDedup(w, chosen)
			cleaned[cell] = true
		} else {
			front, back := sweepPts[0], sweepPts[len(sweepPts)-1]
			target := back
			if dist(p, back) < dist(p, front) {
				target = front
			}
			path, err := visibility.ShortestPath(poly, p, target)
			if err != nil {
				return nil, err
			}
			w = appendDedup(w, path)
		}
		p = lastOf(w, p)

		if i+1 < len(order) {
			next := order[i+1].CellIndex
			cands := isect[pairKey(cell, next)]
			if len(cands) == 0 {
				return nil, planerr.New(planerr.DecompositionFailure, "stitch",
					"no candidate crossing points between adjacent cells")
			}
			nextSweep := sweeps[next]

			cand, entry := bestCrossing(p, cands, nextSweep)

			path1, err := visibility.ShortestPath(poly, p, cand)
			if err != nil {
				return nil, err
			}
			w = appendDedup(w, dropLast(path1))

			path2, err := visibility.ShortestPath(g.Cells[next], cand, entry)
			if err != nil {
				return nil, err
			}
			w = appendDedup(w, dropLast(path2))
			p = lastOf(w, p)
		}
	}

	return w, nil
}

// orientSweep returns sweepPts in forward or reversed order, whichever
// starts nearer to p.
func orientSweep(sweepPts []geom.Point, p geom.Point) []geom.Point {
	front, back := sweepPts[0], sweepPts[len(sweepPts)-1]
	if dist(p, back) < dist(p, front) {
		return reversed(sweepPts)
	}
	return sweepPts
}

// bestCrossing picks the candidate entry point minimizing the straight-line
// distance from p to the candidate plus from the candidate to the
// preferred endpoint of the next cell's sweep, with ties broken by lowest
// candidate index so the choice is deterministic.
func bestCrossing(p geom.Point, cands []geom.Point, nextSweep []geom.Point) (cand, entry geom.Point) {
	front, back := nextSweep[0], nextSweep[len(nextSweep)-1]
	var bestCost float64
	bestIdx := -1
	var bestEntry geom.Point
	for i, c := range cands {
		e := front
		if dist(c, back) < dist(c, front) {
			e = back
		}
		cost := dist(p, c) + dist(c, e)
		if bestIdx < 0 || cost < bestCost {
			bestIdx, bestCost, bestEntry = i, cost, e
		}
	}
	return cands[bestIdx], bestEntry
}

func pairKey(i, j int) cellgraph.CellPair {
	if i < j {
		return cellgraph.CellPair{I: i, J: j}
	}
	return cellgraph.CellPair{I: j, J: i}
}

func dist(a, b geom.Point) float64 {
	ax, ay := a.Float64()
	bx, by := b.Float64()
	return math.Hypot(bx-ax, by-ay)
}

func reversed(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func dropLast(pts []geom.Point) []geom.Point {
	if len(pts) == 0 {
		return pts
	}
	return pts[:len(pts)-1]
}

func lastOf(w []geom.Point, fallback geom.Point) geom.Point {
	if len(w) == 0 {
		return fallback
	}
	return w[len(w)-1]
}

// appendDedup appends add to w, skipping any point that exactly repeats
// w's current last point — the same duplicate-suppression rule bcd.go's
// decomposer.finish uses when stitching slab boundaries together.
func appendDedup(w []geom.Point, add []geom.Point) []geom.Point {
	for _, p := range add {
		if len(w) == 0 || !w[len(w)-1].Equal(p) {
			w = append(w, p)
		}
	}
	return w
}

// Subdivide inserts equally spaced interpolated points between every two
// consecutive waypoints of w so that no segment exceeds subdivisionDist in
// length. A segment of length L is split into floor(L/subdivisionDist)+1
// equal pieces. subdivisionDist==0 disables subdivision and returns w
// unchanged.
func Subdivide(w []geom.Point, subdivisionDist uint) []geom.Point {
	if subdivisionDist == 0 || len(w) < 2 {
		return w
	}
	delta := float64(subdivisionDist)

	out := make([]geom.Point, 0, len(w))
	out = append(out, w[0])
	for i := 0; i+1 < len(w); i++ {
		a, b := w[i], w[i+1]
		l := dist(a, b)
		n := int(math.Floor(l/delta)) + 1
		if n < 1 {
			n = 1
		}
		for k := 1; k <= n; k++ {
			t := big.NewRat(int64(k), int64(n))
			x := new(big.Rat).Add(a.X, new(big.Rat).Mul(t, new(big.Rat).Sub(b.X, a.X)))
			y := new(big.Rat).Add(a.Y, new(big.Rat).Mul(t, new(big.Rat).Sub(b.Y, a.Y)))
			out = append(out, geom.NewPointRat(x, y))
		}
	}
	return out
}
