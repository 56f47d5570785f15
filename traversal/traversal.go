// Package traversal computes the cell visiting order: a depth-first walk
// of the cell adjacency graph, starting from the cell containing the
// robot's start point, backtracking through already-cleaned cells whenever
// a branch dead-ends.
package traversal

import (
	"math/big"

	"github.com/Gizlim/CoveragePlanner/cellgraph"
	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/planerr"
)

// Step is one entry in the traversal order. Revisit is true when the cell
// is being passed through again during a backtrack rather than swept for
// the first time. The stitcher does not read this field; it keeps its own
// per-cell cleaned flags.
type Step struct {
	CellIndex int
	Revisit   bool
}

// Traverse walks g depth-first starting from the cell containing start (or,
// if start falls outside every cell, the cell whose boundary is nearest to
// it). It returns StartOutOfRegion if there are no cells at all.
func Traverse(g *cellgraph.Graph, start geom.Point) ([]Step, error) {
	if len(g.Cells) == 0 {
		return nil, planerr.New(planerr.StartOutOfRegion, "traversal", "no cells to start from")
	}

	startIdx := findContaining(g.Cells, start)
	if startIdx < 0 {
		startIdx = nearestCell(g.Cells, start)
	}

	n := len(g.Cells)
	cleaned := make([]bool, n)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}

	var order []Step
	cur := startIdx
	cleaned[cur] = true
	order = append(order, Step{cur, false})

	for {
		if next, ok := firstUncleanedNeighbor(g, cur, cleaned); ok {
			parent[next] = cur
			cur = next
			cleaned[cur] = true
			order = append(order, Step{cur, false})
			continue
		}

		// Dead end: walk back up the DFS tree, emitting a revisit step for
		// each ancestor, until one has an uncleaned neighbor to descend into.
		p := cur
		found := -1
		for parent[p] != -1 {
			p = parent[p]
			order = append(order, Step{p, true})
			if next, ok := firstUncleanedNeighbor(g, p, cleaned); ok {
				found = next
				break
			}
		}
		if found < 0 {
			break // every reachable cell is cleaned
		}
		parent[found] = p
		cur = found
		cleaned[cur] = true
		order = append(order, Step{cur, false})
	}

	return order, nil
}

func firstUncleanedNeighbor(g *cellgraph.Graph, cell int, cleaned []bool) (int, bool) {
	for _, nb := range g.Adjacency[cell] {
		if !cleaned[nb] {
			return nb, true
		}
	}
	return -1, false
}

func findContaining(cells []geom.Polygon, p geom.Point) int {
	for i, c := range cells {
		if c.ContainsOrOnBoundary(p) {
			return i
		}
	}
	return -1
}

func nearestCell(cells []geom.Polygon, p geom.Point) int {
	best := 0
	var bestDist *big.Rat
	for i, c := range cells {
		d := distanceToPolygon(c, p)
		if bestDist == nil || d.Cmp(bestDist) < 0 {
			best, bestDist = i, d
		}
	}
	return best
}

// distanceToPolygon returns the squared distance from p to the nearest
// point on c's boundary (sufficient for nearest-cell comparison; the exact
// distance is never otherwise used).
func distanceToPolygon(c geom.Polygon, p geom.Point) *big.Rat {
	var best *big.Rat
	for i := 0; i < c.Len(); i++ {
		a, b := c.Edge(i)
		d := distanceToSegmentSquared(a, b, p)
		if best == nil || d.Cmp(best) < 0 {
			best = d
		}
	}
	return best
}

func distanceToSegmentSquared(a, b, p geom.Point) *big.Rat {
	abx := new(big.Rat).Sub(b.X, a.X)
	aby := new(big.Rat).Sub(b.Y, a.Y)
	apx := new(big.Rat).Sub(p.X, a.X)
	apy := new(big.Rat).Sub(p.Y, a.Y)

	ab2 := new(big.Rat).Add(new(big.Rat).Mul(abx, abx), new(big.Rat).Mul(aby, aby))
	if ab2.Sign() == 0 {
		return new(big.Rat).Add(new(big.Rat).Mul(apx, apx), new(big.Rat).Mul(apy, apy))
	}

	dot := new(big.Rat).Add(new(big.Rat).Mul(apx, abx), new(big.Rat).Mul(apy, aby))
	t := new(big.Rat).Quo(dot, ab2)
	zero, one := big.NewRat(0, 1), big.NewRat(1, 1)
	if t.Cmp(zero) < 0 {
		t = zero
	} else if t.Cmp(one) > 0 {
		t = one
	}

	cx := new(big.Rat).Add(a.X, new(big.Rat).Mul(t, abx))
	cy := new(big.Rat).Add(a.Y, new(big.Rat).Mul(t, aby))
	dx := new(big.Rat).Sub(p.X, cx)
	dy := new(big.Rat).Sub(p.Y, cy)
	return new(big.Rat).Add(new(big.Rat).Mul(dx, dx), new(big.Rat).Mul(dy, dy))
}
