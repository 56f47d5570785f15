// Package visibility builds the in-cell visibility graph and finds the
// shortest path between two points inside a cell: the route a sweep
// transit takes between the end of one boustrophedon line and the start
// of the next, when a straight line between them would leave the cell.
//
// The graph's nodes are the cell's own vertices plus the query endpoints;
// an edge exists between two nodes when the segment joining them doesn't
// cross the cell boundary. Dijkstra over that graph, with an array-backed
// binary-heap open list, finds the shortest route.
package visibility

import (
	"math"

	"github.com/aurelien-rainone/assertgo"

	"github.com/Gizlim/CoveragePlanner/geom"
	"github.com/Gizlim/CoveragePlanner/planerr"
)

// ShortestPath finds the shortest path from 'from' to 'to' that stays
// inside poly (a simple polygon with no holes, as BCD cells always are),
// routing through poly's reflex vertices when the direct segment would
// leave the cell. It returns a path starting with 'from' and ending with
// 'to'; if both are mutually visible the path has exactly those two
// points.
func ShortestPath(poly geom.Polygon, from, to geom.Point) ([]geom.Point, error) {
	if visible(poly, from, to) {
		return []geom.Point{from, to}, nil
	}

	nodes := make([]geom.Point, 0, poly.Len()+2)
	for i := 0; i < poly.Len(); i++ {
		nodes = append(nodes, poly.At(i))
	}
	fromIdx := len(nodes)
	nodes = append(nodes, from)
	toIdx := len(nodes)
	nodes = append(nodes, to)

	adj := make([][]edgeWeight, len(nodes))
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if !visible(poly, nodes[i], nodes[j]) {
				continue
			}
			w := dist(nodes[i], nodes[j])
			adj[i] = append(adj[i], edgeWeight{to: j, w: w})
			adj[j] = append(adj[j], edgeWeight{to: i, w: w})
		}
	}

	path, ok := dijkstra(nodes, adj, fromIdx, toIdx)
	if !ok {
		return nil, planerr.New(planerr.SweepEmpty, "visibility", "no visible path between transit points")
	}
	return path, nil
}

type edgeWeight struct {
	to int
	w  float64
}

func dist(a, b geom.Point) float64 {
	ax, ay := a.Float64()
	bx, by := b.Float64()
	return math.Hypot(bx-ax, by-ay)
}

// visible reports whether the segment a-b lies entirely within poly: it
// must not properly cross any edge of poly, and its midpoint must lie
// inside or on poly's boundary.
func visible(poly geom.Polygon, a, b geom.Point) bool {
	for i := 0; i < poly.Len(); i++ {
		p, q := poly.Edge(i)
		if (a.Equal(p) || a.Equal(q)) && (b.Equal(p) || b.Equal(q)) {
			continue // a, b are this very edge's endpoints
		}
		if geom.SegmentsIntersect(a, b, p, q) {
			return false
		}
	}
	mid := geom.Mid(a, b)
	return poly.ContainsOrOnBoundary(mid)
}

// dijkstra relaxes neighbors out of a binary-heap open list until the goal
// is popped or the open list empties.
func dijkstra(nodes []geom.Point, adj [][]edgeWeight, start, goal int) ([]geom.Point, bool) {
	const inf = math.MaxFloat64
	dist := make([]float64, len(nodes))
	parent := make([]int, len(nodes))
	visited := make([]bool, len(nodes))
	for i := range dist {
		dist[i] = inf
		parent[i] = -1
	}
	dist[start] = 0

	q := newHeap()
	q.push(heapNode{idx: start, total: 0})

	for !q.empty() {
		cur := q.pop()
		if visited[cur.idx] {
			continue
		}
		visited[cur.idx] = true
		if cur.idx == goal {
			break
		}
		for _, e := range adj[cur.idx] {
			if visited[e.to] {
				continue
			}
			nd := dist[cur.idx] + e.w
			if nd < dist[e.to] {
				dist[e.to] = nd
				parent[e.to] = cur.idx
				q.push(heapNode{idx: e.to, total: nd})
			}
		}
	}

	if dist[goal] == inf {
		return nil, false
	}

	var rev []int
	for i := goal; i != -1; i = parent[i] {
		rev = append(rev, i)
		if i == start {
			break
		}
	}
	path := make([]geom.Point, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = nodes[idx]
	}
	return path, true
}

type heapNode struct {
	idx   int
	total float64
}

// heap is a small array-backed binary min-heap over heapNode.total.
type heap struct {
	data []heapNode
}

func newHeap() *heap { return &heap{} }

func (h *heap) empty() bool { return len(h.data) == 0 }

func (h *heap) push(n heapNode) {
	h.data = append(h.data, n)
	h.bubbleUp(len(h.data) - 1)
}

func (h *heap) pop() heapNode {
	assert.True(len(h.data) > 0, "pop from an empty open list")
	top := h.data[0]
	last := len(h.data) - 1
	h.data[0] = h.data[last]
	h.data = h.data[:last]
	if len(h.data) > 0 {
		h.trickleDown(0)
	}
	return top
}

func (h *heap) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.data[parent].total <= h.data[i].total {
			break
		}
		h.data[parent], h.data[i] = h.data[i], h.data[parent]
		i = parent
	}
}

func (h *heap) trickleDown(i int) {
	n := len(h.data)
	for {
		child := i*2 + 1
		if child >= n {
			break
		}
		if child+1 < n && h.data[child+1].total < h.data[child].total {
			child++
		}
		if h.data[i].total <= h.data[child].total {
			break
		}
		h.data[i], h.data[child] = h.data[child], h.data[i]
		i = child
	}
}
