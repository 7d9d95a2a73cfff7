// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

import (
	"container/heap"

	"github.com/tidwall/rtree"

	"github.com/vanguard-rts/core/spatial"
)

// graphTriangle is a walkable triangle together with the graph edge ids of
// its three sides, used both for point-location (via the r-tree) and to
// seed the Polyanya search's first expansion.
type graphTriangle struct {
	points [3]spatial.Vec2
	edges  [3]uint32
	id     uint32
}

func triangleBounds(points [3]spatial.Vec2) spatial.AABB {
	box := spatial.AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.X > box.Max.X {
			box.Max.X = p.X
		}
		if p.Y > box.Max.Y {
			box.Max.Y = p.Y
		}
	}
	return box
}

// containsPoint reports whether p lies within (or on the boundary of) the
// triangle, using consistent half-plane sign tests so boundary points count
// as inside from every edge (see spec edge case on collinear points).
func (t graphTriangle) containsPoint(p spatial.Vec2) bool {
	s0 := whichSide(t.points[0], t.points[1], p)
	s1 := whichSide(t.points[1], t.points[2], p)
	s2 := whichSide(t.points[2], t.points[0], p)
	hasLeft := s0 == Left || s1 == Left || s2 == Left
	hasRight := s0 == Right || s1 == Right || s2 == Right
	return !(hasLeft && hasRight)
}

// neighbourEdges returns the (up to 3) edge ids of t that do not touch
// point, i.e. the edges a path through point could expand onto next.
func (t graphTriangle) neighbourEdges(point spatial.Vec2) []uint32 {
	edgeSegs := [3]segment{
		{A: t.points[0], B: t.points[1]},
		{A: t.points[1], B: t.points[2]},
		{A: t.points[2], B: t.points[0]},
	}
	var out []uint32
	for i, s := range edgeSegs {
		if s.distanceToPoint(point) > 1e-6 {
			out = append(out, t.edges[i])
		}
	}
	return out
}

// PathFinder answers shortest-path queries over a triangulated walkable
// surface: a visibility graph of triangle edges plus an r-tree for locating
// the triangle(s) containing a query point.
type PathFinder struct {
	triangles *rtree.RTreeG[graphTriangle]
	graph     *visibilityGraph
}

// NewPathFinder builds a finder directly from a pre-triangulated walkable
// surface (e.g. the output of Triangulate).
func NewPathFinder(triangles []Triangle) *PathFinder {
	graph := newVisibilityGraph()
	tree := &rtree.RTreeG[graphTriangle]{}

	segToEdge := make(map[hashableSegment]uint32, len(triangles)*3)

	for triID, tri := range triangles {
		segs := tri.edgeSegments()
		var edgeIDs [3]uint32
		for i, s := range segs {
			key := hashSegment(s)
			id, ok := segToEdge[key]
			if !ok {
				id = graph.newNode(s)
				segToEdge[key] = id
			}
			edgeIDs[i] = id
		}

		gt := graphTriangle{points: tri.points(), edges: edgeIDs, id: uint32(triID)}
		box := triangleBounds(gt.points)
		tree.Insert([2]float64{box.Min.X, box.Min.Y}, [2]float64{box.Max.X, box.Max.Y}, gt)

		for i := 0; i < 3; i++ {
			edgeID := edgeIDs[i]
			neighbourA := edgeIDs[(i+1)%3]
			neighbourB := edgeIDs[(i+2)%3]
			graph.addNeighbours(edgeID, neighbourA, neighbourB, uint32(triID))
		}
	}

	return &PathFinder{triangles: tree, graph: graph}
}

// FindPath returns the shortest path from `from` to `to` over the walkable
// surface, or false if no path exists (either point lies outside every
// walkable triangle, or the two are not connected).
func (f *PathFinder) FindPath(from, to spatial.Vec2) ([]spatial.Vec2, bool) {
	sourceTris := f.locate(from)
	if len(sourceTris) == 0 {
		return nil, false
	}
	targetTris := f.locate(to)
	if len(targetTris) == 0 {
		return nil, false
	}

	shared := 0
	for _, s := range sourceTris {
		for _, t := range targetTris {
			if s.id == t.id {
				shared++
			}
		}
	}
	if shared >= 1 {
		return []spatial.Vec2{to, from}, true
	}

	return f.search(from, to, sourceTris, targetTris)
}

func (f *PathFinder) locate(p spatial.Vec2) []graphTriangle {
	var found []graphTriangle
	f.triangles.Search([2]float64{p.X, p.Y}, [2]float64{p.X, p.Y}, func(_, _ [2]float64, tri graphTriangle) bool {
		if tri.containsPoint(p) {
			found = append(found, tri)
		}
		return true
	})
	return found
}

func (f *PathFinder) targetTriangleIDs(tris []graphTriangle) map[uint32]struct{} {
	ids := make(map[uint32]struct{}, len(tris))
	for _, t := range tris {
		ids[t.id] = struct{}{}
	}
	return ids
}

// search runs a best-first Polyanya expansion using a min-heap over node
// score (root-prefix length + taut-path heuristic) so the frontier always
// pops the most promising node first.
func (f *PathFinder) search(from, to spatial.Vec2, sourceTris, targetTris []graphTriangle) ([]spatial.Vec2, bool) {
	targetIDs := f.targetTriangleIDs(targetTris)

	frontier := &nodeHeap{}
	heap.Init(frontier)
	for _, tri := range sourceTris {
		for _, edgeID := range tri.neighbourEdges(from) {
			seg := f.graph.segment(edgeID)
			for _, s := range f.graph.steps(edgeID) {
				if s.TriangleID() == tri.id {
					continue
				}
				heap.Push(frontier, initialSearchNode(from, to, seg, s))
			}
		}
	}

	const maxExpansions = 100000
	for i := 0; i < maxExpansions && frontier.Len() > 0; i++ {
		n := heap.Pop(frontier).(searchNode)

		if _, atTarget := targetIDs[n.triangleID]; atTarget {
			terminal := n.expandToTarget(to, n.triangleID)
			return terminal.close(to), true
		}

		edgeID := n.set.interval.edgeIDValue()
		for _, s := range f.graph.steps(edgeID) {
			if s.TriangleID() == n.triangleID {
				continue
			}
			nextSeg := f.graph.segment(s.EdgeID())
			for _, child := range n.expandToEdge(nextSeg, s, to) {
				heap.Push(frontier, child)
			}
		}
	}
	return nil, false
}

// nodeHeap is a min-heap over node score: the lower the score the more
// promising the node. Ties are broken by longer root-prefix first, matching
// upstream's "ties break on root-prefix length".
type nodeHeap []searchNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].score() != h[j].score() {
		return h[i].score() < h[j].score()
	}
	return h[i].rootScore() > h[j].rootScore()
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(searchNode)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
