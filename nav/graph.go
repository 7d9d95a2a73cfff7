// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

// step is a single point-to-edge traversal in the visibility graph: crossing
// from some edge into triangleID via the neighboring edge edgeID.
type step struct {
	edgeID     uint32
	triangleID uint32
}

func (s step) EdgeID() uint32     { return s.edgeID }
func (s step) TriangleID() uint32 { return s.triangleID }

// visibilityGraph is the graph of walkable-triangle edges, where two edges
// are connected iff they belong to a common triangle. Node identity is an
// edge id minted the first time a distinct edge segment is seen, so shared
// edges between adjacent triangles collapse onto a single node.
type visibilityGraph struct {
	segments  []segment
	neighbors [][]step
}

func newVisibilityGraph() *visibilityGraph {
	return &visibilityGraph{}
}

// newNode mints a new graph node for seg and returns its id.
func (g *visibilityGraph) newNode(seg segment) uint32 {
	id := uint32(len(g.segments))
	g.segments = append(g.segments, seg)
	g.neighbors = append(g.neighbors, nil)
	return id
}

func (g *visibilityGraph) segment(edgeID uint32) segment {
	return g.segments[edgeID]
}

// addNeighbours records that, within some triangle, edgeID connects to both
// neighbourA and neighbourB via a single crossing into triangleID.
func (g *visibilityGraph) addNeighbours(edgeID, neighbourA, neighbourB, triangleID uint32) {
	g.neighbors[edgeID] = append(g.neighbors[edgeID],
		step{edgeID: neighbourA, triangleID: triangleID},
		step{edgeID: neighbourB, triangleID: triangleID},
	)
}

func (g *visibilityGraph) steps(edgeID uint32) []step {
	return g.neighbors[edgeID]
}

func (g *visibilityGraph) len() int {
	return len(g.segments)
}
