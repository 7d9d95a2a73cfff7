// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package hrvo

// Region is a forbidden cone in velocity space: the intersection of the
// inner half-planes of up to two edges (a single edge degenerates to a
// half-plane region).
type Region struct {
	edges []Edge
}

// NewRegion builds a region from its bounding edges.
func NewRegion(edges ...Edge) Region {
	return Region{edges: edges}
}

// Edges returns the region's edges.
func (r Region) Edges() []Edge { return r.edges }

// Contains reports whether p lies on the inner side of every one of the
// region's edges.
func (r Region) Contains(p Vec) bool {
	for _, e := range r.edges {
		if !e.InnerSide(p) {
			return false
		}
	}
	return true
}

// Intersections returns every transition point where a sweep along edge
// crosses into or out of r, across all of r's edges. pointInside is
// whether edge's own reference point already lies inside r, which
// disambiguates coincidental overlapping edges (see Edge.Intersect).
func (r Region) Intersections(edge Edge, pointInside bool) []EdgeIntersection {
	var out []EdgeIntersection
	for _, e := range r.edges {
		if xs, ok := edge.Intersect(e, pointInside); ok {
			out = append(out, xs)
		}
	}
	return out
}
