// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

import "github.com/vanguard-rts/core/spatial"

// PointChain is an immutable singly-linked list of path waypoints, newest
// point first, shared freely between search nodes so that branching the
// Polyanya search frontier never copies a path prefix. Because the search
// roots used to build each chain are already the tightest pivot corners
// reachable from the previous root, the chain is funnel-smoothed by
// construction: no separate string-pulling pass over the final path is
// needed.
type PointChain struct {
	point spatial.Vec2
	prev  *PointChain
	len   float64
}

// firstPoint starts a new chain consisting of a single point.
func firstPoint(p spatial.Vec2) *PointChain {
	return &PointChain{point: p}
}

// extendedChain appends next onto chain, unless it already is chain's head.
func extendedChain(chain *PointChain, next spatial.Vec2) *PointChain {
	if chain.point == next {
		return chain
	}
	return &PointChain{
		point: next,
		prev:  chain,
		len:   chain.len + chain.point.Sub(next).Length(),
	}
}

// Point returns the head (most recently added) point of the chain.
func (c *PointChain) Point() spatial.Vec2 { return c.point }

// Length returns the total length of the polyline from the tail to the head.
func (c *PointChain) Length() float64 { return c.len }

// Waypoints returns the chain's points from head to tail (i.e. in path
// traversal order: destination first, source last, matching the finder's
// convention of building paths backwards from the target).
func (c *PointChain) Waypoints() []spatial.Vec2 {
	var out []spatial.Vec2
	for n := c; n != nil; n = n.prev {
		out = append(out, n.point)
	}
	return out
}
