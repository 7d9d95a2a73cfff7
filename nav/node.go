// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

import "github.com/vanguard-rts/core/spatial"

// pointSet is either the single path-finding target point, or an interval
// (part or all of a triangle edge) a search node's expansion has reached.
type pointSet struct {
	isTarget bool
	interval segmentInterval
}

// searchNode is a Polyanya best-first-search node: a path prefix (ending at
// the node's root), the interval or target point the node has expanded to,
// the last triangle crossed to reach it, and the heuristic used to order the
// search frontier.
type searchNode struct {
	prefix      *PointChain
	set         pointSet
	triangleID  uint32
	minDistance float64
	heuristic   float64
}

// initialSearchNode creates the first frontier node: a single-point prefix
// at source, expanded onto the first edge reachable from it.
func initialSearchNode(source, target spatial.Vec2, seg segment, first step) searchNode {
	interval := newSegmentInterval(seg, true, true, first.EdgeID())
	return fromSegmentInterval(firstPoint(source), interval, first.TriangleID(), target)
}

func fromSegmentInterval(prefix *PointChain, interval segmentInterval, triangleID uint32, target spatial.Vec2) searchNode {
	cross := interval.cross(prefix.Point(), target)
	heuristic := cross.point.Sub(prefix.Point()).Length() + target.Sub(cross.point).Length()
	return searchNode{
		prefix:      prefix,
		set:         pointSet{interval: interval},
		triangleID:  triangleID,
		minDistance: interval.distanceToPoint(target),
		heuristic:   heuristic,
	}
}

func (n searchNode) root() spatial.Vec2 { return n.prefix.Point() }

func (n searchNode) minDist() float64 { return n.minDistance }

func (n searchNode) rootScore() float64 { return n.prefix.Length() }

func (n searchNode) score() float64 { return n.rootScore() + n.heuristic }

// expandToEdge produces up to three child nodes by projecting n's interval,
// as seen from its root, onto the next edge reached by crossing into the
// neighboring triangle described by next.
func (n searchNode) expandToEdge(nextSeg segment, next step, target spatial.Vec2) []searchNode {
	if next.TriangleID() == n.triangleID {
		panic("nav: search expansion doubled back onto the already-crossed triangle")
	}
	if n.set.isTarget {
		panic("nav: cannot expand a node that has already reached the target")
	}

	interval := n.set.interval
	sideA, middle, sideB := interval.projectOntoSegment(n.root(), nextSeg)

	var children []searchNode
	if sideA != nil {
		if corner, ok := interval.aCorner(); ok {
			children = append(children, n.cornerChild(next, nextSeg, corner, *sideA, target))
		}
	}
	if middle != nil {
		childInterval := segmentIntervalFromProjection(nextSeg, *middle, next.EdgeID())
		children = append(children, fromSegmentInterval(n.prefix, childInterval, next.TriangleID(), target))
	}
	if sideB != nil {
		if corner, ok := interval.bCorner(); ok {
			children = append(children, n.cornerChild(next, nextSeg, corner, *sideB, target))
		}
	}
	return children
}

// cornerChild builds the child node whose prefix pivots through corner,
// unless corner is already the node's root.
func (n searchNode) cornerChild(next step, nextSeg segment, corner spatial.Vec2, projection paramPair, target spatial.Vec2) searchNode {
	interval := segmentIntervalFromProjection(nextSeg, projection, next.EdgeID())
	prefix := n.prefix
	if n.root() != corner {
		prefix = extendedChain(n.prefix, corner)
	}
	return fromSegmentInterval(prefix, interval, next.TriangleID(), target)
}

// expandToTarget closes n by replacing its interval with the target point,
// once the search has reached a triangle containing the target.
func (n searchNode) expandToTarget(target spatial.Vec2, triangleID uint32) searchNode {
	interval := n.set.interval
	cross := interval.cross(n.root(), target)

	prefix := n.prefix
	if cross.isCorner {
		prefix = extendedChain(n.prefix, cross.point)
	}
	return searchNode{
		prefix:      prefix,
		set:         pointSet{isTarget: true},
		triangleID:  triangleID,
		minDistance: 0,
		heuristic:   target.Sub(prefix.Point()).Length(),
	}
}

// close finalizes n into a concrete path to target: the straight line from
// the node's prefix to target if n already represents the target, otherwise
// the prefix extended by the closest point on the node's interval to target.
func (n searchNode) close(target spatial.Vec2) []spatial.Vec2 {
	if n.set.isTarget {
		return extendedChain(n.prefix, target).Waypoints()
	}
	return extendedChain(n.prefix, n.set.interval.projectPoint(target)).Waypoints()
}
