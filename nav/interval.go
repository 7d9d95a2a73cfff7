// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

import "github.com/vanguard-rts/core/spatial"

// segmentInterval is a sub-interval of a triangle edge that a search node's
// expansion has established as "visible" from the node's root, together
// with the graph edge id the full (un-clipped) edge corresponds to.
type segmentInterval struct {
	seg       segment
	isACorner bool
	isBCorner bool
	edgeID    uint32
}

// newSegmentInterval constructs an interval directly from its endpoints.
func newSegmentInterval(seg segment, isACorner, isBCorner bool, edgeID uint32) segmentInterval {
	return segmentInterval{seg: seg, isACorner: isACorner, isBCorner: isBCorner, edgeID: edgeID}
}

// segmentIntervalFromProjection builds the sub-interval of seg described by
// projection's parameters.
func segmentIntervalFromProjection(seg segment, projection paramPair, edgeID uint32) segmentInterval {
	return newSegmentInterval(projection.apply(seg), projection.includesCornerA(), projection.includesCornerB(), edgeID)
}

func (i segmentInterval) edgeIDValue() uint32 { return i.edgeID }

// aCorner returns the endpoint of the original edge this interval touches at
// its A end, if it reaches all the way to that corner.
func (i segmentInterval) aCorner() (spatial.Vec2, bool) {
	if i.isACorner {
		return i.seg.A, true
	}
	return spatial.Vec2{}, false
}

func (i segmentInterval) bCorner() (spatial.Vec2, bool) {
	if i.isBCorner {
		return i.seg.B, true
	}
	return spatial.Vec2{}, false
}

func (i segmentInterval) distanceToPoint(p spatial.Vec2) float64 {
	return i.seg.distanceToPoint(p)
}

func (i segmentInterval) projectPoint(p spatial.Vec2) spatial.Vec2 {
	return i.seg.projectPoint(p)
}

func (i segmentInterval) projectOntoSegment(eye spatial.Vec2, target segment) (sideA, middle, sideB *paramPair) {
	return projectOntoSegment(eye, i.seg, target)
}

// segmentCross is the point where the shortest path from a to b via this
// interval crosses it: either a direct crossing of the straight line a-b, or
// one of the interval's corners when a-b passes entirely to one side.
type segmentCross struct {
	point    spatial.Vec2
	isCorner bool
}

// cross computes the optimal crossing point of the interval for a path
// bending from a to b through it.
func (i segmentInterval) cross(a, b spatial.Vec2) segmentCross {
	dir := b.Sub(a)
	if t, ok := castRay(a, dir, 1, i.seg); ok {
		return segmentCross{point: a.Add(dir.Scale(t))}
	}

	distA := i.seg.A.Sub(a).Length() + i.seg.A.Sub(b).Length()
	distB := i.seg.B.Sub(a).Length() + i.seg.B.Sub(b).Length()
	if distA <= distB {
		return segmentCross{point: i.seg.A, isCorner: true}
	}
	return segmentCross{point: i.seg.B, isCorner: true}
}
