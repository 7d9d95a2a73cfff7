// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package hrvo

import (
	"math"

	"github.com/vanguard-rts/core/spatial"
)

// Neighbor is one nearby mover a velocity obstacle must be built against.
type Neighbor struct {
	Position spatial.Vec2
	Velocity spatial.Vec2
	Radius   float64
}

// BuildRegion constructs the forbidden cone a neighbor casts in self's
// velocity space: the region of velocities that, held indefinitely, would
// bring self and the neighbor into collision; the cone has no time horizon,
// its edges extend to the maximum parameter. The cone's apex
// sits at the reciprocal average of the two movers' current velocities, so
// that both sides of a head-on approach give way symmetrically rather than
// each steering as if the other were stationary.
func BuildRegion(selfPos, selfVel spatial.Vec2, selfRadius float64, neighbor Neighbor, maxSpeed float64) (Region, bool) {
	relative := neighbor.Position.Sub(selfPos)
	distSq := relative.Dot(relative)
	combined := selfRadius + neighbor.Radius
	if distSq <= 1e-9 {
		return Region{}, false
	}
	dist := math.Sqrt(distSq)
	if combined >= dist {
		combined = dist * 0.999
	}

	centerline := relative.Scale(1 / dist)
	angle := math.Asin(combined / dist)
	left := rotate(centerline, angle)
	right := rotate(centerline, -angle)

	apex := selfVel.Add(neighbor.Velocity).Scale(0.5)
	apexFixed := FromMeters(apex)

	leftEdge := NewEdge(NewLine(apexFixed, FromMeters(left)), Negative, math.MaxInt32, Bounds{}, false)
	rightEdge := NewEdge(NewLine(apexFixed, FromMeters(right)), Positive, math.MaxInt32, Bounds{}, false)

	if lb, ok := ComputeBounds(leftEdge.Line(), maxSpeed); ok {
		leftEdge = NewEdge(leftEdge.Line(), Negative, math.MaxInt32, lb, true)
	}
	if rb, ok := ComputeBounds(rightEdge.Line(), maxSpeed); ok {
		rightEdge = NewEdge(rightEdge.Line(), Positive, math.MaxInt32, rb, true)
	}

	return NewRegion(leftEdge, rightEdge), true
}

// rotate turns v by angle radians (counter-clockwise).
func rotate(v spatial.Vec2, angle float64) spatial.Vec2 {
	sin, cos := math.Sincos(angle)
	return spatial.Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
