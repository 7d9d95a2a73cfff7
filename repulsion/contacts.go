// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package repulsion

import "github.com/vanguard-rts/core/spatial"

// epsilon is the smallest meaningful separation; below it, direction
// vectors are treated as degenerate and a fallback axis is used instead.
const epsilon = 1e-6

// StaticContact computes the bound a static obstacle's convex footprint
// casts on a disc-shaped mover at center with the given radius. footprint
// is in the obstacle's local space; placement transforms local to world.
// ok is false if the obstacle is farther than MaxRepulsionDistance away.
func StaticContact(center spatial.Vec2, radius float64, footprint spatial.ConvexPolygon, placement spatial.Isometry) (direction spatial.Vec2, room float64, ok bool) {
	local := placement.Inverse().Apply(center)
	closest, _, inside := footprint.Project(local)

	diff := closest.Sub(local)
	distance := diff.Length()
	if inside {
		// Already overlapping the footprint: direction instead points back
		// out through the nearest wall, and a negative distance makes the
		// bound require escaping rather than merely keeping clearance.
		distance = -distance
		diff = diff.Scale(-1)
	}
	distance -= radius

	if distance > MaxRepulsionDistance {
		return spatial.Vec2{}, 0, false
	}

	dir := spatial.Vec2{X: 1}
	if diffLen := diff.Length(); diffLen > epsilon {
		dir = diff.Scale(1 / diffLen)
	}
	return placement.ApplyDirection(dir), distance - MinStaticObjectDistance, true
}

// MovableContact computes the bound another disc-shaped mover casts.
func MovableContact(selfCenter spatial.Vec2, selfRadius float64, otherCenter spatial.Vec2, otherRadius float64) (direction spatial.Vec2, room float64, ok bool) {
	diff := otherCenter.Sub(selfCenter)
	distance := diff.Length()
	dir := spatial.Vec2{X: 1}
	if distance > epsilon {
		dir = diff.Scale(1 / distance)
	}
	distance -= selfRadius + otherRadius
	if distance >= MaxRepulsionDistance {
		return spatial.Vec2{}, 0, false
	}
	return dir, distance - MinMovableObjectDistance, true
}

// BoundsContact computes the bound the map's playable-area edge casts on a
// disc-shaped mover known to be inside bounds.
func BoundsContact(bounds spatial.AABB, center spatial.Vec2, radius float64, exclusionOffset float64) (direction spatial.Vec2, room float64, ok bool) {
	point, normal := bounds.NearestBoundary(center)
	diff := point.Sub(center)
	distance := diff.Length() - radius
	if distance >= MaxRepulsionDistance {
		return spatial.Vec2{}, 0, false
	}
	dir := normal
	if diffLen := diff.Length(); diffLen > epsilon {
		dir = diff.Scale(1 / diffLen)
	}
	return dir, distance - exclusionOffset, true
}
