// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package world

import "github.com/vanguard-rts/core/spatial"

// FocusPoint returns the point on the ground plane (altitude zero) a camera
// ray points at, given the ray's origin altitude and its direction's
// horizontal component and vertical (altitude) component. This server is
// headless — there is no rendering or mouse/zoom input to drive a camera —
// and nothing else in this module calls FocusPoint.
//
// ok is false for a ray that never reaches the ground plane: one looking
// level or upward, or one starting below ground.
func FocusPoint(originXZ spatial.Vec2, originAltitude float64, dirXZ spatial.Vec2, dirAltitude float64) (point spatial.Vec2, ok bool) {
	if dirAltitude >= 0 {
		return spatial.Vec2{}, false
	}
	toi := -originAltitude / dirAltitude
	if toi < 0 {
		return spatial.Vec2{}, false
	}
	return originXZ.Add(dirXZ.Scale(toi)), true
}
