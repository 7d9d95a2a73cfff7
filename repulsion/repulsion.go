// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package repulsion nudges a mover's chosen velocity away from obstacles it
// is about to run into: static building footprints, other movable units,
// and the edges of the playable map. Unlike hrvo's hard velocity obstacles,
// repulsion is a soft correction applied on top of whatever velocity the
// rest of movement already picked.
package repulsion

import (
	"math"

	"github.com/vanguard-rts/core/kinematics"
	"github.com/vanguard-rts/core/spatial"
)

const (
	// MaxRepulsionDistance is how far away an obstacle can be and still
	// exert a bound on velocity.
	MaxRepulsionDistance = 4.0
	// MinStaticObjectDistance is the target clearance from building
	// footprints.
	MinStaticObjectDistance = 1.0
	// MinMovableObjectDistance is the target clearance from other movers.
	MinMovableObjectDistance = 0.5
	// factor scales how hard a bound pushes back, relative to the mover's
	// own acceleration budget.
	factor = 0.6
)

// Bound is a single directional constraint: velocity's component along Dir
// is capped at Max, which may be negative to push the mover away from an
// obstacle it already overlaps.
type Bound struct {
	Dir spatial.Vec2
	Max float64
}

// NewBound builds a bound from the direction to the closest point of an
// obstacle and the room the mover has along that direction before it
// reaches the obstacle's minimum allowed distance (which may itself be
// negative, if the mover is already closer than that).
func NewBound(direction spatial.Vec2, room float64) Bound {
	max := factor * math.Sqrt(2*kinematics.MaxAcceleration)
	if room > 0 {
		max *= math.Sqrt(room)
	} else {
		max *= room
	}
	return Bound{Dir: direction, Max: max}
}

func (b Bound) limit(velocity spatial.Vec2, max float64) spatial.Vec2 {
	projection := b.Dir.Dot(velocity)
	if projection <= max {
		return velocity
	}
	correction := projection - max
	return velocity.Sub(b.Dir.Scale(correction))
}

// Accumulator collects one tick's worth of bounds for a single mover.
type Accumulator struct {
	bounds []Bound
}

// Add appends a bound built from direction and room; see NewBound.
func (a *Accumulator) Add(direction spatial.Vec2, room float64) {
	a.bounds = append(a.bounds, NewBound(direction, room))
}

// Apply constrains velocity by every accumulated bound, in two passes: the
// first applies each bound's Max verbatim, the second re-applies with Max
// clamped to at least zero. A single pass lets a crowd of contradictory
// bounds (each individually negative, pushing the mover out of a pile-up)
// cancel out into a velocity that still drives the mover through an
// obstacle; the second pass catches that by never letting any bound push
// back in the forbidden direction once the first pass has already done
// what it can. The result is finally capped at MaxSpeed.
func (a *Accumulator) Apply(velocity spatial.Vec2) spatial.Vec2 {
	for _, b := range a.bounds {
		velocity = b.limit(velocity, b.Max)
	}
	for _, b := range a.bounds {
		velocity = b.limit(velocity, math.Max(b.Max, 0))
	}
	if velocity.Length() > kinematics.MaxSpeed {
		velocity = velocity.Scale(kinematics.MaxSpeed / velocity.Length())
	}
	return velocity
}

// Reset clears the accumulator for reuse next tick.
func (a *Accumulator) Reset() {
	a.bounds = a.bounds[:0]
}
