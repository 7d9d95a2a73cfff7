// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package kinematics turns a unit's desired velocity into the acceleration-
// and turn-rate-limited speed and heading it can actually reach this tick,
// and integrates that into a new position and heading.
package kinematics

import (
	"math"

	"github.com/vanguard-rts/core/spatial"
)

const (
	// DestinationAccuracy is how close, in world units, a mover must get to
	// its destination before it is considered to have arrived.
	DestinationAccuracy = 0.1
	// MaxSpeed is the fastest any mover can travel, in units per second.
	MaxSpeed = 10.0
	// MaxAcceleration is the fastest speed can change, in units per second
	// squared.
	MaxAcceleration = 2 * MaxSpeed
	// MaxAngularSpeed is the fastest heading can turn, in radians per
	// second.
	MaxAngularSpeed = math.Pi
	// offCourseAngle is how far desired heading can diverge from current
	// heading before a mover slows down instead of accelerating, so a sharp
	// turn doesn't fling it away from its destination at full speed.
	offCourseAngle = math.Pi / 4
)

// State is a mover's speed and heading, carried across ticks.
type State struct {
	previous spatial.Vec2
	current  spatial.Vec2
	speed    float64
	heading  float64
}

// NewState returns a State at rest, facing heading radians.
func NewState(heading float64) State {
	return State{heading: NormalizeAngle(heading)}
}

// Speed returns the mover's current speed.
func (s State) Speed() float64 { return s.speed }

// Heading returns the mover's current heading, in (-pi, pi].
func (s State) Heading() float64 { return s.heading }

// Velocity returns the mover's current velocity vector.
func (s State) Velocity() spatial.Vec2 { return s.current }

// FrameVelocity returns the mean of this tick's and the previous tick's
// velocity, used to integrate position so a sudden speed change doesn't snap
// a mover's displayed motion discontinuously within the frame.
func (s State) FrameVelocity() spatial.Vec2 {
	return s.current.Scale(0.5).Add(s.previous.Scale(0.5))
}

// tick must be called once per update, before Update, to roll the current
// velocity into previous.
func (s *State) tick() {
	s.previous = s.current
}

// update applies a bounded speed and heading change and refreshes the
// current velocity vector from the result.
func (s *State) update(speedDelta, headingDelta float64) {
	s.speed += speedDelta
	s.heading = NormalizeAngle(s.heading + headingDelta)
	sin, cos := math.Sincos(s.heading)
	s.current = spatial.Vec2{X: s.speed * cos, Y: s.speed * sin}
}

// DesiredVelocity computes the velocity a mover should aim for this tick
// given how far it has left to travel along its path (remaining) and the
// direction of its next waypoint: it decelerates smoothly enough to stop
// within DestinationAccuracy of the destination rather than overshooting
// and having to double back.
func DesiredVelocity(remaining float64, direction spatial.Vec2) spatial.Vec2 {
	if remaining <= DestinationAccuracy {
		return spatial.Vec2{}
	}
	desiredSpeed := math.Min(MaxSpeed, math.Sqrt(2*remaining*MaxAcceleration))
	return direction.Scale(desiredSpeed)
}

// Step advances state by dt seconds toward desired, the velocity a mover
// would like to have this tick, respecting MaxAcceleration and
// MaxAngularSpeed. A mover whose desired heading differs from its current
// heading by more than offCourseAngle brakes instead of accelerating, so it
// slows into a sharp turn rather than sailing past it.
func Step(state *State, desired spatial.Vec2, dt float64) {
	state.tick()

	desiredHeading := state.heading
	if desired != (spatial.Vec2{}) {
		desiredHeading = math.Atan2(desired.Y, desired.X)
	}

	headingDiff := NormalizeAngle(desiredHeading - state.heading)
	maxHeadingDelta := MaxAngularSpeed * dt
	headingDelta := clamp(headingDiff, -maxHeadingDelta, maxHeadingDelta)

	maxSpeedDelta := MaxAcceleration * dt
	var speedDelta float64
	if math.Abs(headingDiff-headingDelta) > offCourseAngle {
		speedDelta = -state.speed
	} else {
		speedDelta = desired.Length() - state.speed
	}
	speedDelta = clamp(speedDelta, -maxSpeedDelta, maxSpeedDelta)

	state.update(speedDelta, headingDelta)
}

// Integrate returns the position and heading a mover at pos reaches after
// dt seconds of state's current (frame-averaged) velocity.
func Integrate(pos spatial.Vec2, state State, dt float64) (spatial.Vec2, float64) {
	return pos.Add(state.FrameVelocity().Scale(dt)), state.Heading()
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// NormalizeAngle wraps angle into (-pi, pi].
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
