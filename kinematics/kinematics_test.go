// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package kinematics

import (
	"math"
	"testing"

	"github.com/vanguard-rts/core/spatial"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNormalizeAngleWrapsIntoRange(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{math.Pi + 0.1, -math.Pi + 0.1},
		{-math.Pi - 0.1, math.Pi - 0.1},
		{3 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		got := NormalizeAngle(c.in)
		if !almostEqual(got, c.want, 1e-9) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDesiredVelocityStopsAtDestination(t *testing.T) {
	v := DesiredVelocity(0.05, spatial.Vec2{X: 1, Y: 0})
	if v != (spatial.Vec2{}) {
		t.Fatalf("expected zero desired velocity within destination accuracy, got %v", v)
	}
}

func TestDesiredVelocityCapsAtMaxSpeed(t *testing.T) {
	v := DesiredVelocity(1000, spatial.Vec2{X: 1, Y: 0})
	if !almostEqual(v.Length(), MaxSpeed, 1e-9) {
		t.Fatalf("expected desired speed capped at MaxSpeed, got %v", v.Length())
	}
}

func TestStepAcceleratesTowardDesiredVelocity(t *testing.T) {
	state := NewState(0)
	desired := spatial.Vec2{X: MaxSpeed, Y: 0}

	Step(&state, desired, 0.1)

	if state.Speed() <= 0 {
		t.Fatalf("expected speed to increase from rest, got %v", state.Speed())
	}
	if state.Speed() > MaxAcceleration*0.1+1e-9 {
		t.Fatalf("expected speed delta bounded by MaxAcceleration*dt, got %v", state.Speed())
	}
}

func TestStepBrakesOnSharpTurn(t *testing.T) {
	state := NewState(0)
	Step(&state, spatial.Vec2{X: MaxSpeed, Y: 0}, 1.0)
	cruising := state.Speed()
	if cruising <= 0 {
		t.Fatalf("expected the mover to be moving before the sharp turn, got %v", cruising)
	}

	// A target directly behind the mover's current heading is a turn sharper
	// than the off-course threshold, so the mover should brake rather than
	// try to accelerate sideways into the turn.
	Step(&state, spatial.Vec2{X: -MaxSpeed, Y: 0}, 0.1)
	if state.Speed() >= cruising {
		t.Fatalf("expected braking on a sharp reversal, got speed %v (was %v)", state.Speed(), cruising)
	}
}

func TestStepHeadingClampedByMaxAngularSpeed(t *testing.T) {
	state := NewState(0)
	dt := 0.05
	Step(&state, spatial.Vec2{X: 0, Y: MaxSpeed}, dt)

	maxDelta := MaxAngularSpeed * dt
	if state.Heading() > maxDelta+1e-9 {
		t.Fatalf("expected heading change bounded by MaxAngularSpeed*dt, got %v (max %v)", state.Heading(), maxDelta)
	}
}

func TestIntegrateAdvancesPositionByFrameVelocity(t *testing.T) {
	state := NewState(0)
	Step(&state, spatial.Vec2{X: MaxSpeed, Y: 0}, 1.0)
	Step(&state, spatial.Vec2{X: MaxSpeed, Y: 0}, 1.0)

	pos := spatial.Vec2{X: 0, Y: 0}
	newPos, heading := Integrate(pos, state, 1.0)

	expectedDisplacement := state.FrameVelocity()
	if !almostEqual(newPos.X, pos.X+expectedDisplacement.X, 1e-9) {
		t.Fatalf("expected position to advance by frame velocity, got %v", newPos)
	}
	if heading != state.Heading() {
		t.Fatalf("expected Integrate to return the state's heading, got %v", heading)
	}
}
