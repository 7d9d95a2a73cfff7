// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package repulsion

import (
	"testing"

	"github.com/vanguard-rts/core/spatial"
)

func TestStaticContactOutsideFootprint(t *testing.T) {
	square := spatial.ConvexPolygon{Points: []spatial.Vec2{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
	}}
	placement := spatial.Identity()

	_, room, ok := StaticContact(spatial.Vec2{X: 2.5, Y: 0}, 0.5, square, placement)
	if !ok {
		t.Fatal("expected a contact within range")
	}
	// distance to the square's right edge is 1.5, minus the mover's
	// 0.5 radius, minus the 1 m target clearance: room == 0.
	if room < -1e-9 || room > 1e-9 {
		t.Fatalf("room = %v, want 0", room)
	}
}

func TestStaticContactBeyondMaxRepulsionDistanceIsSkipped(t *testing.T) {
	square := spatial.ConvexPolygon{Points: []spatial.Vec2{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
	}}
	_, _, ok := StaticContact(spatial.Vec2{X: 100, Y: 0}, 0.5, square, spatial.Identity())
	if ok {
		t.Fatal("expected a distant obstacle to yield no contact")
	}
}

func TestMovableContactComputesCenterDistance(t *testing.T) {
	dir, room, ok := MovableContact(spatial.Vec2{}, 0.5, spatial.Vec2{X: 3, Y: 0}, 0.5)
	if !ok {
		t.Fatal("expected a contact within range")
	}
	if dir != (spatial.Vec2{X: 1}) {
		t.Fatalf("dir = %v, want (1,0)", dir)
	}
	// distance 3, minus the two radii (1), minus the 0.5 m target clearance.
	want := 3.0 - 1.0 - 0.5
	if room < want-1e-9 || room > want+1e-9 {
		t.Fatalf("room = %v, want %v", room, want)
	}
}

func TestMovableContactBeyondRangeIsSkipped(t *testing.T) {
	_, _, ok := MovableContact(spatial.Vec2{}, 0.5, spatial.Vec2{X: 50, Y: 0}, 0.5)
	if ok {
		t.Fatal("expected a distant mover to yield no contact")
	}
}

func TestBoundsContactProjectsOntoNearestWall(t *testing.T) {
	bounds := spatial.AABB{Min: spatial.Vec2{X: 0, Y: 0}, Max: spatial.Vec2{X: 100, Y: 100}}
	dir, room, ok := BoundsContact(bounds, spatial.Vec2{X: 98, Y: 50}, 0.5, 0.1)
	if !ok {
		t.Fatal("expected a contact near the east wall")
	}
	if dir != (spatial.Vec2{X: 1}) {
		t.Fatalf("dir = %v, want (1,0) toward the nearest wall", dir)
	}
	want := 100 - 98 - 0.5 - 0.1
	if room < want-1e-9 || room > want+1e-9 {
		t.Fatalf("room = %v, want %v", room, want)
	}
}
