// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

import (
	"testing"

	"github.com/vanguard-rts/core/spatial"
)

func TestBuildExclusionsMergesOverlappingAreas(t *testing.T) {
	a := NewExclusionArea([]spatial.Vec2{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	b := NewExclusionArea([]spatial.Vec2{
		{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15},
	})

	merged := BuildExclusions([]ExclusionArea{a, b})
	if len(merged) != 1 {
		t.Fatalf("expected overlapping areas to merge into one, got %d", len(merged))
	}

	for _, p := range append(append([]spatial.Vec2{}, a.Points()...), b.Points()...) {
		inside := false
		for _, poly := range merged {
			box := poly.bounds
			if box.Contains(p) {
				inside = true
			}
		}
		if !inside {
			t.Fatalf("expected merged hull bounds to cover original corner %v", p)
		}
	}
}

func TestBuildExclusionsKeepsDisjointAreasSeparate(t *testing.T) {
	a := NewExclusionArea([]spatial.Vec2{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	b := NewExclusionArea([]spatial.Vec2{
		{X: 100, Y: 100}, {X: 110, Y: 100}, {X: 110, Y: 110}, {X: 100, Y: 110},
	})

	merged := BuildExclusions([]ExclusionArea{a, b})
	if len(merged) != 2 {
		t.Fatalf("expected disjoint areas to remain separate, got %d", len(merged))
	}
}

func TestOffsetConvexPolygonExpandsOutward(t *testing.T) {
	square := []spatial.Vec2{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	offset := OffsetConvexPolygon(square, 2)
	bounds := polygonBounds(offset)

	if bounds.Min.X > -1.9 || bounds.Min.Y > -1.9 {
		t.Fatalf("expected offset polygon to expand outward by ~2 units, got bounds %v", bounds)
	}
	if bounds.Max.X < 11.9 || bounds.Max.Y < 11.9 {
		t.Fatalf("expected offset polygon to expand outward by ~2 units, got bounds %v", bounds)
	}
}

func TestConvexHullExcludesInteriorPoint(t *testing.T) {
	pts := []spatial.Vec2{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5},
	}
	hull := convexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("expected the interior point to be excluded from the hull, got %d points: %v", len(hull), hull)
	}
}
