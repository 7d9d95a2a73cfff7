// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

import (
	"testing"

	"github.com/vanguard-rts/core/spatial"
)

func square(minX, minY, maxX, maxY float64) spatial.AABB {
	return spatial.AABB{Min: spatial.Vec2{X: minX, Y: minY}, Max: spatial.Vec2{X: maxX, Y: maxY}}
}

func TestTriangulateEmptySplitsBoundsInTwo(t *testing.T) {
	tris := Triangulate(square(0, 0, 100, 100), nil)
	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles for an empty map, got %d", len(tris))
	}

	var total float64
	for _, face := range tris {
		pts := face.points()
		total += triangleArea(
			[]spatial.Vec2{pts[0], pts[1], pts[2]},
			tri{v: [3]int{0, 1, 2}},
		)
	}
	if total < 9999 || total > 10001 {
		t.Fatalf("expected triangle areas to cover the 100x100 bounds, got %v", total)
	}
}

func TestTriangulateWithExclusionDropsInteriorFaces(t *testing.T) {
	bounds := square(0, 0, 100, 100)
	exclusion := NewExclusionArea([]spatial.Vec2{
		{X: 40, Y: 40}, {X: 60, Y: 40}, {X: 60, Y: 60}, {X: 40, Y: 60},
	})

	tris := Triangulate(bounds, []ExclusionArea{exclusion})
	if len(tris) == 0 {
		t.Fatal("expected a non-empty triangulation around a single exclusion area")
	}

	center := spatial.Vec2{X: 50, Y: 50}
	for _, tri := range tris {
		pts := tri.points()
		if (graphTriangle{points: pts}).containsPoint(center) {
			t.Fatalf("triangle %v should not cover the excluded center point", pts)
		}
	}
}

func TestTriangulateCoversPointOutsideExclusion(t *testing.T) {
	bounds := square(0, 0, 100, 100)
	exclusion := NewExclusionArea([]spatial.Vec2{
		{X: 40, Y: 40}, {X: 60, Y: 40}, {X: 60, Y: 60}, {X: 40, Y: 60},
	})

	tris := Triangulate(bounds, []ExclusionArea{exclusion})

	corner := spatial.Vec2{X: 5, Y: 5}
	found := false
	for _, tri := range tris {
		pts := tri.points()
		if (graphTriangle{points: pts}).containsPoint(corner) {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected some triangle to cover a walkable point far from the exclusion")
	}
}
