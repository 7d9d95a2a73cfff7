// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

import (
	"math"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/vanguard-rts/core/spatial"
)

// ExclusionArea is a convex polygon, in counter-clockwise winding order,
// marking ground that a mover's centroid cannot enter.
type ExclusionArea struct {
	points []spatial.Vec2
	bounds spatial.AABB
}

// NewExclusionArea wraps a convex polygon given in CCW order.
func NewExclusionArea(points []spatial.Vec2) ExclusionArea {
	return ExclusionArea{points: points, bounds: polygonBounds(points)}
}

// Points returns the area's CCW boundary.
func (e ExclusionArea) Points() []spatial.Vec2 { return e.points }

func polygonBounds(points []spatial.Vec2) spatial.AABB {
	box := spatial.AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min.X = math.Min(box.Min.X, p.X)
		box.Min.Y = math.Min(box.Min.Y, p.Y)
		box.Max.X = math.Max(box.Max.X, p.X)
		box.Max.Y = math.Max(box.Max.Y, p.Y)
	}
	return box
}

// OffsetConvexPolygon returns the polygon expanded outward by distance: each
// edge is pushed out along its outward normal and consecutive pushed edges
// are re-intersected to find the new corners. This approximates the true
// Minkowski sum of the polygon with a disc of radius distance, except that
// corners stay sharp rather than rounding off — an acceptable simplification
// for obstacle padding, where slightly generous corners only make the
// exclusion area more conservative, never less.
func OffsetConvexPolygon(points []spatial.Vec2, distance float64) []spatial.Vec2 {
	n := len(points)
	type pushedEdge struct{ a, b spatial.Vec2 }
	pushed := make([]pushedEdge, n)
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		edge := b.Sub(a)
		normal := spatial.Vec2{X: edge.Y, Y: -edge.X}
		length := normal.Length()
		if length == 0 {
			pushed[i] = pushedEdge{a, b}
			continue
		}
		normal = normal.Scale(distance / length)
		pushed[i] = pushedEdge{a.Add(normal), b.Add(normal)}
	}

	out := make([]spatial.Vec2, n)
	for i := 0; i < n; i++ {
		prev := pushed[(i-1+n)%n]
		cur := pushed[i]
		if p, ok := lineIntersection(prev.a, prev.b, cur.a, cur.b); ok {
			out[i] = p
		} else {
			out[i] = cur.a
		}
	}
	return out
}

// lineIntersection returns the intersection of infinite lines p1-p2 and
// p3-p4.
func lineIntersection(p1, p2, p3, p4 spatial.Vec2) (spatial.Vec2, bool) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	denom := d1.X*d2.Y - d1.Y*d2.X
	if denom == 0 {
		return spatial.Vec2{}, false
	}
	diff := p3.Sub(p1)
	t := (diff.X*d2.Y - diff.Y*d2.X) / denom
	return p1.Add(d1.Scale(t)), true
}

// convexHull returns the CCW convex hull of points via the monotone chain
// algorithm.
func convexHull(points []spatial.Vec2) []spatial.Vec2 {
	pts := append([]spatial.Vec2(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	pts = dedupPoints(pts)
	if len(pts) < 3 {
		return pts
	}

	cross := func(o, a, b spatial.Vec2) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	lower := make([]spatial.Vec2, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]spatial.Vec2, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func dedupPoints(pts []spatial.Vec2) []spatial.Vec2 {
	out := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			out = append(out, p)
		}
	}
	return out
}

// BuildExclusions merges overlapping exclusion areas by repeated r-tree
// lookup: any area that overlaps a candidate (their AABBs intersect and a
// separating-axis test finds the polygons overlapping) is pulled out and
// folded into the candidate's convex hull, until a fixpoint (no more
// overlaps) is reached for every input area.
func BuildExclusions(areas []ExclusionArea) []ExclusionArea {
	tree := &rtree.RTreeG[ExclusionArea]{}

	for _, area := range areas {
		current := area
		for {
			var overlapping []ExclusionArea
			tree.Search(
				[2]float64{current.bounds.Min.X, current.bounds.Min.Y},
				[2]float64{current.bounds.Max.X, current.bounds.Max.Y},
				func(min, max [2]float64, other ExclusionArea) bool {
					if polygonsOverlap(current, other) {
						overlapping = append(overlapping, other)
					}
					return true
				},
			)
			if len(overlapping) == 0 {
				tree.Insert(
					[2]float64{current.bounds.Min.X, current.bounds.Min.Y},
					[2]float64{current.bounds.Max.X, current.bounds.Max.Y},
					current,
				)
				break
			}
			for _, o := range overlapping {
				tree.Delete(
					[2]float64{o.bounds.Min.X, o.bounds.Min.Y},
					[2]float64{o.bounds.Max.X, o.bounds.Max.Y},
					o,
				)
			}
			pts := append([]spatial.Vec2(nil), current.points...)
			for _, o := range overlapping {
				pts = append(pts, o.points...)
			}
			current = NewExclusionArea(convexHull(pts))
		}
	}

	var out []ExclusionArea
	tree.Scan(func(_, _ [2]float64, area ExclusionArea) bool {
		out = append(out, area)
		return true
	})
	return out
}

// polygonsOverlap tests two convex polygons for intersection via the
// separating axis theorem.
func polygonsOverlap(a, b ExclusionArea) bool {
	if !a.bounds.Intersects(b.bounds) {
		return false
	}
	for _, poly := range [2][]spatial.Vec2{a.points, b.points} {
		n := len(poly)
		for i := 0; i < n; i++ {
			edge := poly[(i+1)%n].Sub(poly[i])
			axis := spatial.Vec2{X: -edge.Y, Y: edge.X}
			aMin, aMax := projectPoints(a.points, axis)
			bMin, bMax := projectPoints(b.points, axis)
			if aMax < bMin || bMax < aMin {
				return false
			}
		}
	}
	return true
}

func projectPoints(points []spatial.Vec2, axis spatial.Vec2) (min, max float64) {
	min = points[0].Dot(axis)
	max = min
	for _, p := range points[1:] {
		d := p.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}
