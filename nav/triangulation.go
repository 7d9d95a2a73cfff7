// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

import (
	"math"

	"github.com/vanguard-rts/core/spatial"
)

// Triangle is a walkable face of a triangulation, CCW wound.
type Triangle struct {
	a, b, c spatial.Vec2
}

func (t Triangle) points() [3]spatial.Vec2 { return [3]spatial.Vec2{t.a, t.b, t.c} }

func (t Triangle) edgeSegments() [3]segment {
	return [3]segment{{A: t.a, B: t.b}, {A: t.b, B: t.c}, {A: t.c, B: t.a}}
}

// hashableSegment is an order-independent key for a line segment, so the two
// triangles sharing an edge resolve to the same visibility-graph node
// regardless of which of them is processed first.
type hashableSegment struct {
	ax, ay, bx, by float64
}

func hashSegment(s segment) hashableSegment {
	a, b := s.A, s.B
	if a.X > b.X || (a.X == b.X && a.Y > b.Y) {
		a, b = b, a
	}
	return hashableSegment{a.X, a.Y, b.X, b.Y}
}

// tri is an internal triangulation face referencing points by index, used
// while building so that point-equality comparisons are exact (integer ids)
// rather than float comparisons.
type tri struct {
	v [3]int
}

func (t tri) hasVertex(i int) bool { return t.v[0] == i || t.v[1] == i || t.v[2] == i }

// circumcircleContains reports whether p lies strictly inside the
// circumcircle of the triangle formed by pts[t.v[0..2]].
func circumcircleContains(pts []spatial.Vec2, t tri, p spatial.Vec2) bool {
	a, b, c := pts[t.v[0]], pts[t.v[1]], pts[t.v[2]]

	ax, ay := a.X-p.X, a.Y-p.Y
	bx, by := b.X-p.X, b.Y-p.Y
	cx, cy := c.X-p.X, c.Y-p.Y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	// For a CCW triangle, p is inside the circumcircle iff det > 0.
	if signedArea(a, b, c) < 0 {
		det = -det
	}
	return det > 1e-9
}

func signedArea(a, b, c spatial.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func ccw(pts []spatial.Vec2, t tri) tri {
	a, b, c := pts[t.v[0]], pts[t.v[1]], pts[t.v[2]]
	if signedArea(a, b, c) < 0 {
		return tri{[3]int{t.v[0], t.v[2], t.v[1]}}
	}
	return t
}

type triEdge struct{ u, v int }

func edgeKey(u, v int) triEdge {
	if u > v {
		u, v = v, u
	}
	return triEdge{u, v}
}

// bowyerWatson builds an unconstrained Delaunay triangulation of pts, whose
// first four entries must be the map's corners in CCW order (used to seed
// the initial two-triangle split of the bounding rectangle).
func bowyerWatson(pts []spatial.Vec2) []tri {
	triangles := []tri{
		ccw(pts, tri{[3]int{0, 1, 2}}),
		ccw(pts, tri{[3]int{0, 2, 3}}),
	}

	for i := 4; i < len(pts); i++ {
		p := pts[i]

		var bad []tri
		for _, t := range triangles {
			if circumcircleContains(pts, t, p) {
				bad = append(bad, t)
			}
		}
		if len(bad) == 0 {
			// p coincides with an existing point or lies outside the
			// current hull (shouldn't happen for points within bounds);
			// skip rather than corrupt the mesh.
			continue
		}

		edgeCount := make(map[triEdge]int)
		edgeOrder := make(map[triEdge][2]int)
		for _, t := range bad {
			es := [3][2]int{{t.v[0], t.v[1]}, {t.v[1], t.v[2]}, {t.v[2], t.v[0]}}
			for _, e := range es {
				k := edgeKey(e[0], e[1])
				edgeCount[k]++
				edgeOrder[k] = [2]int{e[0], e[1]}
			}
		}

		kept := triangles[:0:0]
		for _, t := range triangles {
			isBad := false
			for _, b := range bad {
				if t == b {
					isBad = true
					break
				}
			}
			if !isBad {
				kept = append(kept, t)
			}
		}
		triangles = kept

		for k, count := range edgeCount {
			if count != 1 {
				continue
			}
			e := edgeOrder[k]
			triangles = append(triangles, ccw(pts, tri{[3]int{e[0], e[1], i}}))
		}
	}

	return triangles
}

// recoverConstraint ensures edge (a, b) appears as an edge of triangles by
// repeatedly flipping any triangle diagonal that properly crosses it, the
// standard Delaunay constraint-recovery technique. Bounded by a generous
// iteration cap so a pathological near-degenerate configuration can never
// spin forever.
func recoverConstraint(pts []spatial.Vec2, triangles []tri, a, b int) []tri {
	target := segment{A: pts[a], B: pts[b]}

	for iter := 0; iter < 64; iter++ {
		adjacency := buildAdjacency(triangles)
		flipped := false

		for k, owners := range adjacency {
			if len(owners) != 2 {
				continue
			}
			if k.u == a && k.v == b || k.u == b && k.v == a {
				continue
			}
			if k.u == a || k.u == b || k.v == a || k.v == b {
				continue
			}

			edgeSeg := segment{A: pts[k.u], B: pts[k.v]}
			if !properlyCrosses(edgeSeg, target) {
				continue
			}

			t1, t2 := triangles[owners[0]], triangles[owners[1]]
			op1, ok1 := opposite(t1, k)
			op2, ok2 := opposite(t2, k)
			if !ok1 || !ok2 {
				continue
			}

			triangles[owners[0]] = ccw(pts, tri{[3]int{k.u, op1, op2}})
			triangles[owners[1]] = ccw(pts, tri{[3]int{k.v, op2, op1}})
			flipped = true
		}

		if !flipped {
			break
		}
	}
	return triangles
}

func buildAdjacency(triangles []tri) map[triEdge][]int {
	adjacency := make(map[triEdge][]int)
	for idx, t := range triangles {
		es := [3][2]int{{t.v[0], t.v[1]}, {t.v[1], t.v[2]}, {t.v[2], t.v[0]}}
		for _, e := range es {
			k := edgeKey(e[0], e[1])
			adjacency[k] = append(adjacency[k], idx)
		}
	}
	return adjacency
}

// opposite returns the third vertex of t not on edge k.
func opposite(t tri, k triEdge) (int, bool) {
	for _, v := range t.v {
		if v != k.u && v != k.v {
			return v, true
		}
	}
	return 0, false
}

func properlyCrosses(s1, s2 segment) bool {
	d1 := whichSide(s1.A, s1.B, s2.A)
	d2 := whichSide(s1.A, s1.B, s2.B)
	d3 := whichSide(s2.A, s2.B, s1.A)
	d4 := whichSide(s2.A, s2.B, s1.B)
	return d1 != d2 && d1 != Collinear && d2 != Collinear &&
		d3 != d4 && d3 != Collinear && d4 != Collinear
}

// Triangulate builds a Constrained Delaunay Triangulation of the rectangle
// bounds, with every exclusion polygon edge enforced as a constraint and
// every face lying entirely inside a single exclusion polygon dropped.
func Triangulate(bounds spatial.AABB, exclusions []ExclusionArea) []Triangle {
	corners := []spatial.Vec2{
		{X: bounds.Min.X, Y: bounds.Min.Y},
		{X: bounds.Max.X, Y: bounds.Min.Y},
		{X: bounds.Max.X, Y: bounds.Max.Y},
		{X: bounds.Min.X, Y: bounds.Max.Y},
	}

	pts := append([]spatial.Vec2(nil), corners...)
	polygonOf := make(map[int]int)
	type constraintEdge struct{ u, v int }
	var constraints []constraintEdge

	for polyID, area := range exclusions {
		start := len(pts)
		for _, p := range area.Points() {
			polygonOf[len(pts)] = polyID
			pts = append(pts, p)
		}
		n := len(area.Points())
		for i := 0; i < n; i++ {
			constraints = append(constraints, constraintEdge{start + i, start + (i+1)%n})
		}
	}

	triangles := bowyerWatson(pts)
	for _, c := range constraints {
		triangles = recoverConstraint(pts, triangles, c.u, c.v)
	}

	out := make([]Triangle, 0, len(triangles))
	for _, t := range triangles {
		if triangleArea(pts, t) < 1e-9 {
			continue
		}
		if allSamePolygon(polygonOf, t) {
			continue
		}
		out = append(out, Triangle{a: pts[t.v[0]], b: pts[t.v[1]], c: pts[t.v[2]]})
	}
	return out
}

func triangleArea(pts []spatial.Vec2, t tri) float64 {
	return math.Abs(signedArea(pts[t.v[0]], pts[t.v[1]], pts[t.v[2]])) / 2
}

// allSamePolygon reports whether all three vertices of t belong to the same
// exclusion polygon, meaning the face is interior to an obstacle.
func allSamePolygon(polygonOf map[int]int, t tri) bool {
	id0, ok0 := polygonOf[t.v[0]]
	if !ok0 {
		return false
	}
	for _, v := range t.v[1:] {
		id, ok := polygonOf[v]
		if !ok || id != id0 {
			return false
		}
	}
	return true
}
