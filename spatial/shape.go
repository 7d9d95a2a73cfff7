// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package spatial

import "math"

// Isometry is a 2D rigid transform: rotation then translation.
type Isometry struct {
	Translation Vec2
	Cos, Sin    float64 // unit rotation; (1, 0) is none, as set by Identity (the zero value is not a rotation)
}

// Identity returns the identity isometry at the origin.
func Identity() Isometry {
	return Isometry{Cos: 1}
}

// Apply transforms a local-space point into world space.
func (iso Isometry) Apply(p Vec2) Vec2 {
	return iso.ApplyDirection(p).Add(iso.Translation)
}

// ApplyDirection rotates a local-space direction into world space, without
// translating it.
func (iso Isometry) ApplyDirection(d Vec2) Vec2 {
	return Vec2{
		X: d.X*iso.Cos - d.Y*iso.Sin,
		Y: d.X*iso.Sin + d.Y*iso.Cos,
	}
}

// Inverse returns the isometry that undoes iso.
func (iso Isometry) Inverse() Isometry {
	inv := Isometry{Cos: iso.Cos, Sin: -iso.Sin}
	inv.Translation = inv.ApplyDirection(iso.Translation).Scale(-1)
	return inv
}

// Shape is a convex 2D collider shape in local space.
type Shape interface {
	// LocalAABB returns the shape's tight bounding box in local space.
	LocalAABB() AABB
	// RayIntersect returns the smallest non-negative time of impact for a
	// ray (origin, direction, both in local space) against the shape, and
	// whether it hit within [0, maxToi].
	RayIntersect(origin, direction Vec2, maxToi float64) (toi float64, hit bool)
	// Contains reports whether a local-space point lies within the shape.
	Contains(p Vec2) bool
}

// Circle is a circular collider centered at the local origin.
type Circle struct {
	Radius float64
}

func (c Circle) LocalAABB() AABB {
	return AABB{Min: Vec2{-c.Radius, -c.Radius}, Max: Vec2{c.Radius, c.Radius}}
}

func (c Circle) Contains(p Vec2) bool {
	return p.Dot(p) <= c.Radius*c.Radius
}

func (c Circle) RayIntersect(origin, dir Vec2, maxToi float64) (float64, bool) {
	// Solve |origin + t*dir|^2 = r^2 for the smallest t in [0, maxToi].
	a := dir.Dot(dir)
	if a == 0 {
		return 0, false
	}
	b := 2 * origin.Dot(dir)
	cc := origin.Dot(origin) - c.Radius*c.Radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 >= 0 && t0 <= maxToi {
		return t0, true
	}
	if t1 >= 0 && t1 <= maxToi {
		return t1, true
	}
	return 0, false
}

// ConvexPolygon is a convex polygon collider given in counter-clockwise
// winding order, local to its owning entity.
type ConvexPolygon struct {
	Points []Vec2
}

func (p ConvexPolygon) LocalAABB() AABB {
	box := AABB{Min: p.Points[0], Max: p.Points[0]}
	for _, v := range p.Points[1:] {
		box.Min.X = math.Min(box.Min.X, v.X)
		box.Min.Y = math.Min(box.Min.Y, v.Y)
		box.Max.X = math.Max(box.Max.X, v.X)
		box.Max.Y = math.Max(box.Max.Y, v.Y)
	}
	return box
}

func cross(a, b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Contains uses the standard convex-polygon half-plane test: p is inside
// iff it lies on the same (non-negative) side of every edge, given
// counter-clockwise winding.
func (p ConvexPolygon) Contains(pt Vec2) bool {
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		edge := b.Sub(a)
		toPoint := pt.Sub(a)
		if cross(edge, toPoint) < 0 {
			return false
		}
	}
	return true
}

func (p ConvexPolygon) RayIntersect(origin, dir Vec2, maxToi float64) (float64, bool) {
	best := maxToi
	found := false
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		if t, ok := segmentRayIntersect(origin, dir, a, b, best); ok {
			best = t
			found = true
		}
	}
	return best, found
}

// Project finds the point on p's boundary closest to pt, together with the
// outward unit normal of the edge (support feature) that point lies on,
// and whether pt itself lies inside p.
func (p ConvexPolygon) Project(pt Vec2) (closest, normal Vec2, inside bool) {
	inside = p.Contains(pt)
	bestDistSq := math.Inf(1)
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cp := closestPointOnSegment(pt, a, b)
		d := cp.Sub(pt)
		distSq := d.Dot(d)
		if distSq < bestDistSq {
			bestDistSq = distSq
			closest = cp
			edge := b.Sub(a)
			normal = Vec2{X: edge.Y, Y: -edge.X}
			if length := normal.Length(); length > 0 {
				normal = normal.Scale(1 / length)
			}
		}
	}
	return closest, normal, inside
}

// closestPointOnSegment returns the point on segment [a,b] nearest to pt.
func closestPointOnSegment(pt, a, b Vec2) Vec2 {
	edge := b.Sub(a)
	lenSq := edge.Dot(edge)
	if lenSq == 0 {
		return a
	}
	t := pt.Sub(a).Dot(edge) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(edge.Scale(t))
}

// segmentRayIntersect solves origin + t*dir == a + s*(b-a) for t in
// [0, maxToi] and s in [0, 1].
func segmentRayIntersect(origin, dir, a, b Vec2, maxToi float64) (float64, bool) {
	edge := b.Sub(a)
	denom := cross(dir, edge)
	if denom == 0 {
		return 0, false
	}
	diff := a.Sub(origin)
	t := cross(diff, edge) / denom
	s := cross(diff, dir) / denom
	if t < 0 || t > maxToi || s < 0 || s > 1 {
		return 0, false
	}
	return t, true
}
