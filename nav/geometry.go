// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nav builds a walkable triangulation of the map surface around
// static obstacles and answers shortest-path queries over it with a
// Polyanya-style any-angle search.
package nav

import "github.com/vanguard-rts/core/spatial"

// Side classifies a point's position relative to a directed line.
type Side int

const (
	Left Side = iota
	Right
	Collinear
)

// whichSide returns the side of point c relative to the directed line a->b.
// A point exactly on the line is Collinear, which callers treat as "inside"
// from both half-planes per the edge-case rule for degenerate intervals.
func whichSide(a, b, c spatial.Vec2) Side {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case cross > 1e-9:
		return Left
	case cross < -1e-9:
		return Right
	default:
		return Collinear
	}
}

// segment is a directed line segment between two points.
type segment struct {
	A, B spatial.Vec2
}

func (s segment) length() float64 {
	return s.B.Sub(s.A).Length()
}

// pointOn returns the point at parameter t along the segment, t in [0, 1].
func (s segment) pointOn(t float64) spatial.Vec2 {
	dir := s.B.Sub(s.A)
	return spatial.Vec2{X: s.A.X + t*dir.X, Y: s.A.Y + t*dir.Y}
}

// projectPoint returns the closest point on the (finite) segment to p.
func (s segment) projectPoint(p spatial.Vec2) spatial.Vec2 {
	dir := s.B.Sub(s.A)
	lenSq := dir.Dot(dir)
	if lenSq == 0 {
		return s.A
	}
	t := p.Sub(s.A).Dot(dir) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.pointOn(t)
}

func (s segment) distanceToPoint(p spatial.Vec2) float64 {
	return s.projectPoint(p).Sub(p).Length()
}

// castRay intersects the ray origin+t*dir (t in [0, maxT]) against segment s,
// returning the ray parameter of the crossing point if one exists.
func castRay(origin, dir spatial.Vec2, maxT float64, s segment) (float64, bool) {
	edge := s.B.Sub(s.A)
	denom := dir.X*edge.Y - dir.Y*edge.X
	if denom == 0 {
		return 0, false
	}
	diff := s.A.Sub(origin)
	t := (diff.X*edge.Y - diff.Y*edge.X) / denom
	u := (diff.X*dir.Y - diff.Y*dir.X) / denom
	if t < 0 || t > maxT || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
