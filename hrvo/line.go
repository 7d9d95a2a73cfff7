// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package hrvo

// Line is an infinite fixed-point line through point, running in direction
// dir. dir is conventionally a unit vector (length Scale), so a parameter
// along the line is itself Scale-scaled arc length.
type Line struct {
	point, dir Vec
}

// NewLine builds a line through point running in direction dir.
func NewLine(point, dir Vec) Line { return Line{point: point, dir: dir} }

// Point returns the line's reference point.
func (l Line) Point() Vec { return l.point }

// Dir returns the line's direction.
func (l Line) Dir() Vec { return l.dir }

// side returns the signed perpendicular distance (Scale^2 units) from p to
// the line: positive on the left of dir, negative on the right.
func (l Line) side(p Vec) int64 { return l.dir.PerpDot(p.Sub(l.point)) }

// SideSignum classifies which side of the line p falls on.
func (l Line) SideSignum(p Vec) Signum { return SignumOf(l.side(p)) }

// Projection returns the Scale-scaled parameter of p's orthogonal
// projection onto the line.
func (l Line) Projection(p Vec) int32 {
	return scalarDivToScale(l.dir.Dot(p.Sub(l.point)))
}

// PointAt returns the line's point plus parameter (Scale-scaled) units of
// travel along dir.
func (l Line) PointAt(parameter int32) Vec {
	return l.point.Add(vecDivToScale(l.dir.Scale(parameter)))
}

// Scale multiplies both components of v by the Scale-scaled factor s,
// returning a plain (non-scaled) Scale^2 product; callers bring it back
// down with vecDivToScale.
func (v Vec) Scale(s int32) Vec { return Vec{X: v.X * s, Y: v.Y * s} }

func vecDivToScale(v Vec) Vec {
	return Vec{X: scalarDivToScale(int64(v.X)), Y: scalarDivToScale(int64(v.Y))}
}

// LineIntersection is the result of intersecting two lines: either the
// lines coincide (Coincidental), or they cross at a single Scale-scaled
// parameter along each.
type LineIntersection struct {
	Coincidental       bool
	SideSignum         Signum
	DirSignum          Signum
	PrimaryParameter   int32
	SecondaryParameter int32
}

// Intersect finds where l crosses other. The second return is false if the
// lines are parallel and distinct (no intersection at all).
func (l Line) Intersect(other Line) (LineIntersection, bool) {
	denominator := l.dir.PerpDot(other.dir)
	primarySide := other.side(l.point)
	if denominator == 0 {
		if primarySide == 0 {
			return LineIntersection{Coincidental: true}, true
		}
		return LineIntersection{}, false
	}
	secondarySide := l.side(other.point)
	return LineIntersection{
		SideSignum:         SignumOf(secondarySide),
		DirSignum:          SignumOf(denominator),
		PrimaryParameter:   scaledDivFloor(primarySide, denominator),
		SecondaryParameter: scaledDivFloor(secondarySide, -denominator),
	}, true
}
