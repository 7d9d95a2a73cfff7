// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hrvo computes hybrid reciprocal velocity obstacles over an
// integer fixed-point velocity space: each meter is Scale units, so the
// cross and dot products used to intersect half-plane edges stay exact
// i32 arithmetic instead of accumulating float error at map-bounded
// coordinates.
package hrvo

import (
	"math"

	"github.com/vanguard-rts/core/spatial"
)

// Scale is the number of fixed-point units per meter.
const Scale int32 = 1024

// Vec is a fixed-point 2D vector, Scale units per meter.
type Vec struct {
	X, Y int32
}

// FromMeters converts a floating-point vector into fixed-point units.
func FromMeters(v spatial.Vec2) Vec {
	return Vec{
		X: int32(math.Round(v.X * float64(Scale))),
		Y: int32(math.Round(v.Y * float64(Scale))),
	}
}

// ToMeters converts a fixed-point vector back into floating-point units.
func (v Vec) ToMeters() spatial.Vec2 {
	return spatial.Vec2{X: float64(v.X) / float64(Scale), Y: float64(v.Y) / float64(Scale)}
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Dot returns the dot product of v and o, in Scale^2 units.
func (v Vec) Dot(o Vec) int64 { return int64(v.X)*int64(o.X) + int64(v.Y)*int64(o.Y) }

// PerpDot returns v.x*o.y - v.y*o.x, in Scale^2 units.
func (v Vec) PerpDot(o Vec) int64 { return int64(v.X)*int64(o.Y) - int64(v.Y)*int64(o.X) }

// Signum is the sign of a fixed-point quantity. Its int8 values are chosen
// so that ordinary multiplication reproduces sign-multiplication: Positive
// and Negative are ±1, Zero annihilates either operand.
type Signum int8

const (
	Negative Signum = -1
	Zero     Signum = 0
	Positive Signum = 1
)

// SignumOf classifies v's sign.
func SignumOf(v int64) Signum {
	switch {
	case v > 0:
		return Positive
	case v < 0:
		return Negative
	default:
		return Zero
	}
}

// Mul composes two signs: zero propagates, equal signs give Positive,
// opposite signs give Negative.
func (s Signum) Mul(o Signum) Signum { return Signum(int8(s) * int8(o)) }

// MulInt applies the sign to an integer, leaving it unchanged, negating it,
// or zeroing it.
func (s Signum) MulInt(v int32) int32 { return int32(s) * v }

// floorDiv divides n by d rounding toward negative infinity, matching the
// original's scaled_div_floor: ordinary truncating division plus a
// correction when the remainder disagrees in sign with the divisor.
func floorDiv(n, d int64) int64 {
	q := n / d
	r := n % d
	if r != 0 && (r < 0) != (d < 0) {
		q--
	}
	return q
}

// scalarDivToScale brings a Scale^2 quantity (the dot product of two
// fixed-point vectors) back down to a Scale-scaled length.
func scalarDivToScale(v int64) int32 {
	return int32(floorDiv(v, int64(Scale)))
}

// scaledDivFloor computes the Scale-scaled parameter at which two lines
// cross, from the Scale^2 perpendicular-dot numerator and denominator of
// their intersection.
func scaledDivFloor(numerator, denominator int64) int32 {
	return int32(floorDiv(numerator*int64(Scale), denominator))
}
