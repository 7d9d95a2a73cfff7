// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nav

import "github.com/vanguard-rts/core/spatial"

// paramPair is a normalized, ordered (lo <= hi) sub-interval of a parent
// segment's [0, 1] parameter range, with rounding applied so that parameters
// landing within 1cm of an endpoint snap to it exactly (see roundParam).
type paramPair struct {
	lo, hi float64
}

// roundParam snaps parameter p very close to 0 or 1 (within 0.01 of the
// segment's absolute length) to exactly 0 or 1. The search frequently
// produces crossings right at a triangle corner; without this the search
// node graph would treat a corner as a degenerate, vanishingly small
// interval instead of collapsing cleanly onto the corner point.
func roundParam(p, scale float64) float64 {
	scaled := p * scale
	switch {
	case scaled < 0.01 && scaled > -0.01:
		return 0
	case scale-scaled < 0.01 && scale-scaled > -0.01:
		return 1
	default:
		return p
	}
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// normalizedParamPair orders and rounds a and b, reporting false if the
// resulting interval collapses to a single point.
func normalizedParamPair(a, b, scale float64) (paramPair, bool) {
	a = roundParam(a, scale)
	b = roundParam(b, scale)
	switch {
	case a < b:
		return paramPair{a, b}, true
	case a > b:
		return paramPair{b, a}, true
	default:
		return paramPair{}, false
	}
}

func (p paramPair) includesCornerA() bool { return p.lo == 0 }
func (p paramPair) includesCornerB() bool { return p.hi == 1 }

// apply returns the sub-segment of s corresponding to p.
func (p paramPair) apply(s segment) segment {
	a, b := s.A, s.B
	if p.lo != 0 {
		a = s.pointOn(p.lo)
	}
	if p.hi != 1 {
		b = s.pointOn(p.hi)
	}
	return segment{A: a, B: b}
}

// shadowParam returns the parameter along target's line where the ray from
// eye through pivot crosses it, valid only when the crossing lies on or in
// front of the ray (not behind eye) and the ray isn't parallel to target.
func shadowParam(eye, pivot spatial.Vec2, target segment) (float64, bool) {
	dir := pivot.Sub(eye)
	edge := target.B.Sub(target.A)
	denom := dir.X*edge.Y - dir.Y*edge.X
	if denom == 0 {
		return 0, false
	}
	diff := target.A.Sub(eye)
	rayT := (diff.X*edge.Y - diff.Y*edge.X) / denom
	targetT := (diff.X*dir.Y - diff.Y*dir.X) / denom
	if rayT < -1e-9 {
		return 0, false
	}
	return targetT, true
}

// projectOntoSegment computes the shadow that src casts onto target as seen
// from eye: up to three ordered sub-intervals of target — the portion
// shadowed behind src's A endpoint, the portion visible straight through
// src ("middle"), and the portion shadowed behind src's B endpoint. Any
// interval of zero width is reported as absent (nil).
func projectOntoSegment(eye spatial.Vec2, src, target segment) (sideA, middle, sideB *paramPair) {
	length := target.length()
	if eye == src.A || eye == src.B {
		p := paramPair{0, 1}
		return nil, &p, nil
	}

	tA, okA := shadowParam(eye, src.A, target)
	tB, okB := shadowParam(eye, src.B, target)
	if !okA {
		tA = 1
	}
	if !okB {
		tB = 1
	}
	tA, tB = clamp01(tA), clamp01(tB)

	lo, hi := tA, tB
	if lo > hi {
		lo, hi = hi, lo
	}

	if p, ok := normalizedParamPair(0, lo, length); ok {
		sideA = &p
	}
	if p, ok := normalizedParamPair(lo, hi, length); ok {
		middle = &p
	}
	if p, ok := normalizedParamPair(hi, 1, length); ok {
		sideB = &p
	}
	return sideA, middle, sideB
}
