// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package hrvo

import (
	"math"
	"testing"
)

func TestComputeBoundsClipsLineToMaxSpeedCircle(t *testing.T) {
	line := NewLine(Vec{0, 0}, Vec{Scale, 0})
	bounds, ok := ComputeBounds(line, 10)
	if !ok {
		t.Fatal("expected the line through the origin to intersect the circle")
	}
	if bounds.Min() != -10*Scale || bounds.Max() != 10*Scale {
		t.Fatalf("bounds = [%d, %d], want [%d, %d]", bounds.Min(), bounds.Max(), -10*Scale, 10*Scale)
	}
}

func TestComputeBoundsMissesDistantLine(t *testing.T) {
	line := NewLine(Vec{0, 100 * Scale}, Vec{Scale, 0})
	if _, ok := ComputeBounds(line, 10); ok {
		t.Fatal("expected a line entirely outside the circle to have no bounds")
	}
}

func TestEdgeInnerSide(t *testing.T) {
	line := NewLine(Vec{0, 0}, Vec{Scale, 0})
	edge := NewEdge(line, Positive, math.MaxInt32, Bounds{}, false)
	if !edge.InnerSide(Vec{0, Scale}) {
		t.Error("expected the point above the line to be on the positive edge's inner side")
	}
	if edge.InnerSide(Vec{0, -Scale}) {
		t.Error("expected the point below the line to be outside the positive edge")
	}
}

func TestEdgeIntersectWithinBoundsYieldsDirection(t *testing.T) {
	horizontal := NewEdge(NewLine(Vec{0, 0}, Vec{Scale, 0}), Positive, math.MaxInt32, Bounds{}, false)
	vertical := NewEdge(NewLine(Vec{Scale, -Scale}, Vec{0, Scale}), Positive, math.MaxInt32, Bounds{}, false)

	xs, ok := horizontal.Intersect(vertical, false)
	if !ok {
		t.Fatal("expected the crossing edges to intersect")
	}
	if xs.Parameter != Scale {
		t.Errorf("Parameter = %d, want %d", xs.Parameter, Scale)
	}
}

func TestEdgeIntersectOutsideMaxIsRejected(t *testing.T) {
	horizontal := NewEdge(NewLine(Vec{0, 0}, Vec{Scale, 0}), Positive, Scale/2, Bounds{}, false)
	vertical := NewEdge(NewLine(Vec{Scale, -Scale}, Vec{0, Scale}), Positive, math.MaxInt32, Bounds{}, false)

	if _, ok := horizontal.Intersect(vertical, false); ok {
		t.Fatal("expected the intersection beyond horizontal's max parameter to be rejected")
	}
}
