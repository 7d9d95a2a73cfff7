// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package hrvo

import "sort"

// transitionDelta is how a boundary crossing changes the "inside count" of
// the sweep: entering a region adds one, leaving it subtracts one.
type transitionDelta int32

// Transition is one point along an edge's parameter line where a sweep
// crosses into (+1) or out of (-1) another region's forbidden cone.
type Transition struct {
	parameter int32
	delta     transitionDelta
}

// NewTransition builds a region-crossing transition at parameter, entering
// the region if entering is true, leaving it otherwise.
func NewTransition(parameter int32, entering bool) Transition {
	d := transitionDelta(-1)
	if entering {
		d = 1
	}
	return Transition{parameter: parameter, delta: d}
}

// ParameterIterator walks an edge's transitions in parameter order and
// yields the sub-range endpoints where the inside count crosses zero, plus
// the clip-range endpoints themselves.
type ParameterIterator struct {
	points []int32
}

// NewParameterIterator sorts transitions and resolves which parameters are
// feasible-velocity candidates: insideAt0 is the number of other regions
// containing the edge's apex (parameter 0), min/max are the clipped
// parameter bounds, projection is the desired velocity's projection onto
// the edge's line, and transitions holds every boundary crossing with
// every other region.
func NewParameterIterator(insideAt0 int, min, max, projection int32, transitions []Transition) *ParameterIterator {
	sorted := make([]Transition, len(transitions))
	copy(sorted, transitions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].parameter < sorted[j].parameter })

	// Count backward from parameter 0 to find the inside count at -infinity,
	// so the running count is correct from the very first transition.
	count := insideAt0
	for _, t := range sorted {
		if t.parameter <= 0 {
			count -= int(t.delta)
		}
	}

	var points []int32
	seen := map[int32]bool{min: true, max: true}
	points = append(points, min)
	projectionClamped := clampParam(projection, min, max)
	for _, t := range sorted {
		prevZero := count == 0
		count += int(t.delta)
		if t.parameter < min || t.parameter > max {
			continue
		}
		// The point on the line closest to the desired velocity is a
		// candidate in its own right whenever it falls inside a sub-range
		// that is already feasible, even when it doesn't itself sit on a
		// crossing.
		if !seen[projectionClamped] && t.parameter >= projectionClamped && prevZero {
			seen[projectionClamped] = true
			points = append(points, projectionClamped)
		}
		crossesZero := count == 0 || prevZero
		if crossesZero && !seen[t.parameter] {
			seen[t.parameter] = true
			points = append(points, t.parameter)
		}
	}
	if !seen[projectionClamped] && count == 0 {
		seen[projectionClamped] = true
		points = append(points, projectionClamped)
	}
	points = append(points, max)

	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return &ParameterIterator{points: points}
}

func clampParam(v, min, max int32) int32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Points returns the candidate parameters, in ascending order.
func (p *ParameterIterator) Points() []int32 { return p.points }

// EdgeCandidates walks one edge's clipped parameter range, yielding the
// fixed-point velocity candidates it contributes.
type EdgeCandidates struct {
	line   Line
	params *ParameterIterator
	index  int
}

// ComputeEdgeCandidates builds an EdgeCandidates for edge, given the
// desired velocity and every region (primaryIndex is edge's own region,
// skipped when looking for crossings with "every other region"). It
// returns nil if edge has no maximum-speed-circle bounds, or if those
// bounds are empty once clipped to edge's own parameter range.
func ComputeEdgeCandidates(edge Edge, desired Vec, primaryIndex int, regions []Region) *EdgeCandidates {
	bounds, ok := edge.Bounds()
	if !ok {
		return nil
	}
	min := bounds.Min()
	if min < 0 {
		min = 0
	}
	max := bounds.Max()
	if max > edge.Max() {
		max = edge.Max()
	}
	if min > max {
		return nil
	}

	var transitions []Transition
	insideAt0 := 0
	apex := edge.Line().Point()
	for i, region := range regions {
		if i == primaryIndex {
			continue
		}
		pointInside := region.Contains(apex)
		if pointInside {
			insideAt0++
		}
		for _, xs := range region.Intersections(edge, pointInside) {
			delta := transitionDelta(-1)
			if xs.Dir == OutIn {
				delta = 1
			}
			transitions = append(transitions, Transition{parameter: xs.Parameter, delta: delta})
		}
	}

	projection := edge.Line().Projection(desired)
	return &EdgeCandidates{
		line:   edge.Line(),
		params: NewParameterIterator(insideAt0, min, max, projection, transitions),
	}
}

// Next returns the next candidate velocity and true, or the zero value and
// false once exhausted.
func (c *EdgeCandidates) Next() (Vec, bool) {
	points := c.params.Points()
	if c.index >= len(points) {
		return Vec{}, false
	}
	p := points[c.index]
	c.index++
	return c.line.PointAt(p), true
}

// Candidates chains every region's edges' EdgeCandidates into a single
// sequence of feasible velocity points.
type Candidates struct {
	desired Vec
	regions []Region
	current *EdgeCandidates
	region  int
	edge    int
}

// NewCandidates starts a candidate walk over regions, toward the given
// desired velocity.
func NewCandidates(desired Vec, regions []Region) *Candidates {
	return &Candidates{desired: desired, regions: regions}
}

// Next returns the next candidate velocity across all regions' edges, or
// false once every edge of every region has been exhausted.
func (c *Candidates) Next() (Vec, bool) {
	for {
		if c.current != nil {
			if v, ok := c.current.Next(); ok {
				return v, true
			}
			c.current = nil
			c.edge++
		}
		if c.region >= len(c.regions) {
			return Vec{}, false
		}
		edges := c.regions[c.region].Edges()
		if c.edge >= len(edges) {
			c.region++
			c.edge = 0
			continue
		}
		c.current = ComputeEdgeCandidates(edges[c.edge], c.desired, c.region, c.regions)
		if c.current == nil {
			c.edge++
		}
	}
}

// All drains every remaining candidate into a slice.
func (c *Candidates) All() []Vec {
	var out []Vec
	for {
		v, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
