// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package hrvo

import (
	"github.com/vanguard-rts/core/spatial"
)

// Compute returns the feasible velocity closest to desired that avoids
// every neighbor's forbidden cone, given self's position, radius and
// current velocity. If no neighbor casts a cone (BuildRegion rejects only a
// neighbor at self's exact position; there is no distance cut-off), desired
// itself is returned unchanged.
func Compute(selfPos, selfVel spatial.Vec2, selfRadius float64, neighbors []Neighbor, desired spatial.Vec2, maxSpeed float64) spatial.Vec2 {
	regions := make([]Region, 0, len(neighbors))
	for _, n := range neighbors {
		if region, ok := BuildRegion(selfPos, selfVel, selfRadius, n, maxSpeed); ok {
			regions = append(regions, region)
		}
	}
	if len(regions) == 0 {
		return desired
	}

	desiredFixed := FromMeters(desired)
	feasible := desiredVelocityIsFeasible(desiredFixed, regions)
	if feasible {
		return desired
	}

	candidates := NewCandidates(desiredFixed, regions).All()
	best, found := SelectVelocity(candidates, desiredFixed)
	if !found {
		return spatial.Vec2{}
	}
	return best.ToMeters()
}

// desiredVelocityIsFeasible reports whether v already avoids every region
// (i.e. lies inside none of their forbidden cones), so the mover need not
// deviate from its desired velocity at all.
func desiredVelocityIsFeasible(v Vec, regions []Region) bool {
	for _, r := range regions {
		if r.Contains(v) {
			return false
		}
	}
	return true
}

// SelectVelocity scores every candidate by squared distance to desired and
// returns the closest one; candidates are already restricted to the
// boundary of the union of forbidden cones (plus their apexes), where the
// feasible optimum is always attained, so callers only see found == false
// when candidates is empty. Ties are broken by preferring the candidate
// nearer the origin (a slower velocity), so that when two points
// equidistant from desired both evade every cone, the calmer one wins.
func SelectVelocity(candidates []Vec, desired Vec) (Vec, bool) {
	var best Vec
	var bestDistSq int64
	var bestSpeedSq int64
	found := false

	for _, c := range candidates {
		diff := c.Sub(desired)
		distSq := diff.Dot(diff)
		speedSq := c.Dot(c)
		if !found || distSq < bestDistSq || (distSq == bestDistSq && speedSq < bestSpeedSq) {
			best, bestDistSq, bestSpeedSq, found = c, distSq, speedSq, true
		}
	}
	return best, found
}
