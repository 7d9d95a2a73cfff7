// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package spatial

import "math"

// SegmentCandidates walks the tiles a ray segment crosses, in order of
// increasing ray parameter, using a DDA (digital differential analyzer)
// that steps across whichever tile wall the segment reaches next. The ray is first clipped to bounds; if it misses
// bounds entirely, the result is empty.
func SegmentCandidates(bounds AABB, origin, dir Vec2, maxToi float64) []TileCoord {
	tMin, tMax, ok := clipToBounds(bounds, origin, dir, maxToi)
	if !ok {
		return nil
	}

	start := origin.Add(dir.Scale(tMin))
	end := origin.Add(dir.Scale(tMax))

	startTile := TileCoord{X: floorDiv(start.X, TileSize), Y: floorDiv(start.Y, TileSize)}
	endTile := TileCoord{X: floorDiv(end.X, TileSize), Y: floorDiv(end.Y, TileSize)}

	stepX := sign32(endTile.X - startTile.X)
	stepY := sign32(endTile.Y - startTile.Y)

	out := []TileCoord{startTile}
	cur := startTile
	// wall returns the ray parameter, counted from start, at which the
	// segment leaves tile index c along one axis.
	wall := func(p, d float64, c, step int32) float64 {
		edge := float64(c) * TileSize
		if step > 0 {
			edge += TileSize
		}
		return (edge - p) / d
	}
	// Bound the walk by Manhattan distance between start and end tiles so a
	// degenerate direction can never spin forever.
	steps := absInt32(endTile.X-startTile.X) + absInt32(endTile.Y-startTile.Y)
	for i := int32(0); i < steps && cur != endTile; i++ {
		if cur.X != endTile.X && (cur.Y == endTile.Y || wall(start.X, dir.X, cur.X, stepX) < wall(start.Y, dir.Y, cur.Y, stepY)) {
			cur.X += stepX
		} else {
			cur.Y += stepY
		}
		out = append(out, cur)
	}
	return out
}

// clipToBounds returns the [tMin, tMax] sub-interval of [0, maxToi] during
// which origin + t*dir lies within bounds, via the slab method.
func clipToBounds(bounds AABB, origin, dir Vec2, maxToi float64) (float64, float64, bool) {
	tMin, tMax := 0.0, maxToi
	for axis := 0; axis < 2; axis++ {
		var o, d, lo, hi float64
		if axis == 0 {
			o, d, lo, hi = origin.X, dir.X, bounds.Min.X, bounds.Max.X
		} else {
			o, d, lo, hi = origin.Y, dir.Y, bounds.Min.Y, bounds.Max.Y
		}
		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		t0 := (lo - o) / d
		t1 := (hi - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

func sign32(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
