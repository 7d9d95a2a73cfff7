// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package spatial implements the broad-phase tile grid and shape index used
// by ray casts, AABB queries and collision checks, plus the fixed-fanout-4
// quadtree used by the movement systems for neighborhood queries.
package spatial

import "math"

// TileSize is the side length, in world units, of one grid tile.
const TileSize = 8.0

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 { return math.Sqrt(v.Dot(v)) }

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec2
}

// Intersects reports whether a and b overlap, including touching edges.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}

// Contains reports whether p lies within a, inclusive of the boundary.
func (a AABB) Contains(p Vec2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// NearestBoundary returns the point on a's boundary nearest to p, and its
// outward unit normal. Callers are expected to call this only for p inside
// a; for p outside, the returned point lies on the line of one wall with
// p's other coordinate left unclamped, and the normal convention no longer
// applies.
func (a AABB) NearestBoundary(p Vec2) (point, normal Vec2) {
	distLeft := p.X - a.Min.X
	distRight := a.Max.X - p.X
	distBottom := p.Y - a.Min.Y
	distTop := a.Max.Y - p.Y

	best := distLeft
	point, normal = Vec2{X: a.Min.X, Y: p.Y}, Vec2{X: -1, Y: 0}
	if distRight < best {
		best = distRight
		point, normal = Vec2{X: a.Max.X, Y: p.Y}, Vec2{X: 1, Y: 0}
	}
	if distBottom < best {
		best = distBottom
		point, normal = Vec2{X: p.X, Y: a.Min.Y}, Vec2{X: 0, Y: -1}
	}
	if distTop < best {
		point, normal = Vec2{X: p.X, Y: a.Max.Y}, Vec2{X: 0, Y: 1}
	}
	return point, normal
}

// TileCoord identifies one square tile of the broad-phase grid.
type TileCoord struct {
	X, Y int32
}

func floorDiv(v, size float64) int32 {
	return int32(math.Floor(v / size))
}

// TileRange is the closed rectangle of tile coordinates [Min, Max] an AABB
// overlaps.
type TileRange struct {
	Min, Max TileCoord
}

// FromAABB computes the tile range an AABB overlaps, using TileSize tiles.
func FromAABB(box AABB) TileRange {
	return TileRange{
		Min: TileCoord{X: floorDiv(box.Min.X, TileSize), Y: floorDiv(box.Min.Y, TileSize)},
		Max: TileCoord{X: floorDiv(box.Max.X, TileSize), Y: floorDiv(box.Max.Y, TileSize)},
	}
}

// Empty reports whether the range contains no tiles.
func (r TileRange) Empty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Excludes reports whether t lies outside the range.
func (r TileRange) Excludes(t TileCoord) bool {
	return t.X < r.Min.X || t.X > r.Max.X || t.Y < r.Min.Y || t.Y > r.Max.Y
}

// Intersection returns the overlapping sub-rectangle of r and o.
func (r TileRange) Intersection(o TileRange) TileRange {
	out := TileRange{
		Min: TileCoord{X: max32(r.Min.X, o.Min.X), Y: max32(r.Min.Y, o.Min.Y)},
		Max: TileCoord{X: min32(r.Max.X, o.Max.X), Y: min32(r.Max.Y, o.Max.Y)},
	}
	return out
}

// Equal reports whether r and o cover exactly the same tiles.
func (r TileRange) Equal(o TileRange) bool {
	return r.Min == o.Min && r.Max == o.Max
}

// Tiles returns every tile coordinate in the range, row-major.
func (r TileRange) Tiles() []TileCoord {
	if r.Empty() {
		return nil
	}
	out := make([]TileCoord, 0, int(r.Max.Y-r.Min.Y+1)*int(r.Max.X-r.Min.X+1))
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			out = append(out, TileCoord{X: x, Y: y})
		}
	}
	return out
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
