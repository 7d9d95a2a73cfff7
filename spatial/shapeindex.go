// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package spatial

import (
	"math"
	"sort"
)

// LocalCollider is the cached per-entity collision state the shape index
// keeps between ticks: the shape in its own local frame, the isometry
// placing it in the world, and the derived local/world AABBs.
type LocalCollider struct {
	Shape     Shape
	Position  Isometry
	LocalAABB AABB
	WorldAABB AABB
}

// NewLocalCollider computes the cached bounds for shape placed at pos.
func NewLocalCollider(shape Shape, pos Isometry) LocalCollider {
	local := shape.LocalAABB()
	return LocalCollider{
		Shape:     shape,
		Position:  pos,
		LocalAABB: local,
		WorldAABB: transformAABB(local, pos),
	}
}

// transformAABB computes a (possibly loose, but conservative for uniform
// rotation since our shapes are small) world AABB of a local AABB under an
// isometry by transforming its four corners.
func transformAABB(local AABB, iso Isometry) AABB {
	corners := [4]Vec2{
		{local.Min.X, local.Min.Y},
		{local.Max.X, local.Min.Y},
		{local.Min.X, local.Max.Y},
		{local.Max.X, local.Max.Y},
	}
	world := iso.Apply(corners[0])
	box := AABB{Min: world, Max: world}
	for _, c := range corners[1:] {
		w := iso.Apply(c)
		box.Min.X = math.Min(box.Min.X, w.X)
		box.Min.Y = math.Min(box.Min.Y, w.Y)
		box.Max.X = math.Max(box.Max.X, w.X)
		box.Max.Y = math.Max(box.Max.Y, w.Y)
	}
	return box
}

// UpdatePosition recomputes the world AABB of c after moving to iso.
func (c LocalCollider) UpdatePosition(iso Isometry) LocalCollider {
	c.Position = iso
	c.WorldAABB = transformAABB(c.LocalAABB, iso)
	return c
}

// ShapeIndex wraps a TileGrid with a per-entity LocalCollider cache,
// answering ray, AABB and precise-collision queries against whatever
// entities overlap the query's candidate tiles.
type ShapeIndex[E comparable] struct {
	grid    *TileGrid[E]
	bounds  AABB
	less    func(a, b E) bool
	collide map[E]LocalCollider
}

// NewShapeIndex returns an empty index clipped to the given world bounds.
// less provides the entity-id tie-break total order required for
// deterministic ray results.
func NewShapeIndex[E comparable](bounds AABB, less func(a, b E) bool) *ShapeIndex[E] {
	return &ShapeIndex[E]{
		grid:    NewTileGrid[E](),
		bounds:  bounds,
		less:    less,
		collide: make(map[E]LocalCollider),
	}
}

// Insert adds entity to the index with its initial collider.
func (idx *ShapeIndex[E]) Insert(entity E, collider LocalCollider) {
	idx.collide[entity] = collider
	idx.grid.Insert(entity, collider.WorldAABB)
}

// Remove drops entity from the index.
func (idx *ShapeIndex[E]) Remove(entity E) {
	collider, ok := idx.collide[entity]
	if !ok {
		return
	}
	idx.grid.Remove(entity, collider.WorldAABB)
	delete(idx.collide, entity)
}

// UpdatePosition moves entity to iso, touching only the tiles whose
// membership changes.
func (idx *ShapeIndex[E]) UpdatePosition(entity E, iso Isometry) {
	collider, ok := idx.collide[entity]
	if !ok {
		return
	}
	updated := collider.UpdatePosition(iso)
	idx.grid.Update(entity, collider.WorldAABB, updated.WorldAABB)
	idx.collide[entity] = updated
}

// RayHit is one result of CastRay: the entity hit and the time of impact
// along the ray (in units of the ray's own direction length).
type RayHit[E comparable] struct {
	Entity E
	Toi    float64
}

// CastRay clips the ray to the index bounds, walks the tiles it crosses in
// order of increasing ray parameter, and returns the entity with the
// minimum time of impact, breaking ties by entity id via less. ignore, if
// non-nil, is skipped.
func (idx *ShapeIndex[E]) CastRay(origin, dir Vec2, maxToi float64, ignore *E) (RayHit[E], bool) {
	best := RayHit[E]{Toi: maxToi}
	found := false

	visited := make(map[E]struct{})
	for _, tile := range SegmentCandidates(idx.bounds, origin, dir, best.Toi) {
		entities := idx.grid.TileEntities(tile)
		if entities == nil {
			continue
		}
		for _, e := range entities.List() {
			if ignore != nil && e == *ignore {
				continue
			}
			if _, seen := visited[e]; seen {
				continue
			}
			visited[e] = struct{}{}

			collider := idx.collide[e]
			localOrigin := inverseApply(collider.Position, origin)
			localDir := inverseRotate(collider.Position, dir)
			toi, hit := collider.Shape.RayIntersect(localOrigin, localDir, best.Toi)
			if !hit {
				continue
			}
			switch {
			case !found, toi < best.Toi:
				best = RayHit[E]{Entity: e, Toi: toi}
				found = true
			case toi == best.Toi && idx.less != nil && idx.less(e, best.Entity):
				best = RayHit[E]{Entity: e, Toi: toi}
			}
		}
	}
	return best, found
}

// QueryAABB returns every entity whose world AABB overlaps box, sorted by
// entity order if less was provided.
func (idx *ShapeIndex[E]) QueryAABB(box AABB) []E {
	seen := make(map[E]struct{})
	var out []E
	for _, tile := range FromAABB(box).Tiles() {
		entities := idx.grid.TileEntities(tile)
		if entities == nil {
			continue
		}
		for _, e := range entities.List() {
			if _, ok := seen[e]; ok {
				continue
			}
			collider, ok := idx.collide[e]
			if !ok || !collider.WorldAABB.Intersects(box) {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	if idx.less != nil {
		sort.Slice(out, func(i, j int) bool { return idx.less(out[i], out[j]) })
	}
	return out
}

// Collides reports whether shape placed at pos precisely overlaps any
// indexed entity other than ignore, pre-filtered by AABB.
func (idx *ShapeIndex[E]) Collides(shape Shape, pos Isometry, ignore *E) (E, bool) {
	probe := NewLocalCollider(shape, pos)
	for _, candidate := range idx.QueryAABB(probe.WorldAABB) {
		if ignore != nil && candidate == *ignore {
			continue
		}
		other := idx.collide[candidate]
		if convexOverlap(probe, other) {
			return candidate, true
		}
	}
	var zero E
	return zero, false
}

func inverseApply(iso Isometry, world Vec2) Vec2 {
	translated := world.Sub(iso.Translation)
	return Vec2{
		X: translated.X*iso.Cos + translated.Y*iso.Sin,
		Y: -translated.X*iso.Sin + translated.Y*iso.Cos,
	}
}

func inverseRotate(iso Isometry, worldDir Vec2) Vec2 {
	return Vec2{
		X: worldDir.X*iso.Cos + worldDir.Y*iso.Sin,
		Y: -worldDir.X*iso.Sin + worldDir.Y*iso.Cos,
	}
}

// convexOverlap performs a precise intersection test between two placed
// shapes, after the caller has already pre-filtered by AABB. Circle pairs
// use the closed-form distance test; anything touching a polygon falls
// back to the separating-axis theorem over both shapes' edge normals. The
// test is exact for two polygons; a circle paired with a polygon is
// replaced by the 16-gon inscribed in it, so that case is approximate.
func convexOverlap(a, b LocalCollider) bool {
	ac, aIsCircle := a.Shape.(Circle)
	bc, bIsCircle := b.Shape.(Circle)
	if aIsCircle && bIsCircle {
		d := a.Position.Translation.Sub(b.Position.Translation)
		r := ac.Radius + bc.Radius
		return d.Dot(d) <= r*r
	}
	return satOverlap(worldPolygon(a), worldPolygon(b))
}

// worldPolygon returns a convex polygon approximation of c in world
// space: its own vertices transformed by its isometry, or a 16-gon
// approximation of a circle.
func worldPolygon(c LocalCollider) []Vec2 {
	if circle, ok := c.Shape.(Circle); ok {
		const sides = 16
		points := make([]Vec2, sides)
		for i := 0; i < sides; i++ {
			theta := 2 * math.Pi * float64(i) / sides
			local := Vec2{X: circle.Radius * math.Cos(theta), Y: circle.Radius * math.Sin(theta)}
			points[i] = c.Position.Apply(local)
		}
		return points
	}
	poly := c.Shape.(ConvexPolygon)
	points := make([]Vec2, len(poly.Points))
	for i, p := range poly.Points {
		points[i] = c.Position.Apply(p)
	}
	return points
}

// satOverlap tests two convex polygons for intersection via the
// separating axis theorem.
func satOverlap(a, b []Vec2) bool {
	for _, poly := range [2][]Vec2{a, b} {
		n := len(poly)
		for i := 0; i < n; i++ {
			edge := poly[(i+1)%n].Sub(poly[i])
			axis := Vec2{X: -edge.Y, Y: edge.X}
			aMin, aMax := projectOnto(a, axis)
			bMin, bMax := projectOnto(b, axis)
			if aMax < bMin || bMax < aMin {
				return false
			}
		}
	}
	return true
}

func projectOnto(poly []Vec2, axis Vec2) (min, max float64) {
	min = poly[0].Dot(axis)
	max = min
	for _, p := range poly[1:] {
		d := p.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}
