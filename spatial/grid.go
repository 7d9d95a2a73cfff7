// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package spatial

import (
	"github.com/vanguard-rts/core/utils/set"
)

// TileGrid maps tile coordinates to the set of entities whose world AABB
// overlaps that tile. Only non-empty tiles are kept. E is typically
// world.Entity; it is left generic here so this package has no dependency
// on the world package.
type TileGrid[E comparable] struct {
	tiles map[TileCoord]set.Set[E]
}

// NewTileGrid returns an empty grid.
func NewTileGrid[E comparable]() *TileGrid[E] {
	return &TileGrid[E]{tiles: make(map[TileCoord]set.Set[E])}
}

// Insert adds entity to every tile its AABB overlaps.
func (g *TileGrid[E]) Insert(entity E, box AABB) {
	for _, tile := range FromAABB(box).Tiles() {
		g.insertTile(entity, tile)
	}
}

// Remove removes entity from every tile box overlaps. box must equal the
// AABB last used to insert or update the entity.
func (g *TileGrid[E]) Remove(entity E, box AABB) {
	for _, tile := range FromAABB(box).Tiles() {
		g.removeTile(entity, tile)
	}
}

// Update moves entity from oldBox's tile range to newBox's, touching only
// the tiles whose membership actually changes.
func (g *TileGrid[E]) Update(entity E, oldBox, newBox AABB) {
	oldRange := FromAABB(oldBox)
	newRange := FromAABB(newBox)
	if oldRange.Equal(newRange) {
		return
	}

	intersection := oldRange.Intersection(newRange)
	for _, tile := range oldRange.Tiles() {
		if intersection.Excludes(tile) {
			g.removeTile(entity, tile)
		}
	}
	for _, tile := range newRange.Tiles() {
		if intersection.Excludes(tile) {
			g.insertTile(entity, tile)
		}
	}
}

// TileEntities returns the entities occupying tile, or nil if none.
func (g *TileGrid[E]) TileEntities(tile TileCoord) set.Set[E] {
	return g.tiles[tile]
}

func (g *TileGrid[E]) insertTile(entity E, tile TileCoord) {
	s, ok := g.tiles[tile]
	if !ok {
		s = set.NewSet[E](1)
		g.tiles[tile] = s
	}
	s.Add(entity)
}

func (g *TileGrid[E]) removeTile(entity E, tile TileCoord) {
	s, ok := g.tiles[tile]
	if !ok {
		return
	}
	s.Remove(entity)
	if s.Len() == 0 {
		delete(g.tiles, tile)
	}
}
