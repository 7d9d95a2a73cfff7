// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package spatial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTileGridConsistency checks that at all times the grid contains entity
// e in tile t iff e's world AABB overlaps t, by comparing grid membership
// against a brute-force scan over every tile touching the scan window.
func TestTileGridConsistency(t *testing.T) {
	grid := NewTileGrid[int]()
	boxes := map[int]AABB{
		1: {Min: Vec2{-TileSize * 0.5, -TileSize * 4.2}, Max: Vec2{-TileSize * 0.4, -TileSize * 3.6}},
		2: {Min: Vec2{-TileSize * 0.7, -TileSize * 4.2}, Max: Vec2{-TileSize * 0.6, -TileSize * 3.6}},
		3: {Min: Vec2{TileSize * 7, TileSize * 8.1}, Max: Vec2{TileSize * 8.5, TileSize * 9.4}},
	}
	for e, box := range boxes {
		grid.Insert(e, box)
	}

	for x := int32(-3); x <= 10; x++ {
		for y := int32(-6); y <= 10; y++ {
			tile := TileCoord{X: x, Y: y}
			tileBox := AABB{
				Min: Vec2{float64(x) * TileSize, float64(y) * TileSize},
				Max: Vec2{float64(x+1) * TileSize, float64(y+1) * TileSize},
			}
			want := map[int]struct{}{}
			for e, box := range boxes {
				if box.Intersects(tileBox) {
					want[e] = struct{}{}
				}
			}
			got := grid.TileEntities(tile)
			require.Equal(t, len(want), got.Len(), "tile %v", tile)
			for e := range want {
				require.True(t, got.Contains(e), "tile %v missing entity %d", tile, e)
			}
		}
	}
}

func TestTileGridRemove(t *testing.T) {
	grid := NewTileGrid[int]()
	box := AABB{Min: Vec2{0, 0}, Max: Vec2{1, 1}}
	grid.Insert(1, box)
	require.Equal(t, 1, grid.TileEntities(TileCoord{0, 0}).Len())

	grid.Remove(1, box)
	require.Nil(t, grid.TileEntities(TileCoord{0, 0}))
}

func TestTileGridUpdateCommonCaseIsNoOp(t *testing.T) {
	grid := NewTileGrid[int]()
	box := AABB{Min: Vec2{0, 0}, Max: Vec2{1, 1}}
	grid.Insert(1, box)

	moved := AABB{Min: Vec2{0.1, 0.1}, Max: Vec2{1.1, 1.1}}
	grid.Update(1, box, moved)
	require.Equal(t, 1, grid.TileEntities(TileCoord{0, 0}).Len())
}

func TestTileGridUpdateCrossesTileBoundary(t *testing.T) {
	grid := NewTileGrid[int]()
	oldBox := AABB{Min: Vec2{TileSize * 7, TileSize * 8}, Max: Vec2{TileSize*8.5 + 0.1, TileSize*9 - 0.1}}
	grid.Insert(1, oldBox)
	require.NotNil(t, grid.TileEntities(TileCoord{7, 8}))

	newBox := AABB{Min: Vec2{TileSize * 7.1, TileSize * 12}, Max: Vec2{TileSize*8.5 + 0.1, TileSize*13 - 0.1}}
	grid.Update(1, oldBox, newBox)
	require.Nil(t, grid.TileEntities(TileCoord{7, 8}))
	require.NotNil(t, grid.TileEntities(TileCoord{8, 12}))
}

func TestTileRangeIntersectionAndExcludes(t *testing.T) {
	a := TileRange{Min: TileCoord{-4, -7}, Max: TileCoord{-2, -6}}
	require.False(t, a.Excludes(TileCoord{-4, -7}))
	require.False(t, a.Excludes(TileCoord{-2, -6}))
	require.True(t, a.Excludes(TileCoord{-5, -7}))
	require.True(t, a.Excludes(TileCoord{-1, -7}))

	b := TileRange{Min: TileCoord{10, 12}, Max: TileCoord{20, 22}}
	c := TileRange{Min: TileCoord{20, 12}, Max: TileCoord{20, 13}}
	inter := b.Intersection(c)
	require.Equal(t, []TileCoord{{20, 12}, {20, 13}}, inter.Tiles())

	d := TileRange{Min: TileCoord{500, 500}, Max: TileCoord{600, 600}}
	require.True(t, b.Intersection(d).Empty())
}
