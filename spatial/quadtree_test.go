// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package spatial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testBounds() AABB {
	return AABB{Min: Vec2{-1000, -1000}, Max: Vec2{1000, 1000}}
}

func TestQuadtreeInsertAndWithinDisc(t *testing.T) {
	tree := NewQuadtree[string](testBounds(), DefaultMaxLeafs, DefaultMaxLeafsForMerge, DefaultMaxDepth)

	tree.Insert("near", Vec2{1, 1})
	tree.Insert("far", Vec2{500, 500})

	found := tree.WithinDisc(Vec2{0, 0}, 10)
	require.ElementsMatch(t, []string{"near"}, found)
}

func TestQuadtreeSplitsOnOverflow(t *testing.T) {
	tree := NewQuadtree[int](testBounds(), 4, 2, DefaultMaxDepth)

	for i := 0; i < 20; i++ {
		tree.Insert(i, Vec2{X: float64(i), Y: float64(i)})
	}
	require.False(t, tree.root.isLeaf)

	found := tree.WithinDisc(Vec2{0, 0}, 1000)
	require.Len(t, found, 20)
}

func TestQuadtreeRemoveMergesLeaves(t *testing.T) {
	tree := NewQuadtree[int](testBounds(), 4, 20, DefaultMaxDepth)

	handles := make([]Handle, 0, 10)
	for i := 0; i < 10; i++ {
		handles = append(handles, tree.Insert(i, Vec2{X: float64(i), Y: float64(i)}))
	}
	require.False(t, tree.root.isLeaf)

	for _, h := range handles[:8] {
		tree.Remove(h)
	}
	require.True(t, tree.root.isLeaf, "children should merge back once combined size drops under the merge threshold")
	require.Len(t, tree.root.elems, 2)
}

func TestQuadtreeUpdatePositionWithinLeaf(t *testing.T) {
	tree := NewQuadtree[string](testBounds(), DefaultMaxLeafs, DefaultMaxLeafsForMerge, DefaultMaxDepth)
	h := tree.Insert("a", Vec2{1, 1})

	h = tree.UpdatePosition(h, Vec2{2, 2})
	found := tree.WithinDisc(Vec2{2, 2}, 0.5)
	require.Equal(t, []string{"a"}, found)
	require.Equal(t, Vec2{2, 2}, h.Position)
}

func TestQuadtreeUpdatePositionAcrossLeavesPreservesData(t *testing.T) {
	tree := NewQuadtree[string](testBounds(), 2, 1, DefaultMaxDepth)
	tree.Insert("a", Vec2{-500, -500})
	tree.Insert("b", Vec2{-500, 500})
	h := tree.Insert("c", Vec2{-500, -500}) // forces a split

	h = tree.UpdatePosition(h, Vec2{500, 500})
	found := tree.WithinDisc(Vec2{500, 500}, 1)
	require.Equal(t, []string{"c"}, found)
	require.Equal(t, Vec2{500, 500}, h.Position)
}

func TestQuadtreePanicsPastMaxDepth(t *testing.T) {
	tree := NewQuadtree[int](testBounds(), 1, 0, 2)
	defer func() {
		require.NotNil(t, recover(), "expected a panic once the tree needs to split past MaxDepth")
	}()
	// All the points land in the same quadrant at every level, forcing
	// splits deeper than MaxDepth=2 can support.
	for i := 0; i < 5; i++ {
		tree.Insert(i, Vec2{1, 1})
	}
}
