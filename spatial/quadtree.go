// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package spatial

import "math"

// Default tunables, overridable via NewQuadtree or config.Runtime.
const (
	DefaultMaxLeafs         = 50
	DefaultMaxLeafsForMerge = 40
	DefaultMaxDepth         = 16
)

// ItemID is a monotonically increasing identity the tree mints for every
// element at insertion time. Using a tree-minted counter, rather than a
// hash of caller data, rules out collisions between unrelated elements
// that happen to hash the same.
type ItemID uint64

// Handle is the caller-held reference to a tree element, sufficient to
// locate it for Remove/UpdatePosition in O(depth) without a back-pointer.
type Handle struct {
	ID       ItemID
	Position Vec2
}

type qelement[T any] struct {
	id   ItemID
	pos  Vec2
	data T
}

type qnode[T any] struct {
	bounds   AABB
	depth    int
	isLeaf   bool
	elems    []qelement[T]
	children *[4]*qnode[T]
}

// Quadtree is a fixed-fanout-4 spatial tree over a fixed rectangle,
// re-balancing leaves on insert/remove so that within_disc queries can
// prune whole subtrees by rectangle-disc intersection.
type Quadtree[T any] struct {
	maxLeafs         int
	maxLeafsForMerge int
	maxDepth         int
	root             *qnode[T]
	nextID           ItemID
}

// NewQuadtree returns an empty tree over bounds.
func NewQuadtree[T any](bounds AABB, maxLeafs, maxLeafsForMerge, maxDepth int) *Quadtree[T] {
	return &Quadtree[T]{
		maxLeafs:         maxLeafs,
		maxLeafsForMerge: maxLeafsForMerge,
		maxDepth:         maxDepth,
		root:             &qnode[T]{bounds: bounds, isLeaf: true},
	}
}

// Insert places data at pos, splitting leaves that overflow maxLeafs.
// Panics if splitting would need to go deeper than maxDepth, mirroring the
// upstream tree's treatment of this as an unrecoverable configuration
// error (far too many coincident elements for the configured depth).
func (q *Quadtree[T]) Insert(data T, pos Vec2) Handle {
	q.nextID++
	id := q.nextID
	elem := qelement[T]{id: id, pos: pos, data: data}
	q.insert(q.root, elem)
	return Handle{ID: id, Position: pos}
}

func (q *Quadtree[T]) insert(n *qnode[T], elem qelement[T]) {
	if !n.isLeaf {
		child := n.children[quadrant(n.bounds, elem.pos)]
		q.insert(child, elem)
		return
	}

	n.elems = append(n.elems, elem)
	if len(n.elems) <= q.maxLeafs {
		return
	}
	q.split(n)
}

func (q *Quadtree[T]) split(n *qnode[T]) {
	if n.depth >= q.maxDepth {
		panic("spatial: quadtree exceeded MaxDepth")
	}

	old := n.elems
	n.elems = nil
	n.isLeaf = false
	var children [4]*qnode[T]
	for i := range children {
		children[i] = &qnode[T]{bounds: childBounds(n.bounds, i), depth: n.depth + 1, isLeaf: true}
	}
	n.children = &children

	for _, e := range old {
		q.insert(n.children[quadrant(n.bounds, e.pos)], e)
	}
}

// Remove deletes the element identified by h.
func (q *Quadtree[T]) Remove(h Handle) {
	q.removeAt(q.root, h)
}

func (q *Quadtree[T]) removeAt(n *qnode[T], h Handle) (qelement[T], bool) {
	if !n.isLeaf {
		idx := quadrant(n.bounds, h.Position)
		removed, ok := q.removeAt(n.children[idx], h)
		if ok {
			q.tryMerge(n)
		}
		return removed, ok
	}

	for i, e := range n.elems {
		if e.id == h.ID {
			n.elems[i] = n.elems[len(n.elems)-1]
			n.elems = n.elems[:len(n.elems)-1]
			return e, true
		}
	}
	return qelement[T]{}, false
}

// tryMerge collapses n's four children back into a single leaf if they
// are all leaves and their combined size is small enough.
func (q *Quadtree[T]) tryMerge(n *qnode[T]) {
	if n.isLeaf || n.children == nil {
		return
	}
	total := 0
	for _, c := range n.children {
		if !c.isLeaf {
			return
		}
		total += len(c.elems)
	}
	if total > q.maxLeafsForMerge {
		return
	}

	merged := make([]qelement[T], 0, total)
	for _, c := range n.children {
		merged = append(merged, c.elems...)
	}
	n.isLeaf = true
	n.elems = merged
	n.children = nil
}

// UpdatePosition moves the element identified by h to newPos, returning
// its updated handle.
func (q *Quadtree[T]) UpdatePosition(h Handle, newPos Vec2) Handle {
	if leaf := q.findLeaf(q.root, h); leaf != nil && leaf.bounds.Contains(newPos) {
		for i := range leaf.elems {
			if leaf.elems[i].id == h.ID {
				leaf.elems[i].pos = newPos
				break
			}
		}
		return Handle{ID: h.ID, Position: newPos}
	}

	elem, ok := q.removeAt(q.root, h)
	if !ok {
		return h
	}
	elem.pos = newPos
	q.insert(q.root, elem)
	return Handle{ID: h.ID, Position: newPos}
}

// findLeaf locates the leaf currently holding h without removing it.
func (q *Quadtree[T]) findLeaf(n *qnode[T], h Handle) *qnode[T] {
	if n.isLeaf {
		for _, e := range n.elems {
			if e.id == h.ID {
				return n
			}
		}
		return nil
	}
	return q.findLeaf(n.children[quadrant(n.bounds, h.Position)], h)
}

// WithinDisc returns every element within radius of center, pruning
// subtrees whose bounds don't intersect the disc.
func (q *Quadtree[T]) WithinDisc(center Vec2, radius float64) []T {
	var out []T
	q.withinDisc(q.root, center, radius*radius, &out)
	return out
}

func (q *Quadtree[T]) withinDisc(n *qnode[T], center Vec2, radiusSq float64, out *[]T) {
	if !rectIntersectsDisc(n.bounds, center, radiusSq) {
		return
	}
	if n.isLeaf {
		for _, e := range n.elems {
			d := e.pos.Sub(center)
			if d.Dot(d) <= radiusSq {
				*out = append(*out, e.data)
			}
		}
		return
	}
	for _, c := range n.children {
		q.withinDisc(c, center, radiusSq, out)
	}
}

func rectIntersectsDisc(box AABB, center Vec2, radiusSq float64) bool {
	closest := Vec2{
		X: math.Max(box.Min.X, math.Min(center.X, box.Max.X)),
		Y: math.Max(box.Min.Y, math.Min(center.Y, box.Max.Y)),
	}
	d := closest.Sub(center)
	return d.Dot(d) <= radiusSq
}

// quadrant returns which of bounds' four children contains pos: 0=SW,
// 1=SE, 2=NW, 3=NE, splitting at the bounds' midpoint.
func quadrant(bounds AABB, pos Vec2) int {
	mid := Vec2{X: (bounds.Min.X + bounds.Max.X) / 2, Y: (bounds.Min.Y + bounds.Max.Y) / 2}
	idx := 0
	if pos.X >= mid.X {
		idx |= 1
	}
	if pos.Y >= mid.Y {
		idx |= 2
	}
	return idx
}

func childBounds(bounds AABB, idx int) AABB {
	mid := Vec2{X: (bounds.Min.X + bounds.Max.X) / 2, Y: (bounds.Min.Y + bounds.Max.Y) / 2}
	box := bounds
	if idx&1 == 0 {
		box.Max.X = mid.X
	} else {
		box.Min.X = mid.X
	}
	if idx&2 == 0 {
		box.Max.Y = mid.Y
	} else {
		box.Min.Y = mid.Y
	}
	return box
}
